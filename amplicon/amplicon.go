// Package amplicon assembles candidate PCR products from the binding
// origins of one or more searches over a shared template. It never
// imports an app layer; keep it domain-only.
package amplicon

import (
	"errors"
	"fmt"

	"ampsim/dna"
	"ampsim/internal/logutil"
	"ampsim/search"
)

var logger = logutil.GetLogger("ampsim.amplicon")

var (
	// ErrTemplateMismatch is wrapped when a search over a different
	// template is added to an assembler.
	ErrTemplateMismatch = errors.New("template mismatch")
	// ErrDuplicateSearch is wrapped when an equal (primer, template)
	// search is added twice.
	ErrDuplicateSearch = errors.New("duplicate search")
	// ErrSearchNotFound is wrapped when removing an unregistered search.
	ErrSearchNotFound = errors.New("search not found")
)

// Amplicon is one predicted product: the interior template span flanked
// by the forward primer and the reverse complement of the reverse
// primer. Start and End are template coordinates; for non-circular
// amplicons Start < End. Length counts the interior span only.
type Amplicon struct {
	Product       dna.Sequence
	ForwardPrimer dna.Primer
	ReversePrimer dna.Primer
	Start         int
	End           int
	Length        int
	Quality       float64
	Circular      bool
}

// Band buckets the quality score for reporting. Lower scores are
// better; bounds are exclusive on the lower band, so exactly 300 is
// "okay", not "good".
func (a Amplicon) Band() string {
	switch q := a.Quality; {
	case q < 300:
		return "good"
	case q < 700:
		return "okay"
	case q < 1500:
		return "moderate"
	case q < 4000:
		return "weak"
	default:
		return "very weak"
	}
}

func (a Amplicon) String() string {
	s := fmt.Sprintf("%s: %d bp, q=%.1f (%s)", a.Product.Name(), a.Product.Len(), a.Quality, a.Band())
	if a.Circular {
		s += ", circular"
	}
	return s
}

// Assembler registers searches over one shared template and builds the
// cross product of their forward and reverse origins.
type Assembler struct {
	template dna.Sequence
	searches []*search.Search
	keys     map[search.Key]struct{}
}

// NewAssembler builds an empty assembler for the template.
func NewAssembler(template dna.Sequence) *Assembler {
	return &Assembler{
		template: template,
		keys:     make(map[search.Key]struct{}),
	}
}

// Template returns the shared template.
func (g *Assembler) Template() dna.Sequence { return g.template }

// Searches returns the registered searches in registration order.
func (g *Assembler) Searches() []*search.Search {
	return append([]*search.Search(nil), g.searches...)
}

// Add registers a search. The search must cover the assembler's
// template and must not already be registered.
func (g *Assembler) Add(s *search.Search) error {
	if !g.template.Equal(s.Template()) {
		return fmt.Errorf("%w: search is over %q, assembler holds %q",
			ErrTemplateMismatch, s.Template().Name(), g.template.Name())
	}
	k := s.Key()
	if _, ok := g.keys[k]; ok {
		return fmt.Errorf("%w: primer %q on template %q",
			ErrDuplicateSearch, s.Primer().Name(), g.template.Name())
	}
	g.keys[k] = struct{}{}
	g.searches = append(g.searches, s)
	return nil
}

// Remove unregisters the search equal to s.
func (g *Assembler) Remove(s *search.Search) error {
	k := s.Key()
	if _, ok := g.keys[k]; !ok {
		return fmt.Errorf("%w: primer %q on template %q",
			ErrSearchNotFound, s.Primer().Name(), g.template.Name())
	}
	delete(g.keys, k)
	for i, reg := range g.searches {
		if reg.Key() == k {
			g.searches = append(g.searches[:i], g.searches[i+1:]...)
			break
		}
	}
	return nil
}

// boundary is one origin contribution to the cross product: the search
// it came from, its window offset, and the mapped template coordinate.
type boundary struct {
	s      *search.Search
	offset int
	coord  int
}

// Generate runs any search that has not been executed yet, then builds
// a candidate product for every forward-origin × reverse-origin pair
// across all registered searches (cross-primer pairs included).
//
// On a linear template a pair is skipped unless
// 0 ≤ start < end ≤ len(template); a window hanging off a linear
// template end cannot define a complete product. On a circular template
// both coordinates are first reduced modulo the template length, and a
// start at or past the end wraps the product through the origin.
func (g *Assembler) Generate() ([]Amplicon, error) {
	var fwds, revs []boundary
	for _, s := range g.searches {
		if !s.Searched() {
			if err := s.Run(); err != nil {
				return nil, err
			}
		}
		offs := s.Forward()
		for i, coord := range s.AmpliconStarts() {
			fwds = append(fwds, boundary{s: s, offset: offs[i], coord: coord})
		}
		offs = s.Reverse()
		for i, coord := range s.AmpliconEnds() {
			revs = append(revs, boundary{s: s, offset: offs[i], coord: coord})
		}
	}

	n := g.template.Len()
	circularTemplate := g.template.Kind() == dna.KindCircular

	var out []Amplicon
	for _, f := range fwds {
		for _, r := range revs {
			start, end := f.coord, r.coord
			wraps := false
			if circularTemplate {
				start = mod(start, n)
				end = mod(end, n)
				wraps = start >= end
			} else if start < 0 || end > n || start >= end {
				continue
			}

			fo, err := f.s.Origin(dna.Forward, f.offset)
			if err != nil {
				return nil, err
			}
			ro, err := r.s.Origin(dna.Reverse, r.offset)
			if err != nil {
				return nil, err
			}

			var middle dna.Sequence
			var length int
			if wraps {
				middle = g.template.Slice(start, n).Concat(g.template.Slice(0, end))
				length = n - start + end
			} else {
				middle = g.template.Slice(start, end)
				length = end - start
			}

			fwdPrimer := f.s.Primer()
			revPrimer := r.s.Primer()
			name := fwdPrimer.Name() + "/" + revPrimer.Name()
			product := fwdPrimer.Concat(middle).Concat(revPrimer.RevComp()).WithName(name)

			q := fo.Quality() * ro.Quality()
			out = append(out, Amplicon{
				Product:       product,
				ForwardPrimer: fwdPrimer,
				ReversePrimer: revPrimer,
				Start:         start,
				End:           end,
				Length:        length,
				Quality:       float64(length) / (q * q),
				Circular:      wraps,
			})
		}
	}
	logger.Debugf("generated %d amplicons from %d fwd × %d rev origins",
		len(out), len(fwds), len(revs))
	return out, nil
}

// mod reduces x into [0, n), unlike the sign-following % operator.
func mod(x, n int) int {
	x %= n
	if x < 0 {
		x += n
	}
	return x
}
