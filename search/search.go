// Package search slides a primer across both orientations of a padded
// template and retains the window offsets whose primability and
// stability clear the configured cutoffs.
//
// Orientation bookkeeping: the forward search sequence is the template
// padded on its 5' side by one primer length, which lets a window hang
// off the template end (gap padding for linear templates, the
// template's own tail for circular ones). The reverse search sequence
// is built from the complement with the same padding scheme, laid out
// so that window offsets line up with the forward coordinates.
package search

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru"

	"ampsim/dna"
	"ampsim/internal/logutil"
	"ampsim/scoring"
)

var logger = logutil.GetLogger("ampsim.search")

// Reconstructed origins are memoized; a search over a whole plasmid
// revisits accepted offsets many times during assembly.
const originCacheSize = 4096

// Search owns one (template, primer, settings) triple. Run populates
// the accepted offset lists; Origin reconstructs the scorer for any
// valid offset on demand.
type Search struct {
	template dna.Sequence
	primer   dna.Primer
	settings *scoring.Settings

	fwdSeq  string // padded template, forward orientation
	revSeq  string // padded complement, reverse orientation
	primer3 string // primer symbols, 3'-end first

	fwd      []int
	rev      []int
	searched bool

	origins *lru.Cache
}

// New builds a Search. The template must be linear or circular.
func New(template dna.Sequence, primer dna.Primer, settings *scoring.Settings) (*Search, error) {
	if settings == nil {
		return nil, fmt.Errorf("search: settings are required")
	}
	n := primer.Len()
	if n == 0 {
		return nil, fmt.Errorf("search: empty primer")
	}
	fwd, err := template.Pad(n)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	revPadded, err := template.Reverse().Pad(n)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	cache, err := lru.New(originCacheSize)
	if err != nil {
		return nil, err
	}
	s := &Search{
		template: template,
		primer:   primer,
		settings: settings,
		fwdSeq:   fwd.Seq(),
		revSeq:   revPadded.Reverse().Complement().Seq(),
		primer3:  reverseString(primer.Seq()),
		origins:  cache,
	}
	logger.Debugf("search %s: fwd=%s rev=%s", primer.Name(), s.fwdSeq, s.revSeq)
	return s, nil
}

// Template returns the template under search.
func (s *Search) Template() dna.Sequence { return s.template }

// Primer returns the primer under search.
func (s *Search) Primer() dna.Primer { return s.primer }

// Settings returns the shared scoring settings.
func (s *Search) Settings() *scoring.Settings { return s.settings }

// ForwardSeq returns the padded forward-orientation search sequence.
func (s *Search) ForwardSeq() string { return s.fwdSeq }

// ReverseSeq returns the padded reverse-orientation search sequence.
func (s *Search) ReverseSeq() string { return s.revSeq }

// Windows returns the number of window offsets; valid offsets are
// 0 … Windows()-1 in either orientation.
func (s *Search) Windows() int { return len(s.fwdSeq) - s.primer.Len() + 1 }

type originKey struct {
	dir dna.Direction
	i   int
}

// Origin reconstructs the scorer for offset i in the given orientation.
// Repeated calls for the same offset return identical scores.
func (s *Search) Origin(dir dna.Direction, i int) (*scoring.Origin, error) {
	if i < 0 || i >= s.Windows() {
		return nil, fmt.Errorf("search: offset %d out of range [0, %d)", i, s.Windows())
	}
	key := originKey{dir: dir, i: i}
	if v, ok := s.origins.Get(key); ok {
		return v.(*scoring.Origin), nil
	}
	n := s.primer.Len()
	var window string
	if dir == dna.Forward {
		// Forward windows read 5'→3'; flip into 3'-first order.
		window = reverseString(s.fwdSeq[i : i+n])
	} else {
		// The reverse search sequence is already laid out 3'-first.
		window = s.revSeq[i : i+n]
	}
	o, err := scoring.NewOrigin(s.primer3, window, s.settings)
	if err != nil {
		return nil, err
	}
	s.origins.Add(key, o)
	return o, nil
}

// Run scans every window offset in both orientations and retains the
// offsets whose primability and stability are strictly above their
// cutoffs. Previous results are discarded first; re-running with the
// same inputs reproduces the same offsets.
func (s *Search) Run() error {
	s.fwd, s.rev, s.searched = nil, nil, false
	pc := s.settings.PrimabilityCutoff()
	sc := s.settings.StabilityCutoff()
	for _, dir := range []dna.Direction{dna.Forward, dna.Reverse} {
		for i := 0; i < s.Windows(); i++ {
			o, err := s.Origin(dir, i)
			if err != nil {
				return err
			}
			p, st := o.Primability(), o.Stability()
			if p > pc && st > sc {
				logger.Debugf("accepted %s origin %d: primability=%.4f stability=%.4f",
					dir, i, p, st)
				if dir == dna.Forward {
					s.fwd = append(s.fwd, i)
				} else {
					s.rev = append(s.rev, i)
				}
			}
		}
	}
	s.searched = true
	return nil
}

// Searched reports whether Run has completed since the last reset.
func (s *Search) Searched() bool { return s.searched }

// Forward returns the accepted forward-orientation offsets in order.
func (s *Search) Forward() []int { return append([]int(nil), s.fwd...) }

// Reverse returns the accepted reverse-orientation offsets in order.
func (s *Search) Reverse() []int { return append([]int(nil), s.rev...) }

// AmpliconStarts maps the accepted forward offsets onto template start
// coordinates (offset − primer length). Starts may be negative when the
// window hangs off the template's 5' end; the assembler resolves them.
func (s *Search) AmpliconStarts() []int {
	out := make([]int, len(s.fwd))
	for i, x := range s.fwd {
		out[i] = x - s.primer.Len()
	}
	return out
}

// AmpliconEnds maps the accepted reverse offsets onto template end
// coordinates (offset + primer length). Ends may exceed the template
// length; the assembler resolves them.
func (s *Search) AmpliconEnds() []int {
	out := make([]int, len(s.rev))
	for i, x := range s.rev {
		out[i] = x + s.primer.Len()
	}
	return out
}

// Key is the comparable identity of a search: the (primer, template)
// pair by value, independent of settings.
type Key struct {
	Primer   dna.Key
	Template dna.Key
}

// Key returns the search's identity for deduplication.
func (s *Search) Key() Key {
	return Key{Primer: s.primer.Key(), Template: s.template.Key()}
}

// Equal reports whether two searches cover the same (primer, template)
// pair, regardless of their settings.
func (s *Search) Equal(other *Search) bool {
	return other != nil && s.Key() == other.Key()
}

func reverseString(in string) string {
	b := []byte(in)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}
