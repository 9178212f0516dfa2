// Package pcr is a thin facade over search and amplicon assembly: one
// reaction holds a template, shared settings and a primer set, and
// predicts the products the primer set would amplify.
package pcr

import (
	"errors"
	"fmt"

	"ampsim/amplicon"
	"ampsim/dna"
	"ampsim/scoring"
	"ampsim/search"
)

var (
	// ErrDuplicatePrimer is wrapped when a primer is added twice.
	ErrDuplicatePrimer = errors.New("duplicate primer")
	// ErrPrimerNotFound is wrapped when removing an absent primer.
	ErrPrimerNotFound = errors.New("primer not found")
)

// Reaction models one PCR reaction.
type Reaction struct {
	template  dna.Sequence
	settings  *scoring.Settings
	primers   []dna.Primer
	assembler *amplicon.Assembler
	amplicons []amplicon.Amplicon
}

// NewReaction builds a reaction over the template. A nil settings value
// selects scoring.Default().
func NewReaction(template dna.Sequence, settings *scoring.Settings) *Reaction {
	if settings == nil {
		settings = scoring.Default()
	}
	return &Reaction{
		template:  template,
		settings:  settings,
		assembler: amplicon.NewAssembler(template),
	}
}

// Template returns the reaction template.
func (r *Reaction) Template() dna.Sequence { return r.template }

// AddPrimer registers a primer and its binding search.
func (r *Reaction) AddPrimer(p dna.Primer) error {
	for _, have := range r.primers {
		if have.Equal(p.Sequence) {
			return fmt.Errorf("%w: %q", ErrDuplicatePrimer, p.Name())
		}
	}
	s, err := search.New(r.template, p, r.settings)
	if err != nil {
		return err
	}
	if err := r.assembler.Add(s); err != nil {
		return err
	}
	r.primers = append(r.primers, p)
	return nil
}

// AddPrimers registers several primers, stopping at the first failure.
func (r *Reaction) AddPrimers(primers []dna.Primer) error {
	for _, p := range primers {
		if err := r.AddPrimer(p); err != nil {
			return err
		}
	}
	return nil
}

// RemovePrimer unregisters a primer and its search.
func (r *Reaction) RemovePrimer(p dna.Primer) error {
	idx := -1
	for i, have := range r.primers {
		if have.Equal(p.Sequence) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrPrimerNotFound, p.Name())
	}
	s, err := search.New(r.template, p, r.settings)
	if err != nil {
		return err
	}
	if err := r.assembler.Remove(s); err != nil {
		return err
	}
	r.primers = append(r.primers[:idx], r.primers[idx+1:]...)
	return nil
}

// Primers returns a copy of the registered primers.
func (r *Reaction) Primers() []dna.Primer {
	return append([]dna.Primer(nil), r.primers...)
}

// Predict runs every registered search and assembles the candidate
// amplicons, returning how many were found.
func (r *Reaction) Predict() (int, error) {
	amps, err := r.assembler.Generate()
	if err != nil {
		return 0, err
	}
	r.amplicons = amps
	return len(amps), nil
}

// Amplicons returns a copy of the last prediction.
func (r *Reaction) Amplicons() []amplicon.Amplicon {
	return append([]amplicon.Amplicon(nil), r.amplicons...)
}
