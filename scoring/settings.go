// Package scoring computes the primability, stability and quality of a
// single candidate binding window. Both the scoring tables and the
// cutoffs live in an immutable Settings value shared across searches.
package scoring

import (
	"errors"
	"fmt"

	"ampsim/weights"
)

// Settings bundles the scoring tables and acceptance cutoffs. It is
// immutable once constructed and safe to share across concurrent
// searches; callers wanting different cutoffs build a new value.
type Settings struct {
	pair           *weights.PairTable
	position       *weights.LengthTable
	run            *weights.LengthTable
	primCutoff     float64
	stabCutoff     float64
	legacyTruncate bool
}

// NewSettings builds a Settings value. All three tables are required.
// legacyTruncate reproduces the reference tool's quality arithmetic,
// which truncates primability and stability to two decimal places
// before combining them.
func NewSettings(pair *weights.PairTable, position, run *weights.LengthTable,
	primabilityCutoff, stabilityCutoff float64, legacyTruncate bool) (*Settings, error) {
	if pair == nil || position == nil || run == nil {
		return nil, errors.New("scoring: all weight tables are required")
	}
	return &Settings{
		pair:           pair,
		position:       position,
		run:            run,
		primCutoff:     primabilityCutoff,
		stabCutoff:     stabilityCutoff,
		legacyTruncate: legacyTruncate,
	}, nil
}

// Default returns the reference tables with a primability cutoff of 0.8
// and a stability cutoff of 0.4, truncation off.
func Default() *Settings {
	s, err := NewSettings(
		weights.DefaultPairScores(),
		weights.DefaultPositionWeights(),
		weights.DefaultRunWeights(),
		0.8, 0.4, false,
	)
	if err != nil {
		panic(err)
	}
	return s
}

// PairScores returns the symbol-pair weight table.
func (s *Settings) PairScores() *weights.PairTable { return s.pair }

// PositionWeights returns the per-position weight table.
func (s *Settings) PositionWeights() *weights.LengthTable { return s.position }

// RunWeights returns the run-length weight table.
func (s *Settings) RunWeights() *weights.LengthTable { return s.run }

// PrimabilityCutoff returns the acceptance threshold for primability.
func (s *Settings) PrimabilityCutoff() float64 { return s.primCutoff }

// StabilityCutoff returns the acceptance threshold for stability.
func (s *Settings) StabilityCutoff() float64 { return s.stabCutoff }

// LegacyTruncate reports whether quality uses two-decimal truncation.
func (s *Settings) LegacyTruncate() bool { return s.legacyTruncate }

func (s *Settings) String() string {
	return fmt.Sprintf("Settings{primability>%g, stability>%g, legacy=%t}",
		s.primCutoff, s.stabCutoff, s.legacyTruncate)
}
