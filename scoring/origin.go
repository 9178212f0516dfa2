package scoring

import (
	"errors"
	"fmt"
	"math"
)

// ErrLengthMismatch is wrapped when the primer and template windows of
// an origin differ in length.
var ErrLengthMismatch = errors.New("window length mismatch")

// Origin is one candidate binding window: a primer window and a
// template window of equal length, both already ordered 3'-end first
// (index 0 is the primer's 3'-terminal base). Pair scores and row
// maxima are resolved at construction, so the score methods are total
// and referentially consistent.
type Origin struct {
	primer   string
	template string
	settings *Settings
	score    []float64
	rowMax   []float64
}

// NewOrigin builds the scorer for one window pair. Windows of unequal
// length fail with ErrLengthMismatch; symbols undefined for the pair
// table fail with the table's lookup error.
func NewOrigin(primer, template string, settings *Settings) (*Origin, error) {
	if settings == nil {
		return nil, errors.New("scoring: settings are required")
	}
	if len(primer) == 0 {
		return nil, fmt.Errorf("%w: empty window", ErrLengthMismatch)
	}
	if len(primer) != len(template) {
		return nil, fmt.Errorf("%w: primer %d vs template %d",
			ErrLengthMismatch, len(primer), len(template))
	}
	o := &Origin{
		primer:   primer,
		template: template,
		settings: settings,
		score:    make([]float64, len(primer)),
		rowMax:   make([]float64, len(primer)),
	}
	pair := settings.PairScores()
	for k := 0; k < len(primer); k++ {
		w, err := pair.Get(primer[k], template[k])
		if err != nil {
			return nil, err
		}
		max, err := pair.RowMax(primer[k])
		if err != nil {
			return nil, err
		}
		o.score[k] = w
		o.rowMax[k] = max
	}
	return o, nil
}

// Primer returns the primer window, 3'-end first.
func (o *Origin) Primer() string { return o.primer }

// Template returns the template window, 3'-end first.
func (o *Origin) Template() string { return o.template }

// Primability is the position-weighted fraction of the best achievable
// pair score. Position weights decay away from index 0, so a mismatch
// at the primer's 3' terminus costs the most.
func (o *Origin) Primability() float64 {
	pos := o.settings.PositionWeights()
	var num, den float64
	for k := range o.score {
		w := pos.Get(k)
		num += w * o.score[k]
		den += w * o.rowMax[k]
	}
	return num / den
}

// Stability rewards long unbroken complementary runs. Positions with a
// positive pair score extend the current run; a non-positive score or
// the end of the window flushes run_weight(length−1) × run-score-sum
// into the numerator. The denominator is the score of a single perfect
// run covering the whole window.
func (o *Origin) Stability() float64 {
	run := o.settings.RunWeights()
	var num, den float64
	runLen := 0
	runSum := 0.0
	for k := range o.score {
		den += o.rowMax[k]
		if o.score[k] > 0 {
			runLen++
			runSum += o.score[k]
			continue
		}
		num += run.Get(runLen-1) * runSum
		runLen, runSum = 0, 0
	}
	num += run.Get(runLen-1) * runSum
	den *= run.Get(len(o.score) - 1)
	return num / den
}

// Quality combines primability and stability against the configured
// cutoffs: (P + S − (pc+sc)) / (2 − (pc+sc)). It is 1.0 for a perfect
// window and negative when either score sits at or below its cutoff.
func (o *Origin) Quality() float64 {
	p := o.Primability()
	s := o.Stability()
	if o.settings.LegacyTruncate() {
		p = truncate2(p)
		s = truncate2(s)
	}
	cutoffs := o.settings.PrimabilityCutoff() + o.settings.StabilityCutoff()
	return (p + s - cutoffs) / (2 - cutoffs)
}

// truncate2 drops everything past two decimal places, toward zero.
func truncate2(x float64) float64 { return math.Trunc(x*100) / 100 }
