package weights

// Reference scoring parameters, after the classic Amplify 4 target
// scoring tables.

// DefaultPositionWeights returns the position weights used by the
// primability score: heavy at the primer's 3' terminus (index 0),
// decaying to 1 from position 14 onward.
func DefaultPositionWeights() *LengthTable {
	return NewLengthTable(1, map[int]float64{
		0: 30, 1: 20, 2: 10, 3: 10, 4: 9,
		5: 9, 6: 8, 7: 7, 8: 6, 9: 5,
		10: 5, 11: 4, 12: 3, 13: 2, 14: 1,
	})
}

// DefaultRunWeights returns the run-length weights used by the
// stability score; runs of five or more score the plateau value 186.
func DefaultRunWeights() *LengthTable {
	return NewLengthTable(186, map[int]float64{
		0: 100, 1: 150, 2: 175, 3: 182, 4: 186,
	})
}

// Primer-row and template-column alphabets of the default pair table.
const (
	DefaultRows = "GATCMRWSYKVHDBN"
	DefaultCols = "GATCN"
)

// DefaultPairScores returns the primer-vs-template pair weights:
// identity scores 100, double ambiguity codes 70, triple codes 50, and
// anything against N scores 30.
func DefaultPairScores() *PairTable {
	t, err := NewPairTable(DefaultRows, DefaultCols, [][]float64{
		{100, 0, 0, 0, 30},
		{0, 100, 0, 0, 30},
		{0, 0, 100, 0, 30},
		{0, 0, 0, 100, 30},
		{0, 70, 0, 70, 30},
		{70, 70, 0, 0, 30},
		{0, 70, 70, 0, 30},
		{70, 0, 0, 70, 30},
		{0, 0, 70, 70, 30},
		{70, 0, 70, 0, 30},
		{50, 50, 0, 50, 30},
		{0, 50, 50, 50, 30},
		{50, 50, 50, 0, 30},
		{50, 0, 50, 50, 30},
		{30, 30, 30, 30, 30},
	})
	if err != nil {
		panic(err) // table shape is fixed at compile time
	}
	return t
}
