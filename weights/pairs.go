package weights

import (
	"errors"
	"fmt"
)

var (
	// ErrDimensionMismatch is wrapped when a weight matrix does not
	// match its declared row/column alphabets.
	ErrDimensionMismatch = errors.New("weight matrix dimension mismatch")
	// ErrUndefinedSymbol is wrapped when a looked-up symbol belongs to
	// neither the declared alphabet nor the gap.
	ErrUndefinedSymbol = errors.New("undefined symbol")
)

const gap = '-'

// PairTable scores a primer symbol (row) against a template symbol
// (column). Lookup is case-insensitive through byte index tables built
// at construction, so the hot path is two array probes. The gap symbol
// is always defined and scores 0 on either axis.
type PairTable struct {
	rows, cols string
	weight     [][]float64
	rowIdx     [256]int16
	colIdx     [256]int16
	rowMax     []float64
}

// NewPairTable builds a dense pair table. weight must have one row per
// symbol of rows and one column per symbol of cols.
func NewPairTable(rows, cols string, weight [][]float64) (*PairTable, error) {
	if len(weight) != len(rows) {
		return nil, fmt.Errorf("%w: %d weight rows for %d row symbols",
			ErrDimensionMismatch, len(weight), len(rows))
	}
	t := &PairTable{rows: rows, cols: cols}
	t.weight = make([][]float64, len(rows))
	for i, row := range weight {
		if len(row) != len(cols) {
			return nil, fmt.Errorf("%w: row %q has %d columns, want %d",
				ErrDimensionMismatch, rows[i], len(row), len(cols))
		}
		t.weight[i] = append([]float64(nil), row...)
	}
	for i := range t.rowIdx {
		t.rowIdx[i] = -1
		t.colIdx[i] = -1
	}
	for i := 0; i < len(rows); i++ {
		setBothCases(&t.rowIdx, rows[i], int16(i))
	}
	for j := 0; j < len(cols); j++ {
		setBothCases(&t.colIdx, cols[j], int16(j))
	}
	t.rowMax = make([]float64, len(rows))
	for i, row := range t.weight {
		max := row[0]
		for _, w := range row[1:] {
			if w > max {
				max = w
			}
		}
		t.rowMax[i] = max
	}
	return t, nil
}

func setBothCases(idx *[256]int16, c byte, i int16) {
	idx[c] = i
	if c >= 'A' && c <= 'Z' {
		idx[c+'a'-'A'] = i
	} else if c >= 'a' && c <= 'z' {
		idx[c-'a'+'A'] = i
	}
}

// Rows returns the declared row alphabet.
func (t *PairTable) Rows() string { return t.rows }

// Cols returns the declared column alphabet.
func (t *PairTable) Cols() string { return t.cols }

// Get returns the weight of row symbol against column symbol. Symbols
// outside the declared alphabets are an error, except the gap, which
// scores 0 against anything.
func (t *PairTable) Get(row, col byte) (float64, error) {
	if row == gap || col == gap {
		return 0, nil
	}
	i := t.rowIdx[row]
	if i < 0 {
		return 0, fmt.Errorf("%w: row %q", ErrUndefinedSymbol, row)
	}
	j := t.colIdx[col]
	if j < 0 {
		return 0, fmt.Errorf("%w: column %q", ErrUndefinedSymbol, col)
	}
	return t.weight[i][j], nil
}

// RowMax returns the best weight achievable by the row symbol against
// any column symbol. The gap row scores 0.
func (t *PairTable) RowMax(row byte) (float64, error) {
	if row == gap {
		return 0, nil
	}
	i := t.rowIdx[row]
	if i < 0 {
		return 0, fmt.Errorf("%w: row %q", ErrUndefinedSymbol, row)
	}
	return t.rowMax[i], nil
}
