package weights

import (
	"errors"
	"testing"
)

func mustPairTable(t *testing.T) *PairTable {
	t.Helper()
	tbl, err := NewPairTable("GA", "GAT", [][]float64{
		{100, 0, 10},
		{0, 100, 20},
	})
	if err != nil {
		t.Fatal(err)
	}
	return tbl
}

func TestPairTableDimensionMismatch(t *testing.T) {
	if _, err := NewPairTable("GA", "GAT", [][]float64{{1, 2, 3}}); !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("row count mismatch: %v", err)
	}
	if _, err := NewPairTable("GA", "GAT", [][]float64{{1, 2, 3}, {1, 2}}); !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("column count mismatch: %v", err)
	}
}

func TestPairTableGet(t *testing.T) {
	tbl := mustPairTable(t)
	cases := []struct {
		row, col byte
		want     float64
	}{
		{'G', 'G', 100},
		{'g', 'g', 100}, // case folded
		{'A', 'T', 20},
		{'a', 'T', 20},
		{'-', 'G', 0}, // gap is defined everywhere
		{'G', '-', 0},
	}
	for _, c := range cases {
		got, err := tbl.Get(c.row, c.col)
		if err != nil {
			t.Errorf("Get(%q,%q): %v", c.row, c.col, err)
			continue
		}
		if got != c.want {
			t.Errorf("Get(%q,%q) = %v, want %v", c.row, c.col, got, c.want)
		}
	}
}

func TestPairTableUndefinedSymbol(t *testing.T) {
	tbl := mustPairTable(t)
	if _, err := tbl.Get('X', 'G'); !errors.Is(err, ErrUndefinedSymbol) {
		t.Fatalf("undefined row: %v", err)
	}
	if _, err := tbl.Get('G', 'X'); !errors.Is(err, ErrUndefinedSymbol) {
		t.Fatalf("undefined column: %v", err)
	}
	if _, err := tbl.RowMax('X'); !errors.Is(err, ErrUndefinedSymbol) {
		t.Fatalf("undefined row max: %v", err)
	}
}

func TestPairTableRowMax(t *testing.T) {
	tbl := mustPairTable(t)
	if got, _ := tbl.RowMax('G'); got != 100 {
		t.Errorf("RowMax('G') = %v", got)
	}
	if got, _ := tbl.RowMax('a'); got != 100 {
		t.Errorf("RowMax('a') = %v", got)
	}
	if got, _ := tbl.RowMax('-'); got != 0 {
		t.Errorf("RowMax('-') = %v", got)
	}
}

func TestDefaultTables(t *testing.T) {
	pair := DefaultPairScores()
	cases := []struct {
		row, col byte
		want     float64
	}{
		{'G', 'G', 100},
		{'G', 'A', 0},
		{'M', 'A', 70}, // M = A/C
		{'M', 'C', 70},
		{'V', 'T', 0}, // V = A/C/G
		{'B', 'G', 50},
		{'N', 'G', 30},
		{'G', 'N', 30},
	}
	for _, c := range cases {
		got, err := pair.Get(c.row, c.col)
		if err != nil {
			t.Fatalf("Get(%q,%q): %v", c.row, c.col, err)
		}
		if got != c.want {
			t.Errorf("Get(%q,%q) = %v, want %v", c.row, c.col, got, c.want)
		}
	}
	if got, _ := pair.RowMax('M'); got != 70 {
		t.Errorf("RowMax('M') = %v", got)
	}

	pos := DefaultPositionWeights()
	if pos.Get(0) != 30 || pos.Get(14) != 1 || pos.Get(100) != 1 {
		t.Error("position weights: 3'-heavy decay expected")
	}
	run := DefaultRunWeights()
	if run.Get(0) != 100 || run.Get(4) != 186 || run.Get(50) != 186 {
		t.Error("run weights: plateau at 186 expected")
	}
}
