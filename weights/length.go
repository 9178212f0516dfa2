// Package weights holds the scoring parameter tables: length-indexed
// weights with a sparse override map, and a dense symbol-pair matrix
// with O(1) case-insensitive lookup. Tables are built once and never
// mutated afterwards; they are shared by reference across searches.
package weights

// LengthTable maps an index (a primer position or a run length) to a
// weight. Indices without an explicit override return the default, so
// the table covers any index, negative included.
type LengthTable struct {
	def       float64
	overrides map[int]float64
}

// NewLengthTable builds a table from a default weight and per-index
// overrides. The override map is copied.
func NewLengthTable(def float64, overrides map[int]float64) *LengthTable {
	m := make(map[int]float64, len(overrides))
	for k, v := range overrides {
		m[k] = v
	}
	return &LengthTable{def: def, overrides: m}
}

// Get returns the weight at index k.
func (t *LengthTable) Get(k int) float64 {
	if w, ok := t.overrides[k]; ok {
		return w
	}
	return t.def
}

// Default returns the fallback weight.
func (t *LengthTable) Default() float64 { return t.def }
