package amplicon

import (
	"errors"
	"math"
	"strings"
	"testing"

	"ampsim/dna"
	"ampsim/scoring"
	"ampsim/search"
	"ampsim/weights"
)

func mustLinear(t *testing.T, seq, name string) dna.Sequence {
	t.Helper()
	s, err := dna.New(seq, dna.KindLinear, name)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func mustCircular(t *testing.T, seq, name string) dna.Sequence {
	t.Helper()
	s, err := dna.New(seq, dna.KindCircular, name)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func mustPrimer(t *testing.T, seq, name string) dna.Primer {
	t.Helper()
	p, err := dna.NewPrimer(seq, name)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func mustSearch(t *testing.T, tmpl dna.Sequence, p dna.Primer, st *scoring.Settings) *search.Search {
	t.Helper()
	s, err := search.New(tmpl, p, st)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func permissive(t *testing.T) *scoring.Settings {
	t.Helper()
	st, err := scoring.NewSettings(
		weights.DefaultPairScores(),
		weights.DefaultPositionWeights(),
		weights.DefaultRunWeights(),
		0.0, -100.0, false,
	)
	if err != nil {
		t.Fatal(err)
	}
	return st
}

func TestRegistryErrors(t *testing.T) {
	st := scoring.Default()
	tmplA := mustLinear(t, "ACCTCCTAGGAGGTTT", "a")
	tmplB := mustLinear(t, "GGGGGGGGGGGGGGGG", "b")
	primer := mustPrimer(t, "CCT", "p")

	g := NewAssembler(tmplA)

	if err := g.Add(mustSearch(t, tmplB, primer, st)); !errors.Is(err, ErrTemplateMismatch) {
		t.Fatalf("foreign template: %v", err)
	}
	if err := g.Add(mustSearch(t, tmplA, primer, st)); err != nil {
		t.Fatal(err)
	}

	// Equal (primer, template) pair, different settings: still a duplicate.
	dup := mustSearch(t, tmplA, primer, permissive(t))
	if err := g.Add(dup); !errors.Is(err, ErrDuplicateSearch) {
		t.Fatalf("duplicate: %v", err)
	}

	other := mustSearch(t, tmplA, mustPrimer(t, "GGA", "q"), st)
	if err := g.Remove(other); !errors.Is(err, ErrSearchNotFound) {
		t.Fatalf("absent removal: %v", err)
	}
	if err := g.Remove(dup); err != nil {
		t.Fatalf("removal by value equality should succeed: %v", err)
	}
	if got := len(g.Searches()); got != 0 {
		t.Fatalf("registry should be empty, has %d", got)
	}
}

func TestGenerateLinearFullLengthProduct(t *testing.T) {
	// Template: AAAAA + (GT)*10 + GGGGG, 30 bp.
	seq := "AAAAA" + strings.Repeat("GT", 10) + "GGGGG"
	template := mustLinear(t, seq, "clean")
	fwd := mustPrimer(t, "AAAAA", "PF")
	rev := mustPrimer(t, "CCCCC", "PR")
	st := permissive(t)

	g := NewAssembler(template)
	if err := g.Add(mustSearch(t, template, fwd, st)); err != nil {
		t.Fatal(err)
	}
	if err := g.Add(mustSearch(t, template, rev, st)); err != nil {
		t.Fatal(err)
	}

	amps, err := g.Generate()
	if err != nil {
		t.Fatal(err)
	}
	if len(amps) == 0 {
		t.Fatal("expected amplicons under permissive cutoffs")
	}

	var full []Amplicon
	for _, a := range amps {
		if a.Length == 30 {
			full = append(full, a)
		}
	}
	if len(full) != 1 {
		t.Fatalf("expected exactly one full-length amplicon, got %d", len(full))
	}
	a := full[0]
	if a.Circular {
		t.Error("linear template cannot yield circular products")
	}
	if a.Start != 0 || a.End != 30 {
		t.Errorf("coords = [%d, %d], want [0, 30]", a.Start, a.End)
	}
	if want := "AAAAA" + seq + "GGGGG"; a.Product.Seq() != want {
		t.Errorf("product = %q, want template flanked by both primers", a.Product.Seq())
	}
	if a.Product.Kind() != dna.KindLinear {
		t.Error("products are linear")
	}
	if !a.ForwardPrimer.Equal(fwd.Sequence) || !a.ReversePrimer.Equal(rev.Sequence) {
		t.Error("primer attribution wrong")
	}
	// Both flanking origins are perfect, so the score is the interior length.
	if math.Abs(a.Quality-30) > 1e-9 {
		t.Errorf("quality score = %v, want 30", a.Quality)
	}
	if a.Band() != "good" {
		t.Errorf("band = %q", a.Band())
	}
}

func TestGenerateSkipsInvertedAndOutOfBoundsPairs(t *testing.T) {
	for _, a := range generateAll(t) {
		if a.Circular {
			t.Fatalf("unexpected circular product on linear template: %s", a)
		}
		if a.Start < 0 || a.End > 30 || a.Start >= a.End {
			t.Fatalf("invalid linear coords [%d, %d]", a.Start, a.End)
		}
	}
}

func generateAll(t *testing.T) []Amplicon {
	t.Helper()
	seq := "AAAAA" + strings.Repeat("GT", 10) + "GGGGG"
	template := mustLinear(t, seq, "clean")
	st := permissive(t)
	g := NewAssembler(template)
	for _, p := range []dna.Primer{mustPrimer(t, "AAAAA", "PF"), mustPrimer(t, "CCCCC", "PR")} {
		if err := g.Add(mustSearch(t, template, p, st)); err != nil {
			t.Fatal(err)
		}
	}
	amps, err := g.Generate()
	if err != nil {
		t.Fatal(err)
	}
	return amps
}

func TestGenerateCircularWraparound(t *testing.T) {
	template := mustCircular(t, "TGAAAAAGGAAAAACC", "plasmid")
	primer := mustPrimer(t, "CCT", "p")

	g := NewAssembler(template)
	// Not run beforehand: Generate must invoke the search lazily.
	if err := g.Add(mustSearch(t, template, primer, scoring.Default())); err != nil {
		t.Fatal(err)
	}
	amps, err := g.Generate()
	if err != nil {
		t.Fatal(err)
	}
	if len(amps) != 1 {
		t.Fatalf("expected one wrapped amplicon, got %d", len(amps))
	}
	a := amps[0]
	if !a.Circular {
		t.Fatal("product must wrap through the origin")
	}
	if a.Start != 14 || a.End != 9 {
		t.Errorf("coords = [%d, %d], want [14, 9]", a.Start, a.End)
	}
	if a.Length != 11 {
		t.Errorf("interior length = %d, want 11", a.Length)
	}
	if want := "CCT" + "CC" + "TGAAAAAGG" + "AGG"; a.Product.Seq() != want {
		t.Errorf("product = %q, want %q", a.Product.Seq(), want)
	}
	if math.Abs(a.Quality-11) > 1e-9 {
		t.Errorf("quality score = %v, want 11", a.Quality)
	}
	if !strings.Contains(a.String(), "circular") {
		t.Errorf("String should annotate circular products: %s", a)
	}
}

func TestQualityBands(t *testing.T) {
	cases := []struct {
		q    float64
		want string
	}{
		{0, "good"},
		{299.999, "good"},
		{300, "okay"}, // upper bound exclusive on the lower band
		{699.999, "okay"},
		{700, "moderate"},
		{1500, "weak"},
		{3999.999, "weak"},
		{4000, "very weak"},
		{math.Inf(1), "very weak"},
	}
	for _, c := range cases {
		a := Amplicon{Quality: c.q}
		if got := a.Band(); got != c.want {
			t.Errorf("Band(%v) = %q, want %q", c.q, got, c.want)
		}
	}
}
