// Package dna holds the nucleotide-sequence value types used by the
// binding-site search and amplicon assembly. Sequences are immutable:
// every operation returns a new value.
package dna

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// IUPAC symbol groups.
const (
	Single   = "GATC"
	Double   = "MRWSYK"
	Triple   = "VHDB"
	Wildcard = "N"
	Gap      = "-"
)

// Kind classifies a sequence and selects its legal alphabet.
type Kind int

const (
	KindLinear Kind = iota + 1
	KindCircular
	KindPrimer
)

func (k Kind) String() string {
	switch k {
	case KindLinear:
		return "linear"
	case KindCircular:
		return "circular"
	case KindPrimer:
		return "primer"
	}
	return "unknown"
}

// alphabet returns the symbols legal for sequences of this kind.
func (k Kind) alphabet() string {
	switch k {
	case KindLinear:
		return Single + Wildcard + Gap
	case KindCircular:
		return Single + Wildcard
	case KindPrimer:
		return Single + Double + Triple + Wildcard
	}
	return ""
}

// Direction is the strand a sequence is written on. Forward reads 5'→3'.
type Direction int

const (
	Forward Direction = iota
	Reverse
)

func (d Direction) String() string {
	if d == Forward {
		return "fwd"
	}
	return "rev"
}

// Flip returns the opposite strand.
func (d Direction) Flip() Direction {
	if d == Forward {
		return Reverse
	}
	return Forward
}

// ErrInvalidSequence is wrapped by construction errors when a sequence
// contains symbols outside the alphabet for its kind.
var ErrInvalidSequence = errors.New("invalid sequence")

// Complement map over IUPAC codes, both cases. Symbols that are their
// own complement (W, S, N) and the gap are left alone by Complement.
var complement [256]byte

func init() {
	pairs := "ACGTMKRYBDHV"
	comps := "TGCAKMYRVHDB"
	for i := 0; i < len(pairs); i++ {
		complement[pairs[i]] = comps[i]
		complement[pairs[i]+'a'-'A'] = comps[i] + 'a' - 'A'
	}
}

// Sequence is an immutable nucleotide sequence with a kind, a name and
// a strand direction. The zero value is not valid; use New or NewPrimer.
type Sequence struct {
	seq  string
	kind Kind
	name string
	dir  Direction
}

// New builds a Sequence of the given kind on the forward strand.
// Whitespace in raw is discarded. The name defaults to the sequence
// string itself. Symbols outside the kind's alphabet fail with an error
// wrapping ErrInvalidSequence that names each offender and its position.
func New(raw string, kind Kind, name string) (Sequence, error) {
	if kind.alphabet() == "" {
		return Sequence{}, fmt.Errorf("unknown sequence kind %d", kind)
	}
	seq := stripSpace(raw)
	if err := checkAlphabet(seq, kind); err != nil {
		return Sequence{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = seq
	}
	return Sequence{seq: seq, kind: kind, name: name, dir: Forward}, nil
}

func stripSpace(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		out = append(out, r)
	}
	return string(out)
}

func checkAlphabet(seq string, kind Kind) error {
	alpha := kind.alphabet()
	var bad []string
	for i := 0; i < len(seq); i++ {
		c := seq[i]
		u := c
		if u >= 'a' && u <= 'z' {
			u -= 'a' - 'A'
		}
		if strings.IndexByte(alpha, u) < 0 {
			bad = append(bad, fmt.Sprintf("%q at %d", c, i+1))
		}
	}
	if bad != nil {
		return fmt.Errorf("%w for %s DNA: %s; allowed: %s",
			ErrInvalidSequence, kind, strings.Join(bad, ", "), alpha)
	}
	return nil
}

// Seq returns the sequence string.
func (s Sequence) Seq() string { return s.seq }

// Kind returns the sequence kind.
func (s Sequence) Kind() Kind { return s.kind }

// Name returns the sequence name.
func (s Sequence) Name() string { return s.name }

// Direction returns the strand the sequence is written on.
func (s Sequence) Direction() Direction { return s.dir }

// Len returns the number of symbols.
func (s Sequence) Len() int { return len(s.seq) }

func (s Sequence) String() string {
	return fmt.Sprintf("%s [%s, %s]", s.name, s.kind, s.dir)
}

// Complement returns the symbol-wise complement on the opposite strand.
func (s Sequence) Complement() Sequence {
	b := []byte(s.seq)
	for i, c := range b {
		if m := complement[c]; m != 0 {
			b[i] = m
		}
	}
	return Sequence{seq: string(b), kind: s.kind, name: s.name, dir: s.dir.Flip()}
}

// Reverse returns the sequence in reversed symbol order on the opposite
// strand.
func (s Sequence) Reverse() Sequence {
	b := []byte(s.seq)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return Sequence{seq: string(b), kind: s.kind, name: s.name, dir: s.dir.Flip()}
}

// RevComp is Reverse followed by Complement; it stays on the same strand.
func (s Sequence) RevComp() Sequence { return s.Reverse().Complement() }

// Slice returns the subsequence [from, to), preserving kind, name and
// direction. Bounds are clamped to the sequence; an inverted range
// yields an empty sequence.
func (s Sequence) Slice(from, to int) Sequence {
	if from < 0 {
		from = 0
	}
	if to > len(s.seq) {
		to = len(s.seq)
	}
	if from > to {
		from = to
	}
	return Sequence{seq: s.seq[from:to], kind: s.kind, name: s.name, dir: s.dir}
}

// Concat joins two sequences. The result is always linear and keeps the
// receiver's direction; names are joined with "+". The symbols of both
// operands were validated at construction and are not re-checked, so a
// concatenation involving primer ambiguity codes is permitted.
func (s Sequence) Concat(other Sequence) Sequence {
	return Sequence{
		seq:  s.seq + other.seq,
		kind: KindLinear,
		name: s.name + "+" + other.name,
		dir:  s.dir,
	}
}

// Pad prepends i symbols to the 5' side: gaps for linear sequences, the
// sequence's own tail for circular ones. Padding a primer is an error.
func (s Sequence) Pad(i int) (Sequence, error) {
	var pad string
	switch s.kind {
	case KindLinear:
		pad = strings.Repeat(Gap, i)
	case KindCircular:
		if i > len(s.seq) {
			i = len(s.seq)
		}
		pad = s.seq[len(s.seq)-i:]
	default:
		return Sequence{}, fmt.Errorf("cannot pad a %s sequence", s.kind)
	}
	return Sequence{seq: pad + s.seq, kind: s.kind, name: s.name, dir: s.dir}, nil
}

// Rotate shifts a circular sequence by i bases. Linear sequences and
// primers cannot rotate.
func (s Sequence) Rotate(i int) (Sequence, error) {
	if s.kind != KindCircular {
		return Sequence{}, fmt.Errorf("cannot rotate a %s sequence", s.kind)
	}
	padded, err := s.Pad(i)
	if err != nil {
		return Sequence{}, err
	}
	return padded.Slice(0, len(s.seq)), nil
}

// Upper returns the sequence upper-cased.
func (s Sequence) Upper() Sequence {
	return Sequence{seq: strings.ToUpper(s.seq), kind: s.kind, name: s.name, dir: s.dir}
}

// Lower returns the sequence lower-cased.
func (s Sequence) Lower() Sequence {
	return Sequence{seq: strings.ToLower(s.seq), kind: s.kind, name: s.name, dir: s.dir}
}

// WithName returns the same sequence under a different name.
func (s Sequence) WithName(name string) Sequence {
	return Sequence{seq: s.seq, kind: s.kind, name: strings.TrimSpace(name), dir: s.dir}
}

// Equal reports value equality: symbols compared case-insensitively,
// plus kind and direction. Names are ignored.
func (s Sequence) Equal(other Sequence) bool {
	return s.kind == other.kind &&
		s.dir == other.dir &&
		strings.EqualFold(s.seq, other.seq)
}

// IsComplementOf reports whether other is the symbol-wise complement of
// this sequence on the opposite strand.
func (s Sequence) IsComplementOf(other Sequence) bool {
	return s.dir != other.dir &&
		strings.EqualFold(s.seq, other.Complement().seq)
}

// Key is a comparable identity for use in maps and sets. It folds case
// the same way Equal does.
type Key struct {
	Seq  string
	Kind Kind
	Dir  Direction
}

// Key returns the sequence's comparable identity.
func (s Sequence) Key() Key {
	return Key{Seq: strings.ToUpper(s.seq), Kind: s.kind, Dir: s.dir}
}

// Primer is a Sequence constrained to kind KindPrimer on the forward
// strand.
type Primer struct {
	Sequence
}

// NewPrimer builds a Primer from a raw string and an optional name.
func NewPrimer(raw, name string) (Primer, error) {
	s, err := New(raw, KindPrimer, name)
	if err != nil {
		return Primer{}, err
	}
	if s.Len() == 0 {
		return Primer{}, fmt.Errorf("%w: empty primer", ErrInvalidSequence)
	}
	return Primer{Sequence: s}, nil
}
