// Package idpf implements an Incremental Distributed Point Function: a
// two-party primitive that secret-shares f(x) = β if x = α, else 0,
// over a binary prefix tree, so either share-holder can evaluate any
// prefix of α and obtain an additive share of that prefix's value.
package idpf

import (
	"io"

	"github.com/poplar-idpf/idpf/field"
	"github.com/poplar-idpf/idpf/prg"
	"github.com/poplar-idpf/idpf/seed"
)

// CorrectionWord is the per-level public data Gen emits: a seed
// correction, a pair of control-bit corrections, and a field-element
// weight correction (spec §3).
type CorrectionWord struct {
	S Seed
	B [2]Bit
	W field.Element
}

// Seed and Bit are re-exported so callers of this package do not need to
// import the seed package directly for the common case.
type (
	Seed = seed.Seed
	Bit  = seed.Bit
)

// IDPF is a configured Incremental Distributed Point Function instance:
// a PRG backend keyed with a fixed, public per-session nonce (or XOF
// domain string) and a payload field. An IDPF is immutable after New
// and safe for concurrent use by any number of Eval calls (spec §5).
type IDPF struct {
	prg   prg.PRG
	field field.Field
	rand  io.Reader
}

// New constructs an IDPF. fixedKey is a public, per-session 16-byte
// nonce; it MUST NOT be reused across distinct client sessions (spec
// §4.1, §6). Options configure the payload field, the PRG backend, the
// XOF domain string, and the random source Gen draws from.
func New(fixedKey [16]byte, opts ...Option) (*IDPF, error) {
	c := defaultConfig()
	for _, opt := range opts {
		opt(&c)
	}

	backend, err := c.buildPRG(fixedKey)
	if err != nil {
		return nil, err
	}

	return &IDPF{prg: backend, field: c.field, rand: c.rand}, nil
}

// Field returns the payload field this instance was configured with.
func (d *IDPF) Field() field.Field {
	return d.field
}

// Gen implements spec §4.2: it samples two root seeds, walks α
// bit-by-bit, and produces one correction word per level plus the two
// root seeds.
func (d *IDPF) Gen(alpha []Bit, beta field.Element) ([]CorrectionWord, [2]Seed, error) {
	if len(alpha) == 0 {
		return nil, [2]Seed{}, &DomainError{Op: "gen", Reason: errEmptyAlpha.Error()}
	}

	k0, err := seed.Random(d.rand)
	if err != nil {
		return nil, [2]Seed{}, &RandomnessError{Err: err}
	}
	k1, err := seed.Random(d.rand)
	if err != nil {
		return nil, [2]Seed{}, &RandomnessError{Err: err}
	}

	s0, s1 := k0, k1
	b0, b1 := seed.False, seed.True

	cws := make([]CorrectionWord, len(alpha))
	for level, alphaBit := range alpha {
		e0 := d.prg.Extend(s0)
		e1 := d.prg.Extend(s1)

		keep, lose := alphaBit, flipBit(alphaBit)

		cwSeed := e0.IntoSelected(lose).Seed.XOR(e1.IntoSelected(lose).Seed)
		cwBitLeft := seed.False.XOR(e0.Left.Bit).XOR(e1.Left.Bit).XOR(flipBit(alphaBit))
		cwBitRight := seed.False.XOR(e0.Right.Bit).XOR(e1.Right.Bit).XOR(alphaBit)

		if b0.Bool() {
			e0.CorrectWith(cwSeed, cwBitLeft, cwBitRight)
		}
		if b1.Bool() {
			e1.CorrectWith(cwSeed, cwBitLeft, cwBitRight)
		}

		selected0 := e0.IntoSelected(keep)
		selected1 := e1.IntoSelected(keep)
		s0, b0 = selected0.Seed, selected0.Bit
		s1, b1 = selected1.Seed, selected1.Bit

		convert0, err := d.prg.Convert(s0)
		if err != nil {
			return nil, [2]Seed{}, &DomainError{Op: "gen", Reason: err.Error()}
		}
		convert1, err := d.prg.Convert(s1)
		if err != nil {
			return nil, [2]Seed{}, &DomainError{Op: "gen", Reason: err.Error()}
		}

		w := beta.Sub(convert0).Add(convert1)
		if b1.Bool() {
			w = w.Neg()
		}

		cws[level] = CorrectionWord{S: cwSeed, B: [2]Bit{cwBitLeft, cwBitRight}, W: w}
	}

	return cws, [2]Seed{k0, k1}, nil
}

// Eval implements spec §4.3: given one root seed, a server identity, a
// correction-word tape, and a path prefix, it produces the per-level
// seed share and this server's additive payload share at the prefix.
func (d *IDPF) Eval(correctionWords []CorrectionWord, k Seed, id Bit, prefix []Bit) (Seed, field.Element, error) {
	if len(prefix) == 0 {
		return Seed{}, nil, &DomainError{Op: "eval", Reason: errEmptyPrefix.Error()}
	}
	if len(prefix) > len(correctionWords) {
		return Seed{}, nil, &DomainError{Op: "eval", Reason: errPrefixTooLong.Error()}
	}

	s, b := k, id
	for level, prefixBit := range prefix {
		e := d.prg.Extend(s)
		cw := correctionWords[level]
		if b.Bool() {
			e.CorrectWith(cw.S, cw.B[0], cw.B[1])
		}
		selected := e.IntoSelected(prefixBit)
		s, b = selected.Seed, selected.Bit
	}

	converted, err := d.prg.Convert(s)
	if err != nil {
		return Seed{}, nil, &DomainError{Op: "eval", Reason: err.Error()}
	}

	lastCW := correctionWords[len(prefix)-1]
	w := converted
	if b.Bool() {
		w = lastCW.W.Add(converted)
	}
	if id.Bool() {
		w = w.Neg()
	}

	return s, w, nil
}

func flipBit(b Bit) Bit {
	return b.XOR(seed.True)
}
