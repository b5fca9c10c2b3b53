// Package secp256k1field wraps gnark-crypto's secp256k1 base field as a
// field.Field, the same group the teacher's 2018 draft (boyle2018) uses
// for its payload arithmetic.
package secp256k1field

import (
	"math/big"

	secp256k1fp "github.com/consensys/gnark-crypto/ecc/secp256k1/fp"

	"github.com/poplar-idpf/idpf/field"
)

// Element is a secp256k1 base field element.
type Element struct {
	inner secp256k1fp.Element
}

// Field is the field.Field implementation over secp256k1's base field.
type Field struct{}

// New returns the secp256k1 base field.
func New() Field {
	return Field{}
}

// Zero returns the additive identity.
func (Field) Zero() field.Element {
	return &Element{}
}

// Size is the canonical byte length of a secp256k1 base field element.
func (Field) Size() int {
	return secp256k1fp.Bytes
}

// FromUniformBytes rejects byte strings that, read as a big-endian
// integer, are equal to or greater than the field's modulus, so convert's draws stay uniform
// over the field rather than biased by Montgomery wraparound.
func (Field) FromUniformBytes(b []byte) (field.Element, error) {
	if len(b) != secp256k1fp.Bytes {
		return nil, field.ErrOutOfRange
	}
	v := new(big.Int).SetBytes(b)
	if v.Cmp(secp256k1fp.Modulus()) >= 0 {
		return nil, field.ErrOutOfRange
	}
	var e Element
	e.inner.SetBigInt(v)
	return &e, nil
}

// FromCanonicalBytes decodes an element previously produced by
// Element.Bytes.
func (f Field) FromCanonicalBytes(b []byte) (field.Element, error) {
	return f.FromUniformBytes(b)
}

// Add returns e + other.
func (e *Element) Add(other field.Element) field.Element {
	o := other.(*Element)
	var out Element
	out.inner.Add(&e.inner, &o.inner)
	return &out
}

// Sub returns e - other.
func (e *Element) Sub(other field.Element) field.Element {
	o := other.(*Element)
	var out Element
	out.inner.Sub(&e.inner, &o.inner)
	return &out
}

// Neg returns -e.
func (e *Element) Neg() field.Element {
	var out Element
	out.inner.Neg(&e.inner)
	return &out
}

// IsZero reports whether e is the field's additive identity.
func (e *Element) IsZero() bool {
	return e.inner.IsZero()
}

// Bytes returns e's canonical big-endian encoding.
func (e *Element) Bytes() []byte {
	b := e.inner.Bytes()
	out := make([]byte, len(b))
	copy(out, b[:])
	return out
}
