// Package field64 implements the VDAF Field64 finite field, integers
// modulo p = 2^64 - 2^32 + 1, used by the concrete test scenarios in the
// IDPF correctness properties.
//
// No library in the retrieval pack implements this specific prime; the
// arithmetic here is built directly on math/bits, which is the standard
// library's sanctioned home for carry/borrow-aware 64-bit arithmetic.
package field64

import (
	"encoding/binary"
	"math/bits"

	"github.com/poplar-idpf/idpf/field"
)

// Modulus is 2^64 - 2^32 + 1, the Field64 prime.
const Modulus uint64 = 18446744069414584321

// Element is a Field64 element, always held in [0, Modulus).
type Element uint64

// Field is the field.Field implementation for Field64.
type Field struct{}

// New returns the Field64 field.Field.
func New() Field {
	return Field{}
}

// Zero returns the Field64 additive identity.
func (Field) Zero() field.Element {
	return Element(0)
}

// Size is 8: Field64 elements serialize as 8 little-endian bytes.
func (Field) Size() int {
	return 8
}

// FromUniformBytes decodes 8 little-endian bytes as a candidate residue,
// rejecting values at or above Modulus.
func (f Field) FromUniformBytes(b []byte) (field.Element, error) {
	if len(b) != f.Size() {
		return nil, field.ErrOutOfRange
	}
	v := binary.LittleEndian.Uint64(b)
	if v >= Modulus {
		return nil, field.ErrOutOfRange
	}
	return Element(v), nil
}

// FromCanonicalBytes decodes 8 little-endian bytes produced by
// Element.Bytes.
func (f Field) FromCanonicalBytes(b []byte) (field.Element, error) {
	return f.FromUniformBytes(b)
}

// twoPow64ModP is 2^64 mod Modulus: since Modulus = 2^64 - 2^32 + 1,
// 2^64 ≡ 2^32 - 1 (mod Modulus).
const twoPow64ModP uint64 = 1<<32 - 1

// Add returns e + other mod Modulus.
func (e Element) Add(other field.Element) field.Element {
	o := other.(Element)
	sum, carry := bits.Add64(uint64(e), uint64(o), 0)
	if carry != 0 {
		sum += twoPow64ModP
	}
	if sum >= Modulus {
		sum -= Modulus
	}
	return Element(sum)
}

// Sub returns e - other mod Modulus.
func (e Element) Sub(other field.Element) field.Element {
	o := other.(Element)
	diff, borrow := bits.Sub64(uint64(e), uint64(o), 0)
	if borrow != 0 {
		diff -= twoPow64ModP
	}
	return Element(diff)
}

// Neg returns -e mod Modulus.
func (e Element) Neg() field.Element {
	if e == 0 {
		return Element(0)
	}
	return Element(Modulus - uint64(e))
}

// IsZero reports whether e is the additive identity.
func (e Element) IsZero() bool {
	return e == 0
}

// Bytes returns e's canonical 8-byte little-endian encoding.
func (e Element) Bytes() []byte {
	out := make([]byte, 8)
	binary.LittleEndian.PutUint64(out, uint64(e))
	return out
}

// Uint64 returns the element's residue as a uint64, for tests and callers
// that work directly with Field64's concrete representation.
func (e Element) Uint64() uint64 {
	return uint64(e)
}

// FromUint64 wraps a raw uint64, reducing it modulo Modulus.
func FromUint64(v uint64) Element {
	if v >= Modulus {
		v -= Modulus
	}
	return Element(v)
}
