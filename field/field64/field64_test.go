package field64_test

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/poplar-idpf/idpf/field"
	"github.com/poplar-idpf/idpf/field/field64"
)

func TestZero(t *testing.T) {
	f := field64.New()
	assert.True(t, f.Zero().IsZero())
}

func TestAddSubRoundTrip(t *testing.T) {
	a := field64.FromUint64(1337)
	b := field64.FromUint64(42)

	sum := a.Add(b)
	back := sum.Sub(b)
	assert.Equal(t, a, back)
}

func TestAddWraps(t *testing.T) {
	a := field64.FromUint64(field64.Modulus - 1)
	b := field64.FromUint64(2)

	sum := a.Add(b).(field64.Element)
	assert.Equal(t, field64.FromUint64(1), sum)
}

func TestSubUnderflowWraps(t *testing.T) {
	a := field64.FromUint64(0)
	b := field64.FromUint64(1)

	diff := a.Sub(b).(field64.Element)
	assert.Equal(t, field64.FromUint64(field64.Modulus-1), diff)
}

func TestNegIsAdditiveInverse(t *testing.T) {
	a := field64.FromUint64(1337)
	zero := a.Add(a.Neg())
	assert.True(t, zero.IsZero())
}

func TestFromUniformBytesRejectsOutOfRange(t *testing.T) {
	f := field64.New()
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, field64.Modulus)
	_, err := f.FromUniformBytes(b)
	assert.ErrorIs(t, err, field.ErrOutOfRange)
}

func TestFromUniformBytesAcceptsInRange(t *testing.T) {
	f := field64.New()
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, 1337)
	e, err := f.FromUniformBytes(b)
	assert.Nil(t, err)
	assert.Equal(t, field64.FromUint64(1337), e)
}

func TestBytesRoundTrip(t *testing.T) {
	f := field64.New()
	e := field64.FromUint64(987654321)
	decoded, err := f.FromCanonicalBytes(e.Bytes())
	assert.Nil(t, err)
	assert.Equal(t, e, decoded)
}
