package prg

import (
	"golang.org/x/crypto/sha3"

	"github.com/poplar-idpf/idpf/field"
	"github.com/poplar-idpf/idpf/seed"
)

var (
	xofExtendLeftTag  = []byte{0x01}
	xofExtendRightTag = []byte{0x02}
	xofConvertTag     = []byte{0x03}
)

// XOFPRG is the fixed-key XOF construction from spec 4.1's second
// option: a SHAKE128 extendable-output function absorbing a public
// domain-separation string plus a per-call tag before squeezing, so
// extend and convert (and extend's own two children) never share an
// absorbed input.
type XOFPRG struct {
	domainString []byte
	f            field.Field
}

// NewXOFPRG returns a fixed-key XOF PRG. domainString is an arbitrary
// session-specific tag (spec 4.1/9's "coolguy" placeholder, made
// configurable): Gen and Eval must agree on it.
func NewXOFPRG(domainString []byte, f field.Field) *XOFPRG {
	return &XOFPRG{domainString: domainString, f: f}
}

func (p *XOFPRG) squeeze(s seed.Seed, tag []byte, out []byte) {
	h := sha3.NewShake128()
	_, _ = h.Write(p.domainString)
	_, _ = h.Write(tag)
	_, _ = h.Write(s[:])
	_, _ = h.Read(out)
}

// Extend squeezes two independently tagged outputs, one per child.
func (p *XOFPRG) Extend(s seed.Seed) seed.ExtendedSeed {
	var leftOut, rightOut [seed.Size]byte
	p.squeeze(s, xofExtendLeftTag, leftOut[:])
	p.squeeze(s, xofExtendRightTag, rightOut[:])

	return seed.ExtendedSeed{
		Left:  seed.FromPRGOutput(leftOut),
		Right: seed.FromPRGOutput(rightOut),
	}
}

// Convert squeezes a single tagged block long enough to cover several
// rejection-sampling attempts, so a rejected draw moves on to fresh
// output from the same XOF call rather than re-absorbing the seed.
func (p *XOFPRG) Convert(s seed.Seed) (field.Element, error) {
	size := p.f.Size()
	const maxAttempts = 64
	buf := make([]byte, size*maxAttempts)
	p.squeeze(s, xofConvertTag, buf)

	for i := 0; i < maxAttempts; i++ {
		chunk := buf[i*size : (i+1)*size]
		if e, err := p.f.FromUniformBytes(chunk); err == nil {
			return e, nil
		}
	}
	return nil, field.ErrOutOfRange
}
