package prg

import (
	"crypto/aes"
	"crypto/cipher"

	"github.com/poplar-idpf/idpf/field"
	"github.com/poplar-idpf/idpf/seed"
)

const (
	extendLeftTweak  = 0x01
	extendRightTweak = 0x02
	convertTweak     = 0x01
)

// AESPRG is the fixed-key AES-128 construction from spec 4.1: a public
// 16-byte key shared by Gen and Eval, with extend and convert kept
// independent by XORing distinct tweak bytes into the seed before
// encryption, matching the teacher's own AES-keyed-by-seed idiom
// (dpf_utils.go's PRG) but keying the cipher with a fixed, public nonce
// instead of the secret seed.
type AESPRG struct {
	block cipher.Block
	f     field.Field
}

// NewAESPRG returns an AES-128 fixed-key PRG. fixedKey must be a public,
// per-session nonce: reusing it across client sessions breaks the
// circuit-collision resistance the fixed-key construction relies on.
func NewAESPRG(fixedKey [16]byte, f field.Field) (*AESPRG, error) {
	block, err := aes.NewCipher(fixedKey[:])
	if err != nil {
		return nil, err
	}
	return &AESPRG{block: block, f: f}, nil
}

func (p *AESPRG) encryptBlock(plaintext seed.Seed) [seed.Size]byte {
	var out [seed.Size]byte
	p.block.Encrypt(out[:], plaintext[:])
	return out
}

// Extend encrypts the seed twice under the fixed key, with byte 0 XORed
// with 0x01 for the left child and 0x02 for the right, so the two
// plaintexts are always distinct from each other and from convert's.
func (p *AESPRG) Extend(s seed.Seed) seed.ExtendedSeed {
	left := s
	left[0] ^= extendLeftTweak
	right := s
	right[0] ^= extendRightTweak

	return seed.ExtendedSeed{
		Left:  seed.FromPRGOutput(p.encryptBlock(left)),
		Right: seed.FromPRGOutput(p.encryptBlock(right)),
	}
}

// Convert encrypts the seed with byte 15 XORed with 0x01 under the fixed
// key, then expands that block into a keystream via AES-CTR for fields
// wider than 16 bytes. Rejection sampling continues drawing from the
// same keystream rather than restarting, until an in-range element is
// found.
func (p *AESPRG) Convert(s seed.Seed) (field.Element, error) {
	tweaked := s
	tweaked[15] ^= convertTweak

	stream := cipher.NewCTR(p.block, tweaked[:])
	size := p.f.Size()
	buf := make([]byte, size)

	const maxAttempts = 64
	for i := 0; i < maxAttempts; i++ {
		for j := range buf {
			buf[j] = 0
		}
		stream.XORKeyStream(buf, buf)
		if e, err := p.f.FromUniformBytes(buf); err == nil {
			return e, nil
		}
	}
	return nil, field.ErrOutOfRange
}
