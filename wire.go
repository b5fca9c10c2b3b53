package idpf

import (
	"encoding/binary"
	"fmt"

	"github.com/poplar-idpf/idpf/field"
	"github.com/poplar-idpf/idpf/seed"
)

// MarshalCorrectionWord encodes a single CorrectionWord in the fixed
// layout spec §6 mandates: 16 bytes of seed correction, 1 byte of
// packed control-bit corrections (bit 0 = b[0], bit 1 = b[1], bits 2-7
// zero), followed by the field element's canonical serialization.
func MarshalCorrectionWord(cw CorrectionWord) []byte {
	out := make([]byte, seed.Size+1+len(cw.W.Bytes()))
	copy(out, cw.S.Bytes())

	var packed byte
	if cw.B[0].Bool() {
		packed |= 1
	}
	if cw.B[1].Bool() {
		packed |= 2
	}
	out[seed.Size] = packed

	copy(out[seed.Size+1:], cw.W.Bytes())
	return out
}

// UnmarshalCorrectionWord decodes a single CorrectionWord previously
// produced by MarshalCorrectionWord. f must be the same field Gen and
// Eval were configured with.
func UnmarshalCorrectionWord(data []byte, f field.Field) (CorrectionWord, error) {
	want := seed.Size + 1 + f.Size()
	if len(data) != want {
		return CorrectionWord{}, &DomainError{
			Op:     "unmarshal correction word",
			Reason: fmt.Sprintf("expected %d bytes, got %d", want, len(data)),
		}
	}

	var s Seed
	copy(s[:], data[:seed.Size])

	packed := data[seed.Size]
	if packed&^3 != 0 {
		return CorrectionWord{}, &DomainError{
			Op:     "unmarshal correction word",
			Reason: "reserved bits 2-7 of the packed control-bit byte must be zero",
		}
	}
	b0 := seed.BitFromBool(packed&1 != 0)
	b1 := seed.BitFromBool(packed&2 != 0)

	w, err := f.FromCanonicalBytes(data[seed.Size+1:])
	if err != nil {
		return CorrectionWord{}, &DomainError{Op: "unmarshal correction word", Reason: err.Error()}
	}

	return CorrectionWord{S: s, B: [2]Bit{b0, b1}, W: w}, nil
}

// MarshalTape encodes the full L-length correction-word tape Gen
// produces, length-prefixed by a 4-byte big-endian count of entries, so
// a reader can validate it against an expected prefix depth before
// decoding (spec §6: "the tape is ... length-prefixed by the host").
func MarshalTape(cws []CorrectionWord) []byte {
	out := make([]byte, 4)
	binary.BigEndian.PutUint32(out, uint32(len(cws)))
	for _, cw := range cws {
		out = append(out, MarshalCorrectionWord(cw)...)
	}
	return out
}

// UnmarshalTape decodes a tape previously produced by MarshalTape.
func UnmarshalTape(data []byte, f field.Field) ([]CorrectionWord, error) {
	if len(data) < 4 {
		return nil, &DomainError{Op: "unmarshal tape", Reason: "tape is shorter than its length prefix"}
	}
	count := binary.BigEndian.Uint32(data[:4])
	data = data[4:]

	entrySize := seed.Size + 1 + f.Size()
	want := int(count) * entrySize
	if len(data) != want {
		return nil, &DomainError{
			Op:     "unmarshal tape",
			Reason: fmt.Sprintf("expected %d bytes of correction words for %d entries, got %d", want, count, len(data)),
		}
	}

	cws := make([]CorrectionWord, count)
	for i := range cws {
		entry := data[i*entrySize : (i+1)*entrySize]
		cw, err := UnmarshalCorrectionWord(entry, f)
		if err != nil {
			return nil, err
		}
		cws[i] = cw
	}
	return cws, nil
}
