// Package treedpf provides a tree-based Distributed Point Function implementation.
// It is based on Algorithm 1 (Gen) & 2 (Eval) from "Function Secret Sharing"
// by Elette Boyle, Niv Gilboa, and Yuval Ishai, published in EUROCRYPT 2015.
// Link: https://link.springer.com/content/pdf/10.1007/978-3-662-46803-6_12.pdf
//
// This is the first of two classical, leaf-only-payload drafts kept for
// historical reference; it secret-shares beta as a plain integer modulo
// 2^Lambda rather than as an element of a prime-order group, which is what
// the later drafts in this module improve on.
package treedpf

import (
	"bytes"
	"encoding/gob"
	"errors"
	"math/big"

	"github.com/poplar-idpf/idpf/internal/legacydpf"
)

// Key is a concrete implementation of the Key interface for this DPF.
type Key struct {
	S     []byte            // S is the initial seed.
	T     bool              // T is the initial control bit.
	CW    map[int][2][]byte // CW[i] holds the seed correction and packed control-bit correction for level i.
	W     *big.Int          // W hides the partial result needed to recover the non-zero element at the leaf.
	Party uint8
}

// Serialize serializes the Key.
func (k *Key) Serialize() ([]byte, error) {
	var buffer bytes.Buffer
	if err := gob.NewEncoder(&buffer).Encode(k); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// Deserialize deserializes the Key.
func (k *Key) Deserialize(data []byte) error {
	return gob.NewDecoder(bytes.NewBuffer(data)).Decode(k)
}

// TreeDPF implements the classical (non-incremental) tree-based DPF.
type TreeDPF struct {
	Lambda          int // Lambda is the security parameter in bits.
	PrgOutputLength int // PrgOutputLength is how many bytes the PRG must emit per level: two seeds plus two packed control bits.
	modulus         *big.Int
}

// InitFactory constructs a TreeDPF for one of the standard security levels.
func InitFactory(lambda int) (*TreeDPF, error) {
	switch lambda {
	case 128, 192, 256:
	default:
		return nil, errors.New("lambda must be 128, 192, or 256")
	}

	return &TreeDPF{
		Lambda:          lambda,
		PrgOutputLength: 2*(lambda/8) + 1,
		modulus:         new(big.Int).Lsh(big.NewInt(1), uint(lambda)),
	}, nil
}

const (
	alice = 0
	bob   = 1
	left  = 0
	right = 1
)

// Gen generates two DPF keys for the point (specialPointX, nonZeroElementY).
func (d *TreeDPF) Gen(specialPointX *big.Int, nonZeroElementY *big.Int) (*Key, *Key, error) {
	alpha, err := legacydpf.ExtendBigIntToBitLength(specialPointX, d.Lambda)
	if err != nil {
		return nil, nil, err
	}

	root := [2][]byte{legacydpf.RandomSeed(d.Lambda / 8), legacydpf.RandomSeed(d.Lambda / 8)}
	s := [2][]byte{root[alice], root[bob]}
	t := [2]bool{false, true}
	cw := make(map[int][2][]byte, d.Lambda)

	for i := 0; i < d.Lambda; i++ {
		var sTmp [2][2][]byte
		var bTmp [2][2]bool
		for party := 0; party < 2; party++ {
			out := legacydpf.PRG(s[party], d.PrgOutputLength)
			sTmp[party][left], bTmp[party][left], sTmp[party][right], bTmp[party][right], err = splitPRGOutput(out, d.Lambda)
			if err != nil {
				return nil, nil, err
			}
		}

		keep, lose := left, right
		if alpha[i] != 0 {
			keep, lose = right, left
		}

		sCW := legacydpf.XORBytes(sTmp[alice][lose], sTmp[bob][lose])
		bCW := [2]bool{
			bTmp[alice][left] != bTmp[bob][left] != (alpha[i] != 0) != true,
			bTmp[alice][right] != bTmp[bob][right] != (alpha[i] != 0),
		}

		cw[i] = [2][]byte{sCW, packControlBits(bCW)}

		for party := 0; party < 2; party++ {
			if t[party] {
				s[party] = legacydpf.XORBytes(sTmp[party][keep], sCW)
				t[party] = bTmp[party][keep] != bCW[keep]
			} else {
				s[party] = sTmp[party][keep]
				t[party] = bTmp[party][keep]
			}
		}
	}

	finalAlice := new(big.Int).SetBytes(s[alice])
	finalBob := new(big.Int).SetBytes(s[bob])
	w := new(big.Int).Sub(nonZeroElementY, finalAlice)
	w.Add(w, finalBob)
	w.Mod(w, d.modulus)
	if t[bob] {
		w.Sub(d.modulus, w)
		w.Mod(w, d.modulus)
	}

	keyAlice := &Key{S: root[alice], T: false, CW: cw, W: w, Party: alice}
	keyBob := &Key{S: root[bob], T: true, CW: cw, W: w, Party: bob}
	return keyAlice, keyBob, nil
}

// Eval evaluates a DPF key at point x.
func (d *TreeDPF) Eval(key *Key, x *big.Int) (*big.Int, error) {
	xBits, err := legacydpf.ExtendBigIntToBitLength(x, d.Lambda)
	if err != nil {
		return nil, err
	}

	s := key.S
	t := key.T
	for i := 0; i < d.Lambda; i++ {
		out := legacydpf.PRG(s, d.PrgOutputLength)
		sL, bL, sR, bR, err := splitPRGOutput(out, d.Lambda)
		if err != nil {
			return nil, err
		}
		if t {
			cwS, cwB := key.CW[i][0], unpackControlBits(key.CW[i][1])
			sL = legacydpf.XORBytes(sL, cwS)
			sR = legacydpf.XORBytes(sR, cwS)
			bL = bL != cwB[left]
			bR = bR != cwB[right]
		}
		if xBits[i] == 0 {
			s, t = sL, bL
		} else {
			s, t = sR, bR
		}
	}

	result := new(big.Int).SetBytes(s)
	if t {
		result.Add(result, key.W)
	}
	result.Mod(result, d.modulus)
	if key.Party == bob {
		result.Sub(d.modulus, result)
		result.Mod(result, d.modulus)
	}
	return result, nil
}

// CombineResults sums two evaluation shares modulo 2^Lambda.
func (d *TreeDPF) CombineResults(y1, y2 *big.Int) *big.Int {
	result := new(big.Int).Add(y1, y2)
	result.Mod(result, d.modulus)
	return result
}

func packControlBits(b [2]bool) []byte {
	out := byte(0)
	if b[left] {
		out |= 1
	}
	if b[right] {
		out |= 2
	}
	return []byte{out}
}

func unpackControlBits(b []byte) [2]bool {
	return [2]bool{b[0]&1 != 0, b[0]&2 != 0}
}

func splitPRGOutput(out []byte, lambda int) (sL []byte, bL bool, sR []byte, bR bool, err error) {
	lambdaBytes := lambda / 8
	if len(out) < 2*lambdaBytes+1 {
		return nil, false, nil, false, errors.New("insufficient length of PRG output")
	}
	sL = out[:lambdaBytes]
	sR = out[lambdaBytes : 2*lambdaBytes]
	bL = out[2*lambdaBytes]&1 != 0
	bR = out[2*lambdaBytes]&2 != 0
	return sL, bL, sR, bR, nil
}
