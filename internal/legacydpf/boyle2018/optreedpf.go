// Package optreedpf provides an optimized tree-based Distributed Point Function implementation.
// It is based on Figure 1 (Gen, Eval) & 3 (Convert) from "Function Secret Sharing: Improvements and Extensions"
// by Elette Boyle, Niv Gilboa, and Yuval Ishai, originally published at CCS '16.
// For this implementation the revised version of the paper from 2018 was used.
// Link: https://eprint.iacr.org/2018/707.pdf
//
// This is the second classical draft: it keeps the 2015 draft's leaf-only
// payload but replaces plain modular-integer arithmetic with a real
// prime-order group (the secp256k1 base field), which is what the
// incremental idpf package generalizes into an arbitrary field.
package optreedpf

import (
	"bytes"
	"encoding/gob"
	"errors"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	secp256k1fp "github.com/consensys/gnark-crypto/ecc/secp256k1/fp"

	"github.com/poplar-idpf/idpf/internal/legacydpf"
)

// Key is a concrete implementation of a DPF key for this tree-based DPF.
type Key struct {
	ID uint8                  // ID identifies the party the key belongs to.
	S  []byte                 // S is the initial seed.
	CW map[int]CorrectionWord // CW includes the correction words.
}

// Serialize serializes the Key into a byte slice for storage or transmission.
func (k *Key) Serialize() ([]byte, error) {
	var buffer bytes.Buffer
	if err := gob.NewEncoder(&buffer).Encode(k); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// Deserialize takes a byte slice and populates the Key with the serialized data.
func (k *Key) Deserialize(data []byte) error {
	return gob.NewDecoder(bytes.NewBuffer(data)).Decode(k)
}

// CorrectionWord represents a correction word for a specific level in the DPF Tree.
type CorrectionWord struct {
	S      []byte
	Tl, Tr bool
}

// OpTreeDPF implements the 2018 optimized tree-based DPF over secp256k1's base field.
type OpTreeDPF struct {
	Lambda          int      // Lambda is the security parameter, in bits.
	PrgOutputLength int      // PrgOutputLength sets how many bytes the PRG used in the TreeDPF returns.
	BetaMax         *big.Int // BetaMax is the maximum value of the non-zero element.
}

// InitFactory initializes a new OpTreeDPF structure with the given security parameter lambda.
// It returns an error if lambda is not one of the allowed values (128, 192, 256).
func InitFactory(lambda int) (*OpTreeDPF, error) {
	var curve ecc.ID
	switch lambda {
	case 128, 192, 256:
		curve = ecc.SECP256K1
	default:
		return nil, errors.New("lambda must be 128, 192, or 256")
	}

	return &OpTreeDPF{
		Lambda:          lambda,
		PrgOutputLength: 2 * (lambda/8 + 1),
		BetaMax:         new(big.Int).Sub(curve.BaseField(), big.NewInt(1)),
	}, nil
}

const (
	alice = 0
	bob   = 1
	left  = 0
	right = 1
)

// Gen generates two DPF keys based on a given special point and non-zero element.
func (d *OpTreeDPF) Gen(specialPointX *big.Int, nonZeroElementY *big.Int) (*Key, *Key, error) {
	n := d.Lambda
	if specialPointX.BitLen() > d.Lambda {
		return nil, nil, errors.New("the special point is too large. It must be within [0, 2^Lambda - 1]")
	}

	beta := nonZeroElementY
	if beta.Cmp(d.BetaMax) == 1 {
		return nil, nil, errors.New("the non-zero element is too large for the group order used")
	}

	alpha, err := legacydpf.ExtendBigIntToBitLength(specialPointX, d.Lambda)
	if err != nil {
		return nil, nil, err
	}

	seedLength := d.Lambda / 8

	CW := make(map[int]CorrectionWord, n+1)
	root := [2][]byte{legacydpf.RandomSeed(seedLength), legacydpf.RandomSeed(seedLength)}
	s := [2][]byte{root[alice], root[bob]}
	t := [2]bool{false, true}

	for i := 0; i < n; i++ {
		var sTmp [2][2][]byte
		var tTmp [2][2]bool
		for party := 0; party < 2; party++ {
			out := legacydpf.PRG(s[party], d.PrgOutputLength)
			sTmp[party][left], tTmp[party][left], sTmp[party][right], tTmp[party][right], err = splitPRGOutput(out, d.Lambda)
			if err != nil {
				return nil, nil, err
			}
		}

		alphaBool := alpha[i] != 0
		keep, lose := left, right
		if alphaBool {
			keep, lose = right, left
		}

		sCW := legacydpf.XORBytes(sTmp[alice][lose], sTmp[bob][lose])
		tCW := [2]bool{
			tTmp[alice][left] != tTmp[bob][left] != alphaBool != true,
			tTmp[alice][right] != tTmp[bob][right] != alphaBool,
		}

		CW[i] = CorrectionWord{S: sCW, Tl: tCW[left], Tr: tCW[right]}

		for party := 0; party < 2; party++ {
			if t[party] {
				s[party] = legacydpf.XORBytes(sTmp[party][keep], sCW)
				t[party] = tTmp[party][keep] != tCW[keep]
			} else {
				s[party] = sTmp[party][keep]
				t[party] = tTmp[party][keep]
			}
		}
	}

	finalSeedAlice := new(big.Int).SetBytes(s[alice])
	finalSeedBob := new(big.Int).SetBytes(s[bob])
	res, err := d.genGroupCalc(finalSeedAlice, finalSeedBob, beta, t[bob])
	if err != nil {
		return nil, nil, err
	}
	CW[n] = CorrectionWord{S: res}

	return &Key{ID: alice, S: root[alice], CW: CW}, &Key{ID: bob, S: root[bob], CW: CW}, nil
}

// Eval evaluates a DPF key at a given point x and returns the result.
func (d *OpTreeDPF) Eval(key *Key, x *big.Int) (*big.Int, error) {
	if key.ID > 1 {
		return nil, errors.New("the given key is invalid as its ID can only be 0 or 1")
	}

	n := d.Lambda
	if x.BitLen() > d.Lambda {
		return nil, errors.New("the given point is too large. It must be within [0, 2^Lambda - 1]")
	}

	a, err := legacydpf.ExtendBigIntToBitLength(x, n)
	if err != nil {
		return nil, err
	}

	s := key.S
	t := key.ID != 0
	for i := 0; i < n; i++ {
		tau := legacydpf.PRG(s, d.PrgOutputLength)
		if t {
			cw := key.CW[i]
			appended := append(append([]byte{}, cw.S...), boolToByte(cw.Tl))
			appended = append(append(appended, cw.S...), boolToByte(cw.Tr))
			if len(appended) != len(tau) {
				return nil, errors.New("length of appended slices does not match length of tau")
			}
			tau = legacydpf.XORBytes(tau, appended)
		}

		sl, tl, sr, tr, err := splitPRGOutput(tau, d.Lambda)
		if err != nil {
			return nil, err
		}

		if a[i] == 0 {
			s, t = sl, tl
		} else {
			s, t = sr, tr
		}
	}

	finalSeed := new(big.Int).SetBytes(s)
	return d.evalGroupCalc(finalSeed, key.CW[n].S, key.ID, t)
}

// CombineResults combines the results of two partial evaluations via finite-field addition.
func (d *OpTreeDPF) CombineResults(y1, y2 *big.Int) *big.Int {
	y1C := new(secp256k1fp.Element).SetBigInt(y1)
	y2C := new(secp256k1fp.Element).SetBigInt(y2)
	res := new(secp256k1fp.Element).Add(y1C, y2C)
	resBytes := res.Bytes()
	return new(big.Int).SetBytes(resBytes[:])
}

// FullEval evaluates the DPF key at every leaf of the tree, splitting work
// across goroutines every few levels.
func (d *OpTreeDPF) FullEval(key *Key) ([]*big.Int, error) {
	if key.ID > 1 {
		return nil, errors.New("the given key is invalid as its ID can only be 0 or 1")
	}
	return d.traverse(key.S, key.ID != 0, key.CW, d.Lambda, key.ID)
}

const threadDepthInterval = 10

func (d *OpTreeDPF) traverse(s []byte, t bool, CW map[int]CorrectionWord, levelsRemaining int, partyID uint8) ([]*big.Int, error) {
	if levelsRemaining == 0 {
		finalSeed := new(big.Int).SetBytes(s)
		partialResult, err := d.evalGroupCalc(finalSeed, CW[d.Lambda].S, partyID, t)
		if err != nil {
			return nil, err
		}
		return []*big.Int{partialResult}, nil
	}

	i := d.Lambda - levelsRemaining
	cw := CW[i]
	tau := legacydpf.PRG(s, d.PrgOutputLength)
	if t {
		appended := append(append([]byte{}, cw.S...), boolToByte(cw.Tl))
		appended = append(append(appended, cw.S...), boolToByte(cw.Tr))
		if len(appended) != len(tau) {
			return nil, errors.New("length of appended slices does not match length of tau")
		}
		tau = legacydpf.XORBytes(tau, appended)
	}

	sl, tl, sr, tr, err := splitPRGOutput(tau, d.Lambda)
	if err != nil {
		return nil, err
	}

	var left, right []*big.Int
	if levelsRemaining%threadDepthInterval == 0 {
		type result struct {
			values []*big.Int
			err    error
		}
		leftCh := make(chan result, 1)
		rightCh := make(chan result, 1)
		go func() {
			v, e := d.traverse(sl, tl, CW, levelsRemaining-1, partyID)
			leftCh <- result{v, e}
		}()
		go func() {
			v, e := d.traverse(sr, tr, CW, levelsRemaining-1, partyID)
			rightCh <- result{v, e}
		}()
		lr, rr := <-leftCh, <-rightCh
		if lr.err != nil {
			return nil, lr.err
		}
		if rr.err != nil {
			return nil, rr.err
		}
		left, right = lr.values, rr.values
	} else {
		left, err = d.traverse(sl, tl, CW, levelsRemaining-1, partyID)
		if err != nil {
			return nil, err
		}
		right, err = d.traverse(sr, tr, CW, levelsRemaining-1, partyID)
		if err != nil {
			return nil, err
		}
	}

	return append(left, right...), nil
}

// genGroupCalc calculates the group element representation of the final correction word.
func (d *OpTreeDPF) genGroupCalc(finalSeedAlice, finalSeedBob, beta *big.Int, t bool) ([]byte, error) {
	finalSeedAliceC, err := d.convert(finalSeedAlice)
	if err != nil {
		return nil, err
	}
	finalSeedBobC, err := d.convert(finalSeedBob)
	if err != nil {
		return nil, err
	}

	betaC := new(secp256k1fp.Element).SetBigInt(beta)
	finalSeedAliceCNeg := new(secp256k1fp.Element).Neg(finalSeedAliceC)
	sumBeta := new(secp256k1fp.Element).Add(betaC, finalSeedAliceCNeg)
	sum := new(secp256k1fp.Element).Add(sumBeta, finalSeedBobC)

	res := new(secp256k1fp.Element).Set(sum)
	if t {
		res.Neg(res)
	}

	resBytes := res.Bytes()
	return resBytes[:], nil
}

// evalGroupCalc calculates a partial result from the final seed.
func (d *OpTreeDPF) evalGroupCalc(finalSeed *big.Int, cw []byte, id uint8, t bool) (*big.Int, error) {
	finalSeedC, err := d.convert(finalSeed)
	if err != nil {
		return nil, err
	}
	cwC := new(secp256k1fp.Element).SetBytes(cw)
	res := new(secp256k1fp.Element).Set(finalSeedC)
	if t {
		res.Add(finalSeedC, cwC)
	}
	if id == 1 {
		res.Neg(res)
	}

	resBytes := res.Bytes()
	return new(big.Int).SetBytes(resBytes[:]), nil
}

// convert converts a given big.Int to a group element.
func (d *OpTreeDPF) convert(input *big.Int) (*secp256k1fp.Element, error) {
	inputExtended, err := legacydpf.ExtendBigIntToBitLength(input, d.Lambda)
	if err != nil {
		return nil, err
	}
	inputExBytes := convertBitArrayToBytes(inputExtended)

	prgOutput := legacydpf.PRG(inputExBytes, d.PrgOutputLength)
	prgOutputInt := new(big.Int).SetBytes(prgOutput)

	element := new(secp256k1fp.Element)
	element.SetBigInt(prgOutputInt)
	return element, nil
}

func convertBitArrayToBytes(bits []uint) []byte {
	out := make([]byte, (len(bits)+7)/8)
	for i, b := range bits {
		if b != 0 {
			out[i/8] |= 1 << uint(7-i%8)
		}
	}
	return out
}

// splitPRGOutput splits the output of the PRG into two seeds and two control bits.
func splitPRGOutput(prgOutput []byte, lambda int) ([]byte, bool, []byte, bool, error) {
	lambdaBytes := lambda / 8
	if len(prgOutput) < 2*(lambdaBytes+1) {
		return nil, false, nil, false, errors.New("insufficient length of PRG output")
	}

	sL := prgOutput[:lambdaBytes]
	tL := (prgOutput[lambdaBytes] & 1) != 0
	sR := prgOutput[lambdaBytes+1 : 2*lambdaBytes+1]
	tR := (prgOutput[2*(lambdaBytes)+1] & 1) != 0

	return sL, tL, sR, tR, nil
}

func boolToByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
