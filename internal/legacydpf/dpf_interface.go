// Package legacydpf holds the classical, leaf-only-payload DPF constructions
// that predate the incremental design in the idpf package. They are kept as
// the historical drafts the final construction converges from, each still
// exercised by its own tests.
package legacydpf

import "math/big"

// Key is a concrete DPF key for one of the classical constructions below.
type Key interface{}

// DPF is the classical Gen/Eval interface: a point function over a
// big.Int domain whose payload is only secret-shared at the leaf.
type DPF interface {
	Gen(specialPointX *big.Int, nonZeroElementY *big.Int) (Key, Key, error)
	Eval(key Key, x *big.Int) (*big.Int, error)
}
