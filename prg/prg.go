// Package prg declares the PRG interface an IDPF is parameterized over:
// extend (seed → two child seeds/control bits) and convert (seed →
// field element), kept independent of each other by the concrete
// backend's domain separation.
package prg

import (
	"github.com/poplar-idpf/idpf/field"
	"github.com/poplar-idpf/idpf/seed"
)

// PRG is a deterministic, fixed-key pseudo-random generator supplying
// both operations an IDPF's recursion needs from a single seed.
type PRG interface {
	// Extend produces 32 bytes of pseudo-random output deterministically
	// from s, split into a left and right Child.
	Extend(s seed.Seed) seed.ExtendedSeed
	// Convert produces a uniformly distributed field element
	// deterministically from s, independent of Extend's output on the
	// same s.
	Convert(s seed.Seed) (field.Element, error)
}
