// Package aggregate fans many clients' IDPF keys out over a shared
// prefix and sums one server's shares, the minimal piece of the
// surrounding heavy-hitters aggregation protocol spec.md names as
// motivation without detailing (its own out-of-scope "surrounding
// telemetry aggregation protocol").
package aggregate

import (
	"github.com/poplar-idpf/idpf"
	"github.com/poplar-idpf/idpf/field"
)

// ClientKey is one server's share of a single client's IDPF key: the
// public correction-word tape (identical at both servers) plus that
// server's private root seed.
type ClientKey struct {
	CorrectionWords []idpf.CorrectionWord
	Seed            idpf.Seed
}

// Discard zeroizes the key's root seed once the server no longer needs
// it, per spec §5's "k0 and k1 ... must be destroyed or zeroized on
// drop where the host environment permits".
func (k *ClientKey) Discard() {
	k.Seed.Zeroize()
}

// Server aggregates many clients' shares at shared prefixes using one
// configured IDPF instance (fixed key, field, and PRG backend shared by
// every key it evaluates) and one server identity.
type Server struct {
	idpf *idpf.IDPF
	id   idpf.Bit
}

// NewServer returns an aggregator bound to one IDPF instance and one
// server identity (false for server 0, true for server 1). Both
// servers' aggregators must be constructed from IDPF instances sharing
// the same fixed key and field as the Gen call that produced the keys.
func NewServer(d *idpf.IDPF, id idpf.Bit) *Server {
	return &Server{idpf: d, id: id}
}

// EvalSum evaluates every client key at prefix and returns the additive
// sum of this server's shares. Clients whose α is not prefixed by
// prefix contribute 0 to the sum (the whole point of the on-path/
// off-path correctness laws): the caller never learns which.
func (s *Server) EvalSum(keys []ClientKey, prefix []idpf.Bit) (field.Element, error) {
	if len(keys) == 0 {
		return nil, &idpf.DomainError{Op: "aggregate eval sum", Reason: "no client keys supplied"}
	}

	_, sum, err := s.idpf.Eval(keys[0].CorrectionWords, keys[0].Seed, s.id, prefix)
	if err != nil {
		return nil, err
	}

	for _, k := range keys[1:] {
		_, w, err := s.idpf.Eval(k.CorrectionWords, k.Seed, s.id, prefix)
		if err != nil {
			return nil, err
		}
		sum = sum.Add(w)
	}
	return sum, nil
}

// EvalSumAtPrefixes evaluates every client key at each of the given
// prefixes — a heavy-hitter candidate frontier, one level of the
// prefix tree at a time — and returns the sums in the same order.
func (s *Server) EvalSumAtPrefixes(keys []ClientKey, prefixes [][]idpf.Bit) ([]field.Element, error) {
	sums := make([]field.Element, len(prefixes))
	for i, p := range prefixes {
		sum, err := s.EvalSum(keys, p)
		if err != nil {
			return nil, err
		}
		sums[i] = sum
	}
	return sums, nil
}
