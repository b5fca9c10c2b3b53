package idpf

import (
	"crypto/rand"
	"io"

	"github.com/poplar-idpf/idpf/field"
	"github.com/poplar-idpf/idpf/field/field64"
	"github.com/poplar-idpf/idpf/prg"
)

// config holds the knobs spec §6 recognizes, filled in by New's defaults
// and any Options passed alongside the fixed key.
type config struct {
	field        field.Field
	domainString []byte
	rand         io.Reader
	backend      backendKind
}

type backendKind int

const (
	backendAES backendKind = iota
	backendXOF
)

func defaultConfig() config {
	return config{
		field:        field64.New(),
		domainString: []byte("idpf"),
		rand:         rand.Reader,
		backend:      backendAES,
	}
}

// Option configures an IDPF at construction time, in the functional-options
// style used throughout the retrieval pack's configurable constructors.
type Option func(*config)

// WithField selects the finite field payloads are drawn from. The
// default is field64 (VDAF's Field64, mod 2^64 - 2^32 + 1).
func WithField(f field.Field) Option {
	return func(c *config) {
		c.field = f
	}
}

// WithDomainString sets the XOF domain-separation string used when the
// PRG backend is the fixed-key XOF (spec §6, §9). Gen and Eval must
// agree on it. Ignored when the backend is fixed-key AES.
func WithDomainString(domainString []byte) Option {
	return func(c *config) {
		c.domainString = append([]byte(nil), domainString...)
	}
}

// WithRand overrides the random source Gen draws k0, k1 from. The
// default is crypto/rand.Reader.
func WithRand(r io.Reader) Option {
	return func(c *config) {
		c.rand = r
	}
}

// WithXOFBackend selects the fixed-key XOF PRG construction (spec
// §4.1's second option) instead of the default fixed-key AES-128
// construction. This backend derives its output from the domain string
// set by WithDomainString and the seed only; the fixedKey passed to New
// is not used by it.
func WithXOFBackend() Option {
	return func(c *config) {
		c.backend = backendXOF
	}
}

func (c config) buildPRG(fixedKey [16]byte) (prg.PRG, error) {
	switch c.backend {
	case backendXOF:
		return prg.NewXOFPRG(c.domainString, c.field), nil
	default:
		return prg.NewAESPRG(fixedKey, c.field)
	}
}
