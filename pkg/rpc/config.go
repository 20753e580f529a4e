package rpc

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/Muvon/bitclout-node-api/pkg/keys"
)

// DefaultMinFeeRateNanosPerKB is the fee rate sent with every build call
// unless configured otherwise.
const DefaultMinFeeRateNanosPerKB = 1000

// Config describes the nodes to talk to and the key to act with. URL is
// the fallback for ReadURL and WriteURL. SeedPhrase takes precedence over
// PrivateKey; with neither, the client is read-only.
type Config struct {
	URL      string `env:"BITCLOUT_URL" validate:"omitempty,url"`
	ReadURL  string `env:"BITCLOUT_READ_URL" validate:"omitempty,url"`
	WriteURL string `env:"BITCLOUT_WRITE_URL" validate:"omitempty,url"`

	SeedPhrase      string       `env:"BITCLOUT_SEED_PHRASE"`
	PrivateKey      string       `env:"BITCLOUT_PRIVATE_KEY" validate:"omitempty,hexadecimal"`
	PublicKey       string       `env:"BITCLOUT_PUBLIC_KEY"`
	DerivationIndex uint32       `env:"BITCLOUT_DERIVATION_INDEX" env-default:"0"`
	Network         keys.Network `env:"BITCLOUT_NETWORK" env-default:"mainnet"`

	// Zero means DefaultMinFeeRateNanosPerKB.
	MinFeeRateNanosPerKB uint64 `env:"BITCLOUT_MIN_FEE_RATE" env-default:"1000"`

	// Comma separated proxy URLs, each optionally prefixed with "read|" or "write|".
	Proxies string `env:"BITCLOUT_PROXIES"`
	// "||" separated User-Agent strings, with the same optional prefixes.
	UserAgents string `env:"BITCLOUT_USER_AGENTS"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the struct tags and that at least one URL is resolvable.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.readURL() == "" || c.writeURL() == "" {
		return fmt.Errorf("%w: node URL is not set", ErrInvalidConfig)
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.MinFeeRateNanosPerKB == 0 {
		c.MinFeeRateNanosPerKB = DefaultMinFeeRateNanosPerKB
	}
	return c
}

func (c Config) readURL() string {
	if c.ReadURL != "" {
		return c.ReadURL
	}
	return c.URL
}

func (c Config) writeURL() string {
	if c.WriteURL != "" {
		return c.WriteURL
	}
	return c.URL
}

// Path returns the derivation path selected by DerivationIndex.
func (c Config) Path() keys.Path {
	return keys.DefaultPath.WithIndex(c.DerivationIndex)
}
