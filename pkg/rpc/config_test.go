package rpc

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Muvon/bitclout-node-api/pkg/keys"
)

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"single url", Config{URL: "https://node.example"}, false},
		{"split urls", Config{ReadURL: "https://r.example", WriteURL: "https://w.example"}, false},
		{"read only url", Config{ReadURL: "https://r.example"}, true},
		{"no url", Config{}, true},
		{"bad url", Config{URL: "node.example"}, true},
		{"hex private key", Config{URL: "https://node.example", PrivateKey: "0xabcdef"}, false},
		{"non hex private key", Config{URL: "https://node.example", PrivateKey: "seed words"}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg := Config{URL: "https://node.example", WriteURL: "https://w.example", DerivationIndex: 3}.withDefaults()
	assert.Equal(t, uint64(DefaultMinFeeRateNanosPerKB), cfg.MinFeeRateNanosPerKB)
	assert.Equal(t, "https://node.example", cfg.readURL())
	assert.Equal(t, "https://w.example", cfg.writeURL())
	assert.Equal(t, keys.DefaultPath.WithIndex(3), cfg.Path())

	cfg = Config{MinFeeRateNanosPerKB: 5}.withDefaults()
	assert.Equal(t, uint64(5), cfg.MinFeeRateNanosPerKB)
}
