package keys

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	abandonPhrase = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

	abandonPrivHex = "e284129cc0922579a535bbf4d1a3b25773090d28c909bc0fed73b5e0222cc372"
	abandonPubHex  = "03aaeb52dd7494c361049de67cc680e83ebcbbbdbeb13637d92cd845f70308af5e"
	abandonMainnet = "BC1YLiutYtrRGr5yYdMK91KYbhixJwg4JPA2f9xibPFr8pNMxmUsgxX"
	abandonTestnet = "tBCKY38a58NgwzuHXvdb3unQ72yhGBqETu6asdeLPdfBmHKPxrivKH"
)

func TestDerive_KnownVector(t *testing.T) {
	t.Parallel()

	km, err := Derive(abandonPhrase, DefaultPath, Mainnet)
	require.NoError(t, err)

	assert.Equal(t, abandonPrivHex, hex.EncodeToString(km.PrivateKey))
	assert.Equal(t, abandonPubHex, km.PublicKeyHex())
	assert.Len(t, km.PublicKey, 33)
	assert.Equal(t, abandonMainnet, km.Address)
	assert.True(t, strings.HasPrefix(km.Address, "BC1YL"))

	testnet, err := Derive(abandonPhrase, DefaultPath, Testnet)
	require.NoError(t, err)
	assert.Equal(t, km.PublicKey, testnet.PublicKey)
	assert.Equal(t, abandonTestnet, testnet.Address)
	assert.True(t, strings.HasPrefix(testnet.Address, "tBC"))
}

func TestDerive_Deterministic(t *testing.T) {
	t.Parallel()

	first, err := Derive(abandonPhrase, DefaultPath, Mainnet)
	require.NoError(t, err)
	second, err := Derive("  "+strings.ReplaceAll(abandonPhrase, " ", "\n ")+" ", DefaultPath, Mainnet)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	other, err := Derive(abandonPhrase, DefaultPath.WithIndex(1), Mainnet)
	require.NoError(t, err)
	assert.NotEqual(t, first.PublicKey, other.PublicKey)
	assert.Equal(t, uint32(0), DefaultPath.Index)
}

func TestDerive_InvalidPhrase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		phrase string
	}{
		{"empty", ""},
		{"unknown word", "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon bitclout"},
		{"bad checksum", strings.Repeat("abandon ", 11) + "abandon"},
		{"wrong length", "abandon abandon abandon"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := Derive(tc.phrase, DefaultPath, Mainnet)
			assert.ErrorIs(t, err, ErrInvalidSeedPhrase)
			assert.ErrorIs(t, ValidateSeedPhrase(tc.phrase), ErrInvalidSeedPhrase)
		})
	}

	assert.NoError(t, ValidateSeedPhrase(abandonPhrase))
}

func TestFromPrivateKeyHex(t *testing.T) {
	t.Parallel()

	km, err := FromPrivateKeyHex("0x"+abandonPrivHex, Mainnet)
	require.NoError(t, err)
	assert.Equal(t, abandonPubHex, km.PublicKeyHex())
	assert.Equal(t, abandonMainnet, km.Address)

	_, err = FromPrivateKeyHex("nothex", Mainnet)
	assert.ErrorIs(t, err, ErrInvalidPrivateKey)

	_, err = FromPrivateKeyHex(strings.Repeat("00", 32), Mainnet)
	assert.ErrorIs(t, err, ErrInvalidPrivateKey)
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	gen, err := Generate(Testnet)
	require.NoError(t, err)

	assert.Len(t, strings.Fields(gen.SeedPhrase), 24)
	assert.Len(t, gen.Seed, 64)
	assert.True(t, strings.HasPrefix(gen.Address, "tBC"))

	again, err := Derive(gen.SeedPhrase, DefaultPath, Testnet)
	require.NoError(t, err)
	assert.Equal(t, gen.KeyMaterial, again)
}

func TestPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "m/44'/0'/0'/0/0", DefaultPath.String())
	assert.Equal(t, "m/44'/0'/0'/0/7", DefaultPath.WithIndex(7).String())

	p, err := ParsePath("m/44'/0'/2'/1/9")
	require.NoError(t, err)
	assert.Equal(t, Path{Purpose: 44, CoinType: 0, Account: 2, Change: 1, Index: 9}, p)

	for _, bad := range []string{"", "m/44/0/0/0/0", "m/44'/0'/0'/0'/0", "x/44'/0'/0'/0/0", "m/44'/0'/0'/0"} {
		_, err := ParsePath(bad)
		assert.ErrorIs(t, err, ErrInvalidPath, bad)
	}
}

func TestNetwork(t *testing.T) {
	t.Parallel()

	n, err := ParseNetwork("TESTNET")
	require.NoError(t, err)
	assert.Equal(t, Testnet, n)

	n, err = ParseNetwork("")
	require.NoError(t, err)
	assert.Equal(t, Mainnet, n)

	_, err = ParseNetwork("regtest")
	assert.Error(t, err)

	var decoded Network
	require.NoError(t, decoded.UnmarshalText([]byte("testnet")))
	assert.Equal(t, "testnet", decoded.String())
}
