package sign

import (
	"encoding/json"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Muvon/bitclout-node-api/pkg/keys"
)

const (
	testPrivHex = "e284129cc0922579a535bbf4d1a3b25773090d28c909bc0fed73b5e0222cc372"
	testPubHex  = "03aaeb52dd7494c361049de67cc680e83ebcbbbdbeb13637d92cd845f70308af5e"
	testAddress = "BC1YLiutYtrRGr5yYdMK91KYbhixJwg4JPA2f9xibPFr8pNMxmUsgxX"
)

func TestType(t *testing.T) {
	tests := []struct {
		sigType  Type
		expected string
	}{
		{TypeDER, "DER"},
		{TypeUnknown, "Unknown"},
		{Type(99), "Unknown"},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, test.sigType.String())
	}
}

func TestSignature(t *testing.T) {
	t.Run("Type detection", func(t *testing.T) {
		signer, err := NewSecp256k1Signer(testPrivHex, keys.Mainnet)
		require.NoError(t, err)
		sig, err := signer.Sign(make([]byte, 32))
		require.NoError(t, err)

		assert.Equal(t, TypeDER, sig.Type())
		assert.Equal(t, Type(TypeUnknown), Signature{}.Type())
		assert.Equal(t, Type(TypeUnknown), make(Signature, 65).Type())
	})

	t.Run("JSON marshaling", func(t *testing.T) {
		sig := Signature{0x30, 0x02, 0x03}

		jsonData, err := json.Marshal(sig)
		require.NoError(t, err)
		assert.Equal(t, `"300203"`, string(jsonData))

		var unmarshaled Signature
		require.NoError(t, json.Unmarshal(jsonData, &unmarshaled))
		assert.Equal(t, sig, unmarshaled)

		assert.Error(t, json.Unmarshal([]byte(`"zz"`), &unmarshaled))
		assert.Error(t, json.Unmarshal([]byte(`12`), &unmarshaled))
	})
}

func TestSecp256k1Signer(t *testing.T) {
	t.Parallel()

	signer, err := NewSecp256k1Signer("0x"+testPrivHex, keys.Mainnet)
	require.NoError(t, err)

	assert.Equal(t, testAddress, signer.PublicKey().Address().String())
	assert.Len(t, signer.PublicKey().Bytes(), 33)

	t.Run("deterministic low-S DER", func(t *testing.T) {
		for i := range 16 {
			digest := make([]byte, 32)
			digest[0] = byte(i)
			digest[31] = byte(i * 7)

			sig1, err := signer.Sign(digest)
			require.NoError(t, err)
			sig2, err := signer.Sign(digest)
			require.NoError(t, err)
			assert.Equal(t, sig1, sig2)

			parsed, err := ecdsa.ParseDERSignature(sig1)
			require.NoError(t, err)
			s := parsed.S()
			assert.False(t, s.IsOverHalfOrder())
			assert.True(t, VerifyDigest(signer.PublicKey().Bytes(), digest, sig1))
		}
	})

	t.Run("wrong digest length", func(t *testing.T) {
		_, err := signer.Sign([]byte("not a digest"))
		assert.ErrorIs(t, err, ErrInvalidDigest)
	})

	t.Run("same key from derived material", func(t *testing.T) {
		km, err := keys.FromPrivateKeyHex(testPrivHex, keys.Mainnet)
		require.NoError(t, err)
		fromKeys := NewSecp256k1SignerFromKeys(km)
		assert.True(t, fromKeys.PublicKey().Address().Equals(signer.PublicKey().Address()))
	})

	t.Run("invalid key", func(t *testing.T) {
		_, err := NewSecp256k1Signer("xyz", keys.Mainnet)
		assert.Error(t, err)
	})
}

func TestNodeAddress(t *testing.T) {
	t.Parallel()

	addr, err := NewNodeAddress(testAddress)
	require.NoError(t, err)
	assert.Equal(t, testAddress, addr.String())
	assert.True(t, addr.Equals(NewMockAddress(testAddress)))
	assert.False(t, addr.Equals(nil))

	_, err = NewNodeAddress("BC1YLnotanaddress")
	assert.Error(t, err)
}

func TestSecp256k1PublicKey(t *testing.T) {
	t.Parallel()

	km, err := keys.FromPrivateKeyHex(testPrivHex, keys.Testnet)
	require.NoError(t, err)

	pub, err := NewSecp256k1PublicKey(km.PublicKey, keys.Testnet)
	require.NoError(t, err)
	assert.Equal(t, km.Address, pub.Address().String())
	assert.Equal(t, testPubHex, km.PublicKeyHex())

	_, err = NewSecp256k1PublicKey([]byte{0x02, 0x01}, keys.Mainnet)
	assert.ErrorIs(t, err, ErrInvalidPublicKey)
}
