package sign

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/Muvon/bitclout-node-api/pkg/keys"
)

var (
	_ Signer    = (*Secp256k1Signer)(nil)
	_ PublicKey = Secp256k1PublicKey{}
	_ Address   = NodeAddress{}
)

// NodeAddress is a base58check public key address as used by the node API.
type NodeAddress struct {
	addr string
}

// NewNodeAddress validates addr and wraps it.
func NewNodeAddress(addr string) (NodeAddress, error) {
	if _, _, err := keys.DecodeAddress(addr); err != nil {
		return NodeAddress{}, err
	}
	return NodeAddress{addr: addr}, nil
}

func (a NodeAddress) String() string { return a.addr }

func (a NodeAddress) Equals(other Address) bool {
	return other != nil && a.addr == other.String()
}

// Secp256k1PublicKey is a secp256k1 point bound to the network its
// address is rendered for.
type Secp256k1PublicKey struct {
	key *btcec.PublicKey
	net keys.Network
}

// NewSecp256k1PublicKey parses a compressed or uncompressed public key.
func NewSecp256k1PublicKey(pub []byte, net keys.Network) (Secp256k1PublicKey, error) {
	key, err := btcec.ParsePubKey(pub)
	if err != nil {
		return Secp256k1PublicKey{}, fmt.Errorf("%w: %w", ErrInvalidPublicKey, err)
	}
	return Secp256k1PublicKey{key: key, net: net}, nil
}

func (p Secp256k1PublicKey) Address() Address {
	return NodeAddress{addr: keys.EncodeAddress(p.Bytes(), p.net)}
}

// Bytes returns the 33-byte compressed encoding.
func (p Secp256k1PublicKey) Bytes() []byte { return p.key.SerializeCompressed() }

// Secp256k1Signer signs digests with deterministic (RFC 6979), low-S,
// DER encoded ECDSA.
type Secp256k1Signer struct {
	privateKey *btcec.PrivateKey
	publicKey  Secp256k1PublicKey
}

func (s *Secp256k1Signer) PublicKey() PublicKey { return s.publicKey }

// Sign expects a 32-byte digest, for transactions the double SHA-256 of
// the raw bytes.
func (s *Secp256k1Signer) Sign(digest []byte) (Signature, error) {
	if len(digest) != 32 {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidDigest, len(digest))
	}
	return Signature(ecdsa.Sign(s.privateKey, digest).Serialize()), nil
}

// NewSecp256k1Signer creates a signer from a hex encoded private key.
func NewSecp256k1Signer(privateKeyHex string, net keys.Network) (Signer, error) {
	privateKeyHex = strings.TrimPrefix(privateKeyHex, "0x")
	key, err := ethcrypto.HexToECDSA(privateKeyHex)
	if err != nil {
		return nil, fmt.Errorf("could not parse secp256k1 private key: %w", err)
	}
	priv, _ := btcec.PrivKeyFromBytes(ethcrypto.FromECDSA(key))
	return newSigner(priv, net), nil
}

// NewSecp256k1SignerFromKeys creates a signer from derived key material.
func NewSecp256k1SignerFromKeys(km keys.KeyMaterial) *Secp256k1Signer {
	priv, _ := btcec.PrivKeyFromBytes(km.PrivateKey)
	return newSigner(priv, km.Network)
}

func newSigner(priv *btcec.PrivateKey, net keys.Network) *Secp256k1Signer {
	return &Secp256k1Signer{
		privateKey: priv,
		publicKey:  Secp256k1PublicKey{key: priv.PubKey(), net: net},
	}
}

// VerifyDigest reports whether sig is a valid DER signature of digest by pub.
func VerifyDigest(pub []byte, digest []byte, sig Signature) bool {
	key, err := btcec.ParsePubKey(pub)
	if err != nil {
		return false
	}
	parsed, err := ecdsa.ParseDERSignature(sig)
	if err != nil {
		return false
	}
	return parsed.Verify(digest, key)
}
