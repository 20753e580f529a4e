// Package keys derives the wallet keypair and its address from a BIP-39
// seed phrase along a BIP-44 path, or loads it from a raw private key.
package keys

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/tyler-smith/go-bip39"
)

var (
	ErrInvalidSeedPhrase = errors.New("invalid seed phrase")
	ErrInvalidPrivateKey = errors.New("invalid private key")
	ErrInvalidPath       = errors.New("invalid derivation path")
	ErrDerivation        = errors.New("key derivation failed")
)

// Path is a BIP-44 derivation path. Purpose, CoinType and Account are
// always derived hardened; Change and Index never are.
type Path struct {
	Purpose  uint32
	CoinType uint32
	Account  uint32
	Change   uint32
	Index    uint32
}

// DefaultPath is m/44'/0'/0'/0/0, the path node wallets use for the
// first address of a seed phrase.
var DefaultPath = Path{Purpose: 44, CoinType: 0, Account: 0, Change: 0, Index: 0}

// WithIndex returns a copy of p pointing at another address index.
func (p Path) WithIndex(i uint32) Path {
	p.Index = i
	return p
}

func (p Path) String() string {
	return fmt.Sprintf("m/%d'/%d'/%d'/%d/%d", p.Purpose, p.CoinType, p.Account, p.Change, p.Index)
}

func (p Path) children() []uint32 {
	return []uint32{
		hdkeychain.HardenedKeyStart + p.Purpose,
		hdkeychain.HardenedKeyStart + p.CoinType,
		hdkeychain.HardenedKeyStart + p.Account,
		p.Change,
		p.Index,
	}
}

// ParsePath parses the m/a'/b'/c'/d/e form produced by Path.String.
func ParsePath(s string) (Path, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 6 || parts[0] != "m" {
		return Path{}, fmt.Errorf("%w: %q", ErrInvalidPath, s)
	}

	var vals [5]uint32
	for i, part := range parts[1:] {
		hardened := strings.HasSuffix(part, "'")
		if hardened != (i < 3) {
			return Path{}, fmt.Errorf("%w: level %d of %q", ErrInvalidPath, i+1, s)
		}
		n, err := strconv.ParseUint(strings.TrimSuffix(part, "'"), 10, 31)
		if err != nil {
			return Path{}, fmt.Errorf("%w: %w", ErrInvalidPath, err)
		}
		vals[i] = uint32(n)
	}
	return Path{Purpose: vals[0], CoinType: vals[1], Account: vals[2], Change: vals[3], Index: vals[4]}, nil
}

// KeyMaterial is a derived keypair and its address. Treat it as read-only.
type KeyMaterial struct {
	PrivateKey []byte // 32 bytes
	PublicKey  []byte // 33 bytes, compressed
	Address    string
	Network    Network
}

// PublicKeyHex returns the compressed public key in hex.
func (k KeyMaterial) PublicKeyHex() string {
	return hex.EncodeToString(k.PublicKey)
}

// Derive turns a seed phrase into key material. The BIP-39 seed is
// computed with an empty passphrase. The same inputs always yield the
// same output.
func Derive(seedPhrase string, path Path, net Network) (KeyMaterial, error) {
	seed, err := bip39.NewSeedWithErrorChecking(normalizePhrase(seedPhrase), "")
	if err != nil {
		return KeyMaterial{}, fmt.Errorf("%w: %w", ErrInvalidSeedPhrase, err)
	}
	return deriveFromSeed(seed, path, net)
}

func deriveFromSeed(seed []byte, path Path, net Network) (KeyMaterial, error) {
	// The chain params only affect extended key serialization, which is
	// never exposed here.
	key, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return KeyMaterial{}, fmt.Errorf("%w: %w", ErrDerivation, err)
	}

	for _, child := range path.children() {
		key, err = key.Derive(child)
		if err != nil {
			return KeyMaterial{}, fmt.Errorf("%w: %s: %w", ErrDerivation, path, err)
		}
	}

	priv, err := key.ECPrivKey()
	if err != nil {
		return KeyMaterial{}, fmt.Errorf("%w: %w", ErrDerivation, err)
	}
	return fromPrivKey(priv, net), nil
}

// FromPrivateKeyHex loads key material from a hex encoded 32-byte private
// key, with or without a 0x prefix.
func FromPrivateKeyHex(privHex string, net Network) (KeyMaterial, error) {
	privHex = strings.TrimPrefix(strings.TrimSpace(privHex), "0x")
	ecdsaKey, err := crypto.HexToECDSA(privHex)
	if err != nil {
		return KeyMaterial{}, fmt.Errorf("%w: %w", ErrInvalidPrivateKey, err)
	}

	priv, _ := btcec.PrivKeyFromBytes(crypto.FromECDSA(ecdsaKey))
	return fromPrivKey(priv, net), nil
}

func fromPrivKey(priv *btcec.PrivateKey, net Network) KeyMaterial {
	pub := priv.PubKey().SerializeCompressed()
	return KeyMaterial{
		PrivateKey: priv.Serialize(),
		PublicKey:  pub,
		Address:    EncodeAddress(pub, net),
		Network:    net,
	}
}

// Generated is the output of Generate. The seed phrase is the only way to
// recover the key later and is returned exactly once.
type Generated struct {
	KeyMaterial
	SeedPhrase string
	Seed       []byte
}

// Generate creates a fresh 24-word seed phrase and derives DefaultPath from it.
func Generate(net Network) (Generated, error) {
	entropy, err := bip39.NewEntropy(256)
	if err != nil {
		return Generated{}, fmt.Errorf("generate entropy: %w", err)
	}
	phrase, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return Generated{}, fmt.Errorf("generate mnemonic: %w", err)
	}

	seed := bip39.NewSeed(phrase, "")
	km, err := deriveFromSeed(seed, DefaultPath, net)
	if err != nil {
		return Generated{}, err
	}
	return Generated{KeyMaterial: km, SeedPhrase: phrase, Seed: seed}, nil
}

// ValidateSeedPhrase reports whether the phrase is a valid BIP-39 mnemonic
// with a correct checksum.
func ValidateSeedPhrase(seedPhrase string) error {
	if _, err := bip39.MnemonicToByteArray(normalizePhrase(seedPhrase)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSeedPhrase, err)
	}
	return nil
}

func normalizePhrase(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
