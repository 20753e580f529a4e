package sign

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
)

var (
	ErrInvalidDigest    = errors.New("digest must be 32 bytes")
	ErrInvalidPublicKey = errors.New("invalid public key")
)

// Signer is an interface for a blockchain-agnostic signer.
type Signer interface {
	PublicKey() PublicKey                  // Public key associated with this signer.
	Sign(digest []byte) (Signature, error) // Sign signs a pre-computed digest.
}

// PublicKey is an interface for a blockchain-agnostic public key.
type PublicKey interface {
	Address() Address
	Bytes() []byte
}

// Address is an interface for a blockchain-specific address.
type Address interface {
	fmt.Stringer

	// Equals returns true if this address equals the other address.
	Equals(other Address) bool
}

// Signature is a raw signature as produced by a Signer.
type Signature []byte

// Type represents the encoding of a signature.
type Type uint8

const (
	TypeDER     Type = iota
	TypeUnknown      = 255
)

func (t Type) String() string {
	switch t {
	case TypeDER:
		return "DER"
	default:
		return "Unknown"
	}
}

// Type reports TypeDER when the signature parses as a strict DER encoded
// secp256k1 ECDSA signature.
func (s Signature) Type() Type {
	if _, err := ecdsa.ParseDERSignature(s); err == nil {
		return TypeDER
	}
	return TypeUnknown
}

// MarshalJSON encodes the signature as a hex string.
func (s Signature) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Signature) UnmarshalJSON(data []byte) error {
	var hexStr string
	if err := json.Unmarshal(data, &hexStr); err != nil {
		return err
	}
	decoded, err := hex.DecodeString(hexStr)
	if err != nil {
		return err
	}
	*s = decoded
	return nil
}

func (s Signature) String() string {
	return hex.EncodeToString(s)
}
