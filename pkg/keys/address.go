package keys

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

var (
	ErrInvalidAddress  = errors.New("invalid address")
	ErrInvalidChecksum = errors.New("address checksum mismatch")
	ErrUnknownPrefix   = errors.New("unknown address prefix")
)

const (
	prefixLen   = 3
	checksumLen = 4
)

// EncodeAddress renders a compressed public key as a base58check address:
// base58(prefix || pub || sha256d(prefix || pub)[:4]).
func EncodeAddress(pub []byte, net Network) string {
	prefix := net.Prefix()
	return encodeWithPrefix(prefix[:], pub)
}

func encodeWithPrefix(prefix, payload []byte) string {
	body := make([]byte, 0, len(prefix)+len(payload)+checksumLen)
	body = append(body, prefix...)
	body = append(body, payload...)
	body = append(body, chainhash.DoubleHashB(body)[:checksumLen]...)
	return base58.Encode(body)
}

// DecodeAddress reverses EncodeAddress. It checks the checksum, the
// prefix and that the payload is a valid compressed secp256k1 point.
func DecodeAddress(addr string) ([]byte, Network, error) {
	raw := base58.Decode(addr)
	if len(raw) != prefixLen+btcec.PubKeyBytesLenCompressed+checksumLen {
		return nil, 0, fmt.Errorf("%w: decoded length %d", ErrInvalidAddress, len(raw))
	}

	body, sum := raw[:len(raw)-checksumLen], raw[len(raw)-checksumLen:]
	if !bytes.Equal(chainhash.DoubleHashB(body)[:checksumLen], sum) {
		return nil, 0, ErrInvalidChecksum
	}

	net, ok := networkForPrefix(body[:prefixLen])
	if !ok {
		return nil, 0, fmt.Errorf("%w: %x", ErrUnknownPrefix, body[:prefixLen])
	}

	pub := bytes.Clone(body[prefixLen:])
	if _, err := btcec.ParsePubKey(pub); err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	return pub, net, nil
}
