// Package tx holds the byte-level helpers for node-built transactions:
// the transaction id and the splicing of a signature into the raw bytes.
package tx

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

var (
	// ErrMalformedTransaction is returned when the raw hex is not valid hex
	// or carries no bytes at all.
	ErrMalformedTransaction = errors.New("malformed transaction hex")
	// ErrSignatureTooLong is returned when a signature does not fit the
	// single length byte of the wire format.
	ErrSignatureTooLong = errors.New("signature longer than 255 bytes")
)

// MaxSignatureLen is the largest signature the one-byte length prefix can describe.
const MaxSignatureLen = 255

// Decode parses raw transaction hex into bytes.
func Decode(rawHex string) ([]byte, error) {
	raw, err := hex.DecodeString(rawHex)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedTransaction, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty transaction", ErrMalformedTransaction)
	}
	return raw, nil
}

// Hash returns the double SHA-256 digest of the raw transaction bytes.
// This is the digest that gets signed.
func Hash(rawHex string) ([]byte, error) {
	raw, err := Decode(rawHex)
	if err != nil {
		return nil, err
	}
	return chainhash.DoubleHashB(raw), nil
}

// ID returns the hex encoded double SHA-256 of the raw transaction bytes.
func ID(rawHex string) (string, error) {
	digest, err := Hash(rawHex)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(digest), nil
}

// SpliceSignature replaces the trailing placeholder byte of an unsigned
// transaction with a length-prefixed signature:
//
//	raw[:len(raw)-1] || byte(len(sig)) || sig
func SpliceSignature(rawHex string, sig []byte) (string, error) {
	raw, err := Decode(rawHex)
	if err != nil {
		return "", err
	}
	if len(sig) > MaxSignatureLen {
		return "", fmt.Errorf("%w: got %d bytes", ErrSignatureTooLong, len(sig))
	}

	out := make([]byte, 0, len(raw)+len(sig))
	out = append(out, raw[:len(raw)-1]...)
	out = append(out, byte(len(sig)))
	out = append(out, sig...)
	return hex.EncodeToString(out), nil
}
