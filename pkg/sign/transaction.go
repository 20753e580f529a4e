package sign

import (
	"github.com/Muvon/bitclout-node-api/pkg/tx"
)

// SignTransaction signs the id digest of an unsigned transaction and
// splices the signature into it, returning the signed hex.
func SignTransaction(s Signer, rawHex string) (string, error) {
	digest, err := tx.Hash(rawHex)
	if err != nil {
		return "", err
	}
	sig, err := s.Sign(digest)
	if err != nil {
		return "", err
	}
	return tx.SpliceSignature(rawHex, sig)
}

// VerifyTransaction checks sig against the unsigned transaction bytes.
func VerifyTransaction(pub []byte, rawUnsignedHex string, sig Signature) bool {
	digest, err := tx.Hash(rawUnsignedHex)
	if err != nil {
		return false
	}
	return VerifyDigest(pub, digest, sig)
}
