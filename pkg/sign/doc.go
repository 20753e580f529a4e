// Package sign provides the chain-agnostic signing interfaces and the
// secp256k1 implementation used to sign node-built transactions.
//
// The primary interfaces are:
//
//   - Signer: signs a 32-byte digest and exposes its public key
//   - PublicKey: public key bytes and the derived Address
//   - Address: printable, comparable account identifier
//
// Private key material never leaves a Signer.
//
// Usage
//
//	km, err := keys.Derive(seedPhrase, keys.DefaultPath, keys.Mainnet)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	signer := sign.NewSecp256k1SignerFromKeys(km)
//
//	// Sign the transaction returned by a build endpoint.
//	signedHex, err := sign.SignTransaction(signer, unsignedHex)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("Address:", signer.PublicKey().Address())
package sign
