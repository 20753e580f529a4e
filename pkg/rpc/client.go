package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Muvon/bitclout-node-api/pkg/keys"
	"github.com/Muvon/bitclout-node-api/pkg/log"
	"github.com/Muvon/bitclout-node-api/pkg/sign"
	"github.com/Muvon/bitclout-node-api/pkg/tx"
)

// Client is the typed node API client. It acts as one account: the one
// derived from the configured seed phrase or private key. Without a key
// only read methods work.
//
// The Client is safe for concurrent use.
//
// Example usage:
//
//	client, err := rpc.New(rpc.Config{
//	    URL:        "https://node.example.com",
//	    SeedPhrase: os.Getenv("BITCLOUT_SEED_PHRASE"),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := client.SendDeSo(ctx, "BC1YL...", 1_000_000)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("submitted", res.TxnHashHex)
type Client struct {
	dispatcher *Dispatcher
	signer     sign.Signer
	publicKey  string
	minFeeRate uint64
}

// New creates a Client. Key material is derived once here; the seed
// phrase is not retained.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	proxies, err := ParseProxyPool(cfg.Proxies)
	if err != nil {
		return nil, err
	}
	o := buildOptions(opts)

	signer := o.signer
	if signer == nil {
		signer, err = signerFromConfig(cfg)
		if err != nil {
			return nil, err
		}
	}

	publicKey := cfg.PublicKey
	if signer != nil {
		actual := signer.PublicKey().Address().String()
		if publicKey != "" && publicKey != actual {
			return nil, fmt.Errorf("%w: %s != %s", ErrKeyMismatch, publicKey, actual)
		}
		publicKey = actual
	}

	c := &Client{
		dispatcher: newDispatcher(cfg, proxies, o),
		signer:     signer,
		publicKey:  publicKey,
		minFeeRate: cfg.MinFeeRateNanosPerKB,
	}
	c.dispatcher.logger.Info("client ready",
		"publicKey", publicKey,
		"readUrl", c.dispatcher.readURL,
		"writeUrl", c.dispatcher.writeURL,
		"readProxies", proxies.Len(ModeRead),
		"writeProxies", proxies.Len(ModeWrite),
	)
	return c, nil
}

func signerFromConfig(cfg Config) (sign.Signer, error) {
	switch {
	case cfg.SeedPhrase != "":
		km, err := keys.Derive(cfg.SeedPhrase, cfg.Path(), cfg.Network)
		if err != nil {
			return nil, err
		}
		return sign.NewSecp256k1SignerFromKeys(km), nil
	case cfg.PrivateKey != "":
		return sign.NewSecp256k1Signer(cfg.PrivateKey, cfg.Network)
	default:
		return nil, nil
	}
}

// PublicKey returns the base58check address the client acts as. It is
// empty for a read-only client without a configured public key.
func (c *Client) PublicKey() string {
	return c.publicKey
}

// Dispatcher exposes the underlying dispatcher for raw calls.
func (c *Client) Dispatcher() *Dispatcher {
	return c.dispatcher
}

// call runs method and decodes the response into T.
func call[T any](ctx context.Context, c *Client, method Method, payload any) (T, error) {
	var res T
	raw, err := c.dispatcher.Run(ctx, method, payload, method.HTTPMethod())
	if err != nil {
		return res, err
	}
	if err := json.Unmarshal(raw, &res); err != nil {
		var zero T
		return zero, fmt.Errorf("%w: %s: %w", ErrDecodingResponse, method, err)
	}
	return res, nil
}

// ============================================================================
// Transaction flow
// ============================================================================

// Sign signs an unsigned transaction with the client's key and returns
// the signed hex.
func (c *Client) Sign(rawHex string) (string, error) {
	if c.signer == nil {
		return "", ErrNoSigner
	}
	return sign.SignTransaction(c.signer, rawHex)
}

// Submit broadcasts an already signed transaction.
func (c *Client) Submit(ctx context.Context, signedHex string) (SubmitTransactionResponse, error) {
	res, err := call[SubmitTransactionResponse](ctx, c, SubmitTransactionMethod, SubmitTransactionRequest{
		TransactionHex: signedHex,
	})
	if err != nil {
		return SubmitTransactionResponse{}, err
	}
	if res.TxnHashHex == "" {
		if id, idErr := tx.ID(signedHex); idErr == nil {
			res.TxnHashHex = id
		}
	}

	log.FromContext(ctx).Info("transaction submitted", "txnHash", res.TxnHashHex)
	return res, nil
}

// SignAndSubmit signs rawHex and submits it.
func (c *Client) SignAndSubmit(ctx context.Context, rawHex string) (SubmitTransactionResponse, error) {
	signed, err := c.Sign(rawHex)
	if err != nil {
		return SubmitTransactionResponse{}, err
	}
	return c.Submit(ctx, signed)
}

// BuildSignSubmit runs a transaction builder, signs the returned
// TransactionHex and submits it. The first failing step's error is
// returned unchanged and later steps are skipped.
func (c *Client) BuildSignSubmit(ctx context.Context, method Method, payload any) (SubmitTransactionResponse, error) {
	if c.signer == nil {
		return SubmitTransactionResponse{}, ErrNoSigner
	}

	built, err := call[UnsignedTransaction](ctx, c, method, payload)
	if err != nil {
		return SubmitTransactionResponse{}, err
	}
	if built.TransactionHex == "" {
		return SubmitTransactionResponse{}, fmt.Errorf("%w: %s", ErrMissingTransactionHex, method)
	}
	return c.SignAndSubmit(ctx, built.TransactionHex)
}

func (c *Client) requirePublicKey() error {
	if c.publicKey == "" {
		return ErrNoPublicKey
	}
	return nil
}
