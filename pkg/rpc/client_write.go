package rpc

import (
	"context"
)

// CreateSendDeSoTx builds, but does not sign or submit, a transfer of
// amountNanos to a public key or username.
func (c *Client) CreateSendDeSoTx(ctx context.Context, recipient string, amountNanos uint64) (SendDeSoResponse, error) {
	if err := c.requirePublicKey(); err != nil {
		return SendDeSoResponse{}, err
	}
	return call[SendDeSoResponse](ctx, c, SendDeSoMethod, c.sendDeSoRequest(recipient, amountNanos))
}

func (c *Client) SendDeSo(ctx context.Context, recipient string, amountNanos uint64) (SubmitTransactionResponse, error) {
	return c.BuildSignSubmit(ctx, SendDeSoMethod, c.sendDeSoRequest(recipient, amountNanos))
}

func (c *Client) sendDeSoRequest(recipient string, amountNanos uint64) SendDeSoRequest {
	return SendDeSoRequest{
		SenderPublicKeyBase58Check:   c.publicKey,
		RecipientPublicKeyOrUsername: recipient,
		AmountNanos:                  amountNanos,
		MinFeeRateNanosPerKB:         c.minFeeRate,
	}
}

// SendCreatorCoin transfers amountNanos of creator's coin to receiver.
func (c *Client) SendCreatorCoin(ctx context.Context, creator, receiver string, amountNanos uint64) (SubmitTransactionResponse, error) {
	return c.BuildSignSubmit(ctx, TransferCreatorCoinMethod, TransferCreatorCoinRequest{
		SenderPublicKeyBase58Check:             c.publicKey,
		CreatorPublicKeyBase58Check:            creator,
		ReceiverUsernameOrPublicKeyBase58Check: receiver,
		CreatorCoinToTransferNanos:             amountNanos,
		MinFeeRateNanosPerKB:                   c.minFeeRate,
	})
}

// BuyCreatorCoin spends desoNanos on creator's coin.
func (c *Client) BuyCreatorCoin(ctx context.Context, creator string, desoNanos uint64) (SubmitTransactionResponse, error) {
	return c.BuildSignSubmit(ctx, BuyOrSellCreatorCoinMethod, c.creatorCoinRequest(creator, CreatorCoinBuy, desoNanos))
}

// SellCreatorCoin sells coinNanos of creator's coin.
func (c *Client) SellCreatorCoin(ctx context.Context, creator string, coinNanos uint64) (SubmitTransactionResponse, error) {
	return c.BuildSignSubmit(ctx, BuyOrSellCreatorCoinMethod, c.creatorCoinRequest(creator, CreatorCoinSell, coinNanos))
}

// PreviewBuyCreatorCoin returns the expected outcome of BuyCreatorCoin
// without submitting anything.
func (c *Client) PreviewBuyCreatorCoin(ctx context.Context, creator string, desoNanos uint64) (BuyOrSellCreatorCoinResponse, error) {
	return c.previewCreatorCoin(ctx, c.creatorCoinRequest(creator, CreatorCoinBuy, desoNanos))
}

// PreviewSellCreatorCoin returns the expected outcome of SellCreatorCoin
// without submitting anything.
func (c *Client) PreviewSellCreatorCoin(ctx context.Context, creator string, coinNanos uint64) (BuyOrSellCreatorCoinResponse, error) {
	return c.previewCreatorCoin(ctx, c.creatorCoinRequest(creator, CreatorCoinSell, coinNanos))
}

func (c *Client) previewCreatorCoin(ctx context.Context, req BuyOrSellCreatorCoinRequest) (BuyOrSellCreatorCoinResponse, error) {
	if err := c.requirePublicKey(); err != nil {
		return BuyOrSellCreatorCoinResponse{}, err
	}
	return call[BuyOrSellCreatorCoinResponse](ctx, c, BuyOrSellCreatorCoinMethod, req)
}

func (c *Client) creatorCoinRequest(creator string, op CreatorCoinOperation, nanos uint64) BuyOrSellCreatorCoinRequest {
	req := BuyOrSellCreatorCoinRequest{
		UpdaterPublicKeyBase58Check: c.publicKey,
		CreatorPublicKeyBase58Check: creator,
		OperationType:               op,
		MinFeeRateNanosPerKB:        c.minFeeRate,
	}
	if op == CreatorCoinBuy {
		req.DeSoToSellNanos = nanos
	} else {
		req.CreatorCoinToSellNanos = nanos
	}
	return req
}

func (c *Client) SendMessage(ctx context.Context, recipient, text string) (SubmitTransactionResponse, error) {
	return c.BuildSignSubmit(ctx, SendMessageStatelessMethod, SendMessageStatelessRequest{
		SenderPublicKeyBase58Check:    c.publicKey,
		RecipientPublicKeyBase58Check: recipient,
		MessageText:                   text,
		MinFeeRateNanosPerKB:          c.minFeeRate,
	})
}

// SubmitPost publishes a new top-level post.
func (c *Client) SubmitPost(ctx context.Context, text string, imageURLs ...string) (SubmitTransactionResponse, error) {
	return c.BuildSignSubmit(ctx, SubmitPostMethod, SubmitPostRequest{
		UpdaterPublicKeyBase58Check: c.publicKey,
		BodyObj: PostBody{
			Body:      text,
			ImageURLs: append([]string{}, imageURLs...),
			VideoURLs: []string{},
		},
		PostExtraData:        map[string]string{},
		MinFeeRateNanosPerKB: c.minFeeRate,
	})
}

func (c *Client) Follow(ctx context.Context, publicKey string) (SubmitTransactionResponse, error) {
	return c.follow(ctx, publicKey, false)
}

func (c *Client) Unfollow(ctx context.Context, publicKey string) (SubmitTransactionResponse, error) {
	return c.follow(ctx, publicKey, true)
}

func (c *Client) follow(ctx context.Context, publicKey string, unfollow bool) (SubmitTransactionResponse, error) {
	return c.BuildSignSubmit(ctx, CreateFollowTxnStatelessMethod, CreateFollowTxnStatelessRequest{
		FollowerPublicKeyBase58Check: c.publicKey,
		FollowedPublicKeyBase58Check: publicKey,
		IsUnfollow:                   unfollow,
		MinFeeRateNanosPerKB:         c.minFeeRate,
	})
}

func (c *Client) Like(ctx context.Context, postHashHex string) (SubmitTransactionResponse, error) {
	return c.like(ctx, postHashHex, false)
}

func (c *Client) Unlike(ctx context.Context, postHashHex string) (SubmitTransactionResponse, error) {
	return c.like(ctx, postHashHex, true)
}

func (c *Client) like(ctx context.Context, postHashHex string, unlike bool) (SubmitTransactionResponse, error) {
	return c.BuildSignSubmit(ctx, CreateLikeStatelessMethod, CreateLikeStatelessRequest{
		ReaderPublicKeyBase58Check: c.publicKey,
		LikedPostHashHex:           postHashHex,
		IsUnlike:                   unlike,
		MinFeeRateNanosPerKB:       c.minFeeRate,
	})
}

// SendDiamonds tips a post; level is the diamond level, 1 to 6.
func (c *Client) SendDiamonds(ctx context.Context, receiver, postHashHex string, level int) (SubmitTransactionResponse, error) {
	return c.BuildSignSubmit(ctx, SendDiamondsMethod, SendDiamondsRequest{
		SenderPublicKeyBase58Check:   c.publicKey,
		ReceiverPublicKeyBase58Check: receiver,
		DiamondPostHashHex:           postHashHex,
		DiamondLevel:                 level,
		MinFeeRateNanosPerKB:         c.minFeeRate,
	})
}
