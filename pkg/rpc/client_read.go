package rpc

import (
	"context"
	"fmt"
	"time"
)

// Lookup tells a query how to interpret its search string.
type Lookup uint8

const (
	ByPublicKey Lookup = iota
	ByUsername
	ByUsernamePrefix
)

func (l Lookup) split(search string) (publicKey, username, prefix string) {
	switch l {
	case ByUsername:
		return "", search, ""
	case ByUsernamePrefix:
		return "", "", search
	default:
		return search, "", ""
	}
}

func (c *Client) orSelf(publicKey string) (string, error) {
	if publicKey != "" {
		return publicKey, nil
	}
	if err := c.requirePublicKey(); err != nil {
		return "", err
	}
	return c.publicKey, nil
}

// GetLastBlock returns the chain tip as seen by the read node.
func (c *Client) GetLastBlock(ctx context.Context) (NodeInfoResponse, error) {
	return call[NodeInfoResponse](ctx, c, GetNodeInfoMethod, nil)
}

// GetBlock fetches a block by height or hash.
func (c *Client) GetBlock(ctx context.Context, req GetBlockRequest) (BlockResponse, error) {
	return call[BlockResponse](ctx, c, GetBlockMethod, req)
}

func (c *Client) GetBlockByHeight(ctx context.Context, height uint64, full bool) (BlockResponse, error) {
	return c.GetBlock(ctx, GetBlockRequest{Height: &height, FullBlock: full})
}

func (c *Client) GetBlockByHash(ctx context.Context, hashHex string, full bool) (BlockResponse, error) {
	return c.GetBlock(ctx, GetBlockRequest{HashHex: hashHex, FullBlock: full})
}

// GetTransaction looks a transaction up by its base58check id.
func (c *Client) GetTransaction(ctx context.Context, id string) (TransactionInfoResponse, error) {
	return call[TransactionInfoResponse](ctx, c, GetTransactionInfoMethod, TransactionInfoRequest{
		TransactionIDBase58Check: id,
	})
}

// GetPublicKeyInfo lists the transactions of a public key.
func (c *Client) GetPublicKeyInfo(ctx context.Context, publicKey string) (TransactionInfoResponse, error) {
	return call[TransactionInfoResponse](ctx, c, GetTransactionInfoMethod, TransactionInfoRequest{
		PublicKeyBase58Check: publicKey,
	})
}

// GetBalance returns the balance of publicKey, or of the client's own
// key when publicKey is empty.
func (c *Client) GetBalance(ctx context.Context, publicKey string) (BalanceResponse, error) {
	pk, err := c.orSelf(publicKey)
	if err != nil {
		return BalanceResponse{}, err
	}
	return call[BalanceResponse](ctx, c, GetBalanceMethod, BalanceRequest{
		PublicKeyBase58Check: pk,
		Confirmations:        1,
	})
}

func (c *Client) GetUserByPublicKey(ctx context.Context, publicKey string) (User, error) {
	res, err := call[GetUsersStatelessResponse](ctx, c, GetUsersStatelessMethod, GetUsersStatelessRequest{
		PublicKeysBase58Check: []string{publicKey},
	})
	if err != nil {
		return User{}, err
	}
	if len(res.UserList) == 0 {
		return User{}, fmt.Errorf("%w: user %s", ErrNotFound, publicKey)
	}
	return res.UserList[0], nil
}

func (c *Client) GetProfile(ctx context.Context, search string, by Lookup) (Profile, error) {
	pk, username, _ := by.split(search)
	res, err := call[GetSingleProfileResponse](ctx, c, GetSingleProfileMethod, GetSingleProfileRequest{
		PublicKeyBase58Check: pk,
		Username:             username,
	})
	if err != nil {
		return Profile{}, err
	}
	if res.Profile == nil {
		return Profile{}, fmt.Errorf("%w: profile %s", ErrNotFound, search)
	}
	return *res.Profile, nil
}

// ProfilesQuery filters GetProfiles. Zero fields get defaults: 20
// results, newest first, unrestricted moderation.
type ProfilesQuery struct {
	Search         string
	By             Lookup
	Limit          int
	OrderBy        string
	ModerationType string
}

func (c *Client) GetProfiles(ctx context.Context, q ProfilesQuery) (GetProfilesResponse, error) {
	if q.Limit <= 0 {
		q.Limit = 20
	}
	if q.OrderBy == "" {
		q.OrderBy = "newest"
	}
	if q.ModerationType == "" {
		q.ModerationType = "unrestricted"
	}

	pk, username, prefix := q.By.split(q.Search)
	return call[GetProfilesResponse](ctx, c, GetProfilesMethod, GetProfilesRequest{
		PublicKeyBase58Check: pk,
		Username:             username,
		UsernamePrefix:       prefix,
		OrderBy:              q.OrderBy,
		ModerationType:       q.ModerationType,
		NumToFetch:           q.Limit,
	})
}

// GetPost fetches a post with its parents and a page of comments.
func (c *Client) GetPost(ctx context.Context, postHashHex string, commentOffset, commentLimit int) (Post, error) {
	res, err := call[GetSinglePostResponse](ctx, c, GetSinglePostMethod, GetSinglePostRequest{
		PostHashHex:                postHashHex,
		ReaderPublicKeyBase58Check: c.publicKey,
		FetchParents:               true,
		CommentOffset:              commentOffset,
		CommentLimit:               commentLimit,
	})
	if err != nil {
		return Post{}, err
	}
	if res.PostFound == nil {
		return Post{}, fmt.Errorf("%w: post %s", ErrNotFound, postHashHex)
	}
	return *res.PostFound, nil
}

// GetPosts pages through the global feed, newest first, starting after
// fromPostHashHex or at since when they are set.
func (c *Client) GetPosts(ctx context.Context, fromPostHashHex string, since time.Time, limit int) ([]Post, error) {
	req := GetPostsStatelessRequest{
		PostHashHex:                fromPostHashHex,
		ReaderPublicKeyBase58Check: c.publicKey,
		OrderBy:                    "newest",
		NumToFetch:                 limit,
	}
	if !since.IsZero() {
		ts := uint64(since.Unix())
		req.StartTstampSecs = &ts
	}

	res, err := call[GetPostsStatelessResponse](ctx, c, GetPostsStatelessMethod, req)
	if err != nil {
		return nil, err
	}
	return res.PostsFound, nil
}

func (c *Client) GetAccountPosts(ctx context.Context, search string, by Lookup, limit int) (GetPostsForPublicKeyResponse, error) {
	pk, username, _ := by.split(search)
	return call[GetPostsForPublicKeyResponse](ctx, c, GetPostsForPublicKeyMethod, GetPostsForPublicKeyRequest{
		PublicKeyBase58Check:       pk,
		Username:                   username,
		ReaderPublicKeyBase58Check: c.publicKey,
		NumToFetch:                 limit,
	})
}

// GetNotifications returns the latest 50 notifications of the client's key.
func (c *Client) GetNotifications(ctx context.Context) (GetNotificationsResponse, error) {
	if err := c.requirePublicKey(); err != nil {
		return GetNotificationsResponse{}, err
	}
	return call[GetNotificationsResponse](ctx, c, GetNotificationsMethod, GetNotificationsRequest{
		PublicKeyBase58Check: c.publicKey,
		FetchStartIndex:      -1,
		NumToFetch:           50,
	})
}

// GetHolders lists the holders of a creator's coin. A negative limit
// fetches all of them.
func (c *Client) GetHolders(ctx context.Context, search string, by Lookup, lastPublicKey string, limit int) (GetHodlersResponse, error) {
	pk, username, _ := by.split(search)
	return call[GetHodlersResponse](ctx, c, GetHodlersForPublicKeyMethod, GetHodlersRequest{
		PublicKeyBase58Check:     pk,
		Username:                 username,
		LastPublicKeyBase58Check: lastPublicKey,
		NumToFetch:               max(limit, 0),
		FetchAll:                 limit < 0,
	})
}

func (c *Client) GetDiamondsForPublicKey(ctx context.Context, publicKey string) (GetDiamondsForPublicKeyResponse, error) {
	return call[GetDiamondsForPublicKeyResponse](ctx, c, GetDiamondsForPublicKeyMethod, GetDiamondsForPublicKeyRequest{
		PublicKeyBase58Check: publicKey,
	})
}

// GetFollowers lists the accounts following search.
func (c *Client) GetFollowers(ctx context.Context, search string, by Lookup, lastPublicKey string, limit int) (GetFollowsResponse, error) {
	return c.getFollows(ctx, search, by, lastPublicKey, limit, true)
}

// GetFollowing lists the accounts search follows.
func (c *Client) GetFollowing(ctx context.Context, search string, by Lookup, lastPublicKey string, limit int) (GetFollowsResponse, error) {
	return c.getFollows(ctx, search, by, lastPublicKey, limit, false)
}

func (c *Client) getFollows(ctx context.Context, search string, by Lookup, lastPublicKey string, limit int, followers bool) (GetFollowsResponse, error) {
	pk, username, _ := by.split(search)
	return call[GetFollowsResponse](ctx, c, GetFollowsStatelessMethod, GetFollowsStatelessRequest{
		PublicKeyBase58Check:        pk,
		Username:                    username,
		GetEntriesFollowingUsername: followers,
		LastPublicKeyBase58Check:    lastPublicKey,
		NumToFetch:                  limit,
	})
}

func (c *Client) GetExchangeRate(ctx context.Context) (ExchangeRateResponse, error) {
	return call[ExchangeRateResponse](ctx, c, GetExchangeRateMethod, nil)
}
