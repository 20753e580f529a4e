// Package rpc is a client for the BitClout/DeSo node HTTP API.
//
// Reads go to the read node and transaction builders plus submission go
// to the write node. Write operations run as build, sign locally, then
// submit. Amounts are in nanos; use NanosToDeSo and DeSoToNanos to
// convert with decimal precision.
package rpc

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// NanosPerDeSo is the number of nanos in one coin.
const NanosPerDeSo = 1_000_000_000

var nanosPerDeSo = decimal.NewFromInt(NanosPerDeSo)

// NanosToDeSo converts a nano amount to whole coins.
func NanosToDeSo(nanos uint64) decimal.Decimal {
	return decimal.NewFromUint64(nanos).Div(nanosPerDeSo)
}

// DeSoToNanos converts a coin amount to nanos. Fractions below one nano
// and negative amounts are rejected.
func DeSoToNanos(amount decimal.Decimal) (uint64, error) {
	if amount.IsNegative() {
		return 0, fmt.Errorf("negative amount %s", amount)
	}
	nanos := amount.Mul(nanosPerDeSo)
	if !nanos.Equal(nanos.Truncate(0)) {
		return 0, fmt.Errorf("amount %s has more than 9 decimal places", amount)
	}
	if !nanos.BigInt().IsUint64() {
		return 0, fmt.Errorf("amount %s overflows", amount)
	}
	return nanos.BigInt().Uint64(), nil
}

// ============================================================================
// Chain primitives (api/v1)
// ============================================================================

type BlockHeader struct {
	BlockHashHex             string `json:"BlockHashHex"`
	Version                  uint32 `json:"Version"`
	PrevBlockHashHex         string `json:"PrevBlockHashHex"`
	TransactionMerkleRootHex string `json:"TransactionMerkleRootHex"`
	TstampSecs               uint64 `json:"TstampSecs"`
	Height                   uint64 `json:"Height"`
	Nonce                    uint64 `json:"Nonce"`
	ExtraNonce               uint64 `json:"ExtraNonce"`
}

// NodeInfoResponse is returned by GET api/v1 and describes the chain tip.
type NodeInfoResponse struct {
	Header *BlockHeader `json:"Header"`
}

// GetBlockRequest selects a block by height or hash. Exactly one of
// Height and HashHex should be set.
type GetBlockRequest struct {
	Height    *uint64 `json:"Height"`
	HashHex   string  `json:"HashHex"`
	FullBlock bool    `json:"FullBlock"`
}

type BlockResponse struct {
	Header       *BlockHeader          `json:"Header"`
	Transactions []TransactionResponse `json:"Transactions"`
}

type TransactionInfoRequest struct {
	TransactionIDBase58Check     string `json:"TransactionIDBase58Check,omitempty"`
	PublicKeyBase58Check         string `json:"PublicKeyBase58Check,omitempty"`
	LastTransactionIDBase58Check string `json:"LastTransactionIDBase58Check,omitempty"`
	Limit                        int    `json:"Limit,omitempty"`
}

type TransactionOutput struct {
	PublicKeyBase58Check string `json:"PublicKeyBase58Check"`
	AmountNanos          uint64 `json:"AmountNanos"`
}

type TransactionResponse struct {
	TransactionIDBase58Check string              `json:"TransactionIDBase58Check"`
	RawTransactionHex        string              `json:"RawTransactionHex"`
	Outputs                  []TransactionOutput `json:"Outputs"`
	SignatureHex             string              `json:"SignatureHex"`
	TransactionType          string              `json:"TransactionType"`
	BlockHashHex             string              `json:"BlockHashHex"`
	TransactionMetadata      json.RawMessage     `json:"TransactionMetadata"`
}

type TransactionInfoResponse struct {
	Transactions                 []TransactionResponse `json:"Transactions"`
	LastTransactionIDBase58Check string                `json:"LastTransactionIDBase58Check"`
}

type BalanceRequest struct {
	PublicKeyBase58Check string `json:"PublicKeyBase58Check"`
	Confirmations        int    `json:"Confirmations"`
}

type BalanceResponse struct {
	ConfirmedBalanceNanos   uint64          `json:"ConfirmedBalanceNanos"`
	UnconfirmedBalanceNanos uint64          `json:"UnconfirmedBalanceNanos"`
	UTXOs                   json.RawMessage `json:"UTXOs"`
}

// ============================================================================
// Social queries (api/v0)
// ============================================================================

type CoinEntry struct {
	CreatorBasisPoints      uint64 `json:"CreatorBasisPoints"`
	DeSoLockedNanos         uint64 `json:"DeSoLockedNanos"`
	NumberOfHolders         uint64 `json:"NumberOfHolders"`
	CoinsInCirculationNanos uint64 `json:"CoinsInCirculationNanos"`
	CoinWatermarkNanos      uint64 `json:"CoinWatermarkNanos"`
}

type Profile struct {
	PublicKeyBase58Check string    `json:"PublicKeyBase58Check"`
	Username             string    `json:"Username"`
	Description          string    `json:"Description"`
	IsHidden             bool      `json:"IsHidden"`
	IsReserved           bool      `json:"IsReserved"`
	IsVerified           bool      `json:"IsVerified"`
	CoinEntry            CoinEntry `json:"CoinEntry"`
	CoinPriceDeSoNanos   uint64    `json:"CoinPriceDeSoNanos"`
}

type User struct {
	PublicKeyBase58Check string   `json:"PublicKeyBase58Check"`
	ProfileEntryResponse *Profile `json:"ProfileEntryResponse"`
	BalanceNanos         uint64   `json:"BalanceNanos"`
	NumMessagesToRead    int64    `json:"NumMessagesToRead"`
	IsBlacklisted        bool     `json:"IsBlacklisted"`
	IsGraylisted         bool     `json:"IsGraylisted"`
}

type GetUsersStatelessRequest struct {
	PublicKeysBase58Check []string `json:"PublicKeysBase58Check"`
	SkipForLeaderboard    bool     `json:"SkipForLeaderboard"`
}

type GetUsersStatelessResponse struct {
	UserList []User `json:"UserList"`
}

type GetSingleProfileRequest struct {
	PublicKeyBase58Check string `json:"PublicKeyBase58Check"`
	Username             string `json:"Username"`
}

type GetSingleProfileResponse struct {
	Profile       *Profile `json:"Profile"`
	IsBlacklisted bool     `json:"IsBlacklisted"`
	IsGraylisted  bool     `json:"IsGraylisted"`
}

type GetProfilesRequest struct {
	PublicKeyBase58Check string `json:"PublicKeyBase58Check"`
	Username             string `json:"Username"`
	UsernamePrefix       string `json:"UsernamePrefix"`
	Description          string `json:"Description"`
	OrderBy              string `json:"OrderBy"`
	ModerationType       string `json:"ModerationType"`
	FetchUsersThatHODL   bool   `json:"FetchUsersThatHODL"`
	AddGlobalFeedBool    bool   `json:"AddGlobalFeedBool"`
	NumToFetch           int    `json:"NumToFetch"`
}

type GetProfilesResponse struct {
	ProfilesFound []Profile `json:"ProfilesFound"`
	NextPublicKey *string   `json:"NextPublicKey"`
}

type Post struct {
	PostHashHex                string   `json:"PostHashHex"`
	PosterPublicKeyBase58Check string   `json:"PosterPublicKeyBase58Check"`
	ParentStakeID              string   `json:"ParentStakeID"`
	Body                       string   `json:"Body"`
	ImageURLs                  []string `json:"ImageURLs"`
	TimestampNanos             uint64   `json:"TimestampNanos"`
	IsHidden                   bool     `json:"IsHidden"`
	LikeCount                  uint64   `json:"LikeCount"`
	DiamondCount               uint64   `json:"DiamondCount"`
	CommentCount               uint64   `json:"CommentCount"`
	RepostCount                uint64   `json:"RepostCount"`
	ProfileEntryResponse       *Profile `json:"ProfileEntryResponse"`
	Comments                   []Post   `json:"Comments"`
}

type GetSinglePostRequest struct {
	PostHashHex                string `json:"PostHashHex"`
	ReaderPublicKeyBase58Check string `json:"ReaderPublicKeyBase58Check"`
	FetchParents               bool   `json:"FetchParents"`
	CommentOffset              int    `json:"CommentOffset"`
	CommentLimit               int    `json:"CommentLimit"`
	AddGlobalFeedBool          bool   `json:"AddGlobalFeedBool"`
}

type GetSinglePostResponse struct {
	PostFound *Post `json:"PostFound"`
}

type GetPostsStatelessRequest struct {
	PostHashHex                 string  `json:"PostHashHex"`
	ReaderPublicKeyBase58Check  string  `json:"ReaderPublicKeyBase58Check"`
	StartTstampSecs             *uint64 `json:"StartTstampSecs"`
	FetchSubcomments            bool    `json:"FetchSubcomments"`
	GetPostsForFollowFeed       bool    `json:"GetPostsForFollowFeed"`
	GetPostsForGlobalWhitelist  bool    `json:"GetPostsForGlobalWhitelist"`
	GetPostsByClout             bool    `json:"GetPostsByClout"`
	PostsByCloutMinutesLookback int     `json:"PostsByCloutMinutesLookback"`
	AddGlobalFeedBool           bool    `json:"AddGlobalFeedBool"`
	OrderBy                     string  `json:"OrderBy"`
	NumToFetch                  int     `json:"NumToFetch"`
}

type GetPostsStatelessResponse struct {
	PostsFound []Post `json:"PostsFound"`
}

type GetPostsForPublicKeyRequest struct {
	PublicKeyBase58Check       string `json:"PublicKeyBase58Check"`
	Username                   string `json:"Username"`
	ReaderPublicKeyBase58Check string `json:"ReaderPublicKeyBase58Check"`
	LastPostHashHex            string `json:"LastPostHashHex"`
	NumToFetch                 int    `json:"NumToFetch"`
}

type GetPostsForPublicKeyResponse struct {
	Posts           []Post `json:"Posts"`
	LastPostHashHex string `json:"LastPostHashHex"`
}

type GetNotificationsRequest struct {
	PublicKeyBase58Check string `json:"PublicKeyBase58Check"`
	FetchStartIndex      int64  `json:"FetchStartIndex"`
	NumToFetch           int    `json:"NumToFetch"`
}

type Notification struct {
	Metadata json.RawMessage `json:"Metadata"`
	Index    int64           `json:"Index"`
}

type GetNotificationsResponse struct {
	Notifications       []Notification     `json:"Notifications"`
	ProfilesByPublicKey map[string]Profile `json:"ProfilesByPublicKey"`
	PostsByHash         map[string]Post    `json:"PostsByHash"`
	LastSeenIndex       int64              `json:"LastSeenIndex"`
}

type GetHodlersRequest struct {
	PublicKeyBase58Check     string `json:"PublicKeyBase58Check"`
	Username                 string `json:"Username"`
	LastPublicKeyBase58Check string `json:"LastPublicKeyBase58Check"`
	NumToFetch               int    `json:"NumToFetch"`
	FetchHodlings            bool   `json:"FetchHodlings"`
	FetchAll                 bool   `json:"FetchAll"`
}

type Hodler struct {
	HODLerPublicKeyBase58Check  string   `json:"HODLerPublicKeyBase58Check"`
	CreatorPublicKeyBase58Check string   `json:"CreatorPublicKeyBase58Check"`
	HasPurchased                bool     `json:"HasPurchased"`
	BalanceNanos                uint64   `json:"BalanceNanos"`
	ProfileEntryResponse        *Profile `json:"ProfileEntryResponse"`
}

type GetHodlersResponse struct {
	Hodlers                  []Hodler `json:"Hodlers"`
	LastPublicKeyBase58Check string   `json:"LastPublicKeyBase58Check"`
}

type GetDiamondsForPublicKeyRequest struct {
	PublicKeyBase58Check string `json:"PublicKeyBase58Check"`
	FetchYouDiamonded    bool   `json:"FetchYouDiamonded"`
}

type DiamondSenderSummary struct {
	SenderPublicKeyBase58Check   string   `json:"SenderPublicKeyBase58Check"`
	ReceiverPublicKeyBase58Check string   `json:"ReceiverPublicKeyBase58Check"`
	TotalDiamonds                uint64   `json:"TotalDiamonds"`
	HighestDiamondLevel          uint64   `json:"HighestDiamondLevel"`
	ProfileEntryResponse         *Profile `json:"ProfileEntryResponse"`
}

type GetDiamondsForPublicKeyResponse struct {
	DiamondSenderSummaryResponses []DiamondSenderSummary `json:"DiamondSenderSummaryResponses"`
	TotalDiamonds                 uint64                 `json:"TotalDiamonds"`
}

type GetFollowsStatelessRequest struct {
	PublicKeyBase58Check        string `json:"PublicKeyBase58Check"`
	Username                    string `json:"Username"`
	GetEntriesFollowingUsername bool   `json:"GetEntriesFollowingUsername"`
	LastPublicKeyBase58Check    string `json:"LastPublicKeyBase58Check"`
	NumToFetch                  int    `json:"NumToFetch"`
}

type GetFollowsResponse struct {
	PublicKeyToProfileEntry map[string]*Profile `json:"PublicKeyToProfileEntry"`
	NumFollowers            uint64              `json:"NumFollowers"`
}

type ExchangeRateResponse struct {
	SatoshisPerDeSoExchangeRate    uint64  `json:"SatoshisPerDeSoExchangeRate"`
	NanosSold                      uint64  `json:"NanosSold"`
	USDCentsPerBitcoinExchangeRate float64 `json:"USDCentsPerBitcoinExchangeRate"`
	USDCentsPerDeSoExchangeRate    uint64  `json:"USDCentsPerDeSoExchangeRate"`
}

// ============================================================================
// Transaction builders
// ============================================================================

// UnsignedTransaction is the part every build response shares.
type UnsignedTransaction struct {
	TransactionHex           string `json:"TransactionHex"`
	TransactionIDBase58Check string `json:"TransactionIDBase58Check"`
	TotalInputNanos          uint64 `json:"TotalInputNanos"`
	ChangeAmountNanos        uint64 `json:"ChangeAmountNanos"`
	FeeNanos                 uint64 `json:"FeeNanos"`
}

type SendDeSoRequest struct {
	SenderPublicKeyBase58Check   string `json:"SenderPublicKeyBase58Check"`
	RecipientPublicKeyOrUsername string `json:"RecipientPublicKeyOrUsername"`
	AmountNanos                  uint64 `json:"AmountNanos"`
	MinFeeRateNanosPerKB         uint64 `json:"MinFeeRateNanosPerKB"`
}

type SendDeSoResponse struct {
	UnsignedTransaction
	SpendAmountNanos uint64 `json:"SpendAmountNanos"`
}

type TransferCreatorCoinRequest struct {
	SenderPublicKeyBase58Check             string `json:"SenderPublicKeyBase58Check"`
	CreatorPublicKeyBase58Check            string `json:"CreatorPublicKeyBase58Check"`
	ReceiverUsernameOrPublicKeyBase58Check string `json:"ReceiverUsernameOrPublicKeyBase58Check"`
	CreatorCoinToTransferNanos             uint64 `json:"CreatorCoinToTransferNanos"`
	MinFeeRateNanosPerKB                   uint64 `json:"MinFeeRateNanosPerKB"`
}

type TransferCreatorCoinResponse struct {
	UnsignedTransaction
}

// CreatorCoinOperation is the OperationType of a buy-or-sell call.
type CreatorCoinOperation string

const (
	CreatorCoinBuy  CreatorCoinOperation = "buy"
	CreatorCoinSell CreatorCoinOperation = "sell"
)

type BuyOrSellCreatorCoinRequest struct {
	UpdaterPublicKeyBase58Check string               `json:"UpdaterPublicKeyBase58Check"`
	CreatorPublicKeyBase58Check string               `json:"CreatorPublicKeyBase58Check"`
	OperationType               CreatorCoinOperation `json:"OperationType"`
	DeSoToSellNanos             uint64               `json:"DeSoToSellNanos"`
	CreatorCoinToSellNanos      uint64               `json:"CreatorCoinToSellNanos"`
	DeSoToAddNanos              uint64               `json:"DeSoToAddNanos"`
	MinDeSoExpectedNanos        uint64               `json:"MinDeSoExpectedNanos"`
	MinCreatorCoinExpectedNanos uint64               `json:"MinCreatorCoinExpectedNanos"`
	MinFeeRateNanosPerKB        uint64               `json:"MinFeeRateNanosPerKB"`
}

type BuyOrSellCreatorCoinResponse struct {
	UnsignedTransaction
	ExpectedDeSoReturnedNanos        uint64 `json:"ExpectedDeSoReturnedNanos"`
	ExpectedCreatorCoinReturnedNanos uint64 `json:"ExpectedCreatorCoinReturnedNanos"`
	FounderRewardGeneratedNanos      uint64 `json:"FounderRewardGeneratedNanos"`
}

type SendMessageStatelessRequest struct {
	SenderPublicKeyBase58Check    string `json:"SenderPublicKeyBase58Check"`
	RecipientPublicKeyBase58Check string `json:"RecipientPublicKeyBase58Check"`
	MessageText                   string `json:"MessageText"`
	MinFeeRateNanosPerKB          uint64 `json:"MinFeeRateNanosPerKB"`
}

type SendMessageResponse struct {
	UnsignedTransaction
	TstampNanos uint64 `json:"TstampNanos"`
}

type PostBody struct {
	Body      string   `json:"Body"`
	ImageURLs []string `json:"ImageURLs"`
	VideoURLs []string `json:"VideoURLs"`
}

type SubmitPostRequest struct {
	UpdaterPublicKeyBase58Check string            `json:"UpdaterPublicKeyBase58Check"`
	PostHashHexToModify         string            `json:"PostHashHexToModify"`
	ParentStakeID               string            `json:"ParentStakeID"`
	Title                       string            `json:"Title"`
	BodyObj                     PostBody          `json:"BodyObj"`
	RepostedPostHashHex         string            `json:"RepostedPostHashHex"`
	PostExtraData               map[string]string `json:"PostExtraData"`
	Sub                         string            `json:"Sub"`
	IsHidden                    bool              `json:"IsHidden"`
	MinFeeRateNanosPerKB        uint64            `json:"MinFeeRateNanosPerKB"`
}

type SubmitPostResponse struct {
	UnsignedTransaction
	TstampNanos uint64 `json:"TstampNanos"`
	PostHashHex string `json:"PostHashHex"`
}

type CreateFollowTxnStatelessRequest struct {
	FollowerPublicKeyBase58Check string `json:"FollowerPublicKeyBase58Check"`
	FollowedPublicKeyBase58Check string `json:"FollowedPublicKeyBase58Check"`
	IsUnfollow                   bool   `json:"IsUnfollow"`
	MinFeeRateNanosPerKB         uint64 `json:"MinFeeRateNanosPerKB"`
}

type CreateFollowResponse struct {
	UnsignedTransaction
}

type CreateLikeStatelessRequest struct {
	ReaderPublicKeyBase58Check string `json:"ReaderPublicKeyBase58Check"`
	LikedPostHashHex           string `json:"LikedPostHashHex"`
	IsUnlike                   bool   `json:"IsUnlike"`
	MinFeeRateNanosPerKB       uint64 `json:"MinFeeRateNanosPerKB"`
}

type CreateLikeResponse struct {
	UnsignedTransaction
}

type SendDiamondsRequest struct {
	SenderPublicKeyBase58Check   string `json:"SenderPublicKeyBase58Check"`
	ReceiverPublicKeyBase58Check string `json:"ReceiverPublicKeyBase58Check"`
	DiamondPostHashHex           string `json:"DiamondPostHashHex"`
	DiamondLevel                 int    `json:"DiamondLevel"`
	MinFeeRateNanosPerKB         uint64 `json:"MinFeeRateNanosPerKB"`
}

type SendDiamondsResponse struct {
	UnsignedTransaction
}

// ============================================================================
// Submission
// ============================================================================

type SubmitTransactionRequest struct {
	TransactionHex string `json:"TransactionHex"`
}

// SubmitTransactionResponse is the node's answer to a submission.
// TxnHashHex is filled from the signed bytes when the node omits it.
type SubmitTransactionResponse struct {
	TxnHashHex        string          `json:"TxnHashHex"`
	Transaction       json.RawMessage `json:"Transaction"`
	PostEntryResponse *Post           `json:"PostEntryResponse"`
}
