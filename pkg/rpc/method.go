package rpc

import (
	"net/http"
	"strings"
)

// Method is a node API endpoint name. Names starting with "api/" are
// complete paths; every other name lives under "api/v0/".
type Method string

// String returns the string representation of the method.
func (m Method) String() string {
	return string(m)
}

// Chain primitives served under api/v1.
const (
	GetNodeInfoMethod        Method = "api/v1"
	GetBlockMethod           Method = "api/v1/block"
	GetTransactionInfoMethod Method = "api/v1/transaction-info"
	GetBalanceMethod         Method = "api/v1/balance"
)

// Read-only queries.
const (
	GetUsersStatelessMethod       Method = "get-users-stateless"
	GetSingleProfileMethod        Method = "get-single-profile"
	GetProfilesMethod             Method = "get-profiles"
	GetSinglePostMethod           Method = "get-single-post"
	GetPostsStatelessMethod       Method = "get-posts-stateless"
	GetPostsForPublicKeyMethod    Method = "get-posts-for-public-key"
	GetNotificationsMethod        Method = "get-notifications"
	GetHodlersForPublicKeyMethod  Method = "get-hodlers-for-public-key"
	GetDiamondsForPublicKeyMethod Method = "get-diamonds-for-public-key"
	GetFollowsStatelessMethod     Method = "get-follows-stateless"
	GetExchangeRateMethod         Method = "get-exchange-rate"
)

// Transaction builders. Each returns an unsigned TransactionHex.
const (
	SendDeSoMethod                 Method = "send-deso"
	TransferCreatorCoinMethod      Method = "transfer-creator-coin"
	BuyOrSellCreatorCoinMethod     Method = "buy-or-sell-creator-coin"
	SendMessageStatelessMethod     Method = "send-message-stateless"
	SubmitPostMethod               Method = "submit-post"
	CreateFollowTxnStatelessMethod Method = "create-follow-txn-stateless"
	CreateLikeStatelessMethod      Method = "create-like-stateless"
	SendDiamondsMethod             Method = "send-diamonds"
)

// SubmitTransactionMethod broadcasts a signed transaction.
const SubmitTransactionMethod Method = "submit-transaction"

type methodKind uint8

const (
	kindQuery methodKind = iota
	kindBuild
	kindSubmit
)

type methodSpec struct {
	kind       methodKind
	httpMethod string
	// response is the zero value the endpoint's JSON decodes into.
	response any
}

var methodTable = map[Method]methodSpec{
	GetNodeInfoMethod:        {kindQuery, http.MethodGet, NodeInfoResponse{}},
	GetBlockMethod:           {kindQuery, http.MethodPost, BlockResponse{}},
	GetTransactionInfoMethod: {kindQuery, http.MethodPost, TransactionInfoResponse{}},
	GetBalanceMethod:         {kindQuery, http.MethodPost, BalanceResponse{}},

	GetUsersStatelessMethod:       {kindQuery, http.MethodPost, GetUsersStatelessResponse{}},
	GetSingleProfileMethod:        {kindQuery, http.MethodPost, GetSingleProfileResponse{}},
	GetProfilesMethod:             {kindQuery, http.MethodPost, GetProfilesResponse{}},
	GetSinglePostMethod:           {kindQuery, http.MethodPost, GetSinglePostResponse{}},
	GetPostsStatelessMethod:       {kindQuery, http.MethodPost, GetPostsStatelessResponse{}},
	GetPostsForPublicKeyMethod:    {kindQuery, http.MethodPost, GetPostsForPublicKeyResponse{}},
	GetNotificationsMethod:        {kindQuery, http.MethodPost, GetNotificationsResponse{}},
	GetHodlersForPublicKeyMethod:  {kindQuery, http.MethodPost, GetHodlersResponse{}},
	GetDiamondsForPublicKeyMethod: {kindQuery, http.MethodPost, GetDiamondsForPublicKeyResponse{}},
	GetFollowsStatelessMethod:     {kindQuery, http.MethodPost, GetFollowsResponse{}},
	GetExchangeRateMethod:         {kindQuery, http.MethodGet, ExchangeRateResponse{}},

	SendDeSoMethod:                 {kindBuild, http.MethodPost, SendDeSoResponse{}},
	TransferCreatorCoinMethod:      {kindBuild, http.MethodPost, TransferCreatorCoinResponse{}},
	BuyOrSellCreatorCoinMethod:     {kindBuild, http.MethodPost, BuyOrSellCreatorCoinResponse{}},
	SendMessageStatelessMethod:     {kindBuild, http.MethodPost, SendMessageResponse{}},
	SubmitPostMethod:               {kindBuild, http.MethodPost, SubmitPostResponse{}},
	CreateFollowTxnStatelessMethod: {kindBuild, http.MethodPost, CreateFollowResponse{}},
	CreateLikeStatelessMethod:      {kindBuild, http.MethodPost, CreateLikeResponse{}},
	SendDiamondsMethod:             {kindBuild, http.MethodPost, SendDiamondsResponse{}},

	SubmitTransactionMethod: {kindSubmit, http.MethodPost, SubmitTransactionResponse{}},
}

// Mode returns ModeWrite for transaction builders and submission, and
// ModeRead for everything else, including names missing from the table.
func (m Method) Mode() Mode {
	spec, ok := methodTable[m]
	if !ok {
		return ModeRead
	}
	switch spec.kind {
	case kindBuild, kindSubmit:
		return ModeWrite
	default:
		return ModeRead
	}
}

// HTTPMethod returns the verb the endpoint expects; unknown names use POST.
func (m Method) HTTPMethod() string {
	if spec, ok := methodTable[m]; ok {
		return spec.httpMethod
	}
	return http.MethodPost
}

// Path returns the URL path of the endpoint, without a leading slash.
func (m Method) Path() string {
	name := strings.TrimPrefix(string(m), "/")
	if strings.HasPrefix(name, "api/") || name == "api" {
		return name
	}
	return "api/v0/" + name
}

// Mode selects the node endpoint a call is sent to.
type Mode uint8

const (
	ModeRead Mode = iota
	ModeWrite
)

func (m Mode) String() string {
	switch m {
	case ModeRead:
		return "read"
	case ModeWrite:
		return "write"
	default:
		return "unknown"
	}
}
