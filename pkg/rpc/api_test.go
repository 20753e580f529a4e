package rpc_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Muvon/bitclout-node-api/pkg/rpc"
)

func TestNanosConversion(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0.000000001", rpc.NanosToDeSo(1).String())
	assert.Equal(t, "12.345", rpc.NanosToDeSo(12_345_000_000).String())

	tests := []struct {
		amount  string
		nanos   uint64
		wantErr bool
	}{
		{"1", 1_000_000_000, false},
		{"0.5", 500_000_000, false},
		{"0.000000001", 1, false},
		{"0", 0, false},
		{"0.0000000001", 0, true},
		{"-1", 0, true},
		{"100000000000", 0, true},
	}

	for _, tc := range tests {
		nanos, err := rpc.DeSoToNanos(decimal.RequireFromString(tc.amount))
		if tc.wantErr {
			assert.Error(t, err, tc.amount)
			continue
		}
		require.NoError(t, err, tc.amount)
		assert.Equal(t, tc.nanos, nanos, tc.amount)
	}
}

func TestBuildResponses_EmbedUnsignedTransaction(t *testing.T) {
	t.Parallel()

	var res rpc.BuyOrSellCreatorCoinResponse
	require.NoError(t, json.Unmarshal([]byte(`{
		"TransactionHex": "0100",
		"FeeNanos": 170,
		"ExpectedDeSoReturnedNanos": 9
	}`), &res))

	assert.Equal(t, "0100", res.TransactionHex)
	assert.Equal(t, uint64(170), res.FeeNanos)
	assert.Equal(t, uint64(9), res.ExpectedDeSoReturnedNanos)
}

func TestNodeError(t *testing.T) {
	t.Parallel()

	err := &rpc.NodeError{StatusCode: 500}
	assert.Equal(t, "node responded with status 500", err.Error())

	err = &rpc.NodeError{StatusCode: 400, Message: "bad"}
	assert.Equal(t, "node responded with status 400: bad", err.Error())
}
