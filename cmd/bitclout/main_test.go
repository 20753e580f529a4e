package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Muvon/bitclout-node-api/pkg/rpc"
	"github.com/Muvon/bitclout-node-api/pkg/tx"
)

const (
	testSeedPhrase = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
	testAddress    = "BC1YLiutYtrRGr5yYdMK91KYbhixJwg4JPA2f9xibPFr8pNMxmUsgxX"
)

// fakeNode answers the few endpoints the commands below use and keeps
// the decoded request bodies per path.
type fakeNode struct {
	mu     sync.Mutex
	bodies map[string][]map[string]any
}

func newFakeNode(t *testing.T) (*fakeNode, *httptest.Server) {
	n := &fakeNode{bodies: make(map[string][]map[string]any)}
	srv := httptest.NewServer(http.HandlerFunc(n.serve))
	t.Cleanup(srv.Close)
	return n, srv
}

func (n *fakeNode) serve(w http.ResponseWriter, r *http.Request) {
	data, _ := io.ReadAll(r.Body)
	var body map[string]any
	_ = json.Unmarshal(data, &body)

	n.mu.Lock()
	n.bodies[r.URL.Path] = append(n.bodies[r.URL.Path], body)
	n.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/api/v1/balance":
		_, _ = io.WriteString(w, `{"ConfirmedBalanceNanos":1500000000,"UnconfirmedBalanceNanos":1500000000}`)
	case "/api/v0/send-deso":
		_, _ = io.WriteString(w, `{"TransactionHex":"01aabbcc00","TransactionIDBase58Check":"3JuEt","FeeNanos":168,"SpendAmountNanos":250000000}`)
	case "/api/v0/submit-transaction":
		_, _ = io.WriteString(w, `{"TxnHashHex":"feedface"}`)
	case "/api/v0/get-single-profile":
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":"GetSingleProfile: could not find profile"}`)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (n *fakeNode) requests(path string) []map[string]any {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.bodies[path]
}

// setupEnv points the CLI at srv with the test seed phrase and an
// isolated history database.
func setupEnv(t *testing.T, nodeURL string) string {
	t.Helper()
	clearEnv(t)

	dir := t.TempDir()
	t.Setenv("BITCLOUT_URL", nodeURL)
	t.Setenv("BITCLOUT_SEED_PHRASE", testSeedPhrase)
	t.Setenv("BITCLOUT_HISTORY_DB", filepath.Join(dir, "history.db"))
	t.Setenv("LOG_OUTPUT", filepath.Join(dir, "bitclout.log"))
	return dir
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer

	cmd := newRootCmd()
	cmd.SetArgs(append([]string{"--env-file", filepath.Join(t.TempDir(), "none.env")}, args...))
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCLI_Keys(t *testing.T) {
	setupEnv(t, "")

	t.Run("derive from env", func(t *testing.T) {
		out, err := execute(t, "", "keys", "derive", "--count", "2")
		require.NoError(t, err)
		assert.Contains(t, out, testAddress)
		assert.Contains(t, out, "m/44'/0'/0'/0/0")
		assert.Contains(t, out, "m/44'/0'/0'/0/1")
	})

	t.Run("derive from stdin", func(t *testing.T) {
		t.Setenv("BITCLOUT_SEED_PHRASE", "")

		out, err := execute(t, testSeedPhrase+"\n", "keys", "derive")
		require.NoError(t, err)
		assert.Contains(t, out, testAddress)
	})

	t.Run("derive rejects a bad phrase", func(t *testing.T) {
		t.Setenv("BITCLOUT_SEED_PHRASE", "")

		_, err := execute(t, "abandon abandon\n", "keys", "derive")
		assert.Error(t, err)
	})

	t.Run("generate", func(t *testing.T) {
		out, err := execute(t, "", "keys", "generate")
		require.NoError(t, err)
		assert.Contains(t, out, "BC1YL")
		assert.Contains(t, out, "mainnet")
	})

	t.Run("decode", func(t *testing.T) {
		out, err := execute(t, "", "keys", "decode", testAddress)
		require.NoError(t, err)
		assert.Contains(t, out, "03aaeb52dd7494c361049de67cc680e83ebcbbbdbeb13637d92cd845f70308af5e")

		_, err = execute(t, "", "keys", "decode", testAddress[:len(testAddress)-1]+"Y")
		assert.Error(t, err)
	})
}

func TestCLI_TxID(t *testing.T) {
	setupEnv(t, "")

	out, err := execute(t, "", "tx", "id", "68656c6c6f")
	require.NoError(t, err)
	assert.Equal(t, "9595c9df90075148eb06860365df33584b75bff782a510c6cd4883a419833d50\n", out)
}

func TestCLI_Balance(t *testing.T) {
	node, srv := newFakeNode(t)
	setupEnv(t, srv.URL)

	out, err := execute(t, "", "balance", "--metrics")
	require.NoError(t, err)

	assert.Contains(t, out, testAddress)
	assert.Contains(t, out, "1.500000000 DESO")
	assert.Contains(t, out, "bitclout_node_requests_total")
	assert.Contains(t, out, "method=api/v1/balance,mode=read,status=ok")

	reqs := node.requests("/api/v1/balance")
	require.Len(t, reqs, 1)
	assert.Equal(t, testAddress, reqs[0]["PublicKeyBase58Check"])
}

func TestCLI_SendAndHistory(t *testing.T) {
	node, srv := newFakeNode(t)
	setupEnv(t, srv.URL)

	t.Run("dry run does not submit", func(t *testing.T) {
		out, err := execute(t, "", "send", "BC1YLrecipient", "0.25", "--dry-run")
		require.NoError(t, err)
		assert.Contains(t, out, "0.250000000 DESO")
		assert.Empty(t, node.requests("/api/v0/submit-transaction"))
	})

	t.Run("send", func(t *testing.T) {
		out, err := execute(t, "", "send", "BC1YLrecipient", "0.25")
		require.NoError(t, err)
		assert.Contains(t, out, "feedface")

		builds := node.requests("/api/v0/send-deso")
		require.Len(t, builds, 2)
		assert.Equal(t, testAddress, builds[1]["SenderPublicKeyBase58Check"])
		assert.Equal(t, float64(250_000_000), builds[1]["AmountNanos"])

		submits := node.requests("/api/v0/submit-transaction")
		require.Len(t, submits, 1)
		signed, ok := submits[0]["TransactionHex"].(string)
		require.True(t, ok)
		assert.True(t, strings.HasPrefix(signed, "01aabbcc"))
		_, err = tx.Decode(signed)
		assert.NoError(t, err)
	})

	t.Run("history lists the submission", func(t *testing.T) {
		out, err := execute(t, "", "history")
		require.NoError(t, err)
		assert.Contains(t, out, "feedface")
		assert.Contains(t, out, rpc.SendDeSoMethod.String())
	})

	t.Run("invalid amount", func(t *testing.T) {
		for _, amount := range []string{"abc", "-1", "0", "0.0000000001"} {
			_, err := execute(t, "", "send", "BC1YLrecipient", amount)
			assert.Error(t, err, amount)
		}
	})
}

func TestCLI_NodeError(t *testing.T) {
	_, srv := newFakeNode(t)
	setupEnv(t, srv.URL)

	_, err := execute(t, "", "profile", "nobody")
	var nodeErr *rpc.NodeError
	require.ErrorAs(t, err, &nodeErr)
	assert.Equal(t, http.StatusNotFound, nodeErr.StatusCode)
	assert.Contains(t, nodeErr.Message, "could not find profile")
}

func TestCLI_MissingNodeURL(t *testing.T) {
	setupEnv(t, "")

	_, err := execute(t, "", "balance")
	assert.ErrorIs(t, err, rpc.ErrInvalidConfig)
}
