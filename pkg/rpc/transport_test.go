package rpc_test

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Muvon/bitclout-node-api/pkg/rpc"
)

type seenRequest struct {
	Method    string
	URL       string
	Path      string
	Body      string
	UserAgent string
	ProxyAuth string
	Type      string
}

// recordingServer answers every request with body and status and keeps
// what it saw.
type recordingServer struct {
	*httptest.Server
	mu   sync.Mutex
	seen []seenRequest
}

func newRecordingServer(t *testing.T, status int, body string) *recordingServer {
	t.Helper()

	rs := &recordingServer{}
	rs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		rs.mu.Lock()
		rs.seen = append(rs.seen, seenRequest{
			Method:    r.Method,
			URL:       r.URL.String(),
			Path:      r.URL.Path,
			Body:      string(data),
			UserAgent: r.UserAgent(),
			ProxyAuth: r.Header.Get("Proxy-Authorization"),
			Type:      r.Header.Get("Content-Type"),
		})
		rs.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(rs.Close)
	return rs
}

func (rs *recordingServer) Seen() []seenRequest {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return append([]seenRequest(nil), rs.seen...)
}

func newTestRequest(baseURL string, method rpc.Method, body string) rpc.Request {
	req := rpc.Request{
		ID:         uuid.New(),
		Method:     method,
		Target:     rpc.Target{Mode: method.Mode(), BaseURL: baseURL, Path: method.Path()},
		HTTPMethod: method.HTTPMethod(),
	}
	if body != "" {
		req.Body = []byte(body)
	}
	return req
}

func TestHTTPTransport_Send(t *testing.T) {
	t.Parallel()

	srv := newRecordingServer(t, http.StatusOK, `{"TxnHashHex":"aa"}`)
	transport := rpc.NewHTTPTransport(rpc.HTTPTransportConfig{})

	req := newTestRequest(srv.URL+"/", rpc.SubmitTransactionMethod, `{"TransactionHex":"00"}`)
	req.UserAgent = "agent/1.0"

	data, err := transport.Send(context.Background(), req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"TxnHashHex":"aa"}`, string(data))

	seen := srv.Seen()
	require.Len(t, seen, 1)
	assert.Equal(t, http.MethodPost, seen[0].Method)
	assert.Equal(t, "/api/v0/submit-transaction", seen[0].Path)
	assert.Equal(t, `{"TransactionHex":"00"}`, seen[0].Body)
	assert.Equal(t, "agent/1.0", seen[0].UserAgent)
	assert.Equal(t, "application/json", seen[0].Type)
}

func TestHTTPTransport_GetHasNoBody(t *testing.T) {
	t.Parallel()

	srv := newRecordingServer(t, http.StatusOK, `{}`)
	transport := rpc.NewHTTPTransport(rpc.DefaultHTTPTransportConfig)

	_, err := transport.Send(context.Background(), newTestRequest(srv.URL, rpc.GetNodeInfoMethod, ""))
	require.NoError(t, err)

	seen := srv.Seen()
	require.Len(t, seen, 1)
	assert.Equal(t, http.MethodGet, seen[0].Method)
	assert.Equal(t, "/api/v1", seen[0].Path)
	assert.Empty(t, seen[0].Body)
	assert.Empty(t, seen[0].Type)
}

func TestHTTPTransport_NodeError(t *testing.T) {
	t.Parallel()

	t.Run("json error body", func(t *testing.T) {
		srv := newRecordingServer(t, http.StatusBadRequest, `{"error":"Insufficient balance"}`)
		_, err := rpc.NewHTTPTransport(rpc.DefaultHTTPTransportConfig).
			Send(context.Background(), newTestRequest(srv.URL, rpc.SendDeSoMethod, `{}`))

		var nodeErr *rpc.NodeError
		require.ErrorAs(t, err, &nodeErr)
		assert.Equal(t, http.StatusBadRequest, nodeErr.StatusCode)
		assert.Equal(t, "Insufficient balance", nodeErr.Message)
		assert.JSONEq(t, `{"error":"Insufficient balance"}`, string(nodeErr.Body))
		assert.Contains(t, err.Error(), "400")
	})

	t.Run("plain body", func(t *testing.T) {
		srv := newRecordingServer(t, http.StatusBadGateway, "upstream down\n")
		_, err := rpc.NewHTTPTransport(rpc.DefaultHTTPTransportConfig).
			Send(context.Background(), newTestRequest(srv.URL, rpc.GetExchangeRateMethod, ""))

		var nodeErr *rpc.NodeError
		require.ErrorAs(t, err, &nodeErr)
		assert.Equal(t, "upstream down", nodeErr.Message)
	})
}

func TestHTTPTransport_ConnectionFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()

	_, err := rpc.NewHTTPTransport(rpc.DefaultHTTPTransportConfig).
		Send(context.Background(), newTestRequest(baseURL, rpc.GetExchangeRateMethod, ""))
	assert.ErrorIs(t, err, rpc.ErrSendingRequest)

	var nodeErr *rpc.NodeError
	assert.False(t, errors.As(err, &nodeErr))
}

func TestHTTPTransport_ContextCanceled(t *testing.T) {
	t.Parallel()

	srv := newRecordingServer(t, http.StatusOK, `{}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := rpc.NewHTTPTransport(rpc.DefaultHTTPTransportConfig).
		Send(ctx, newTestRequest(srv.URL, rpc.GetExchangeRateMethod, ""))
	assert.ErrorIs(t, err, rpc.ErrSendingRequest)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHTTPTransport_Proxy(t *testing.T) {
	t.Parallel()

	proxy := newRecordingServer(t, http.StatusOK, `{"via":"proxy"}`)
	proxyURL, err := url.Parse(proxy.URL)
	require.NoError(t, err)

	req := newTestRequest("http://node.invalid", rpc.GetExchangeRateMethod, "")
	req.Proxy = &rpc.Proxy{
		Scheme:   "http",
		Host:     proxyURL.Hostname(),
		Port:     proxyURL.Port(),
		Username: "alice",
		Password: "secret",
	}

	data, err := rpc.NewHTTPTransport(rpc.DefaultHTTPTransportConfig).Send(context.Background(), req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"via":"proxy"}`, string(data))

	seen := proxy.Seen()
	require.Len(t, seen, 1)
	assert.Equal(t, "http://node.invalid/api/v0/get-exchange-rate", seen[0].URL)
	assert.Equal(t, "Basic "+base64.StdEncoding.EncodeToString([]byte("alice:secret")), seen[0].ProxyAuth)
}

func TestTarget_URL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://node.example/api/v0/send-deso",
		rpc.Target{BaseURL: "https://node.example/", Path: "api/v0/send-deso"}.URL())
	assert.Equal(t, "https://node.example/api/v1",
		rpc.Target{BaseURL: "https://node.example", Path: "/api/v1"}.URL())
}
