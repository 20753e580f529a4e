package rpc

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Target is where a call goes.
type Target struct {
	Mode    Mode
	BaseURL string
	Path    string
}

// URL joins BaseURL and Path with exactly one slash.
func (t Target) URL() string {
	return strings.TrimRight(t.BaseURL, "/") + "/" + strings.TrimLeft(t.Path, "/")
}

// Request is everything a Transport needs for one call. It is built per
// call and never modified afterwards, so concurrent calls share nothing.
type Request struct {
	ID         uuid.UUID
	Method     Method
	Target     Target
	HTTPMethod string
	Body       []byte
	Proxy      *Proxy // nil means a direct connection
	UserAgent  string // empty leaves the transport default
}

// Transport performs one HTTP exchange and returns the response body.
// Implementations return *NodeError for non-2xx statuses and wrap
// ErrSendingRequest for network failures. Calls are never retried.
type Transport interface {
	Send(ctx context.Context, req Request) ([]byte, error)
}

// HTTPTransportConfig holds the fixed timeouts of an HTTPTransport.
type HTTPTransportConfig struct {
	ConnectTimeout  time.Duration
	Timeout         time.Duration
	MaxResponseSize int64
}

// DefaultHTTPTransportConfig: 10s to connect, 30s for the whole exchange.
var DefaultHTTPTransportConfig = HTTPTransportConfig{
	ConnectTimeout:  10 * time.Second,
	Timeout:         30 * time.Second,
	MaxResponseSize: 32 << 20,
}

var _ Transport = (*HTTPTransport)(nil)

// HTTPTransport sends JSON requests with net/http. The proxy of each
// request is chosen from the request's context, so one connection pool
// serves every proxy in rotation.
type HTTPTransport struct {
	client  *http.Client
	maxSize int64
}

type proxyContextKey struct{}

// NewHTTPTransport creates an HTTPTransport. Zero fields of cfg take the
// values from DefaultHTTPTransportConfig.
func NewHTTPTransport(cfg HTTPTransportConfig) *HTTPTransport {
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = DefaultHTTPTransportConfig.ConnectTimeout
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultHTTPTransportConfig.Timeout
	}
	if cfg.MaxResponseSize <= 0 {
		cfg.MaxResponseSize = DefaultHTTPTransportConfig.MaxResponseSize
	}

	dialer := &net.Dialer{Timeout: cfg.ConnectTimeout, KeepAlive: 30 * time.Second}
	tr := &http.Transport{
		Proxy:                 proxyFromContext,
		DialContext:           dialer.DialContext,
		TLSHandshakeTimeout:   cfg.ConnectTimeout,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		ExpectContinueTimeout: time.Second,
	}

	return &HTTPTransport{
		client:  &http.Client{Transport: tr, Timeout: cfg.Timeout},
		maxSize: cfg.MaxResponseSize,
	}
}

func proxyFromContext(r *http.Request) (*url.URL, error) {
	if p, ok := r.Context().Value(proxyContextKey{}).(*Proxy); ok && p != nil {
		return p.URL(), nil
	}
	return nil, nil
}

// Send implements Transport.
func (t *HTTPTransport) Send(ctx context.Context, req Request) ([]byte, error) {
	if req.Proxy != nil {
		ctx = context.WithValue(ctx, proxyContextKey{}, req.Proxy)
	}

	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.HTTPMethod, req.Target.URL(), body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingRequest, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.UserAgent != "" {
		httpReq.Header.Set("User-Agent", req.UserAgent)
	}

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSendingRequest, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, t.maxSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadingResponse, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newNodeError(resp.StatusCode, data)
	}
	return data, nil
}
