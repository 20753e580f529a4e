package rpc_test

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/Muvon/bitclout-node-api/pkg/rpc"
)

var _ rpc.Transport = (*MockTransport)(nil)

// MockHandler answers one method in a MockTransport.
type MockHandler func(req rpc.Request) ([]byte, error)

// MockTransport is an in-memory node. Unregistered methods answer 404.
type MockTransport struct {
	mu       sync.Mutex
	handlers map[rpc.Method]MockHandler
	requests []rpc.Request
}

func NewMockTransport() *MockTransport {
	return &MockTransport{handlers: make(map[rpc.Method]MockHandler)}
}

func (m *MockTransport) RegisterHandler(method rpc.Method, h MockHandler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[method] = h
}

func (m *MockTransport) Send(_ context.Context, req rpc.Request) ([]byte, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	h, ok := m.handlers[req.Method]
	m.mu.Unlock()

	if !ok {
		return nil, &rpc.NodeError{StatusCode: 404, Message: "no handler for " + req.Method.String()}
	}
	return h(req)
}

// Requests returns the requests seen so far, in order.
func (m *MockTransport) Requests() []rpc.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]rpc.Request(nil), m.requests...)
}

// RequestsFor returns the requests seen for method.
func (m *MockTransport) RequestsFor(method rpc.Method) []rpc.Request {
	var out []rpc.Request
	for _, req := range m.Requests() {
		if req.Method == method {
			out = append(out, req)
		}
	}
	return out
}

func registerJSON(m *MockTransport, method rpc.Method, response any) {
	m.RegisterHandler(method, func(rpc.Request) ([]byte, error) {
		return json.Marshal(response)
	})
}

func registerError(m *MockTransport, method rpc.Method, status int, msg string) {
	m.RegisterHandler(method, func(rpc.Request) ([]byte, error) {
		return nil, &rpc.NodeError{StatusCode: status, Message: msg}
	})
}

func decodeBody[T any](req rpc.Request) (T, error) {
	var v T
	err := json.Unmarshal(req.Body, &v)
	return v, err
}
