package rpc

import (
	"encoding/json"
	"fmt"
	"strings"
)

var (
	// Request errors
	ErrMarshalingRequest = fmt.Errorf("error marshaling request")
	ErrBuildingRequest   = fmt.Errorf("error building request")
	ErrSendingRequest    = fmt.Errorf("error sending request")
	ErrReadingResponse   = fmt.Errorf("error reading response")
	ErrDecodingResponse  = fmt.Errorf("error decoding response")

	// Transaction flow errors
	ErrMissingTransactionHex = fmt.Errorf("build response has no TransactionHex")
	ErrNoSigner              = fmt.Errorf("client has no signing key")
	ErrNoPublicKey           = fmt.Errorf("client has no public key")
	ErrNotFound              = fmt.Errorf("not found")
	ErrKeyMismatch           = fmt.Errorf("configured public key does not match signing key")

	// Configuration errors
	ErrInvalidConfig = fmt.Errorf("invalid config")
	ErrInvalidProxy  = fmt.Errorf("invalid proxy")
)

// NodeError is returned when the node answers with a non-2xx status.
// Message holds the node's "error" field when the body carries one.
type NodeError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func newNodeError(status int, body []byte) *NodeError {
	e := &NodeError{StatusCode: status, Body: body}

	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		e.Message = payload.Error
	} else {
		e.Message = strings.TrimSpace(string(body))
	}
	return e
}

func (e *NodeError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("node responded with status %d", e.StatusCode)
	}
	return fmt.Sprintf("node responded with status %d: %s", e.StatusCode, e.Message)
}
