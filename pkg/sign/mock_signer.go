package sign

import (
	"bytes"
	"sync"
)

var _ Signer = (*MockSigner)(nil)

// MockSigner records every digest it signs and returns a predictable
// signature: the digest prefixed with the signer id. Setting Err makes
// Sign fail.
type MockSigner struct {
	publicKey PublicKey
	Err       error

	mu      sync.Mutex
	digests [][]byte
}

// NewMockSigner creates a MockSigner whose public key and address are id.
func NewMockSigner(id string) *MockSigner {
	return &MockSigner{publicKey: NewMockPublicKey(id)}
}

func (m *MockSigner) Sign(digest []byte) (Signature, error) {
	m.mu.Lock()
	m.digests = append(m.digests, bytes.Clone(digest))
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	return Signature(append([]byte(m.publicKey.Address().String()), digest...)), nil
}

func (m *MockSigner) PublicKey() PublicKey {
	return m.publicKey
}

// Digests returns copies of the digests passed to Sign, in call order.
func (m *MockSigner) Digests() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([][]byte, len(m.digests))
	for i, d := range m.digests {
		out[i] = bytes.Clone(d)
	}
	return out
}

var _ PublicKey = (*MockPublicKey)(nil)

// MockPublicKey uses its id as both key bytes and address.
type MockPublicKey struct {
	id string
}

func NewMockPublicKey(id string) *MockPublicKey {
	return &MockPublicKey{id: id}
}

func (m *MockPublicKey) Address() Address {
	return NewMockAddress(m.id)
}

func (m *MockPublicKey) Bytes() []byte {
	return []byte(m.id)
}

var _ Address = (*MockAddress)(nil)

type MockAddress struct {
	id string
}

func NewMockAddress(id string) *MockAddress {
	return &MockAddress{id: id}
}

func (m *MockAddress) String() string {
	return m.id
}

func (m *MockAddress) Equals(other Address) bool {
	return m.id == other.String()
}
