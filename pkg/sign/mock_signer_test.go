package sign

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockSigner(t *testing.T) {
	signer := NewMockSigner("test-id")

	sig, err := signer.Sign([]byte("digest"))
	require.NoError(t, err)
	assert.Equal(t, Signature("test-iddigest"), sig)
	assert.Equal(t, "test-id", signer.PublicKey().Address().String())
	assert.Equal(t, []byte("test-id"), signer.PublicKey().Bytes())

	addr := NewMockAddress("a")
	assert.True(t, addr.Equals(NewMockAddress("a")))
	assert.False(t, addr.Equals(NewMockAddress("b")))
}

func TestMockSigner_ConcurrentDigests(t *testing.T) {
	signer := NewMockSigner("c")

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = signer.Sign([]byte{byte(i)})
		}()
	}
	wg.Wait()

	assert.Len(t, signer.Digests(), 20)
}
