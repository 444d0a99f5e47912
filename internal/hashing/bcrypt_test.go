package hashing

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBcrypt(t *testing.T) *BcryptHasher {
	t.Helper()
	h, err := NewBcryptHasher(MinCost)
	require.NoError(t, err)
	return h
}

func TestNewBcryptHasher_CostBounds(t *testing.T) {
	for _, cost := range []int{MinCost, DefaultCost, MaxCost} {
		h, err := NewBcryptHasher(cost)
		require.NoError(t, err, "cost %d", cost)
		assert.Equal(t, cost, h.Cost())
	}
	for _, cost := range []int{-1, 0, 3, 32, 99} {
		_, err := NewBcryptHasher(cost)
		assert.ErrorIs(t, err, ErrInvalidCostFactor, "cost %d", cost)
	}
}

func TestBcryptHasher_HashVerifyRoundTrip(t *testing.T) {
	h := newTestBcrypt(t)

	res, err := h.Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.Hash, "$2a$04$"), res.Hash)
	assert.Len(t, res.Salt, bcryptSaltLen)
	assert.Contains(t, res.Hash, res.Salt)

	assert.True(t, h.Verify("correct horse battery staple", res.Hash))
	assert.False(t, h.Verify("Tr0ub4dor&3", res.Hash))
}

func TestBcryptHasher_SamePasswordDifferentHashes(t *testing.T) {
	h := newTestBcrypt(t)

	a, err := h.Hash("secret")
	require.NoError(t, err)
	b, err := h.Hash("secret")
	require.NoError(t, err)

	assert.NotEqual(t, a.Hash, b.Hash)
	assert.NotEqual(t, a.Salt, b.Salt)
	assert.True(t, h.Verify("secret", a.Hash))
	assert.True(t, h.Verify("secret", b.Hash))
}

func TestBcryptHasher_VerifyMalformed(t *testing.T) {
	h := newTestBcrypt(t)
	for _, encoded := range []string{"", "plain", "$2a$04$short", "$argon2id$v=19$m=8,t=1,p=1$AAAA$AAAA"} {
		assert.False(t, h.Verify("secret", encoded), encoded)
	}
}

func TestBcryptHasher_VerifyIgnoresConfiguredCost(t *testing.T) {
	low := newTestBcrypt(t)
	res, err := low.Hash("secret")
	require.NoError(t, err)

	other, err := NewBcryptHasher(MinCost + 1)
	require.NoError(t, err)
	assert.True(t, other.Verify("secret", res.Hash))
}

func TestBcryptHasher_LongPasswordTruncated(t *testing.T) {
	h := newTestBcrypt(t)
	prefix := strings.Repeat("a", MaxBcryptPasswordBytes)

	res, err := h.Hash(prefix + "tail")
	require.NoError(t, err)

	assert.True(t, h.Verify(prefix+"tail", res.Hash))
	assert.True(t, h.Verify(prefix+"other", res.Hash))
	assert.True(t, h.Verify(prefix, res.Hash))
	assert.False(t, h.Verify(prefix[1:], res.Hash))
}

func TestBcryptHasher_MultiByteOver72Bytes(t *testing.T) {
	h := newTestBcrypt(t)
	pw := strings.Repeat("🔐", 19)

	res, err := h.Hash(pw)
	require.NoError(t, err)
	assert.True(t, h.Verify(pw, res.Hash))
}

func TestBcryptHasher_Info(t *testing.T) {
	h := newTestBcrypt(t)
	res, err := h.Hash("secret")
	require.NoError(t, err)

	info, err := h.Info(res.Hash)
	require.NoError(t, err)
	assert.Equal(t, AlgorithmBcrypt, info.Algorithm)
	assert.Equal(t, MinCost, info.Cost)
	assert.Equal(t, res.Salt, info.Params["salt"])

	_, err = h.Info("garbage")
	assert.ErrorIs(t, err, ErrInvalidHash)
}

func TestBcryptHasher_Concurrent(t *testing.T) {
	h := newTestBcrypt(t)

	var wg sync.WaitGroup
	hashes := make([]string, 8)
	for i := range hashes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := h.Hash("shared")
			if assert.NoError(t, err) {
				hashes[i] = res.Hash
			}
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool)
	for _, encoded := range hashes {
		assert.False(t, seen[encoded], "duplicate hash")
		seen[encoded] = true
		assert.True(t, h.Verify("shared", encoded))
	}
}
