package security

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_SaltsEveryHash(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	ctx := context.Background()

	first, err := h.Hash(ctx, "s3cret")
	require.NoError(t, err)
	second, err := h.Hash(ctx, "s3cret")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasPrefix(string(first), "$2"))
	assert.True(t, h.Verify(ctx, "s3cret", first))
	assert.True(t, h.Verify(ctx, "s3cret", second))
}

func TestBcryptHasher_RejectsWrongPassword(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	digest, err := h.Hash(context.Background(), "right")
	require.NoError(t, err)

	assert.False(t, h.Verify(context.Background(), "wrong", digest))
}

func TestBcryptHasher_MalformedDigest(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	for _, digest := range [][]byte{nil, {}, []byte("not-a-hash"), []byte("$2a$10$short")} {
		assert.False(t, h.Verify(context.Background(), "anything", digest), "digest %q", digest)
	}
}

func TestNewBcryptHasher_CostOutOfRange(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(bcrypt.MaxCost+1).cost)
	assert.Equal(t, 12, NewBcryptHasher(12).cost)
}
