package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptPasswordHasher(t *testing.T) {
	h := NewBcryptPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	assert.NoError(t, h.Verify("correct horse", hash))
	assert.ErrorIs(t, h.Verify("wrong horse", hash), ErrPasswordMismatch)
	assert.ErrorIs(t, h.Verify("correct horse", ""), ErrPasswordMismatch)

	_, err = h.Hash("short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestNewBcryptPasswordHasher_InvalidCostFallsBack(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptPasswordHasher(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptPasswordHasher(99).cost)
}
