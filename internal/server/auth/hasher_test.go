package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndCompare(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("Secr3t!pw")
	require.NoError(t, err)
	assert.NotEqual(t, "Secr3t!pw", hash)

	assert.NoError(t, h.Compare("Secr3t!pw", hash))
	assert.ErrorIs(t, h.Compare("wrong", hash), ErrPasswordMismatch)
}

func TestBcryptHasher_UsesConfiguredCost(t *testing.T) {
	h := NewBcryptHasher(5)
	hash, err := h.Hash("Secr3t!pw")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, 5, cost)
}

func TestBcryptHasher_ClampsCost(t *testing.T) {
	assert.Equal(t, bcrypt.MinCost, NewBcryptHasher(0).cost)
	assert.Equal(t, bcrypt.MaxCost, NewBcryptHasher(99).cost)
}

func TestBcryptHasher_TooLong(t *testing.T) {
	_, err := NewBcryptHasher(bcrypt.MinCost).Hash(strings.Repeat("A1!", 30))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestBcryptHasher_MalformedHash(t *testing.T) {
	err := NewBcryptHasher(bcrypt.MinCost).Compare("x", "not-a-hash")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrPasswordMismatch)
}
