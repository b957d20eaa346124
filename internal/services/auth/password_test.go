// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package auth_test

import (
	"strings"
	"testing"

	"codeberg.org/oliverandrich/music-catalog/internal/services/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHasher_HashAndVerify(t *testing.T) {
	h := auth.NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("secret1")

	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)
	assert.True(t, h.Verify("secret1", hash))
	assert.False(t, h.Verify("secret2", hash))
	assert.False(t, h.Verify("secret1", "not-a-hash"))
}

func TestHasher_SaltedHashes(t *testing.T) {
	h := auth.NewHasher(bcrypt.MinCost)

	first, err := h.Hash("secret1")
	require.NoError(t, err)
	second, err := h.Hash("secret1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestHasher_UsesConfiguredCost(t *testing.T) {
	h := auth.NewHasher(5)

	hash, err := h.Hash("secret1")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, 5, cost)
}

func TestNewHasher_ClampsCost(t *testing.T) {
	assert.Equal(t, bcrypt.MinCost, auth.NewHasher(0).Cost())
	assert.Equal(t, bcrypt.MinCost, auth.NewHasher(-3).Cost())
	assert.Equal(t, 10, auth.NewHasher(10).Cost())
}

func TestValidatePassword(t *testing.T) {
	assert.ErrorIs(t, auth.ValidatePassword(""), auth.ErrWeakPassword)
	assert.ErrorIs(t, auth.ValidatePassword("12345"), auth.ErrWeakPassword)
	assert.NoError(t, auth.ValidatePassword("123456"))
	assert.NoError(t, auth.ValidatePassword(strings.Repeat("a", 72)))
	assert.ErrorIs(t, auth.ValidatePassword(strings.Repeat("a", 73)), auth.ErrPasswordTooLong)
}

func TestValidEmail(t *testing.T) {
	tests := []struct {
		email    string
		expected bool
	}{
		{"alice@example.com", true},
		{"a.b+tag@sub.example.org", true},
		{"alice", false},
		{"alice@", false},
		{"alice@example", false},
		{"@example.com", false},
		{"alice@example.", false},
		{"Alice <alice@example.com>", false},
		{"al ice@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.expected, auth.ValidEmail(tt.email))
		})
	}
}
