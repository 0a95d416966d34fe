package auth

import (
	"testing"

	"accounts/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgon2Hasher_CreateSalt(t *testing.T) {
	hasher := NewArgon2Hasher()

	salt, err := hasher.CreateSalt()
	require.NoError(t, err)
	assert.Len(t, salt, service.SaltLength)

	// Two salts from a secure source must not collide.
	other, err := hasher.CreateSalt()
	require.NoError(t, err)
	assert.NotEqual(t, salt, other)
}

func TestArgon2Hasher_HashIsDeterministicPerSalt(t *testing.T) {
	hasher := NewArgon2Hasher()
	password := "StrongPass123!"

	salt, err := hasher.CreateSalt()
	require.NoError(t, err)

	first := hasher.Hash(password, salt)
	second := hasher.Hash(password, salt)

	assert.Len(t, first, digestLength)
	assert.Equal(t, first, second)
}

func TestArgon2Hasher_DifferentSaltsYieldDifferentDigests(t *testing.T) {
	hasher := NewArgon2Hasher()
	password := "StrongPass123!"

	saltA, err := hasher.CreateSalt()
	require.NoError(t, err)
	saltB, err := hasher.CreateSalt()
	require.NoError(t, err)

	assert.NotEqual(t, hasher.Hash(password, saltA), hasher.Hash(password, saltB))
}

func TestArgon2Hasher_Verify(t *testing.T) {
	hasher := NewArgon2Hasher()
	password := "StrongPass123!"

	salt, err := hasher.CreateSalt()
	require.NoError(t, err)
	digest := hasher.Hash(password, salt)

	assert.True(t, hasher.Verify(password, salt, digest))
	assert.False(t, hasher.Verify("WrongPassword123!", salt, digest))
	assert.False(t, hasher.Verify("", salt, digest))

	// A digest computed under another salt must not verify.
	otherSalt, err := hasher.CreateSalt()
	require.NoError(t, err)
	assert.False(t, hasher.Verify(password, otherSalt, digest))
}
