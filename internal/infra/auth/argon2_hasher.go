// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/rand"
	"crypto/subtle"

	"accounts/internal/domain/service"

	"github.com/pkg/errors"
	"golang.org/x/crypto/argon2"
)

// Fixed Argon2id cost parameters. Changing them invalidates every stored
// digest, so treat them as part of the storage format.
const (
	argonTime    = 2
	argonMemory  = 1024 // KiB
	argonThreads = 2
	digestLength = 16
)

// argon2Hasher is a concrete implementation of the PasswordHasher interface using Argon2id.
type argon2Hasher struct{}

// NewArgon2Hasher is the constructor for argon2Hasher.
// It returns the implementation as a service.PasswordHasher interface.
func NewArgon2Hasher() service.PasswordHasher {
	return &argon2Hasher{}
}

// CreateSalt returns a fresh random salt from a cryptographically secure source.
func (h *argon2Hasher) CreateSalt() ([]byte, error) {
	salt := make([]byte, service.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, errors.Wrap(err, "failed to read random salt")
	}

	return salt, nil
}

// Hash derives a one-way digest from a plaintext password and a salt.
// The derivation is deterministic for a given (password, salt) pair.
func (h *argon2Hasher) Hash(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, digestLength)
}

// Verify recomputes the digest and compares it against the stored one in
// constant time, so a mismatch position cannot leak through timing.
func (h *argon2Hasher) Verify(password string, salt, digest []byte) bool {
	computed := h.Hash(password, salt)

	return subtle.ConstantTimeCompare(computed, digest) == 1
}
