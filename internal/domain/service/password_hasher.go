// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// SaltLength is the number of random bytes generated per account.
const SaltLength = 16

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying derivation algorithm (e.g., Argon2id), keeping the domain pure.
type PasswordHasher interface {
	// CreateSalt returns SaltLength bytes from a cryptographically secure source.
	CreateSalt() ([]byte, error)

	// Hash derives a one-way digest from a plaintext password and a salt.
	// The same (password, salt) pair always yields the same digest.
	Hash(password string, salt []byte) []byte

	// Verify recomputes the digest from (password, salt) and compares it
	// against the stored digest in constant time.
	Verify(password string, salt, digest []byte) bool
}
