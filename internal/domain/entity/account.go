// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Account is the sole entity in the system, representing a registered identity.
// PasswordDigest and Salt are written together by the password hasher and must
// never leave the core; callers receive a credential-stripped view instead.
type Account struct {
	ID             uuid.UUID // Unique identifier, assigned once at creation.
	Username       string    // Display label; not a lookup key.
	Email          string    // Business identity key, unique across accounts.
	PasswordDigest []byte    // One-way Argon2id digest of the password.
	Salt           []byte    // Per-account random salt paired with the digest.
	Token          string    // Bearer token, set in memory on login only; never persisted.
	CreatedAt      time.Time // Timestamp of when this account was created.
	UpdatedAt      time.Time // Timestamp of the last modification.
}
