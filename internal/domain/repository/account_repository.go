// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"accounts/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrAccountNotFound is a domain-specific error returned when an account is not found.
// An absent record always surfaces through this sentinel, never through a nil entity.
var ErrAccountNotFound = errors.New("account not found")

// AccountRepository defines the standard operations for account persistence.
// The application layer depends on this interface, not the concrete implementation.
type AccountRepository interface {
	// FindByID retrieves a single account by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByEmail retrieves a single account by its email address.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// Create persists a new account. The caller populates the ID beforehand.
	// A unique-email conflict is reported as a domain duplicate-email error;
	// the storage constraint is the authoritative uniqueness guard.
	Create(ctx context.Context, account *entity.Account) error

	// Replace overwrites the stored account row matching the entity's ID.
	Replace(ctx context.Context, account *entity.Account) error

	// DeleteByID removes the account with the given id. Deleting a
	// non-existent id is not an error.
	DeleteByID(ctx context.Context, id uuid.UUID) error
}
