// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"accounts/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CreateAccountInput defines the data required to create a new account.
type CreateAccountInput struct {
	Username string `json:"username"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginInput defines the data required to authenticate.
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateAccountInput defines the data required to update profile data.
type UpdateAccountInput struct {
	Email string `json:"email" validate:"required"`
}

// UpdatePasswordInput defines the data required to rotate a password.
type UpdatePasswordInput struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

// --- Output DTO ---

// AccountOutput is the credential-stripped view of an account. It never
// carries the password digest or salt; the token is present only on the
// view returned from a successful login.
type AccountOutput struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Token    string    `json:"token,omitempty"`
}

// NewAccountOutput builds the safe view of an account. The digest and salt
// fields are dropped by construction.
func NewAccountOutput(account *entity.Account) *AccountOutput {
	return &AccountOutput{
		ID:       account.ID,
		Username: account.Username,
		Email:    account.Email,
		Token:    account.Token,
	}
}

// AccountUsecase defines the interface for account-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AccountUsecase interface {
	CreateAccount(ctx context.Context, input *CreateAccountInput) (*AccountOutput, error)
	Login(ctx context.Context, input *LoginInput) (*AccountOutput, error)
	GetAccount(ctx context.Context, id uuid.UUID) (*AccountOutput, error)
	UpdateAccount(ctx context.Context, id uuid.UUID, input *UpdateAccountInput) (*AccountOutput, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, input *UpdatePasswordInput) (*AccountOutput, error)
	DeleteAccount(ctx context.Context, id uuid.UUID) error
}
