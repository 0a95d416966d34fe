package service

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenClaims defines the custom claims carried by issued bearer tokens.
type TokenClaims struct {
	AccountID uuid.UUID
	jwt.RegisteredClaims
}

// TokenIssuer defines the interface for issuing and validating bearer tokens.
// This abstracts the details of token creation from the use cases.
type TokenIssuer interface {
	// Generate issues a signed, time-bounded token whose subject is the
	// account identifier. Issuance has no side effects.
	Generate(accountID uuid.UUID) (string, error)

	// Parse checks the signature and expiry of a token string and returns
	// the claims bound to it.
	Parse(tokenString string) (*TokenClaims, error)
}
