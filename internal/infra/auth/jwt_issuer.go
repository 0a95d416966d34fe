package auth

import (
	"time"

	"accounts/config"
	"accounts/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// jwtIssuer is a concrete implementation of the TokenIssuer interface using the JWT standard.
// The signing secret is injected at construction and never mutated afterwards.
type jwtIssuer struct {
	secret   []byte
	tokenTTL time.Duration
}

// NewJWTIssuer is the constructor for jwtIssuer.
// It takes configuration values to create a new token issuer instance.
func NewJWTIssuer(cfg *config.Config) (service.TokenIssuer, error) {
	if cfg.SecretKey.JWT == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	return &jwtIssuer{
		secret:   []byte(cfg.SecretKey.JWT),
		tokenTTL: cfg.Auth.TokenTTL,
	}, nil
}

// Generate issues a signed HS256 token bound to the account identifier.
func (s *jwtIssuer) Generate(accountID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": accountID.String(),         // Subject (who the token is for)
		"iat": now.Unix(),                 // Issued At
		"exp": now.Add(s.tokenTTL).Unix(), // Expiration Time
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// Parse checks the signature and expiry of a token string and returns the
// account identifier bound to it.
func (s *jwtIssuer) Parse(tokenString string) (*service.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse token structure")
	}
	if !token.Valid {
		return nil, errors.New("token is not valid")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("unexpected token claims format")
	}

	subject, err := mapClaims.GetSubject()
	if err != nil {
		return nil, errors.Wrap(err, "token subject missing")
	}

	accountID, err := uuid.Parse(subject)
	if err != nil {
		return nil, errors.Wrap(err, "invalid account id in token subject")
	}

	claims := &service.TokenClaims{AccountID: accountID}
	if expiry, expErr := mapClaims.GetExpirationTime(); expErr == nil && expiry != nil {
		claims.ExpiresAt = expiry
	}

	return claims, nil
}
