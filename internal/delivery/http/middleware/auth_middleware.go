package middleware

import (
	"strings"

	"accounts/internal/delivery/http/response"
	"accounts/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// KeyAccountID is the echo.Context key carrying the authenticated account ID.
const KeyAccountID = "accountID"

// AuthMiddleware provides middleware for JWT authentication.
type AuthMiddleware struct {
	tokenIssuer service.TokenIssuer
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenIssuer service.TokenIssuer) *AuthMiddleware {
	return &AuthMiddleware{tokenIssuer: tokenIssuer}
}

// Authenticate validates the bearer token and stores the account ID on the context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "INVALID_TOKEN", "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid token format, must be Bearer token")
		}

		claims, err := m.tokenIssuer.Parse(tokenString)
		if err != nil {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired token")
		}

		c.Set(KeyAccountID, claims.AccountID)

		return next(c)
	}
}
