package auth

import (
	"testing"
	"time"

	"accounts/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig(ttl time.Duration) *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{TokenTTL: ttl},
	}
	cfg.SecretKey.JWT = "test_jwt_secret_key_very_long_for_testing"

	return cfg
}

func TestJWTIssuer_GenerateAndParse(t *testing.T) {
	issuer, err := NewJWTIssuer(newTestConfig(7 * 24 * time.Hour))
	require.NoError(t, err)
	require.NotNil(t, issuer)

	accountID := uuid.New()

	token, err := issuer.Generate(accountID)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	require.NotNil(t, claims)
	assert.Equal(t, accountID, claims.AccountID)

	// Expiry sits seven days out, give or take scheduling slack.
	require.NotNil(t, claims.ExpiresAt)
	expectedExpiry := time.Now().Add(7 * 24 * time.Hour)
	assert.WithinDuration(t, expectedExpiry, claims.ExpiresAt.Time, time.Minute)
}

func TestJWTIssuer_InvalidToken(t *testing.T) {
	issuer, err := NewJWTIssuer(newTestConfig(time.Hour))
	require.NoError(t, err)

	claims, err := issuer.Parse("clearly-not-a-jwt-token-format")
	assert.Error(t, err)
	assert.Nil(t, claims)
	assert.Contains(t, err.Error(), "failed to parse token structure")
}

func TestJWTIssuer_ExpiredToken(t *testing.T) {
	issuer, err := NewJWTIssuer(newTestConfig(-time.Minute))
	require.NoError(t, err)

	token, err := issuer.Generate(uuid.New())
	require.NoError(t, err)

	claims, err := issuer.Parse(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTIssuer_WrongSecret(t *testing.T) {
	issuer, err := NewJWTIssuer(newTestConfig(time.Hour))
	require.NoError(t, err)

	token, err := issuer.Generate(uuid.New())
	require.NoError(t, err)

	otherCfg := newTestConfig(time.Hour)
	otherCfg.SecretKey.JWT = "a_completely_different_secret_key"
	other, err := NewJWTIssuer(otherCfg)
	require.NoError(t, err)

	claims, err := other.Parse(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTIssuer_RequiresSecret(t *testing.T) {
	cfg := &config.Config{Auth: &config.AuthConfig{TokenTTL: time.Hour}}

	issuer, err := NewJWTIssuer(cfg)
	assert.Error(t, err)
	assert.Nil(t, issuer)
}
