package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  bool
	}{
		{name: "plain address", email: "user@example.com", want: true},
		{name: "plus tag", email: "user+tag@example.com", want: true},
		{name: "subdomain", email: "user@mail.example.com", want: true},
		{name: "internationalized domain", email: "user@bücher.de", want: true},
		{name: "no at sign", email: "not-an-email", want: false},
		{name: "missing domain", email: "user@", want: false},
		{name: "missing local part", email: "@example.com", want: false},
		{name: "empty", email: "", want: false},
		{name: "whitespace only", email: "   ", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidEmail(tt.email))
		})
	}
}

func TestIsValidEmail_NormalizesIDNDomain(t *testing.T) {
	normalized, ok := normalizeDomain("user@bücher.de")
	require.True(t, ok)
	assert.Equal(t, "user@xn--bcher-kva.de", normalized)
}

func TestIsValidPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{name: "meets all rules", password: "Abcdef12!", want: true},
		{name: "symbol from punctuation set", password: "Secret42,pass", want: true},
		{name: "no upper digit or symbol", password: "abcdefgh", want: false},
		{name: "no lowercase", password: "ABCDEF12!", want: false},
		{name: "no digit", password: "Abcdefgh!", want: false},
		{name: "no symbol", password: "Abcdefg12", want: false},
		{name: "too short", password: "Ab1!", want: false},
		{name: "too long", password: "Abcdef12!" + strings.Repeat("x", 20), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IsValidPassword(tt.password)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsValidPassword_EmptyInput(t *testing.T) {
	for _, password := range []string{"", "   ", "\t\n"} {
		got, err := IsValidPassword(password)
		assert.ErrorIs(t, err, ErrEmptyPassword)
		assert.False(t, got)
	}
}
