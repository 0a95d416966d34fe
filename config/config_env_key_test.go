package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalizeEnvKey_AlignsWithExistingYAMLKeys(t *testing.T) {
	existing := map[string]any{
		"secretKey": map[string]any{
			"jwt": "secret",
		},
		"postgres": map[string]any{
			"sslMode": "disable",
		},
	}

	tests := []struct {
		name   string
		rawKey string
		want   string
	}{
		{name: "camel case segment", rawKey: "SECRETKEY_JWT", want: "secretKey.jwt"},
		{name: "nested camel case", rawKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{name: "unknown key falls back to lowercase", rawKey: "BROKER_TOPICID", want: "broker.topicid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, canonicalizeEnvKey(tt.rawKey, existing))
		})
	}
}

func TestNormalizeToken(t *testing.T) {
	assert.Equal(t, "sslmode", normalizeToken("sslMode"))
	assert.Equal(t, "tokenttl", normalizeToken("token_ttl"))
	assert.Equal(t, "", normalizeToken("__"))
}
