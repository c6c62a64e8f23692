package utils

import (
	"testing"

	"github.com/admsdev98/NutriOrxata/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	config.App.JWTSecret = "test-secret"

	token, err := GenerateJWT("user-1", "tenant-1", "worker", AccessModeReadOnly)
	require.NoError(t, err)

	claims, err := ParseJWT(token)
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "tenant-1", claims.TenantID)
	assert.Equal(t, "worker", claims.Role)
	assert.Equal(t, AccessModeReadOnly, claims.AccessMode)
}

func TestParseJWTRejectsWrongSecret(t *testing.T) {
	config.App.JWTSecret = "test-secret"
	token, err := GenerateJWT("user-1", "tenant-1", "worker", AccessModeActive)
	require.NoError(t, err)

	config.App.JWTSecret = "another-secret"
	_, err = ParseJWT(token)
	assert.Error(t, err)
}

func TestParseJWTRejectsGarbage(t *testing.T) {
	config.App.JWTSecret = "test-secret"
	_, err := ParseJWT("not.a.token")
	assert.Error(t, err)
}

func TestVerificationTokenHashIsStable(t *testing.T) {
	raw, err := NewVerificationToken()
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	assert.Equal(t, HashVerificationToken(raw), HashVerificationToken(raw))

	other, err := NewVerificationToken()
	require.NoError(t, err)
	assert.NotEqual(t, HashVerificationToken(raw), HashVerificationToken(other))
}
