package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManagerRoundTrip(t *testing.T) {
	manager := JWTManager{
		Secret:   []byte("test-secret"),
		Issuer:   "learnbrightly",
		TokenTTL: 24 * time.Hour,
	}

	token, ttl, err := manager.IssueToken("account-123", "kid@example.com", "student")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, 24*time.Hour, ttl)

	claims, err := manager.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "account-123", claims.UserID)
	assert.Equal(t, "kid@example.com", claims.Email)
	assert.Equal(t, "student", claims.Role)
	assert.Equal(t, "learnbrightly", claims.Issuer)
}

func TestJWTManagerDefaultTTL(t *testing.T) {
	manager := JWTManager{Secret: []byte("test-secret")}

	token, ttl, err := manager.IssueToken("account-123", "kid@example.com", "student")
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, ttl)

	claims, err := manager.ParseToken(token)
	require.NoError(t, err)
	remaining := time.Until(claims.ExpiresAt.Time)
	assert.Greater(t, remaining, 23*time.Hour)
	assert.LessOrEqual(t, remaining, 24*time.Hour)
}

func TestJWTManagerRejectsExpired(t *testing.T) {
	manager := JWTManager{
		Secret:   []byte("test-secret"),
		TokenTTL: -time.Minute,
	}

	token, _, err := manager.IssueToken("account-123", "kid@example.com", "student")
	require.NoError(t, err)

	_, err = manager.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTManagerRejectsTampered(t *testing.T) {
	manager := JWTManager{Secret: []byte("test-secret"), TokenTTL: time.Hour}

	token, _, err := manager.IssueToken("account-123", "kid@example.com", "student")
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = manager.ParseToken(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTManagerRejectsWrongSecret(t *testing.T) {
	issuer := JWTManager{Secret: []byte("secret-one"), TokenTTL: time.Hour}
	verifier := JWTManager{Secret: []byte("secret-two"), TokenTTL: time.Hour}

	token, _, err := issuer.IssueToken("account-123", "kid@example.com", "student")
	require.NoError(t, err)

	_, err = verifier.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
