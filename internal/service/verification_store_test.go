package service

import (
	"context"
	"testing"
	"time"

	"learnbrightly/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryVerificationStoreRoundTrip(t *testing.T) {
	store := NewMemoryVerificationStore()
	ctx := context.Background()

	pending := PendingVerification{
		Email:     "kid@example.com",
		AccountID: "account-123",
		Username:  "kiddo",
		Role:      entity.RoleStudent,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}
	require.NoError(t, store.Set(ctx, "token-1", pending))

	got, err := store.Get(ctx, "token-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, pending.Email, got.Email)
	assert.Equal(t, pending.AccountID, got.AccountID)

	require.NoError(t, store.Delete(ctx, "token-1"))
	got, err = store.Get(ctx, "token-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryVerificationStoreUnknownToken(t *testing.T) {
	store := NewMemoryVerificationStore()

	got, err := store.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryVerificationStoreReturnsExpired(t *testing.T) {
	store := NewMemoryVerificationStore()
	ctx := context.Background()

	pending := PendingVerification{
		Email:     "kid@example.com",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	require.NoError(t, store.Set(ctx, "stale", pending))

	// Expired entries stay readable so VerifyEmail can report expiry
	// instead of an unknown token.
	got, err := store.Get(ctx, "stale")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.ExpiresAt.Before(time.Now()))
}

func TestMemoryVerificationStoreSweepsOnSet(t *testing.T) {
	store := NewMemoryVerificationStore()
	ctx := context.Background()

	current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	require.NoError(t, store.Set(ctx, "old", PendingVerification{
		Email:     "old@example.com",
		ExpiresAt: current.Add(24 * time.Hour),
	}))

	current = current.Add(25 * time.Hour)
	require.NoError(t, store.Set(ctx, "new", PendingVerification{
		Email:     "new@example.com",
		ExpiresAt: current.Add(24 * time.Hour),
	}))

	got, err := store.Get(ctx, "old")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = store.Get(ctx, "new")
	require.NoError(t, err)
	assert.NotNil(t, got)
}
