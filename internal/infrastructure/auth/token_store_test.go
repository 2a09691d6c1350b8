package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatehouse-io/gatehouse/internal/domain/errs"
	"github.com/gatehouse-io/gatehouse/internal/domain/uuid"
	"github.com/gatehouse-io/gatehouse/internal/infrastructure/auth"
)

func newTestStore(t *testing.T) (*auth.TokenStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return auth.NewTokenStore(auth.TokenStoreConfig{Client: client}), mr
}

func TestTokenStore_StoreAndLookup(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	userID := uuid.NewUUID()
	require.NoError(t, store.StoreRefreshToken(ctx, "token-1", userID, time.Hour))

	owner, err := store.LookupRefreshToken(ctx, "token-1")
	require.NoError(t, err)
	assert.Equal(t, userID, owner)
}

func TestTokenStore_LookupUnknownToken(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.LookupRefreshToken(context.Background(), "never-issued")
	assert.True(t, errors.Is(err, errs.ErrNotFound))
}

func TestTokenStore_RevokeRefreshToken(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	userID := uuid.NewUUID()
	require.NoError(t, store.StoreRefreshToken(ctx, "token-1", userID, time.Hour))

	revoked, err := store.RevokeRefreshToken(ctx, "token-1")
	require.NoError(t, err)
	assert.True(t, revoked, "first revoke should report the token present")

	revoked, err = store.RevokeRefreshToken(ctx, "token-1")
	require.NoError(t, err)
	assert.False(t, revoked, "second revoke should report the token absent")

	_, err = store.LookupRefreshToken(ctx, "token-1")
	assert.True(t, errors.Is(err, errs.ErrNotFound))
}

func TestTokenStore_RevokeUnknownTokenIsNotError(t *testing.T) {
	store, _ := newTestStore(t)

	revoked, err := store.RevokeRefreshToken(context.Background(), "never-issued")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestTokenStore_TokenExpires(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	userID := uuid.NewUUID()
	require.NoError(t, store.StoreRefreshToken(ctx, "token-1", userID, time.Minute))

	mr.FastForward(2 * time.Minute)

	_, err := store.LookupRefreshToken(ctx, "token-1")
	assert.True(t, errors.Is(err, errs.ErrNotFound))
}

func TestTokenStore_RevokeAllForUser(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	userID := uuid.NewUUID()
	otherID := uuid.NewUUID()
	require.NoError(t, store.StoreRefreshToken(ctx, "token-1", userID, time.Hour))
	require.NoError(t, store.StoreRefreshToken(ctx, "token-2", userID, time.Hour))
	require.NoError(t, store.StoreRefreshToken(ctx, "token-3", otherID, time.Hour))

	revoked, err := store.RevokeAllForUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 2, revoked)

	_, err = store.LookupRefreshToken(ctx, "token-1")
	assert.True(t, errors.Is(err, errs.ErrNotFound))
	_, err = store.LookupRefreshToken(ctx, "token-2")
	assert.True(t, errors.Is(err, errs.ErrNotFound))

	owner, err := store.LookupRefreshToken(ctx, "token-3")
	require.NoError(t, err)
	assert.Equal(t, otherID, owner, "other user's token must survive")
}

func TestTokenStore_RawTokenNotStored(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.StoreRefreshToken(ctx, "super-secret-token", uuid.NewUUID(), time.Hour))

	for _, key := range mr.Keys() {
		assert.NotContains(t, key, "super-secret-token", "raw token must not appear in keys")
	}
}
