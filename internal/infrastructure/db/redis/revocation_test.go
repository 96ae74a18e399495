package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*RevocationStore, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRevocationStore(client), srv
}

func TestRevocationStore_RevokeAndExpire(t *testing.T) {
	store, srv := newTestStore(t)
	ctx := context.Background()

	revoked, err := store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, "jti-1", time.Minute))
	assert.True(t, srv.Exists("revoked:jti-1"))

	revoked, err = store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	srv.FastForward(2 * time.Minute)
	revoked, err = store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRevocationStore_ServerDown(t *testing.T) {
	store, srv := newTestStore(t)
	srv.Close()

	_, err := store.IsRevoked(context.Background(), "jti-1")
	assert.Error(t, err)
}

func TestConnect(t *testing.T) {
	srv := miniredis.RunT(t)

	client, err := Connect(context.Background(), Config{Addr: srv.Addr()})
	require.NoError(t, err)
	assert.NoError(t, client.Close())

	srv.Close()
	_, err = Connect(context.Background(), Config{Addr: srv.Addr(), Timeout: 200 * time.Millisecond})
	assert.Error(t, err)
}
