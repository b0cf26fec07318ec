package cache_test

import (
	"context"
	"testing"

	"tiktok-planner/domain/repository"
	"tiktok-planner/infrastructure/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	srv := miniredis.RunT(t)
	return srv
}

func TestNewCache(t *testing.T) {
	srv := newRedis(t)

	client, err := cache.NewCache(context.Background(), srv.Addr(), "", "", 0)
	require.NoError(t, err)
	defer client.Close()
}

func TestNewCache_Unreachable(t *testing.T) {
	srv := newRedis(t)
	addr := srv.Addr()
	srv.Close()

	_, err := cache.NewCache(context.Background(), addr, "", "", 0)
	assert.Error(t, err)
}

func TestRedisBlobStore_SetThenGet(t *testing.T) {
	srv := newRedis(t)
	client, err := cache.NewCache(context.Background(), srv.Addr(), "", "", 0)
	require.NoError(t, err)
	defer client.Close()
	store := cache.NewRedisBlobStore(client, "planner:")

	_, err = store.Get(context.Background(), "tiktok-queue")
	assert.ErrorIs(t, err, repository.ErrBlobNotFound)

	require.NoError(t, store.Set(context.Background(), "tiktok-queue", []byte(`[{"id":"v1"}]`)))

	data, err := store.Get(context.Background(), "tiktok-queue")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"v1"}]`, string(data))

	raw, err := srv.Get("planner:tiktok-queue")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"v1"}]`, raw)
	assert.Zero(t, srv.TTL("planner:tiktok-queue"))
}
