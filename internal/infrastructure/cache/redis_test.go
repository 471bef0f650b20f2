package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-reactions/internal/domain/repositories"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisStoreFromClient(client, "test:")
	t.Cleanup(func() { _ = store.Close() })
	return store, mr
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t)

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, repositories.ErrKeyNotFound)

	require.NoError(t, store.Set(ctx, "records", []byte(`[]`)))
	got, err := store.Get(ctx, "records")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))

	// keys are namespaced and never expire
	raw, err := mr.Get("test:records")
	require.NoError(t, err)
	assert.Equal(t, `[]`, raw)
	assert.Zero(t, mr.TTL("test:records"))

	require.NoError(t, store.Delete(ctx, "records"))
	require.NoError(t, store.Delete(ctx, "records"))
	_, err = store.Get(ctx, "records")
	assert.ErrorIs(t, err, repositories.ErrKeyNotFound)
}

func TestRedisStore_ConnectionError(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t)
	mr.Close()

	_, err := store.Get(ctx, "records")
	require.Error(t, err)
	assert.NotErrorIs(t, err, repositories.ErrKeyNotFound)
}
