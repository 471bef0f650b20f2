package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-reactions/internal/domain/repositories"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, repositories.ErrKeyNotFound)

	value := []byte("hello")
	require.NoError(t, store.Set(ctx, "k", value))
	value[0] = 'j'

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))

	got[0] = 'y'
	again, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(again))

	require.NoError(t, store.Delete(ctx, "k"))
	require.NoError(t, store.Delete(ctx, "k"))
	_, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, repositories.ErrKeyNotFound)
	assert.NoError(t, store.Close())
}

var _ repositories.KVStore = (*MemoryStore)(nil)
var _ repositories.KVStore = (*RedisStore)(nil)
