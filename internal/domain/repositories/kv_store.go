package repositories

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by KVStore.Get for a missing key
var ErrKeyNotFound = errors.New("key not found")

// KVStore is the key-value persistence the tracker state is serialized into
type KVStore interface {
	// Get retrieves the raw value stored under key
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key; deleting a missing key is not an error
	Delete(ctx context.Context, key string) error

	// Close releases the underlying connection
	Close() error
}
