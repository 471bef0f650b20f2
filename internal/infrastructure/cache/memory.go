package cache

import (
	"context"
	"sync"

	"github.com/johnquangdev/meeting-reactions/internal/domain/repositories"
)

// MemoryStore is a simple in-memory key-value store
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string][]byte
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[string][]byte),
	}
}

// Set stores a copy of value under key
func (ms *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.items[key] = append([]byte(nil), value...)
	return nil
}

// Get retrieves a copy of the value stored under key
func (ms *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	value, exists := ms.items[key]
	if !exists {
		return nil, repositories.ErrKeyNotFound
	}
	return append([]byte(nil), value...), nil
}

// Delete removes a key
func (ms *MemoryStore) Delete(_ context.Context, key string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.items, key)
	return nil
}

// Close is a no-op
func (ms *MemoryStore) Close() error {
	return nil
}
