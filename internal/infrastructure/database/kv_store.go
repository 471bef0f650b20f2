package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/johnquangdev/meeting-reactions/internal/domain/entities"
	"github.com/johnquangdev/meeting-reactions/internal/domain/repositories"
)

// KVStore keeps tracker state in the kv_entries table
type KVStore struct {
	db *gorm.DB
}

var _ repositories.KVStore = (*KVStore)(nil)

// NewKVStore creates a key-value store on top of a GORM connection
func NewKVStore(db *gorm.DB) *KVStore {
	return &KVStore{db: db}
}

// Get retrieves a value by key
func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	var entry entities.KVEntry
	err := s.db.WithContext(ctx).
		Where("key = ?", key).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repositories.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return []byte(entry.Value), nil
}

// Set upserts a value. Values must be JSON documents.
func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	entry := entities.KVEntry{
		Key:       key,
		Value:     datatypes.JSON(value),
		UpdatedAt: time.Now().UTC(),
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

// Delete removes a key
func (s *KVStore) Delete(ctx context.Context, key string) error {
	err := s.db.WithContext(ctx).
		Where("key = ?", key).
		Delete(&entities.KVEntry{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Close closes the database connection
func (s *KVStore) Close() error {
	return CloseDB(s.db)
}

// Migrate applies the embedded migrations on the store's connection
func (s *KVStore) Migrate() (int, error) {
	return Migrate(s.db)
}
