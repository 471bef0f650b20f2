package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/johnquangdev/meeting-reactions/internal/domain/repositories"
)

func newMockStore(t *testing.T) (*KVStore, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return NewKVStore(db), mock
}

func TestKVStore_Get(t *testing.T) {
	ctx := context.Background()
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT \* FROM "kv_entries" WHERE key = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"key", "value", "updated_at"}).
			AddRow("records", []byte(`[]`), time.Now()))

	got, err := store.Get(ctx, "records")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKVStore_GetMissing(t *testing.T) {
	ctx := context.Background()
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT \* FROM "kv_entries" WHERE key = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"key", "value", "updated_at"}))

	_, err := store.Get(ctx, "selectedParticipant")
	assert.ErrorIs(t, err, repositories.ErrKeyNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKVStore_GetFailure(t *testing.T) {
	ctx := context.Background()
	store, mock := newMockStore(t)

	cause := errors.New("connection reset")
	mock.ExpectQuery(`SELECT \* FROM "kv_entries"`).WillReturnError(cause)

	_, err := store.Get(ctx, "records")
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, repositories.ErrKeyNotFound)
}

func TestKVStore_Delete(t *testing.T) {
	ctx := context.Background()
	store, mock := newMockStore(t)

	mock.ExpectExec(`DELETE FROM "kv_entries" WHERE key = \$1`).
		WithArgs("records").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, store.Delete(ctx, "records"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
