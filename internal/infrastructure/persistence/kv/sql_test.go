package kv

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/erp/backoffice/internal/infrastructure/config"
)

func newSQLiteStore(t *testing.T) *SQLStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)

	store := NewSQLStore(db)
	require.NoError(t, store.AutoMigrate())
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func newMockSQLStore(t *testing.T) (*SQLStore, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})
	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	return NewSQLStore(gormDB), mock
}

func TestSQLStore_Contract(t *testing.T) {
	runStoreContract(t, newSQLiteStore(t))
}

func TestSQLStore_UpsertKeepsOneRow(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "roles_default", []byte(`[]`)))
	require.NoError(t, store.Set(ctx, "roles_default", []byte(`[{"name":"Agent"}]`)))

	var count int64
	require.NoError(t, store.db.Model(&Entry{}).Where("storage_key = ?", "roles_default").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSQLStore_MediumFailuresPropagate(t *testing.T) {
	t.Run("select error", func(t *testing.T) {
		store, mock := newMockSQLStore(t)
		mock.ExpectQuery(`SELECT \* FROM "kv_entries"`).
			WillReturnError(errors.New("connection reset"))

		_, found, err := store.Get(context.Background(), "staff_default")
		require.Error(t, err)
		assert.False(t, found)
		assert.Contains(t, err.Error(), "connection reset")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("upsert error", func(t *testing.T) {
		store, mock := newMockSQLStore(t)
		mock.ExpectExec(`INSERT INTO "kv_entries"`).
			WillReturnError(errors.New("disk full"))

		err := store.Set(context.Background(), "staff_default", []byte(`[]`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk full")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row is not an error", func(t *testing.T) {
		store, mock := newMockSQLStore(t)
		mock.ExpectQuery(`SELECT \* FROM "kv_entries"`).
			WillReturnRows(sqlmock.NewRows([]string{"storage_key", "payload", "updated_at"}))

		_, found, err := store.Get(context.Background(), "staff_default")
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestOpenDatabase_UnsupportedDriver(t *testing.T) {
	_, err := OpenDatabase(config.DatabaseConfig{Driver: "mysql"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestOpenDatabase_SQLiteFile(t *testing.T) {
	db, err := OpenDatabase(config.DatabaseConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: t.TempDir() + "/kv.db",
	}, nil)
	require.NoError(t, err)

	store := NewSQLStore(db)
	require.NoError(t, store.AutoMigrate())
	defer store.Close()

	require.NoError(t, store.Set(context.Background(), "k", []byte(`{}`)))
	_, found, err := store.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, found)
}
