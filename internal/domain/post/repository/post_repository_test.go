package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	return gdb, mock
}

func TestSyncCounterSQL(t *testing.T) {
	t.Run("Casts the id column so external content IDs no-op", func(t *testing.T) {
		gdb, mock := newMockDB(t)
		repo := NewPostRepository(gdb)

		// The ledger tracks arbitrary content IDs; anything postgres
		// cannot parse as a uuid must match zero rows, not error.
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "posts" SET "likes_count"=\$1 WHERE id::text =`).
			WithArgs(int64(5), "sanity-external-article-42").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		err := repo.SyncCounter("sanity-external-article-42", "likes_count", 5)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Local post gets the absolute value", func(t *testing.T) {
		gdb, mock := newMockDB(t)
		repo := NewPostRepository(gdb)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "posts" SET "comments_count"=\$1 WHERE id::text =`).
			WithArgs(int64(12), "4f1c2b3a-0000-0000-0000-000000000001").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.SyncCounter("4f1c2b3a-0000-0000-0000-000000000001", "comments_count", 12)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unknown field rejected before touching the database", func(t *testing.T) {
		gdb, mock := newMockDB(t)
		repo := NewPostRepository(gdb)

		err := repo.SyncCounter("content-1", "view_count", 1)

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
