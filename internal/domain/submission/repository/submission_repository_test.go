package repository

import (
	"testing"

	"blogcore/internal/domain/submission/model"

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

// The decision transitions must be conditional on status=pending at the
// statement level; a lost claim rolls back without touching posts.

func TestApproveClaimLost(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewSubmissionRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "submissions" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := repo.ApproveAndPublish("sub-1", "admin-1", nil)

	assert.ErrorIs(t, err, ErrNotPending)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkRejectedSQL(t *testing.T) {
	t.Run("Pending row is claimed", func(t *testing.T) {
		gdb, mock := newMockDB(t)
		repo := NewSubmissionRepository(gdb)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "submissions" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.MarkRejected("sub-1", "admin-1", "spam")

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Decided row matches nothing", func(t *testing.T) {
		gdb, mock := newMockDB(t)
		repo := NewSubmissionRepository(gdb)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "submissions" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		err := repo.MarkRejected("sub-1", "admin-1", "spam")

		assert.ErrorIs(t, err, ErrNotPending)
	})
}

func TestGetByStatus(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewSubmissionRepository(gdb)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "submissions"`).
		WithArgs("pending").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT \* FROM "submissions"`).
		WithArgs("pending", 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "status"}).
			AddRow("sub-1", "A pending draft title", "pending"))

	subs, total, err := repo.GetByStatus(model.StatusPending, 0, 10)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, subs, 1)
	assert.Equal(t, model.StatusPending, subs[0].Status)
}
