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

func TestRecordViewSQL(t *testing.T) {
	t.Run("First view upserts and returns 1", func(t *testing.T) {
		gdb, mock := newMockDB(t)
		repo := NewEngagementRepository(gdb)

		mock.ExpectQuery("INSERT INTO engagement_records .* ON CONFLICT \\(content_id\\) DO UPDATE").
			WithArgs(sqlmock.AnyArg(), "content-1").
			WillReturnRows(sqlmock.NewRows([]string{"view_count"}).AddRow(1))

		count, err := repo.RecordView("content-1")

		assert.NoError(t, err)
		assert.Equal(t, int64(1), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Existing record increments in one statement", func(t *testing.T) {
		gdb, mock := newMockDB(t)
		repo := NewEngagementRepository(gdb)

		mock.ExpectQuery("view_count = engagement_records.view_count \\+ 1").
			WithArgs(sqlmock.AnyArg(), "content-1").
			WillReturnRows(sqlmock.NewRows([]string{"view_count"}).AddRow(42))

		count, err := repo.RecordView("content-1")

		assert.NoError(t, err)
		assert.Equal(t, int64(42), count)
	})
}

func TestToggleLikeSQL(t *testing.T) {
	t.Run("Absent user takes the append branch", func(t *testing.T) {
		gdb, mock := newMockDB(t)
		repo := NewEngagementRepository(gdb)

		mock.ExpectExec("ON CONFLICT \\(content_id\\) DO NOTHING").
			WithArgs(sqlmock.AnyArg(), "content-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		// Remove branch matches no row.
		mock.ExpectQuery("array_remove").
			WithArgs("user-1", "content-1", "user-1").
			WillReturnRows(sqlmock.NewRows([]string{"cardinality"}))
		mock.ExpectQuery("array_append").
			WithArgs("user-1", "content-1", "user-1").
			WillReturnRows(sqlmock.NewRows([]string{"cardinality"}).AddRow(3))

		liked, likes, err := repo.ToggleLike("content-1", "user-1")

		assert.NoError(t, err)
		assert.True(t, liked)
		assert.Equal(t, int64(3), likes)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Present user takes the remove branch", func(t *testing.T) {
		gdb, mock := newMockDB(t)
		repo := NewEngagementRepository(gdb)

		mock.ExpectExec("ON CONFLICT \\(content_id\\) DO NOTHING").
			WithArgs(sqlmock.AnyArg(), "content-1").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("array_remove").
			WithArgs("user-1", "content-1", "user-1").
			WillReturnRows(sqlmock.NewRows([]string{"cardinality"}).AddRow(0))

		liked, likes, err := repo.ToggleLike("content-1", "user-1")

		assert.NoError(t, err)
		assert.False(t, liked)
		assert.Equal(t, int64(0), likes)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Both branches lost reads the surviving state", func(t *testing.T) {
		gdb, mock := newMockDB(t)
		repo := NewEngagementRepository(gdb)

		mock.ExpectExec("ON CONFLICT \\(content_id\\) DO NOTHING").
			WithArgs(sqlmock.AnyArg(), "content-1").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("array_remove").
			WithArgs("user-1", "content-1", "user-1").
			WillReturnRows(sqlmock.NewRows([]string{"cardinality"}))
		mock.ExpectQuery("array_append").
			WithArgs("user-1", "content-1", "user-1").
			WillReturnRows(sqlmock.NewRows([]string{"cardinality"}))
		mock.ExpectQuery(`SELECT \* FROM "engagement_records"`).
			WithArgs("content-1", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "content_id", "likers", "view_count", "comment_count"}).
				AddRow("rec-1", "content-1", "{user-1}", 0, 0))

		liked, likes, err := repo.ToggleLike("content-1", "user-1")

		assert.NoError(t, err)
		assert.True(t, liked)
		assert.Equal(t, int64(1), likes)
	})
}

func TestCommentCountSQL(t *testing.T) {
	t.Run("Increment upserts and returns the new count", func(t *testing.T) {
		gdb, mock := newMockDB(t)
		repo := NewEngagementRepository(gdb)

		mock.ExpectQuery("comment_count = engagement_records.comment_count \\+ 1").
			WithArgs(sqlmock.AnyArg(), "content-1").
			WillReturnRows(sqlmock.NewRows([]string{"comment_count"}).AddRow(5))

		count, err := repo.IncrementCommentCount("content-1")

		assert.NoError(t, err)
		assert.Equal(t, int64(5), count)
	})

	t.Run("Decrement at zero matches no row and stays at zero", func(t *testing.T) {
		gdb, mock := newMockDB(t)
		repo := NewEngagementRepository(gdb)

		mock.ExpectQuery("comment_count > 0").
			WithArgs("content-1").
			WillReturnRows(sqlmock.NewRows([]string{"comment_count"}))

		count, err := repo.DecrementCommentCount("content-1")

		assert.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})

	t.Run("Decrement above zero returns the new count", func(t *testing.T) {
		gdb, mock := newMockDB(t)
		repo := NewEngagementRepository(gdb)

		mock.ExpectQuery("comment_count > 0").
			WithArgs("content-1").
			WillReturnRows(sqlmock.NewRows([]string{"comment_count"}).AddRow(2))

		count, err := repo.DecrementCommentCount("content-1")

		assert.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})
}
