package sqlrepo

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"studyquiz/internal/config"
	"studyquiz/internal/database"
	"studyquiz/internal/database/migration"
	"studyquiz/internal/model"
	"studyquiz/internal/repository"
)

func TestDocumentSQL_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentSQL(db)
	ctx := context.Background()

	now := time.Now().UTC()
	doc := &model.Document{
		Filename:    "notes.txt",
		Content:     "Hello. World.",
		StoragePath: "documents/abc.txt",
		UploadDate:  now,
	}

	mock.ExpectQuery("INSERT INTO documents").
		WithArgs(doc.Filename, doc.Content, doc.StoragePath, doc.UploadDate).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	result, err := repo.Create(ctx, doc)

	assert.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, int64(42), result.ID)
	assert.Equal(t, doc.Content, result.Content)
	assert.Zero(t, doc.ID, "input must not be mutated")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentSQL_CreateError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO documents").WillReturnError(errors.New("disk full"))

	result, err := NewDocumentSQL(db).Create(context.Background(), &model.Document{Filename: "a.txt", Content: "x"})
	assert.EqualError(t, err, "disk full")
	assert.Nil(t, result)
}

func TestDocumentSQL_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentSQL(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "filename", "content", "storage_path", "upload_date"}).
			AddRow(1, "file.txt", "Hello. World.", "documents/file.txt", time.Now())

		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id = ?").
			WithArgs(int64(1)).
			WillReturnRows(rows)

		doc, err := repo.FindByID(ctx, 1)

		assert.NoError(t, err)
		require.NotNil(t, doc)
		assert.Equal(t, int64(1), doc.ID)
		assert.Equal(t, "Hello. World.", doc.Content)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id = ?").
			WithArgs(int64(404)).
			WillReturnError(sql.ErrNoRows)

		doc, err := repo.FindByID(ctx, 404)

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, doc)
	})
}

func TestDocumentSQL_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentSQL(db)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM documents").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		rows := sqlmock.NewRows([]string{"id", "filename", "content", "storage_path", "upload_date"}).
			AddRow(1, "file.txt", "Hello.", "", time.Now())

		mock.ExpectQuery("SELECT (.+) FROM documents ORDER BY").
			WithArgs(10, 0).
			WillReturnRows(rows)

		res, err := repo.List(ctx, repository.PageQuery{Limit: 10, Offset: 0})

		assert.NoError(t, err)
		assert.Equal(t, 1, res.Total)
		assert.Len(t, res.Items, 1)
	})

	t.Run("count error", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM documents").
			WillReturnError(errors.New("db fail"))

		res, err := repo.List(ctx, repository.PageQuery{Limit: 10})
		assert.Error(t, err)
		assert.Nil(t, res)
	})
}

func TestDocumentSQL_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentSQL(db)
	ctx := context.Background()

	mock.ExpectExec("DELETE FROM documents WHERE id = ?").
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Delete(ctx, 7)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// newSQLiteDB opens a migrated in-memory SQLite database.
func newSQLiteDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.NewSQLite(config.DatabaseConfig{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, migration.EnsureMigrated(context.Background(), db, database.SQLite, zap.NewNop()))
	return db
}

func TestDocumentSQL_SQLiteRoundTrip(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewDocumentSQL(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, &model.Document{
		Filename:   "hello.txt",
		Content:    "Hello. World.",
		UploadDate: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	second, err := repo.Create(ctx, &model.Document{Filename: "b.txt", Content: "B.", UploadDate: time.Now().UTC()})
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.ID)

	got, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello.txt", got.Filename)
	assert.Equal(t, "Hello. World.", got.Content)
	assert.True(t, got.UploadDate.Equal(created.UploadDate))

	page, err := repo.List(ctx, repository.PageQuery{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, second.ID, page.Items[0].ID)

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.FindByID(ctx, created.ID)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
