package migration

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"studyquiz/internal/config"
	"studyquiz/internal/database"
)

func observedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.InfoLevel)
	return zap.New(core), logs
}

func TestEnsureMigrated_SQLite(t *testing.T) {
	db, err := database.NewSQLite(config.DatabaseConfig{Path: ":memory:"})
	require.NoError(t, err)
	defer db.Close()

	log, logs := observedLogger()
	ctx := context.Background()

	require.NoError(t, EnsureMigrated(ctx, db, database.SQLite, log))
	assert.Equal(t, len(sqliteSteps), logs.FilterMessage("db_migration_step").Len())
	assert.Equal(t, 1, logs.FilterMessage("db_migration_success").Len())

	_, err = db.ExecContext(ctx, `INSERT INTO documents (filename, content) VALUES ('a.txt', 'Hello.')`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO quiz_results (score) VALUES (80.5)`)
	require.NoError(t, err)

	// empty content violates the check constraint
	_, err = db.ExecContext(ctx, `INSERT INTO documents (filename, content) VALUES ('b.txt', '')`)
	assert.Error(t, err)

	// second run finds the sentinel table and skips
	require.NoError(t, EnsureMigrated(ctx, db, database.SQLite, log))
	assert.Equal(t, 1, logs.FilterMessage("db_migration_skip").Len())
}

func TestEnsureMigrated_Postgres(t *testing.T) {
	ctx := context.Background()

	t.Run("runs every step when schema is missing", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta(sentinels[database.Postgres])).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		for _, step := range postgresSteps {
			mock.ExpectExec(regexp.QuoteMeta(step.SQL)).WillReturnResult(sqlmock.NewResult(0, 0))
		}

		log, _ := observedLogger()
		assert.NoError(t, EnsureMigrated(ctx, db, database.Postgres, log))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("skips when schema exists", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta(sentinels[database.Postgres])).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		log, logs := observedLogger()
		assert.NoError(t, EnsureMigrated(ctx, db, database.Postgres, log))
		assert.Equal(t, 1, logs.FilterMessage("db_migration_skip").Len())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("sentinel check error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta(sentinels[database.Postgres])).
			WillReturnError(errors.New("connection reset"))

		log, _ := observedLogger()
		err = EnsureMigrated(ctx, db, database.Postgres, log)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to check sentinel table")
	})

	t.Run("step error stops the run", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta(sentinels[database.Postgres])).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectExec(regexp.QuoteMeta(postgresSteps[0].SQL)).WillReturnError(errors.New("permission denied"))

		log, logs := observedLogger()
		err = EnsureMigrated(ctx, db, database.Postgres, log)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "migration step create_table_documents failed")
		assert.Equal(t, 1, logs.FilterMessage("db_migration_failed").Len())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEnsureMigrated_UnknownDialect(t *testing.T) {
	log, _ := observedLogger()
	err := EnsureMigrated(context.Background(), nil, database.Dialect("oracle"), log)
	assert.Error(t, err)
}
