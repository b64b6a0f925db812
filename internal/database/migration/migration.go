package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"studyquiz/internal/database"
)

type migrationStep struct {
	Name string
	SQL  string
}

var sqliteSteps = []migrationStep{
	{
		Name: "create_table_documents",
		SQL: `CREATE TABLE IF NOT EXISTS documents (
  id           INTEGER  PRIMARY KEY AUTOINCREMENT,
  filename     TEXT     NOT NULL CHECK (filename <> ''),
  content      TEXT     NOT NULL CHECK (content <> ''),
  storage_path TEXT     NOT NULL DEFAULT '',
  upload_date  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);`,
	},
	{
		Name: "create_table_quiz_results",
		SQL: `CREATE TABLE IF NOT EXISTS quiz_results (
  id         INTEGER  PRIMARY KEY AUTOINCREMENT,
  score      REAL     NOT NULL,
  date_taken DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);`,
	},
	{
		Name: "create_index_documents_upload_date",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_upload_date ON documents (upload_date);`,
	},
	{
		Name: "create_index_quiz_results_date_taken",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_quiz_results_date_taken ON quiz_results (date_taken);`,
	},
}

var postgresSteps = []migrationStep{
	{
		Name: "create_table_documents",
		SQL: `CREATE TABLE IF NOT EXISTS documents (
  id           BIGSERIAL   PRIMARY KEY,
  filename     TEXT        NOT NULL CHECK (filename <> ''),
  content      TEXT        NOT NULL CHECK (content <> ''),
  storage_path TEXT        NOT NULL DEFAULT '',
  upload_date  TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_quiz_results",
		SQL: `CREATE TABLE IF NOT EXISTS quiz_results (
  id         BIGSERIAL        PRIMARY KEY,
  score      DOUBLE PRECISION NOT NULL,
  date_taken TIMESTAMPTZ      NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_documents_upload_date",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_upload_date ON documents (upload_date);`,
	},
	{
		Name: "create_index_quiz_results_date_taken",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_quiz_results_date_taken ON quiz_results (date_taken);`,
	},
}

// sentinel queries report whether the last table created by the steps already exists.
var sentinels = map[database.Dialect]string{
	database.SQLite:   `SELECT COUNT(*) > 0 FROM sqlite_master WHERE type = 'table' AND name = 'quiz_results'`,
	database.Postgres: `SELECT to_regclass('public.quiz_results') IS NOT NULL`,
}

func stepsFor(dialect database.Dialect) ([]migrationStep, error) {
	switch dialect {
	case database.SQLite:
		return sqliteSteps, nil
	case database.Postgres:
		return postgresSteps, nil
	default:
		return nil, fmt.Errorf("no migrations for dialect %q", dialect)
	}
}

// EnsureMigrated checks if the schema exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, dialect database.Dialect, log *zap.Logger) error {
	start := time.Now()
	log = log.With(zap.String("component", "database"), zap.String("dialect", string(dialect)))

	steps, err := stepsFor(dialect)
	if err != nil {
		return err
	}

	log.Info("db_migration_check", zap.String("status", "starting"))

	var exists bool
	if err := db.QueryRowContext(ctx, sentinels[dialect]).Scan(&exists); err != nil {
		log.Error("db_migration_failed",
			zap.String("status", "error"),
			zap.Error(err),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("db_migration_skip",
			zap.String("status", "success"),
			zap.String("reason", "schema already exists"),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil
	}

	log.Info("db_migration_start", zap.String("status", "in_progress"))

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed",
				zap.String("status", "error"),
				zap.String("migration_step", step.Name),
				zap.Error(err),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
				zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info("db_migration_step",
			zap.String("status", "success"),
			zap.String("migration_step", step.Name),
			zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
		)
	}

	log.Info("db_migration_success",
		zap.String("status", "success"),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	return nil
}
