package journal

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"chartd/core/utils"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

// Migrate applies the embedded schema for dialect.
func Migrate(ctx context.Context, db *sql.DB, dialect string, logger *utils.Logger) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	dir, gooseDialect, err := migrationDir(dialect)
	if err != nil {
		return err
	}
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect(gooseDialect); err != nil {
		return err
	}
	logger.Printf("applying journal migrations dialect=%s", dialect)
	if err := goose.UpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("journal migrations: %w", err)
	}
	return nil
}

// MigrationVersion returns the current schema version.
func MigrationVersion(ctx context.Context, db *sql.DB, dialect string) (int64, error) {
	_, gooseDialect, err := migrationDir(dialect)
	if err != nil {
		return 0, err
	}
	if err := goose.SetDialect(gooseDialect); err != nil {
		return 0, err
	}
	return goose.GetDBVersionContext(ctx, db)
}

func migrationDir(dialect string) (string, string, error) {
	switch dialect {
	case DriverSQLite:
		return "migrations/sqlite", "sqlite3", nil
	case DriverPostgres:
		return "migrations/postgres", "postgres", nil
	default:
		return "", "", fmt.Errorf("unsupported journal dialect: %s", dialect)
	}
}
