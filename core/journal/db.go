package journal

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"chartd/config"
	"chartd/core/utils"
	_ "modernc.org/sqlite"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// OpenDB opens the journal database and reports which dialect it speaks.
func OpenDB(cfg config.JournalConfig, logger *utils.Logger) (*sql.DB, string, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	if driver == "" {
		if strings.TrimSpace(cfg.URL) != "" {
			driver = DriverPostgres
		} else {
			driver = DriverSQLite
		}
	}
	switch driver {
	case DriverPostgres, "pg":
		if strings.TrimSpace(cfg.URL) == "" {
			return nil, "", errors.New("CHARTD_JOURNAL_URL is required for postgres")
		}
		db, err := sql.Open(postgresDriverName, cfg.URL)
		if err != nil {
			logger.Errorf("journal db open failed: %v", err)
			return nil, "", err
		}
		logger.Printf("journal db open postgres")
		return db, DriverPostgres, nil
	case DriverSQLite:
		path := strings.TrimSpace(cfg.Path)
		if path == "" {
			return nil, "", errors.New("journal path is required for sqlite")
		}
		if dir := filepath.Dir(path); dir != "." && path != ":memory:" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, "", err
			}
		}
		db, err := sql.Open("sqlite", path)
		if err != nil {
			logger.Errorf("journal db open failed: %v", err)
			return nil, "", err
		}
		// modernc sqlite serializes writers; one connection avoids SQLITE_BUSY
		db.SetMaxOpenConns(1)
		logger.Printf("journal db open sqlite path=%s", path)
		return db, DriverSQLite, nil
	default:
		return nil, "", errors.New("unsupported journal driver: " + driver)
	}
}
