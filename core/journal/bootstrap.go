package journal

import (
	"context"
	"database/sql"

	"chartd/config"
	"chartd/core/utils"
)

// Bootstrap opens the journal database and brings its schema up to date.
func Bootstrap(ctx context.Context, cfg config.JournalConfig, logger *utils.Logger) (*sql.DB, Store, error) {
	db, dialect, err := OpenDB(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	if err := Migrate(ctx, db, dialect, logger); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return db, NewStore(db), nil
}
