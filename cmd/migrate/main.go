package main

import (
	"context"
	"log"
	"time"

	"chartd/config"
	"chartd/core/journal"
	"chartd/core/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	logger := utils.NewLoggerWithOptions(utils.LogOptions{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if !cfg.Journal.Enabled {
		logger.Printf("journal disabled, nothing to migrate")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, dialect, err := journal.OpenDB(cfg.Journal, logger)
	if err != nil {
		logger.Fatalf("db: %v", err)
	}
	defer db.Close()
	if err := journal.Migrate(ctx, db, dialect, logger); err != nil {
		logger.Fatalf("migrations: %v", err)
	}
	version, err := journal.MigrationVersion(ctx, db, dialect)
	if err != nil {
		logger.Fatalf("migration version: %v", err)
	}
	logger.Printf("migrations applied version=%d", version)
}
