package api

import (
	"database/sql"

	"chartd/core/journal"
)

// ServerDeps carries the optional journal wiring; zero values disable it.
type ServerDeps struct {
	DB      *sql.DB
	Journal journal.Store
	Pruner  *journal.Pruner
}
