package store

import (
	"fmt"
	"path/filepath"

	"github.com/stevemurr/market/config"
)

// SqliteFile is the database file name used by the sqlite backend.
const SqliteFile = "market.db"

// New creates a Backend based on the configured backend name.
//
// Supported backends:
//
//	"json"   - one JSON document per collection in cfg.Dir (default)
//	"sqlite" - SQLite database at cfg.Dir/market.db
//	"memory" - In-memory (ephemeral, for testing)
func New(cfg config.StoreConfig) (Backend, error) {
	switch cfg.Backend {
	case "json", "":
		return NewJsonFileBackend(cfg.Dir, cfg.Clients, cfg.Products)
	case "sqlite":
		return NewSqliteBackend(filepath.Join(cfg.Dir, SqliteFile))
	case "memory":
		return NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %q (supported: json, sqlite, memory)", cfg.Backend)
	}
}
