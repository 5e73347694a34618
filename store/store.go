// Package store persists the trade list.
//
// Two backends exist: a JSON file rewritten on every change, the default, and
// a SQLite database.
package store

import (
	"fmt"

	"github.com/etnz/stockledger"
	"go.uber.org/zap"
)

// Store is a stockledger.Repository backed by durable storage.
type Store interface {
	stockledger.Repository
	Close() error
}

// Backends known to Open.
const (
	JSON   = "json"
	SQLite = "sqlite"
)

// Open opens the store of the given kind at path.
func Open(kind, path string, log *zap.Logger) (Store, error) {
	switch kind {
	case JSON, "":
		return OpenJSONFile(path, log)
	case SQLite:
		return OpenSQLite(path, log)
	default:
		return nil, fmt.Errorf("unknown store %q want %q or %q", kind, JSON, SQLite)
	}
}
