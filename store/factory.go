package store

import (
	"fmt"
	"path/filepath"
)

// New creates a Store based on the backend name.
//
// Supported backends:
//
//	"file"   - single JSON document at dataDir/bandroom.json (default)
//	"sqlite" - SQLite database at dataDir/bandroom.db
//	"memory" - In-memory (ephemeral, for testing)
func New(backend, dataDir string) (Store, error) {
	switch backend {
	case "file", "":
		return NewFlatFileStore(filepath.Join(dataDir, "bandroom.json"))
	case "sqlite":
		return NewSqliteStore(filepath.Join(dataDir, "bandroom.db"))
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %q (supported: file, sqlite, memory)", backend)
	}
}
