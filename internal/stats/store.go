// internal/stats/store.go
//
// Store is the persistence port for Stats. Implementations:
//   - memory: process-local, used in tests and when durability is not needed.
//   - file:   one JSON document on disk, keyed by namespace.
//   - sqlite: one row per namespace in the stats table.
//
// Load returns zero Stats and a nil error when nothing has been saved yet.
// A record that exists but cannot be decoded or fails Stats.Valid yields
// ErrCorrupt; callers recover by starting from zero.

package stats

import (
	"context"
	"errors"
	"fmt"
)

// ErrCorrupt marks a persisted record that could not be used.
var ErrCorrupt = errors.New("stats: corrupt record")

// Store defines the persistence interface for aggregate stats.
type Store interface {
	// Load reads the current counters.
	Load(ctx context.Context) (Stats, error)

	// Save replaces the stored counters.
	Save(ctx context.Context, s Stats) error
}

// Open returns the store for backend ("memory", "file" or "sqlite").
// path is the file or database location; ignored for memory.
func Open(backend, path, namespace string) (Store, error) {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	switch backend {
	case "", "memory":
		return NewMemoryStore(), nil
	case "file":
		return NewFileStore(path, namespace), nil
	case "sqlite":
		return OpenSQLite(path, namespace)
	default:
		return nil, fmt.Errorf("stats: unknown backend %q", backend)
	}
}

// Close releases resources held by st, if any.
func Close(st Store) error {
	if c, ok := st.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
