// internal/stats/memory.go
//
// Process-local Store guarded by an RWMutex.

package stats

import (
	"context"
	"sync"
)

// memory is an in-memory Store. State is lost when the process exits.
type memory struct {
	mu    sync.RWMutex
	stats Stats
}

// NewMemoryStore constructs an empty in-memory Store.
func NewMemoryStore() Store {
	return &memory{}
}

func (m *memory) Load(ctx context.Context) (Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stats, nil
}

func (m *memory) Save(ctx context.Context, s Stats) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats = s
	return nil
}
