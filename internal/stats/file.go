// internal/stats/file.go
//
// JSON-file Store. One document maps namespace -> Stats, so several
// namespaces can share a file; writes go through a temp file and rename.

package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps stats in a JSON document of the form
// {"<namespace>": {"gamesPlayed": ..., ...}}. Other namespaces in the same
// file are preserved on save.
type FileStore struct {
	mu        sync.Mutex
	path      string
	namespace string
}

var _ Store = (*FileStore)(nil)

// NewFileStore returns a store backed by path. The file is created on the
// first Save.
func NewFileStore(path, namespace string) *FileStore {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &FileStore{path: path, namespace: namespace}
}

// Load reads the namespace's record. A missing file or namespace is not an
// error.
func (f *FileStore) Load(ctx context.Context) (Stats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.read()
	if err != nil {
		return Stats{}, err
	}
	raw, ok := doc[f.namespace]
	if !ok {
		return Stats{}, nil
	}
	var s Stats
	if err := json.Unmarshal(raw, &s); err != nil {
		return Stats{}, fmt.Errorf("%w: %s: %v", ErrCorrupt, f.path, err)
	}
	if !s.Valid() {
		return Stats{}, fmt.Errorf("%w: %s: inconsistent counters", ErrCorrupt, f.path)
	}
	return s, nil
}

// Save writes the namespace's record using a temp file and rename.
func (f *FileStore) Save(ctx context.Context, s Stats) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.read()
	if err != nil {
		// Replace an unreadable document rather than refusing to save.
		doc = map[string]json.RawMessage{}
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}
	doc[f.namespace] = raw

	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal stats file: %w", err)
	}
	if dir := filepath.Dir(f.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}

func (f *FileStore) read() (map[string]json.RawMessage, error) {
	b, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]json.RawMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}
	doc := map[string]json.RawMessage{}
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, f.path, err)
	}
	if doc == nil { // literal null
		doc = map[string]json.RawMessage{}
	}
	return doc, nil
}
