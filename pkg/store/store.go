// Package store holds the per-file violation summaries produced by the most
// recent analysis, for highlighters and the violations listing.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/yaklabco/stylefix/pkg/fsutil"
)

// snapshotSchema is bumped when the snapshot layout changes.
const snapshotSchema uint16 = 1

// ErrSchemaMismatch indicates a snapshot written by an incompatible version.
var ErrSchemaMismatch = errors.New("snapshot schema mismatch")

// Summary is one violation as shown to a user.
type Summary struct {
	// Line is the 1-based line reported by the analyzer.
	Line int `msgpack:"line" json:"line"`

	// Message is "RULE: description".
	Message string `msgpack:"message" json:"message"`
}

// Store maps file paths to their violation summaries. Each update replaces
// the whole entry for a path. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	entries map[string][]Summary
}

// New creates an empty store.
func New() *Store {
	return &Store{entries: make(map[string][]Summary)}
}

//nolint:gochecknoglobals // Process-wide store shared by fixers
var (
	defaultStore     *Store
	defaultStoreOnce sync.Once
)

// Default returns the process-wide store.
func Default() *Store {
	defaultStoreOnce.Do(func() {
		defaultStore = New()
	})
	return defaultStore
}

// Replace sets the summaries for path, discarding any previous entry.
func (s *Store) Replace(path string, summaries []Summary) {
	cp := make([]Summary, len(summaries))
	copy(cp, summaries)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[path] = cp
}

// Get returns a copy of the summaries for path, or nil if none are stored.
func (s *Store) Get(path string) []Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[path]
	if !ok {
		return nil
	}
	cp := make([]Summary, len(entry))
	copy(cp, entry)
	return cp
}

// Delete removes the entry for path.
func (s *Store) Delete(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, path)
}

// Paths returns the stored paths in sorted order.
func (s *Store) Paths() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	paths := make([]string, 0, len(s.entries))
	for p := range s.entries {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// snapshot is the on-disk form of a store.
type snapshot struct {
	Schema  uint16               `msgpack:"schema"`
	Entries map[string][]Summary `msgpack:"entries"`
}

// Save writes the store to path as a msgpack snapshot. The file is replaced
// atomically.
func (s *Store) Save(ctx context.Context, path string) error {
	s.mu.RLock()
	snap := snapshot{Schema: snapshotSchema, Entries: s.entries}
	data, err := msgpack.Marshal(&snap)
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}
	if err := fsutil.WriteAtomic(ctx, path, data, 0o600); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}

// Load replaces the contents of the store with the snapshot at path. A
// missing file leaves the store unchanged and returns nil.
func (s *Store) Load(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // Path from configuration
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading snapshot: %w", err)
	}

	var snap snapshot
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("decoding snapshot: %w", err)
	}
	if snap.Schema != snapshotSchema {
		return fmt.Errorf("%w: got %d, want %d", ErrSchemaMismatch, snap.Schema, snapshotSchema)
	}

	entries := snap.Entries
	if entries == nil {
		entries = make(map[string][]Summary)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = entries
	return nil
}
