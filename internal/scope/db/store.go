package db

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const collectionsFile = "collections.jsonl"

// Store keeps collections in memory and persists them to a JSONL file in
// dataDir on Flush and Close.
type Store struct {
	dataDir  string
	index    *MemIndex
	mu       sync.Mutex // guards modified and file writes
	modified bool
	now      func() time.Time
}

// NewStore creates a new store with the given data directory
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	s := &Store{
		dataDir: dataDir,
		index:   NewMemIndex(),
		now:     time.Now,
	}

	// Load existing data if present
	if err := s.load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load store: %w", err)
	}

	return s, nil
}

// Put creates or replaces a collection
func (s *Store) Put(_ context.Context, c Collection) (Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var created time.Time
	if prev, ok := s.index.Get(c.Name); ok {
		created = prev.CreatedAt
	}

	c, err := prepare(c, created, s.now().UTC())
	if err != nil {
		return Collection{}, err
	}

	s.index.Set(c)
	s.modified = true
	return c, nil
}

// Get returns the named collection
func (s *Store) Get(_ context.Context, name string) (Collection, error) {
	c, ok := s.index.Get(name)
	if !ok {
		return Collection{}, ErrNotFound
	}
	return c, nil
}

// Delete removes the named collection
func (s *Store) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.index.Delete(name) {
		return ErrNotFound
	}
	s.modified = true
	return nil
}

// List returns collection summaries sorted by name
func (s *Store) List(_ context.Context) ([]Summary, error) {
	all := s.index.All()
	out := make([]Summary, len(all))
	for i, c := range all {
		out[i] = c.Summary()
	}
	return out, nil
}

// Count returns the number of collections in the store
func (s *Store) Count(_ context.Context) (int, error) {
	return s.index.Count(), nil
}

// Flush writes the store to disk
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.modified {
		return nil // No changes to write
	}

	if err := s.writeCollections(); err != nil {
		return err
	}

	s.modified = false
	return nil
}

// Close flushes and closes the store
func (s *Store) Close() error {
	return s.Flush()
}

// writeCollections replaces the JSONL file atomically via a temp file
func (s *Store) writeCollections() error {
	path := filepath.Join(s.dataDir, collectionsFile)
	tmp := path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create collections file: %w", err)
	}

	w := bufio.NewWriter(f)
	encoder := json.NewEncoder(w)
	for _, c := range s.index.All() {
		if err := encoder.Encode(c); err != nil {
			_ = f.Close()
			return fmt.Errorf("failed to encode collection %s: %w", c.Name, err)
		}
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write collections file: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to sync collections file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close collections file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace collections file: %w", err)
	}
	return nil
}

// load reads store from disk
func (s *Store) load() error {
	path := filepath.Join(s.dataDir, collectionsFile)
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	s.index.Clear()
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	for scanner.Scan() {
		var c Collection
		if err := json.Unmarshal(scanner.Bytes(), &c); err != nil {
			return fmt.Errorf("failed to decode collection: %w", err)
		}
		s.index.Set(c)
	}

	return scanner.Err()
}
