package db

import (
	"sort"
	"sync"
)

// MemIndex is a thread-safe in-memory index of collections
type MemIndex struct {
	mu          sync.RWMutex
	collections map[string]Collection
}

// NewMemIndex creates a new empty in-memory index
func NewMemIndex() *MemIndex {
	return &MemIndex{
		collections: make(map[string]Collection),
	}
}

// Set adds or replaces a collection
func (m *MemIndex) Set(c Collection) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.collections[c.Name] = c
}

// Get retrieves a collection by name
func (m *MemIndex) Get(name string) (Collection, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.collections[name]
	return c, ok
}

// Delete removes a collection, reporting whether it existed
func (m *MemIndex) Delete(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.collections[name]
	delete(m.collections, name)
	return ok
}

// Count returns the number of collections in the index
func (m *MemIndex) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.collections)
}

// All returns all collections sorted by name
func (m *MemIndex) All() []Collection {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]Collection, 0, len(m.collections))
	for _, c := range m.collections {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// Clear removes all collections from the index
func (m *MemIndex) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.collections = make(map[string]Collection)
}
