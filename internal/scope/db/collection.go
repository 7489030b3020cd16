// Package db stores named candidate collections that can be searched
// repeatedly without resending their items.
package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"
)

// ErrNotFound is returned when a collection does not exist.
var ErrNotFound = errors.New("collection not found")

var namePattern = regexp.MustCompile(`^[A-Za-z0-9._-]{1,128}$`)

// Collection is an ordered list of candidates. Items are kept as raw JSON so
// they are returned exactly as they were stored.
type Collection struct {
	Name      string            `json:"name"`
	Items     []json.RawMessage `json:"items"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// Summary describes a collection without its items.
type Summary struct {
	Name      string    `json:"name"`
	ItemCount int       `json:"item_count"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Summary returns the collection's summary.
func (c Collection) Summary() Summary {
	return Summary{Name: c.Name, ItemCount: len(c.Items), UpdatedAt: c.UpdatedAt}
}

// ValidateName checks that name is usable as a collection name.
func ValidateName(name string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("invalid collection name %q: use 1-128 letters, digits, '.', '_' or '-'", name)
	}
	return nil
}

// Storage is the interface for collection storage
// Store (file-based) and PGStore (Postgres) implement this interface
type Storage interface {
	// Put creates or replaces a collection
	Put(ctx context.Context, c Collection) (Collection, error)

	// Get returns the named collection or ErrNotFound
	Get(ctx context.Context, name string) (Collection, error)

	// Delete removes the named collection or returns ErrNotFound
	Delete(ctx context.Context, name string) error

	// List returns summaries sorted by name
	List(ctx context.Context) ([]Summary, error)

	// Count returns the number of collections
	Count(ctx context.Context) (int, error)

	// Flush persists any pending changes
	Flush() error

	// Close flushes and closes the storage
	Close() error
}

// Ensure both Store and PGStore implement Storage
var _ Storage = (*Store)(nil)
var _ Storage = (*PGStore)(nil)

// prepare validates c and stamps its timestamps. created is the creation
// time of the collection being replaced, if any.
func prepare(c Collection, created time.Time, now time.Time) (Collection, error) {
	if err := ValidateName(c.Name); err != nil {
		return Collection{}, err
	}
	for i, item := range c.Items {
		if !json.Valid(item) {
			return Collection{}, fmt.Errorf("item %d is not valid JSON", i)
		}
	}
	if c.Items == nil {
		c.Items = []json.RawMessage{}
	}
	if created.IsZero() {
		created = now
	}
	c.CreatedAt = created
	c.UpdatedAt = now
	return c, nil
}
