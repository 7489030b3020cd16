package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS fuzzr_collections (
	name       TEXT PRIMARY KEY,
	items      JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
)`

// PGStore implements Storage using PostgreSQL
type PGStore struct {
	db  *pgxpool.Pool
	now func() time.Time
}

// NewPGStore creates a Postgres-backed store and ensures its table exists
func NewPGStore(ctx context.Context, db *DB) (*PGStore, error) {
	s := &PGStore{db: db.Pool(), now: time.Now}
	if err := s.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// EnsureSchema creates the collections table if needed
func (s *PGStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Put creates or replaces a collection, keeping its original created_at
func (s *PGStore) Put(ctx context.Context, c Collection) (Collection, error) {
	c, err := prepare(c, time.Time{}, s.now().UTC())
	if err != nil {
		return Collection{}, err
	}

	items, err := json.Marshal(c.Items)
	if err != nil {
		return Collection{}, fmt.Errorf("failed to encode items: %w", err)
	}

	err = s.db.QueryRow(ctx, `
		INSERT INTO fuzzr_collections (name, items, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		ON CONFLICT (name) DO UPDATE
		SET items = EXCLUDED.items, updated_at = EXCLUDED.updated_at
		RETURNING created_at
	`, c.Name, items, c.UpdatedAt).Scan(&c.CreatedAt)
	if err != nil {
		return Collection{}, fmt.Errorf("failed to store collection: %w", err)
	}
	return c, nil
}

// Get returns the named collection
func (s *PGStore) Get(ctx context.Context, name string) (Collection, error) {
	var c Collection
	var items []byte

	err := s.db.QueryRow(ctx, `
		SELECT name, items, created_at, updated_at
		FROM fuzzr_collections
		WHERE name = $1
	`, name).Scan(&c.Name, &items, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Collection{}, ErrNotFound
	}
	if err != nil {
		return Collection{}, fmt.Errorf("failed to get collection: %w", err)
	}

	if err := json.Unmarshal(items, &c.Items); err != nil {
		return Collection{}, fmt.Errorf("failed to decode items: %w", err)
	}
	return c, nil
}

// Delete removes the named collection
func (s *PGStore) Delete(ctx context.Context, name string) error {
	result, err := s.db.Exec(ctx, `DELETE FROM fuzzr_collections WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("failed to delete collection: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns collection summaries sorted by name
func (s *PGStore) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.Query(ctx, `
		SELECT name, jsonb_array_length(items), updated_at
		FROM fuzzr_collections
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	defer rows.Close()

	out := make([]Summary, 0)
	for rows.Next() {
		var sum Summary
		if err := rows.Scan(&sum.Name, &sum.ItemCount, &sum.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan collection: %w", err)
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

// Count returns the number of collections
func (s *PGStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM fuzzr_collections`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count collections: %w", err)
	}
	return n, nil
}

// Flush is a no-op; every write is committed immediately
func (s *PGStore) Flush() error {
	return nil
}

// Close closes the connection pool
func (s *PGStore) Close() error {
	s.db.Close()
	return nil
}
