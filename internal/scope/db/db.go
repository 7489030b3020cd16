package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps the database connection pool
type DB struct {
	pool *pgxpool.Pool
}

// New creates a new database connection
func New(ctx context.Context, connString string) (*DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the database connection
func (d *DB) Close() {
	d.pool.Close()
}

// Pool returns the underlying connection pool
func (d *DB) Pool() *pgxpool.Pool {
	return d.pool
}

// Open returns the storage selected by the configuration: Postgres when
// connString is set, otherwise the file store in dataDir.
func Open(ctx context.Context, connString, dataDir string) (Storage, error) {
	if connString == "" {
		return NewStore(dataDir)
	}

	database, err := New(ctx, connString)
	if err != nil {
		return nil, err
	}
	store, err := NewPGStore(ctx, database)
	if err != nil {
		database.Close()
		return nil, err
	}
	return store, nil
}
