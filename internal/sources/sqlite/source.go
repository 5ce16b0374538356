// Package sqlite provides the SQLite table source. SQLite is the
// zero-setup local source used for development and tests.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/bifrost-labs/bifrost/internal/relation"
	"github.com/bifrost-labs/bifrost/internal/sources"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// Source implements the table source interface for SQLite.
type Source struct {
	mu     sync.RWMutex
	db     *sql.DB
	path   string
	closed bool
}

// Config configures the SQLite source.
type Config struct {
	// Path is the database file path; ":memory:" for an in-memory
	// database.
	Path string
}

// New creates a SQLite source.
func New(config Config) (*Source, error) {
	path := config.Path
	if path == "" {
		path = ":memory:"
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite source: %w", err)
	}
	return &Source{db: db, path: path}, nil
}

// Name returns the source engine name.
func (s *Source) Name() string {
	return "sqlite"
}

// FetchTable runs a read-only extraction query and materialises the
// result.
func (s *Source) FetchTable(ctx context.Context, query, tableName string) (*relation.Table, error) {
	if err := sources.EnsureReadOnly(query); err != nil {
		return nil, err
	}

	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return nil, fmt.Errorf("sqlite source: connection is closed")
	}
	db := s.db
	s.mu.RUnlock()

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("sqlite source: query failed: %w", err)
	}
	defer rows.Close()

	return sources.TableFromRows(rows, tableName)
}

// Ping checks if the database is reachable.
func (s *Source) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return fmt.Errorf("sqlite source: connection is closed")
	}
	return s.db.PingContext(ctx)
}

// Close releases the connection.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
