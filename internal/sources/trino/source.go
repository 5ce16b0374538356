// Package trino provides the Trino table source for pulling tables out
// of a federated warehouse.
package trino

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/bifrost-labs/bifrost/internal/relation"
	"github.com/bifrost-labs/bifrost/internal/sources"

	_ "github.com/trinodb/trino-go-client/trino" // Trino driver
)

// Source implements the table source interface for Trino.
type Source struct {
	mu     sync.RWMutex
	db     *sql.DB
	config Config
	closed bool
}

// Config configures the Trino source.
type Config struct {
	// Host is the Trino coordinator hostname.
	Host string

	// Port is the Trino coordinator port.
	Port int

	// Catalog is the default Trino catalog.
	Catalog string

	// Schema is the default Trino schema.
	Schema string

	// User is the Trino user for queries.
	User string
}

// New creates a Trino source.
func New(config Config) (*Source, error) {
	if config.Host == "" {
		config.Host = "localhost"
	}
	if config.Port == 0 {
		config.Port = 8080
	}
	if config.Catalog == "" {
		config.Catalog = "memory"
	}
	if config.Schema == "" {
		config.Schema = "default"
	}
	if config.User == "" {
		config.User = "bifrost"
	}

	dsn := fmt.Sprintf("http://%s@%s:%d?catalog=%s&schema=%s",
		config.User, config.Host, config.Port, config.Catalog, config.Schema)

	db, err := sql.Open("trino", dsn)
	if err != nil {
		return nil, fmt.Errorf("trino source: %w", err)
	}
	return &Source{db: db, config: config}, nil
}

// Name returns the source engine name.
func (s *Source) Name() string {
	return "trino"
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
		return nil, fmt.Errorf("trino source: connection is closed")
	}
	db := s.db
	s.mu.RUnlock()

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("trino source: query failed: %w", err)
	}
	defer rows.Close()

	return sources.TableFromRows(rows, tableName)
}

// Ping checks if the coordinator is reachable.
func (s *Source) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return fmt.Errorf("trino source: connection is closed")
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
