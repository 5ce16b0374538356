// Package snowflake provides the Snowflake table source.
package snowflake

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	sf "github.com/snowflakedb/gosnowflake"

	"github.com/bifrost-labs/bifrost/internal/relation"
	"github.com/bifrost-labs/bifrost/internal/sources"
)

// Source implements the table source interface for Snowflake.
type Source struct {
	mu     sync.RWMutex
	db     *sql.DB
	config Config
	closed bool
}

// Config configures the Snowflake source.
type Config struct {
	// Account is the Snowflake account identifier.
	Account string

	// User is the Snowflake username.
	User string

	// Password for basic auth.
	Password string

	// Database is the default database.
	Database string

	// Schema is the default schema.
	Schema string

	// Warehouse is the compute warehouse.
	Warehouse string
}

// Validate validates the configuration.
func (c Config) Validate() error {
	if c.Account == "" {
		return fmt.Errorf("snowflake source: account is required")
	}
	if c.User == "" {
		return fmt.Errorf("snowflake source: user is required")
	}
	if c.Password == "" {
		return fmt.Errorf("snowflake source: password is required")
	}
	if c.Warehouse == "" {
		return fmt.Errorf("snowflake source: warehouse is required")
	}
	return nil
}

// New creates a Snowflake source.
func New(config Config) (*Source, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	dsn, err := sf.DSN(&sf.Config{
		Account:   config.Account,
		User:      config.User,
		Password:  config.Password,
		Database:  config.Database,
		Schema:    config.Schema,
		Warehouse: config.Warehouse,
	})
	if err != nil {
		return nil, fmt.Errorf("snowflake source: building DSN: %w", err)
	}

	db, err := sql.Open("snowflake", dsn)
	if err != nil {
		return nil, fmt.Errorf("snowflake source: %w", err)
	}
	return &Source{db: db, config: config}, nil
}

// Name returns the source engine name.
func (s *Source) Name() string {
	return "snowflake"
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
		return nil, fmt.Errorf("snowflake source: connection is closed")
	}
	db := s.db
	s.mu.RUnlock()

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("snowflake source: query failed: %w", err)
	}
	defer rows.Close()

	return sources.TableFromRows(rows, tableName)
}

// Ping checks if the warehouse is reachable.
func (s *Source) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return fmt.Errorf("snowflake source: connection is closed")
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
