// Package bigquery provides the Google BigQuery table source.
package bigquery

import (
	"context"
	"fmt"
	"sync"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/bifrost-labs/bifrost/internal/relation"
	"github.com/bifrost-labs/bifrost/internal/sources"
)

// Config configures the BigQuery source.
type Config struct {
	// ProjectID is the GCP project ID.
	ProjectID string

	// CredentialsJSON is the service account key (optional when
	// application default credentials are available).
	CredentialsJSON string

	// Location is the BigQuery region (e.g. "US", "EU").
	Location string

	// DefaultDataset qualifies unqualified table names.
	DefaultDataset string
}

// Validate validates the configuration.
func (c Config) Validate() error {
	if c.ProjectID == "" {
		return fmt.Errorf("bigquery source: project_id is required")
	}
	return nil
}

// Source implements the table source interface for BigQuery.
type Source struct {
	mu     sync.RWMutex
	config Config
	client *bigquery.Client
	closed bool
}

// New creates a BigQuery source.
func New(ctx context.Context, config Config) (*Source, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var opts []option.ClientOption
	if config.CredentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(config.CredentialsJSON)))
	}

	client, err := bigquery.NewClient(ctx, config.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("bigquery source: creating client: %w", err)
	}
	if config.Location != "" {
		client.Location = config.Location
	}
	return &Source{config: config, client: client}, nil
}

// Name returns the source engine name.
func (s *Source) Name() string {
	return "bigquery"
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
		return nil, fmt.Errorf("bigquery source: client is closed")
	}
	client := s.client
	s.mu.RUnlock()

	q := client.Query(query)
	if s.config.DefaultDataset != "" {
		q.DefaultDatasetID = s.config.DefaultDataset
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("bigquery source: query failed: %w", err)
	}

	var data [][]relation.Value
	var schema bigquery.Schema
	for {
		var row []bigquery.Value
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("bigquery source: reading result: %w", err)
		}
		if schema == nil {
			schema = it.Schema
		}
		converted := make([]relation.Value, len(row))
		for i, v := range row {
			converted[i] = sources.ConvertValue(v)
		}
		data = append(data, converted)
	}
	if schema == nil {
		schema = it.Schema
	}

	table := relation.NewTable(tableName)
	for i, field := range schema {
		if err := table.AddColumn(field.Name, sources.ColumnType(data, i)); err != nil {
			return nil, err
		}
	}
	for _, values := range data {
		if err := table.AddRow(relation.NewRow(values...)); err != nil {
			return nil, err
		}
	}
	return table, nil
}

// Ping checks that the project's datasets are listable.
func (s *Source) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return fmt.Errorf("bigquery source: client is closed")
	}
	it := s.client.Datasets(ctx)
	if _, err := it.Next(); err != nil && err != iterator.Done {
		return fmt.Errorf("bigquery source: %w", err)
	}
	return nil
}

// Close releases the client.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.client.Close()
}
