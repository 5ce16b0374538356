// Package bootstrap provides declarative dataset manifests.
//
// A manifest is a YAML file naming the datasets a run may join, each
// bound to a source engine and either a file location or an extraction
// query. Manifests are human-readable, versionable, and schema-checked:
// unknown fields fail the load rather than being silently ignored.
package bootstrap

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest is the set of declared datasets.
type Manifest struct {
	// Datasets maps dataset name to its declaration.
	Datasets map[string]Dataset `yaml:"datasets"`

	// path is the source file, kept for error messages.
	path string
}

// Dataset declares where one named table comes from.
type Dataset struct {
	// Engine names the source: "csv", "sqlite", "duckdb", "postgres",
	// "trino", "snowflake", or "bigquery".
	Engine string `yaml:"engine"`

	// Location is the file path for the csv engine.
	Location string `yaml:"location,omitempty"`

	// Query is the read-only extraction query for database engines.
	Query string `yaml:"query,omitempty"`
}

var knownEngines = map[string]bool{
	"csv":       true,
	"sqlite":    true,
	"duckdb":    true,
	"postgres":  true,
	"trino":     true,
	"snowflake": true,
	"bigquery":  true,
}

// LoadManifest loads and validates a manifest from a YAML file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	// First pass: reject unknown top-level fields.
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse manifest YAML: %w", err)
	}
	for key := range raw {
		if key != "datasets" {
			return nil, fmt.Errorf("unknown field %q in manifest %s", key, path)
		}
	}

	// Second pass: decode strictly, so unknown dataset keys fail too.
	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse manifest YAML: %w", err)
	}
	m.path = path

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks every dataset declaration.
func (m *Manifest) Validate() error {
	if len(m.Datasets) == 0 {
		return fmt.Errorf("manifest %s declares no datasets", m.path)
	}
	for name, ds := range m.Datasets {
		if !knownEngines[ds.Engine] {
			return fmt.Errorf("dataset %q: unknown engine %q", name, ds.Engine)
		}
		if ds.Engine == "csv" {
			if ds.Location == "" {
				return fmt.Errorf("dataset %q: csv engine requires a location", name)
			}
			continue
		}
		if ds.Query == "" {
			return fmt.Errorf("dataset %q: engine %q requires a query", name, ds.Engine)
		}
	}
	return nil
}

// Lookup resolves a dataset by name.
func (m *Manifest) Lookup(name string) (Dataset, bool) {
	ds, ok := m.Datasets[name]
	return ds, ok
}
