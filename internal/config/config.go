// Package config provides configuration loading for the bifrost CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	// Join configuration
	Join JoinConfig `mapstructure:"join"`

	// Benchmark configuration
	Benchmark BenchmarkConfig `mapstructure:"benchmark"`

	// Logging configuration
	Logging LoggingConfig `mapstructure:"logging"`

	// Sources configuration (external table sources)
	Sources SourcesConfig `mapstructure:"sources"`
}

// JoinConfig holds join engine defaults.
type JoinConfig struct {
	// Strategy is the default collision strategy: "chaining" or
	// "linear-probing".
	Strategy string `mapstructure:"strategy"`

	// Hasher is the default hasher: "value" or "murmur3".
	Hasher string `mapstructure:"hasher"`
}

// BenchmarkConfig holds benchmark sweep parameters.
type BenchmarkConfig struct {
	// Sizes are the build-side row counts swept by the strategy
	// benchmark.
	Sizes []int `mapstructure:"sizes"`

	// MemoryRows is the row count of the memory stress run.
	MemoryRows int `mapstructure:"memoryRows"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SourcesConfig holds per-engine connection settings for external
// table sources.
type SourcesConfig struct {
	SQLite    SQLiteConfig    `mapstructure:"sqlite"`
	DuckDB    DuckDBConfig    `mapstructure:"duckdb"`
	Postgres  PostgresConfig  `mapstructure:"postgres"`
	Trino     TrinoConfig     `mapstructure:"trino"`
	Snowflake SnowflakeConfig `mapstructure:"snowflake"`
	BigQuery  BigQueryConfig  `mapstructure:"bigquery"`
}

// SQLiteConfig holds SQLite source configuration.
type SQLiteConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// DuckDBConfig holds DuckDB source configuration.
type DuckDBConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// PostgresConfig holds PostgreSQL source configuration.
type PostgresConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	DSN     string `mapstructure:"dsn"`
}

// TrinoConfig holds Trino source configuration.
type TrinoConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`
	Catalog string `mapstructure:"catalog"`
	Schema  string `mapstructure:"schema"`
	User    string `mapstructure:"user"`
}

// SnowflakeConfig holds Snowflake source configuration.
type SnowflakeConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Account   string `mapstructure:"account"`
	User      string `mapstructure:"user"`
	Password  string `mapstructure:"password"`
	Database  string `mapstructure:"database"`
	Schema    string `mapstructure:"schema"`
	Warehouse string `mapstructure:"warehouse"`
}

// BigQueryConfig holds BigQuery source configuration.
type BigQueryConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	ProjectID       string `mapstructure:"projectId"`
	Location        string `mapstructure:"location"`
	DefaultDataset  string `mapstructure:"defaultDataset"`
	CredentialsJSON string `mapstructure:"credentialsJson"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Join: JoinConfig{
			Strategy: "chaining",
			Hasher:   "value",
		},
		Benchmark: BenchmarkConfig{
			Sizes:      []int{1000, 10000, 100000},
			MemoryRows: 100000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Sources: SourcesConfig{
			SQLite: SQLiteConfig{Path: ":memory:"},
			DuckDB: DuckDBConfig{Path: ":memory:"},
			Trino: TrinoConfig{
				Host:    "localhost",
				Port:    8080,
				Catalog: "memory",
				Schema:  "default",
				User:    "bifrost",
			},
			BigQuery: BigQueryConfig{Location: "US"},
		},
	}
}

// Load loads configuration from file and environment.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".bifrost"))
		}
		v.AddConfigPath(".")
		v.SetConfigName("bifrost")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("BIFROST")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Config file is optional
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("join.strategy", "chaining")
	v.SetDefault("join.hasher", "value")
	v.SetDefault("benchmark.sizes", []int{1000, 10000, 100000})
	v.SetDefault("benchmark.memoryRows", 100000)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("sources.sqlite.enabled", false)
	v.SetDefault("sources.sqlite.path", ":memory:")
	v.SetDefault("sources.duckdb.enabled", false)
	v.SetDefault("sources.duckdb.path", ":memory:")
	v.SetDefault("sources.postgres.enabled", false)
	v.SetDefault("sources.trino.enabled", false)
	v.SetDefault("sources.trino.host", "localhost")
	v.SetDefault("sources.trino.port", 8080)
	v.SetDefault("sources.trino.catalog", "memory")
	v.SetDefault("sources.trino.schema", "default")
	v.SetDefault("sources.trino.user", "bifrost")
	v.SetDefault("sources.snowflake.enabled", false)
	v.SetDefault("sources.bigquery.enabled", false)
	v.SetDefault("sources.bigquery.location", "US")
}
