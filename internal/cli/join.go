package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/bifrost-labs/bifrost/internal/bootstrap"
	"github.com/bifrost-labs/bifrost/internal/errors"
	"github.com/bifrost-labs/bifrost/internal/hashtable"
	"github.com/bifrost-labs/bifrost/internal/join"
	"github.com/bifrost-labs/bifrost/internal/loader"
	"github.com/bifrost-labs/bifrost/internal/relation"
	"github.com/bifrost-labs/bifrost/internal/sources"
	"github.com/bifrost-labs/bifrost/internal/sources/bigquery"
	"github.com/bifrost-labs/bifrost/internal/sources/duckdb"
	"github.com/bifrost-labs/bifrost/internal/sources/postgres"
	"github.com/bifrost-labs/bifrost/internal/sources/snowflake"
	"github.com/bifrost-labs/bifrost/internal/sources/sqlite"
	"github.com/bifrost-labs/bifrost/internal/sources/trino"
)

func (c *CLI) newJoinCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "join",
		Short: "Join two tables from CSV files or manifest datasets",
		Long: `Join two tables on equality of one key column per side.

Each input is either a CSV file path or, with --manifest, the name of
a declared dataset pulled from its source engine.

Example:
  bifrost join --left orders.csv --left-key customer_id \
               --right customers.csv --right-key id --type left`,
	}

	var (
		leftInput    string
		rightInput   string
		leftKey      string
		rightKey     string
		typeName     string
		strategyName string
		manifestPath string
		limit        int
	)
	cmd.Flags().StringVar(&leftInput, "left", "", "left input: CSV path or dataset name (required)")
	cmd.Flags().StringVar(&rightInput, "right", "", "right input: CSV path or dataset name (required)")
	cmd.Flags().StringVar(&leftKey, "left-key", "", "left join column (required)")
	cmd.Flags().StringVar(&rightKey, "right-key", "", "right join column (required)")
	cmd.Flags().StringVar(&typeName, "type", "inner", "join type: inner, left, right, full")
	cmd.Flags().StringVar(&strategyName, "strategy", "", "collision strategy (default from config)")
	cmd.Flags().StringVar(&manifestPath, "manifest", "", "dataset manifest (YAML)")
	cmd.Flags().IntVar(&limit, "limit", 10, "result sample rows to print")
	cmd.MarkFlagRequired("left")
	cmd.MarkFlagRequired("right")
	cmd.MarkFlagRequired("left-key")
	cmd.MarkFlagRequired("right-key")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return c.runJoin(leftInput, rightInput, leftKey, rightKey, typeName, strategyName, manifestPath, limit)
	}
	return cmd
}

func (c *CLI) runJoin(leftInput, rightInput, leftKey, rightKey, typeName, strategyName, manifestPath string, limit int) error {
	joinType, err := join.ParseType(typeName)
	if err != nil {
		return c.outputError(err)
	}

	strategy, err := c.defaultStrategy()
	if err != nil {
		return c.outputError(err)
	}
	if strategyName != "" {
		strategy, err = hashtable.ParseStrategy(strategyName)
		if err != nil {
			return c.outputError(err)
		}
	}

	var manifest *bootstrap.Manifest
	if manifestPath != "" {
		manifest, err = bootstrap.LoadManifest(manifestPath)
		if err != nil {
			return c.outputError(err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	left, err := c.resolveTable(ctx, manifest, leftInput, "left")
	if err != nil {
		return c.outputError(err)
	}
	right, err := c.resolveTable(ctx, manifest, rightInput, "right")
	if err != nil {
		return c.outputError(err)
	}

	engine := join.NewWithHasher(c.defaultHasher())
	result, err := engine.HashJoin(left, leftKey, right, rightKey, joinType, strategy)
	if err != nil {
		c.logJoin(left, right, leftKey, rightKey, joinType, strategy, engine.Profiler().Data(), err)
		return c.outputError(err)
	}
	data := engine.Profiler().Data()
	c.logJoin(left, right, leftKey, rightKey, joinType, strategy, data, nil)

	if c.jsonOutput {
		return c.outputJSON(joinReport(left.Name(), right.Name(),
			joinType.String(), strategy.String(),
			left.RowCount(), right.RowCount(), data))
	}

	if limit > 0 {
		result.PrintSample(os.Stdout, limit)
	}
	engine.Profiler().PrintReport(os.Stdout)
	return nil
}

// resolveTable turns an input reference into a table: a manifest
// dataset name when a manifest is loaded and matches, a CSV path
// otherwise.
func (c *CLI) resolveTable(ctx context.Context, manifest *bootstrap.Manifest, input, tableName string) (*relation.Table, error) {
	if manifest != nil {
		if ds, ok := manifest.Lookup(input); ok {
			return c.fetchDataset(ctx, input, ds)
		}
	}
	if strings.HasSuffix(input, ".csv") || fileExists(input) {
		return loader.LoadCSV(input, tableName)
	}
	return nil, errors.NewLoadFailure(input,
		"the input is neither a readable CSV file nor a declared dataset",
		nil)
}

func (c *CLI) fetchDataset(ctx context.Context, name string, ds bootstrap.Dataset) (*relation.Table, error) {
	if ds.Engine == "csv" {
		return loader.LoadCSV(ds.Location, name)
	}
	source, err := c.openSource(ctx, ds.Engine)
	if err != nil {
		return nil, err
	}
	defer source.Close()
	return source.FetchTable(ctx, ds.Query, name)
}

// openSource constructs the configured source for an engine name.
func (c *CLI) openSource(ctx context.Context, engine string) (sources.Source, error) {
	cfg := c.cfg.Sources
	switch engine {
	case "sqlite":
		if !cfg.SQLite.Enabled {
			return nil, errors.NewSourceUnavailable(engine, nil)
		}
		return sqlite.New(sqlite.Config{Path: cfg.SQLite.Path})
	case "duckdb":
		if !cfg.DuckDB.Enabled {
			return nil, errors.NewSourceUnavailable(engine, nil)
		}
		return duckdb.New(duckdb.Config{Path: cfg.DuckDB.Path})
	case "postgres":
		if !cfg.Postgres.Enabled {
			return nil, errors.NewSourceUnavailable(engine, nil)
		}
		return postgres.New(postgres.Config{DSN: cfg.Postgres.DSN})
	case "trino":
		if !cfg.Trino.Enabled {
			return nil, errors.NewSourceUnavailable(engine, nil)
		}
		return trino.New(trino.Config{
			Host:    cfg.Trino.Host,
			Port:    cfg.Trino.Port,
			Catalog: cfg.Trino.Catalog,
			Schema:  cfg.Trino.Schema,
			User:    cfg.Trino.User,
		})
	case "snowflake":
		if !cfg.Snowflake.Enabled {
			return nil, errors.NewSourceUnavailable(engine, nil)
		}
		return snowflake.New(snowflake.Config{
			Account:   cfg.Snowflake.Account,
			User:      cfg.Snowflake.User,
			Password:  cfg.Snowflake.Password,
			Database:  cfg.Snowflake.Database,
			Schema:    cfg.Snowflake.Schema,
			Warehouse: cfg.Snowflake.Warehouse,
		})
	case "bigquery":
		if !cfg.BigQuery.Enabled {
			return nil, errors.NewSourceUnavailable(engine, nil)
		}
		return bigquery.New(ctx, bigquery.Config{
			ProjectID:       cfg.BigQuery.ProjectID,
			CredentialsJSON: cfg.BigQuery.CredentialsJSON,
			Location:        cfg.BigQuery.Location,
			DefaultDataset:  cfg.BigQuery.DefaultDataset,
		})
	default:
		return nil, fmt.Errorf("unknown source engine %q", engine)
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
