// Package cli provides the command-line interface for bifrost: demo
// and stress runs, benchmark sweeps, ad-hoc joins, and diagnostics.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bifrost-labs/bifrost/internal/config"
	"github.com/bifrost-labs/bifrost/internal/errors"
	"github.com/bifrost-labs/bifrost/internal/hashtable"
	"github.com/bifrost-labs/bifrost/internal/observability"
	"github.com/bifrost-labs/bifrost/internal/profile"
	"github.com/bifrost-labs/bifrost/pkg/models"
)

// Exit codes: 0 on success, 1 on any uncaught error.
const (
	ExitSuccess = 0
	ExitError   = 1
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// CLI holds the command-line interface state.
type CLI struct {
	rootCmd *cobra.Command
	cfg     *config.Config
	logger  observability.JoinLogger

	// Global flags
	configPath string
	jsonOutput bool
	quiet      bool
	debug      bool
}

// New creates a new CLI instance.
func New() *CLI {
	cli := &CLI{logger: observability.NewNoopLogger()}
	cli.rootCmd = cli.newRootCmd()
	return cli
}

// Execute runs the CLI and returns the process exit code.
func (c *CLI) Execute() int {
	if err := c.rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "bifrost: %v\n", err)
		return ExitError
	}
	return ExitSuccess
}

func (c *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bifrost",
		Short: "Bifrost - In-Memory Hash Join Engine",
		Long: `Bifrost is an in-memory relational join engine built around a
collision-instrumented hash table.

It provides:
  • build-probe equi-joins (inner, left, right, full outer)
  • two hash-table collision strategies for apples-to-apples comparison
  • per-join profiling: phase timings, occupancy, selectivity, memory
  • table sources: CSV files and external engines (SQLite, DuckDB,
    PostgreSQL, Trino, Snowflake, BigQuery)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.initConfig()
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: ./bifrost.yaml or ~/.bifrost/bifrost.yaml)")
	cmd.PersistentFlags().BoolVar(&c.jsonOutput, "json", false, "machine-readable JSON output")
	cmd.PersistentFlags().BoolVar(&c.quiet, "quiet", false, "suppress non-essential output")
	cmd.PersistentFlags().BoolVar(&c.debug, "debug", false, "emit a structured log line per join")

	cmd.AddCommand(c.newDemoCmd())
	cmd.AddCommand(c.newAdvancedCmd())
	cmd.AddCommand(c.newBenchmarkCmd())
	cmd.AddCommand(c.newMemoryCmd())
	cmd.AddCommand(c.newAllCmd())
	cmd.AddCommand(c.newJoinCmd())
	cmd.AddCommand(c.newDoctorCmd())
	cmd.AddCommand(c.newVersionCmd())

	return cmd
}

func (c *CLI) initConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	if c.debug {
		c.logger = observability.NewJSONLogger(os.Stderr)
	}
	return nil
}

// defaultStrategy resolves the configured collision strategy.
func (c *CLI) defaultStrategy() (hashtable.CollisionStrategy, error) {
	return hashtable.ParseStrategy(c.cfg.Join.Strategy)
}

// defaultHasher resolves the configured hasher.
func (c *CLI) defaultHasher() hashtable.Hasher {
	return hashtable.HasherByName(c.cfg.Join.Hasher)
}

func (c *CLI) println(args ...interface{}) {
	if c.quiet {
		return
	}
	fmt.Println(args...)
}

func (c *CLI) printf(format string, args ...interface{}) {
	if c.quiet {
		return
	}
	fmt.Printf(format, args...)
}

func (c *CLI) outputJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// outputError renders a failure in the requested format and passes the
// error back for the exit code.
func (c *CLI) outputError(err error) error {
	if c.jsonOutput {
		resp := models.ErrorResponse{Error: err.Error(), Code: int(errors.CodeOf(err))}
		type based interface {
			Base() *errors.BifrostError
		}
		if b, ok := err.(based); ok {
			base := b.Base()
			resp.Error = base.Message
			resp.Reason = base.Reason
			resp.Suggestion = base.Suggestion
		}
		c.outputJSON(resp)
	}
	return err
}

// joinReport packages profiler data for JSON output.
func joinReport(leftName, rightName string, joinType, strategy string, leftRows, rightRows int, data profile.Data) models.JoinReport {
	return models.JoinReport{
		LeftTable:   leftName,
		RightTable:  rightName,
		JoinType:    joinType,
		Strategy:    strategy,
		LeftRows:    leftRows,
		RightRows:   rightRows,
		ResultRows:  data.ResultRows,
		BuildTimeMs: float64(data.BuildTime.Nanoseconds()) / 1e6,
		ProbeTimeMs: float64(data.ProbeTime.Nanoseconds()) / 1e6,
		TotalTimeMs: float64(data.TotalTime.Nanoseconds()) / 1e6,
		Selectivity: data.Selectivity,
		HashStats: models.HashStatsReport{
			TotalBuckets:   data.HashStats.TotalBuckets,
			UsedBuckets:    data.HashStats.UsedBuckets,
			TotalEntries:   data.HashStats.TotalEntries,
			Collisions:     data.HashStats.Collisions,
			LoadFactor:     data.HashStats.LoadFactor,
			AvgChainLength: data.HashStats.AvgChainLength,
			MaxChainLength: data.HashStats.MaxChainLength,
			MemoryUsageKB:  data.HashStats.MemoryUsage / 1024,
		},
	}
}
