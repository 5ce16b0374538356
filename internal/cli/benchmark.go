package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/bifrost-labs/bifrost/internal/bench"
)

func (c *CLI) newBenchmarkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "benchmark",
		Short: "Sweep collision strategies and join types under load",
		Long: `Run the benchmark sweeps: both collision strategies across the
configured table sizes, then every join type over one fixed pair.
Sizes come from the benchmark.sizes config key.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBenchmark()
		},
	}
}

func (c *CLI) runBenchmark() error {
	suite := bench.New(c.cfg.Benchmark.Sizes, c.cfg.Benchmark.MemoryRows, c.defaultHasher())
	if err := suite.RunStrategyComparison(os.Stdout); err != nil {
		return c.outputError(err)
	}
	if err := suite.RunJoinTypeComparison(os.Stdout); err != nil {
		return c.outputError(err)
	}
	return nil
}

func (c *CLI) newMemoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "memory",
		Short: "Stress the engine with a large generated join",
		Long: `Generate a large table pair (benchmark.memoryRows rows on the left)
and join it, reporting table, result, and hash-table footprints.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runMemory()
		},
	}
}

func (c *CLI) runMemory() error {
	suite := bench.New(c.cfg.Benchmark.Sizes, c.cfg.Benchmark.MemoryRows, c.defaultHasher())
	if err := suite.RunMemoryStress(os.Stdout); err != nil {
		return c.outputError(err)
	}
	return nil
}

func (c *CLI) newAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Run demo, advanced, benchmark, and memory in sequence",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.runDemo(); err != nil {
				return err
			}
			if err := c.runAdvanced(1000); err != nil {
				return err
			}
			if err := c.runBenchmark(); err != nil {
				return err
			}
			return c.runMemory()
		},
	}
}
