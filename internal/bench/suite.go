// Package bench runs the parameter sweeps that compare collision
// strategies and join types under load.
package bench

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/bifrost-labs/bifrost/internal/hashtable"
	"github.com/bifrost-labs/bifrost/internal/join"
	"github.com/bifrost-labs/bifrost/internal/loader"
	"github.com/bifrost-labs/bifrost/internal/profile"
)

// Generator seeds: fixed so every run joins identical tables.
const (
	leftSeed  = 42
	rightSeed = 123
)

// Suite executes benchmark sweeps.
type Suite struct {
	sizes      []int
	memoryRows int
	hasher     hashtable.Hasher
}

// New creates a suite sweeping the given build sizes. A nil or empty
// size list falls back to the standard sweep.
func New(sizes []int, memoryRows int, hasher hashtable.Hasher) *Suite {
	if len(sizes) == 0 {
		sizes = []int{1000, 10000, 100000}
	}
	if memoryRows <= 0 {
		memoryRows = 100000
	}
	return &Suite{sizes: sizes, memoryRows: memoryRows, hasher: hasher}
}

// joinWithStrategy generates a size-row left table and a size/2-row
// right table and joins them on the skewed "value" column.
func (s *Suite) joinWithStrategy(size int, strategy hashtable.CollisionStrategy, joinType join.Type) (profile.Data, error) {
	left := loader.Generate("Left", size, leftSeed)
	right := loader.Generate("Right", size/2, rightSeed)

	engine := join.NewWithHasher(s.hasher)
	if _, err := engine.HashJoin(left, "value", right, "value", joinType, strategy); err != nil {
		return profile.Data{}, err
	}
	return engine.Profiler().Data(), nil
}

// RunStrategyComparison sweeps table sizes across both collision
// strategies and renders one block per size.
func (s *Suite) RunStrategyComparison(w io.Writer) error {
	fmt.Fprintf(w, "\n=== Hash Table Strategy Comparison ===\n")

	strategies := []hashtable.CollisionStrategy{hashtable.Chaining, hashtable.LinearProbing}

	for _, size := range s.sizes {
		fmt.Fprintf(w, "\nTable Size: %d rows\n", size)
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "Strategy\tBuild (ms)\tProbe (ms)\tTotal (ms)\tLoad Factor\tCollisions")
		for _, strategy := range strategies {
			data, err := s.joinWithStrategy(size, strategy, join.Inner)
			if err != nil {
				return err
			}
			fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.2f\t%.3f\t%d\n",
				strategy,
				float64(data.BuildTime.Nanoseconds())/1e6,
				float64(data.ProbeTime.Nanoseconds())/1e6,
				float64(data.TotalTime.Nanoseconds())/1e6,
				data.HashStats.LoadFactor,
				data.HashStats.Collisions)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

// RunJoinTypeComparison compares the four join modes over one fixed
// table pair.
func (s *Suite) RunJoinTypeComparison(w io.Writer) error {
	fmt.Fprintf(w, "\n=== Join Type Performance Comparison ===\n")

	left := loader.Generate("Left", 10000, leftSeed)
	right := loader.Generate("Right", 5000, rightSeed)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Join Type\tBuild (ms)\tProbe (ms)\tTotal (ms)\tResult Rows\tSelectivity")

	engine := join.NewWithHasher(s.hasher)
	for _, joinType := range []join.Type{join.Inner, join.LeftOuter, join.RightOuter, join.FullOuter} {
		if _, err := engine.HashJoin(left, "value", right, "value", joinType, hashtable.Chaining); err != nil {
			return err
		}
		data := engine.Profiler().Data()
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.2f\t%d\t%.3f%%\n",
			joinType,
			float64(data.BuildTime.Nanoseconds())/1e6,
			float64(data.ProbeTime.Nanoseconds())/1e6,
			float64(data.TotalTime.Nanoseconds())/1e6,
			data.ResultRows,
			data.Selectivity*100)
	}
	return tw.Flush()
}

// RunMemoryStress joins a large generated pair and reports footprints.
func (s *Suite) RunMemoryStress(w io.Writer) error {
	fmt.Fprintf(w, "\n=== Memory Stress (%d rows) ===\n", s.memoryRows)

	left := loader.Generate("Left", s.memoryRows, leftSeed)
	right := loader.Generate("Right", s.memoryRows/2, rightSeed)

	fmt.Fprintf(w, "Left table:    %d rows, ~%d KB\n", left.RowCount(), left.EstimateMemoryUsage()/1024)
	fmt.Fprintf(w, "Right table:   %d rows, ~%d KB\n", right.RowCount(), right.EstimateMemoryUsage()/1024)

	engine := join.NewWithHasher(s.hasher)
	result, err := engine.HashJoin(left, "id", right, "id", join.Inner, hashtable.LinearProbing)
	if err != nil {
		return err
	}
	data := engine.Profiler().Data()

	fmt.Fprintf(w, "Result:        %d rows, ~%d KB\n", result.RowCount(), result.EstimateMemoryUsage()/1024)
	fmt.Fprintf(w, "Hash table:    peak ~%d KB\n", data.PeakMemoryUsage/1024)
	fmt.Fprintf(w, "Total time:    %.2f ms\n", float64(data.TotalTime.Nanoseconds())/1e6)
	return nil
}

// RunAll executes every sweep in order.
func (s *Suite) RunAll(w io.Writer) error {
	if err := s.RunStrategyComparison(w); err != nil {
		return err
	}
	if err := s.RunJoinTypeComparison(w); err != nil {
		return err
	}
	return s.RunMemoryStress(w)
}
