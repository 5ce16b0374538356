// Package profile observes a single join execution: phase timings,
// hash-table statistics, result selectivity, and peak memory. It is a
// single-threaded observer owned by the join engine; callers read its
// data through the engine and must not retain it past the engine's
// lifetime.
package profile

import (
	"fmt"
	"io"
	"time"

	"github.com/bifrost-labs/bifrost/internal/hashtable"
)

// Data is the profiling snapshot of one join.
type Data struct {
	// BuildTime measures from Start to MarkBuildComplete.
	BuildTime time.Duration

	// ProbeTime measures from MarkBuildComplete to MarkProbeComplete.
	ProbeTime time.Duration

	// TotalTime is BuildTime + ProbeTime.
	TotalTime time.Duration

	// HashStats is the last recorded hash-table snapshot.
	HashStats hashtable.Stats

	// MemoryUsage is the hash table's last reported footprint;
	// PeakMemoryUsage is the running maximum across all recordings.
	MemoryUsage     int
	PeakMemoryUsage int

	// ResultRows is the emitted row count; Selectivity is ResultRows
	// divided by the Cartesian product size (0 when the product is
	// empty).
	ResultRows  int
	Selectivity float64
}

// Profiler records the phases of one join. Timing uses the runtime's
// monotonic clock; durations are nanoseconds. The state after a failed
// join is undefined and must not be read.
type Profiler struct {
	profiling bool
	start     time.Time
	data      Data
}

// New creates an idle profiler.
func New() *Profiler {
	return &Profiler{}
}

// Start resets the profiler and begins timing the build phase.
func (p *Profiler) Start() {
	p.profiling = true
	p.start = time.Now()
	p.data = Data{}
}

// MarkBuildComplete ends the build phase. A no-op when not profiling.
func (p *Profiler) MarkBuildComplete() {
	if !p.profiling {
		return
	}
	p.data.BuildTime = time.Since(p.start)
}

// MarkProbeComplete ends the probe phase. A no-op when not profiling.
func (p *Profiler) MarkProbeComplete() {
	if !p.profiling {
		return
	}
	p.data.ProbeTime = time.Since(p.start) - p.data.BuildTime
	p.data.TotalTime = p.data.BuildTime + p.data.ProbeTime
}

// RecordHashStats captures a hash-table snapshot and advances the peak
// memory watermark.
func (p *Profiler) RecordHashStats(stats hashtable.Stats) {
	p.data.HashStats = stats
	p.data.MemoryUsage = stats.MemoryUsage
	if stats.MemoryUsage > p.data.PeakMemoryUsage {
		p.data.PeakMemoryUsage = stats.MemoryUsage
	}
}

// RecordResults stores the emitted row count and derives selectivity
// from the Cartesian product size, guarding the zero denominator.
func (p *Profiler) RecordResults(resultRows, cartesianRows int) {
	p.data.ResultRows = resultRows
	if cartesianRows > 0 {
		p.data.Selectivity = float64(resultRows) / float64(cartesianRows)
	} else {
		p.data.Selectivity = 0
	}
}

// Stop ends profiling. The collected data remains readable.
func (p *Profiler) Stop() {
	p.profiling = false
}

// Data returns the collected snapshot.
func (p *Profiler) Data() Data {
	return p.data
}

// PrintReport renders the performance report to w. Before any timing
// has occurred it reports that no data is available.
func (p *Profiler) PrintReport(w io.Writer) {
	if !p.profiling && p.data.TotalTime == 0 {
		fmt.Fprintln(w, "No profiling data available.")
		return
	}

	fmt.Fprintf(w, "\n=== Performance Report ===\n")
	fmt.Fprintf(w, "Build Time:     %.3f ms\n", float64(p.data.BuildTime.Nanoseconds())/1e6)
	fmt.Fprintf(w, "Probe Time:     %.3f ms\n", float64(p.data.ProbeTime.Nanoseconds())/1e6)
	fmt.Fprintf(w, "Total Time:     %.3f ms\n", float64(p.data.TotalTime.Nanoseconds())/1e6)
	fmt.Fprintf(w, "Result Rows:    %d\n", p.data.ResultRows)
	fmt.Fprintf(w, "Selectivity:    %.3f%%\n", p.data.Selectivity*100)

	fmt.Fprintf(w, "\n=== Hash Table Statistics ===\n")
	fmt.Fprintf(w, "Total Buckets:  %d\n", p.data.HashStats.TotalBuckets)
	fmt.Fprintf(w, "Used Buckets:   %d\n", p.data.HashStats.UsedBuckets)
	fmt.Fprintf(w, "Load Factor:    %.3f\n", p.data.HashStats.LoadFactor)
	fmt.Fprintf(w, "Collisions:     %d\n", p.data.HashStats.Collisions)
	fmt.Fprintf(w, "Avg Chain Len:  %.3f\n", p.data.HashStats.AvgChainLength)
	fmt.Fprintf(w, "Max Chain Len:  %d\n", p.data.HashStats.MaxChainLength)
	fmt.Fprintf(w, "Memory Usage:   %d KB\n", p.data.HashStats.MemoryUsage/1024)
	fmt.Fprintf(w, "========================\n\n")
}
