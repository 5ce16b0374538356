package profile

import (
	"strings"
	"testing"
	"time"

	"github.com/bifrost-labs/bifrost/internal/hashtable"
)

// TestProfiler_NoDataReport proves the report degrades gracefully
// before any timing.
func TestProfiler_NoDataReport(t *testing.T) {
	var sb strings.Builder
	New().PrintReport(&sb)
	if !strings.Contains(sb.String(), "No profiling data available.") {
		t.Errorf("report = %q", sb.String())
	}
}

// TestProfiler_PhaseArithmetic proves total = build + probe and that
// phase marks are monotone.
func TestProfiler_PhaseArithmetic(t *testing.T) {
	p := New()
	p.Start()
	p.MarkBuildComplete()
	p.MarkProbeComplete()
	p.Stop()

	data := p.Data()
	if data.BuildTime < 0 || data.ProbeTime < 0 {
		t.Error("phase durations must be non-negative")
	}
	if data.TotalTime != data.BuildTime+data.ProbeTime {
		t.Errorf("total %v != build %v + probe %v", data.TotalTime, data.BuildTime, data.ProbeTime)
	}
}

// TestProfiler_MarksIgnoredWhenIdle proves marks outside a profiling
// window do nothing.
func TestProfiler_MarksIgnoredWhenIdle(t *testing.T) {
	p := New()
	p.MarkBuildComplete()
	p.MarkProbeComplete()
	if p.Data().TotalTime != 0 {
		t.Error("marks before Start must be ignored")
	}
}

// TestProfiler_PeakMemoryWatermark proves the peak tracks the maximum
// of every recorded snapshot, not the last.
func TestProfiler_PeakMemoryWatermark(t *testing.T) {
	p := New()
	p.Start()
	p.RecordHashStats(hashtable.Stats{MemoryUsage: 100})
	p.RecordHashStats(hashtable.Stats{MemoryUsage: 5000})
	p.RecordHashStats(hashtable.Stats{MemoryUsage: 300})

	data := p.Data()
	if data.PeakMemoryUsage != 5000 {
		t.Errorf("peak = %d, want 5000", data.PeakMemoryUsage)
	}
	if data.MemoryUsage != 300 {
		t.Errorf("current = %d, want 300 (last snapshot)", data.MemoryUsage)
	}
}

// TestProfiler_Selectivity proves the ratio and its zero-denominator
// guard.
func TestProfiler_Selectivity(t *testing.T) {
	p := New()
	p.Start()
	p.RecordResults(25, 100)
	if got := p.Data().Selectivity; got != 0.25 {
		t.Errorf("selectivity = %f, want 0.25", got)
	}

	p.Start()
	p.RecordResults(0, 0)
	if got := p.Data().Selectivity; got != 0 {
		t.Errorf("selectivity with empty product = %f, want 0", got)
	}
}

// TestProfiler_StartResets proves a new run discards old data.
func TestProfiler_StartResets(t *testing.T) {
	p := New()
	p.Start()
	p.RecordResults(10, 10)
	p.Start()
	if p.Data().ResultRows != 0 {
		t.Error("Start must reset the snapshot")
	}
}

// TestProfiler_ReportContents smoke-checks the rendered report.
func TestProfiler_ReportContents(t *testing.T) {
	p := New()
	p.Start()
	p.RecordHashStats(hashtable.Stats{TotalBuckets: 64, UsedBuckets: 10, MemoryUsage: 2048})
	time.Sleep(time.Millisecond)
	p.MarkBuildComplete()
	p.RecordResults(5, 50)
	p.MarkProbeComplete()
	p.Stop()

	var sb strings.Builder
	p.PrintReport(&sb)
	out := sb.String()
	for _, want := range []string{"Performance Report", "Result Rows:    5", "Total Buckets:  64", "Hash Table Statistics"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}
