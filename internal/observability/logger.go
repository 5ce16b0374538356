// Package observability provides structured logging for bifrost.
//
// Every executed join emits one entry: join id, input tables, key
// columns, join type, collision strategy, phase timings, result size,
// and error (if any). Output is JSON lines, one object per join.
package observability

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"
)

// JoinLogEntry contains the required fields for join logging.
type JoinLogEntry struct {
	// JoinID is the unique identifier for this join execution.
	JoinID string

	// LeftTable and RightTable are the input table names.
	LeftTable  string
	RightTable string

	// LeftColumn and RightColumn are the join key columns.
	LeftColumn  string
	RightColumn string

	// JoinType is the requested join mode.
	JoinType string

	// Strategy is the hash-table collision strategy used.
	Strategy string

	// LeftRows and RightRows are the input sizes.
	LeftRows  int
	RightRows int

	// ResultRows is the emitted row count.
	ResultRows int

	// BuildTime, ProbeTime, and TotalTime are the phase durations.
	BuildTime time.Duration
	ProbeTime time.Duration
	TotalTime time.Duration

	// Selectivity is result rows over the Cartesian product size.
	Selectivity float64

	// Outcome is "success" or "error".
	Outcome string

	// Error holds the failure message; empty for successful joins.
	Error string
}

// Validate checks that required fields are present.
func (e *JoinLogEntry) Validate() error {
	if e.JoinID == "" {
		return fmt.Errorf("observability: join_id is required")
	}
	if e.LeftTable == "" || e.RightTable == "" {
		return fmt.Errorf("observability: both table names are required")
	}
	if e.TotalTime < 0 {
		return fmt.Errorf("observability: total_time cannot be negative")
	}
	return nil
}

// JoinLogger is the interface for join logging.
type JoinLogger interface {
	// LogJoin logs one join execution.
	LogJoin(ctx context.Context, entry JoinLogEntry) error

	// Summary returns aggregated statistics over the run.
	Summary() *RunSummary
}

// RunSummary aggregates the joins seen by a logger.
type RunSummary struct {
	JoinCount     int   `json:"join_count"`
	FailureCount  int   `json:"failure_count"`
	TotalRows     int   `json:"total_rows"`
	TotalDuration int64 `json:"total_duration_ms"`
}

// jsonLogOutput is the serialised log shape.
type jsonLogOutput struct {
	Timestamp   string  `json:"timestamp"`
	Level       string  `json:"level"`
	JoinID      string  `json:"join_id"`
	LeftTable   string  `json:"left_table"`
	RightTable  string  `json:"right_table"`
	LeftColumn  string  `json:"left_column"`
	RightColumn string  `json:"right_column"`
	JoinType    string  `json:"join_type"`
	Strategy    string  `json:"strategy"`
	LeftRows    int     `json:"left_rows"`
	RightRows   int     `json:"right_rows"`
	ResultRows  int     `json:"result_rows"`
	BuildTimeMs float64 `json:"build_time_ms"`
	ProbeTimeMs float64 `json:"probe_time_ms"`
	TotalTimeMs float64 `json:"total_time_ms"`
	Selectivity float64 `json:"selectivity"`
	Outcome     string  `json:"outcome,omitempty"`
	Error       string  `json:"error,omitempty"`
}

// JSONLogger implements JoinLogger with JSON-lines output.
type JSONLogger struct {
	writer  io.Writer
	entries []JoinLogEntry
	mu      sync.RWMutex
}

// NewJSONLogger creates a logger writing to the given writer.
func NewJSONLogger(w io.Writer) *JSONLogger {
	return &JSONLogger{
		writer:  w,
		entries: make([]JoinLogEntry, 0),
	}
}

// LogJoin logs one join execution as a JSON line.
func (l *JSONLogger) LogJoin(ctx context.Context, entry JoinLogEntry) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("observability: context error: %w", err)
	}
	if err := entry.Validate(); err != nil {
		return err
	}

	level := "info"
	if entry.Error != "" {
		level = "error"
	}

	output := jsonLogOutput{
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Level:       level,
		JoinID:      entry.JoinID,
		LeftTable:   entry.LeftTable,
		RightTable:  entry.RightTable,
		LeftColumn:  entry.LeftColumn,
		RightColumn: entry.RightColumn,
		JoinType:    entry.JoinType,
		Strategy:    entry.Strategy,
		LeftRows:    entry.LeftRows,
		RightRows:   entry.RightRows,
		ResultRows:  entry.ResultRows,
		BuildTimeMs: float64(entry.BuildTime.Nanoseconds()) / 1e6,
		ProbeTimeMs: float64(entry.ProbeTime.Nanoseconds()) / 1e6,
		TotalTimeMs: float64(entry.TotalTime.Nanoseconds()) / 1e6,
		Selectivity: entry.Selectivity,
		Outcome:     entry.Outcome,
		Error:       entry.Error,
	}

	data, err := json.Marshal(output)
	if err != nil {
		return fmt.Errorf("observability: failed to marshal log: %w", err)
	}
	if _, err := l.writer.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("observability: failed to write log: %w", err)
	}

	l.mu.Lock()
	l.entries = append(l.entries, entry)
	l.mu.Unlock()
	return nil
}

// Summary returns aggregated statistics over the logged joins.
func (l *JSONLogger) Summary() *RunSummary {
	l.mu.RLock()
	defer l.mu.RUnlock()

	summary := &RunSummary{}
	for _, entry := range l.entries {
		summary.JoinCount++
		if entry.Error != "" {
			summary.FailureCount++
		}
		summary.TotalRows += entry.ResultRows
		summary.TotalDuration += entry.TotalTime.Milliseconds()
	}
	return summary
}

// NoopLogger discards all logs. Used when logging is disabled.
type NoopLogger struct{}

// NewNoopLogger creates a new no-op logger.
func NewNoopLogger() *NoopLogger {
	return &NoopLogger{}
}

// LogJoin does nothing and always succeeds.
func (l *NoopLogger) LogJoin(ctx context.Context, entry JoinLogEntry) error {
	return nil
}

// Summary returns an empty summary.
func (l *NoopLogger) Summary() *RunSummary {
	return &RunSummary{}
}
