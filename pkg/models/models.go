// Package models provides the machine-readable output shapes of the
// bifrost CLI.
package models

// HashStatsReport is the serialised hash-table snapshot.
type HashStatsReport struct {
	TotalBuckets   int     `json:"total_buckets"`
	UsedBuckets    int     `json:"used_buckets"`
	TotalEntries   int     `json:"total_entries"`
	Collisions     int     `json:"collisions"`
	LoadFactor     float64 `json:"load_factor"`
	AvgChainLength float64 `json:"avg_chain_length"`
	MaxChainLength int     `json:"max_chain_length"`
	MemoryUsageKB  int     `json:"memory_usage_kb"`
}

// JoinReport is the serialised outcome of one join.
type JoinReport struct {
	LeftTable   string          `json:"left_table"`
	RightTable  string          `json:"right_table"`
	JoinType    string          `json:"join_type"`
	Strategy    string          `json:"strategy"`
	LeftRows    int             `json:"left_rows"`
	RightRows   int             `json:"right_rows"`
	ResultRows  int             `json:"result_rows"`
	BuildTimeMs float64         `json:"build_time_ms"`
	ProbeTimeMs float64         `json:"probe_time_ms"`
	TotalTimeMs float64         `json:"total_time_ms"`
	Selectivity float64         `json:"selectivity"`
	HashStats   HashStatsReport `json:"hash_stats"`
}

// DiagnosticCheck is one doctor check result.
type DiagnosticCheck struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ErrorResponse is the serialised failure shape.
type ErrorResponse struct {
	Error      string `json:"error"`
	Reason     string `json:"reason,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
	Code       int    `json:"code"`
}
