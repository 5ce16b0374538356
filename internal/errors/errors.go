// Package errors provides explicit, human-readable error types for
// bifrost. Every error carries a Reason and a Suggestion so that a
// failure can be diagnosed from its message alone.
package errors

import (
	"fmt"
)

// BifrostError is the base error type for all bifrost errors.
type BifrostError struct {
	Code       ErrorCode
	Message    string
	Reason     string
	Suggestion string
	Cause      error
}

// ErrorCode categorises an error. The CLI exits 1 on any error; codes
// survive only in structured output.
type ErrorCode int

const (
	CodeValidation ErrorCode = 1
	CodeSource     ErrorCode = 2
	CodeEngine     ErrorCode = 3
	CodeInternal   ErrorCode = 4
)

func (e *BifrostError) Error() string {
	msg := e.Message
	if e.Reason != "" {
		msg = fmt.Sprintf("%s\nReason: %s", msg, e.Reason)
	}
	if e.Suggestion != "" {
		msg = fmt.Sprintf("%s\nSuggestion: %s", msg, e.Suggestion)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s\nCaused by: %v", msg, e.Cause)
	}
	return msg
}

func (e *BifrostError) Unwrap() error {
	return e.Cause
}

// ErrCode returns the error's category code. Promoted to every concrete
// error type in this package.
func (e *BifrostError) ErrCode() ErrorCode {
	return e.Code
}

// Base returns the embedded base error, giving callers uniform access
// to Message, Reason, and Suggestion across the taxonomy.
func (e *BifrostError) Base() *BifrostError {
	return e
}

// CodeOf extracts the category code from any error produced by this
// package. Foreign errors map to CodeInternal.
func CodeOf(err error) ErrorCode {
	type coded interface {
		ErrCode() ErrorCode
	}
	if c, ok := err.(coded); ok {
		return c.ErrCode()
	}
	return CodeInternal
}

// ErrMissingJoinColumn is returned when a requested join column is not
// present in a side's schema. Fatal to the join call.
type ErrMissingJoinColumn struct {
	BifrostError
	Table  string
	Column string
}

// NewMissingJoinColumn creates a new ErrMissingJoinColumn.
func NewMissingJoinColumn(table, column string) *ErrMissingJoinColumn {
	return &ErrMissingJoinColumn{
		BifrostError: BifrostError{
			Code:       CodeValidation,
			Message:    fmt.Sprintf("join column %q not found in table %q", column, table),
			Reason:     "the column name does not resolve against the table schema",
			Suggestion: "inspect the table schema and pass an existing column name",
		},
		Table:  table,
		Column: column,
	}
}

// ErrSchemaMismatch is returned when a row's arity differs from its
// table's schema. Fatal to the call.
type ErrSchemaMismatch struct {
	BifrostError
	Table    string
	Expected int
	Actual   int
}

// NewSchemaMismatch creates a new ErrSchemaMismatch.
func NewSchemaMismatch(table string, expected, actual int) *ErrSchemaMismatch {
	return &ErrSchemaMismatch{
		BifrostError: BifrostError{
			Code:       CodeValidation,
			Message:    fmt.Sprintf("row width %d does not match schema of table %q", actual, table),
			Reason:     fmt.Sprintf("the schema declares %d columns", expected),
			Suggestion: "append one cell per declared column, padding with Null where data is absent",
		},
		Table:    table,
		Expected: expected,
		Actual:   actual,
	}
}

// ErrDuplicateColumn is returned when a column name is added twice to
// one schema.
type ErrDuplicateColumn struct {
	BifrostError
	Table  string
	Column string
}

// NewDuplicateColumn creates a new ErrDuplicateColumn.
func NewDuplicateColumn(table, column string) *ErrDuplicateColumn {
	return &ErrDuplicateColumn{
		BifrostError: BifrostError{
			Code:       CodeValidation,
			Message:    fmt.Sprintf("duplicate column %q in table %q", column, table),
			Reason:     "column names must be unique within a schema",
			Suggestion: "rename one of the columns before adding it",
		},
		Table:  table,
		Column: column,
	}
}

// ErrInvalidJoinKey is returned when a join key evaluates to a value
// that cannot be hashed deterministically (floating-point NaN). Fatal to
// the join call.
type ErrInvalidJoinKey struct {
	BifrostError
	Table  string
	Column string
	Row    int
}

// NewInvalidJoinKey creates a new ErrInvalidJoinKey.
func NewInvalidJoinKey(table, column string, row int) *ErrInvalidJoinKey {
	return &ErrInvalidJoinKey{
		BifrostError: BifrostError{
			Code:       CodeValidation,
			Message:    fmt.Sprintf("invalid join key in table %q, column %q, row %d", table, column, row),
			Reason:     "NaN never compares equal to itself, so it cannot participate in an equi-join",
			Suggestion: "filter or replace NaN values in the key column before joining",
		},
		Table:  table,
		Column: column,
		Row:    row,
	}
}

// ErrLoadFailure is returned when a data file is unreadable or empty.
type ErrLoadFailure struct {
	BifrostError
	Path string
}

// NewLoadFailure creates a new ErrLoadFailure.
func NewLoadFailure(path, reason string, cause error) *ErrLoadFailure {
	return &ErrLoadFailure{
		BifrostError: BifrostError{
			Code:       CodeSource,
			Message:    fmt.Sprintf("cannot load %q", path),
			Reason:     reason,
			Suggestion: "check that the file exists, is readable, and has a header row",
			Cause:      cause,
		},
		Path: path,
	}
}

// ErrQueryRejected is returned when a source-extraction query is not a
// plain read-only SELECT.
type ErrQueryRejected struct {
	BifrostError
	Query string
}

// NewQueryRejected creates a new ErrQueryRejected.
func NewQueryRejected(query, reason, suggestion string) *ErrQueryRejected {
	return &ErrQueryRejected{
		BifrostError: BifrostError{
			Code:       CodeValidation,
			Message:    "query rejected",
			Reason:     reason,
			Suggestion: suggestion,
		},
		Query: query,
	}
}

// ErrSourceUnavailable is returned when an external table source cannot
// be reached or is not configured.
type ErrSourceUnavailable struct {
	BifrostError
	Source string
}

// NewSourceUnavailable creates a new ErrSourceUnavailable.
func NewSourceUnavailable(source string, cause error) *ErrSourceUnavailable {
	return &ErrSourceUnavailable{
		BifrostError: BifrostError{
			Code:       CodeSource,
			Message:    fmt.Sprintf("source %q is unavailable", source),
			Reason:     "the connection could not be opened or the source is not configured",
			Suggestion: "configure the source in bifrost.yaml and verify it with 'bifrost doctor'",
			Cause:      cause,
		},
		Source: source,
	}
}
