package relation

import "strings"

// Row is an ordered sequence of cells. A row stored in a Table always has
// exactly as many cells as the table has columns, and is treated as
// immutable once appended.
type Row struct {
	values []Value
}

// NewRow builds a row from the given cells.
func NewRow(values ...Value) Row {
	return Row{values: values}
}

// NullRow returns a row of n null cells, used to pad the missing side of
// an outer-join result.
func NullRow(n int) Row {
	values := make([]Value, n)
	for i := range values {
		values[i] = Null()
	}
	return Row{values: values}
}

// Append adds a cell to the end of the row.
func (r *Row) Append(v Value) {
	r.values = append(r.values, v)
}

// Len returns the number of cells.
func (r Row) Len() int {
	return len(r.values)
}

// Value returns the cell at position i.
func (r Row) Value(i int) Value {
	return r.values[i]
}

// Values returns the underlying cells. Callers must not modify the
// returned slice.
func (r Row) Values() []Value {
	return r.values
}

// Concat returns a new row holding this row's cells followed by other's.
func (r Row) Concat(other Row) Row {
	combined := make([]Value, 0, len(r.values)+len(other.values))
	combined = append(combined, r.values...)
	combined = append(combined, other.values...)
	return Row{values: combined}
}

// String renders the row as "(v1, v2, ...)".
func (r Row) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, v := range r.values {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(v.String())
	}
	b.WriteByte(')')
	return b.String()
}
