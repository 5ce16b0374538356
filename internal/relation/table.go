package relation

import (
	"fmt"
	"io"

	"github.com/bifrost-labs/bifrost/internal/errors"
)

// Column describes one column of a table schema.
type Column struct {
	// Name is the column name, unique within its schema.
	Name string

	// Type is the declared column type. Advisory only; see DataType.
	Type DataType

	// Position is the column's index in the schema, equal to its index
	// in the schema slice.
	Position int
}

// Table is a named, append-only sequence of rows over a declared schema.
// Rows preserve insertion order, which is the only externally observable
// order.
type Table struct {
	name   string
	schema []Column
	byName map[string]int
	rows   []Row
}

// NewTable creates an empty table with the given name.
func NewTable(name string) *Table {
	return &Table{
		name:   name,
		byName: make(map[string]int),
	}
}

// Name returns the table name.
func (t *Table) Name() string {
	return t.name
}

// AddColumn appends a column to the schema. Column names are unique
// within a schema; a duplicate name is rejected.
func (t *Table) AddColumn(name string, dataType DataType) error {
	if _, exists := t.byName[name]; exists {
		return errors.NewDuplicateColumn(t.name, name)
	}
	pos := len(t.schema)
	t.schema = append(t.schema, Column{Name: name, Type: dataType, Position: pos})
	t.byName[name] = pos
	return nil
}

// AddRow appends a row. The row's arity must match the schema.
func (t *Table) AddRow(row Row) error {
	if row.Len() != len(t.schema) {
		return errors.NewSchemaMismatch(t.name, len(t.schema), row.Len())
	}
	t.rows = append(t.rows, row)
	return nil
}

// RowCount returns the number of stored rows.
func (t *Table) RowCount() int {
	return len(t.rows)
}

// ColumnCount returns the number of schema columns.
func (t *Table) ColumnCount() int {
	return len(t.schema)
}

// Schema returns the ordered column list. Callers must not modify it.
func (t *Table) Schema() []Column {
	return t.schema
}

// Rows returns the stored rows in insertion order. Callers must not
// modify the returned slice.
func (t *Table) Rows() []Row {
	return t.rows
}

// Row returns the row at the given index.
func (t *Table) Row(i int) Row {
	return t.rows[i]
}

// ColumnIndex resolves a column name to its position. The second return
// value reports whether the name exists.
func (t *Table) ColumnIndex(name string) (int, bool) {
	pos, ok := t.byName[name]
	return pos, ok
}

// EstimateMemoryUsage returns a best-effort byte count for the table:
// fixed per-row and per-column costs plus the byte length of every Text
// payload. The formula is advisory but stable, so strategy benchmarks
// stay comparable.
func (t *Table) EstimateMemoryUsage() int {
	const columnSize = 32
	const rowHeader = 24
	total := columnSize * len(t.schema)
	for _, row := range t.rows {
		total += rowHeader
		for _, v := range row.Values() {
			total += v.MemorySize()
		}
	}
	return total
}

// Clear drops all rows. The schema is retained.
func (t *Table) Clear() {
	t.rows = nil
}

// PrintSchema writes the table name and column list to w.
func (t *Table) PrintSchema(w io.Writer) {
	fmt.Fprintf(w, "Table: %s\n", t.name)
	fmt.Fprint(w, "Schema: ")
	for i, col := range t.schema {
		if i > 0 {
			fmt.Fprint(w, ", ")
		}
		fmt.Fprintf(w, "%s %s", col.Name, col.Type)
	}
	fmt.Fprintln(w)
}

// PrintSample writes the schema and up to maxRows rows to w.
func (t *Table) PrintSample(w io.Writer, maxRows int) {
	t.PrintSchema(w)
	n := maxRows
	if len(t.rows) < n {
		n = len(t.rows)
	}
	fmt.Fprintf(w, "Sample data (%d rows):\n", n)
	for i := 0; i < n; i++ {
		fmt.Fprintf(w, "  %s\n", t.rows[i])
	}
	if len(t.rows) > n {
		fmt.Fprintf(w, "  ... (%d more rows)\n", len(t.rows)-n)
	}
	fmt.Fprintln(w)
}
