package sources

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/bifrost-labs/bifrost/internal/relation"
)

// TableFromRows drains a database/sql result set into a relation
// table. Driver values map onto the value model: integers to Int,
// floats to Float, text and bytes to Text, booleans to Int 0/1,
// timestamps to Text (RFC 3339), NULL to Null. Each column's declared
// type is taken from its first non-null cell.
func TableFromRows(rows *sql.Rows, tableName string) (*relation.Table, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading result columns: %w", err)
	}

	var data [][]relation.Value
	holders := make([]interface{}, len(columns))
	for rows.Next() {
		raw := make([]interface{}, len(columns))
		for i := range raw {
			holders[i] = &raw[i]
		}
		if err := rows.Scan(holders...); err != nil {
			return nil, fmt.Errorf("scanning result row: %w", err)
		}
		converted := make([]relation.Value, len(columns))
		for i, v := range raw {
			converted[i] = ConvertValue(v)
		}
		data = append(data, converted)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating result rows: %w", err)
	}

	table := relation.NewTable(tableName)
	for i, name := range columns {
		if err := table.AddColumn(name, ColumnType(data, i)); err != nil {
			return nil, err
		}
	}
	for _, values := range data {
		if err := table.AddRow(relation.NewRow(values...)); err != nil {
			return nil, err
		}
	}
	return table, nil
}

// ConvertValue maps a driver value onto the value model.
func ConvertValue(v interface{}) relation.Value {
	switch x := v.(type) {
	case nil:
		return relation.Null()
	case int64:
		return relation.Int(x)
	case int32:
		return relation.Int(int64(x))
	case int:
		return relation.Int(int64(x))
	case float64:
		return relation.Float(x)
	case float32:
		return relation.Float(float64(x))
	case bool:
		if x {
			return relation.Int(1)
		}
		return relation.Int(0)
	case []byte:
		return relation.Text(string(x))
	case string:
		return relation.Text(x)
	case time.Time:
		return relation.Text(x.Format(time.RFC3339))
	default:
		return relation.Text(fmt.Sprintf("%v", x))
	}
}

// ColumnType derives a column's declared type from its first non-null
// cell. Advisory only.
func ColumnType(data [][]relation.Value, col int) relation.DataType {
	for _, row := range data {
		switch row[col].Kind() {
		case relation.KindInt:
			return relation.TypeInteger
		case relation.KindFloat:
			return relation.TypeDouble
		case relation.KindText:
			return relation.TypeString
		}
	}
	return relation.TypeNull
}
