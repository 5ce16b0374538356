// Package loader produces relation tables from CSV files and from a
// deterministic test-data generator.
package loader

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/bifrost-labs/bifrost/internal/errors"
	"github.com/bifrost-labs/bifrost/internal/relation"
)

// inferenceWindow is the number of leading data rows consulted for
// per-column type inference.
const inferenceWindow = 10

// LoadCSV reads a comma-delimited file with a header row into a table.
//
// Fields are whitespace-trimmed; the literal tokens "", NULL, and null
// load as the null cell. Each column's declared type is the most common
// non-null type over the first ten data rows, falling back to String on
// a tie. Rows shorter than the header are right-padded with nulls; rows
// longer are truncated.
func LoadCSV(path, tableName string) (*relation.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewLoadFailure(path, "the file could not be opened", err)
	}
	defer f.Close()
	return readCSV(f, path, tableName)
}

func readCSV(r io.Reader, path, tableName string) (*relation.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.NewLoadFailure(path, "the file is empty", nil)
	}
	if err != nil {
		return nil, errors.NewLoadFailure(path, "the header row could not be parsed", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var records [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewLoadFailure(path, "a data row could not be parsed", err)
		}
		for i := range record {
			record[i] = strings.TrimSpace(record[i])
		}
		records = append(records, record)
	}

	table := relation.NewTable(tableName)
	for col, name := range header {
		if err := table.AddColumn(name, inferColumnType(records, col)); err != nil {
			return nil, err
		}
	}

	for _, record := range records {
		row := relation.NewRow()
		for i := 0; i < len(header); i++ {
			if i < len(record) {
				row.Append(parseCell(record[i], table.Schema()[i].Type))
			} else {
				row.Append(relation.Null())
			}
		}
		if err := table.AddRow(row); err != nil {
			return nil, err
		}
	}
	return table, nil
}

// inferColumnType picks the modal non-null type of a column over the
// inference window. A tie between candidates falls back to String; an
// all-null sample stays Null-typed. Declared types are advisory either
// way.
func inferColumnType(records [][]string, col int) relation.DataType {
	counts := make(map[relation.DataType]int)
	for i := 0; i < len(records) && i < inferenceWindow; i++ {
		if col >= len(records[i]) {
			continue
		}
		t := inferCellType(records[i][col])
		if t != relation.TypeNull {
			counts[t]++
		}
	}
	if len(counts) == 0 {
		return relation.TypeNull
	}

	best := relation.TypeString
	bestCount := 0
	tied := false
	for _, t := range []relation.DataType{relation.TypeInteger, relation.TypeDouble, relation.TypeString} {
		switch {
		case counts[t] > bestCount:
			best = t
			bestCount = counts[t]
			tied = false
		case counts[t] == bestCount && counts[t] > 0:
			tied = true
		}
	}
	if tied {
		return relation.TypeString
	}
	return best
}

func inferCellType(s string) relation.DataType {
	if isNullToken(s) {
		return relation.TypeNull
	}
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return relation.TypeInteger
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return relation.TypeDouble
	}
	return relation.TypeString
}

func isNullToken(s string) bool {
	return s == "" || s == "NULL" || s == "null"
}

// parseCell converts a CSV field under the column's declared type.
// Unparseable fields degrade to null rather than failing the load.
func parseCell(s string, t relation.DataType) relation.Value {
	if isNullToken(s) {
		return relation.Null()
	}
	switch t {
	case relation.TypeInteger:
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return relation.Int(i)
		}
		return relation.Null()
	case relation.TypeDouble:
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return relation.Float(f)
		}
		return relation.Null()
	case relation.TypeString:
		return relation.Text(s)
	default:
		return relation.Null()
	}
}
