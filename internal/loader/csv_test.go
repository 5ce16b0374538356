package loader

import (
	"os"
	"path/filepath"
	"testing"

	bferrors "github.com/bifrost-labs/bifrost/internal/errors"
	"github.com/bifrost-labs/bifrost/internal/relation"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestLoadCSV_TypeInference proves the modal non-null inference over
// the leading rows.
func TestLoadCSV_TypeInference(t *testing.T) {
	path := writeCSV(t, "id,score,label,blank\n"+
		"1,1.5,alpha,\n"+
		"2,2.5,beta,\n"+
		"3,3.5,gamma,\n")

	table, err := LoadCSV(path, "t")
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}

	wantTypes := []relation.DataType{
		relation.TypeInteger,
		relation.TypeDouble,
		relation.TypeString,
		relation.TypeNull,
	}
	for i, col := range table.Schema() {
		if col.Type != wantTypes[i] {
			t.Errorf("column %q inferred %s, want %s", col.Name, col.Type, wantTypes[i])
		}
	}
	if table.RowCount() != 3 {
		t.Errorf("row count = %d, want 3", table.RowCount())
	}
	if got := table.Row(0).Value(0); got.Kind() != relation.KindInt || got.Int() != 1 {
		t.Errorf("cell (0,0) = %v, want Int 1", got)
	}
	if got := table.Row(1).Value(1); got.Kind() != relation.KindFloat || got.Float() != 2.5 {
		t.Errorf("cell (1,1) = %v, want Float 2.5", got)
	}
}

// TestLoadCSV_NullTokens proves "", NULL, and null all load as the
// null cell.
func TestLoadCSV_NullTokens(t *testing.T) {
	path := writeCSV(t, "a,b,c\n"+
		"NULL,null,\n"+
		"1,2,3\n")

	table, err := LoadCSV(path, "t")
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	row := table.Row(0)
	for i := 0; i < 3; i++ {
		if !row.Value(i).IsNull() {
			t.Errorf("cell %d = %v, want NULL", i, row.Value(i))
		}
	}
}

// TestLoadCSV_RaggedRows proves short rows pad with nulls and long
// rows truncate to the header width.
func TestLoadCSV_RaggedRows(t *testing.T) {
	path := writeCSV(t, "a,b,c\n"+
		"1,2\n"+
		"1,2,3,4,5\n")

	table, err := LoadCSV(path, "t")
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if table.RowCount() != 2 {
		t.Fatalf("row count = %d, want 2", table.RowCount())
	}
	if !table.Row(0).Value(2).IsNull() {
		t.Error("short row must be right-padded with NULL")
	}
	if table.Row(1).Len() != 3 {
		t.Errorf("long row kept %d cells, want 3", table.Row(1).Len())
	}
}

// TestLoadCSV_WhitespaceTrimmed proves fields and header names are
// trimmed.
func TestLoadCSV_WhitespaceTrimmed(t *testing.T) {
	path := writeCSV(t, "a , b\n 1 , x \n")
	table, err := LoadCSV(path, "t")
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if _, ok := table.ColumnIndex("b"); !ok {
		t.Error("header names must be trimmed")
	}
	if got := table.Row(0).Value(1).Text(); got != "x" {
		t.Errorf("field = %q, want %q", got, "x")
	}
}

// TestLoadCSV_AmbiguousColumnFallsBackToString proves a type tie in
// the sample window degrades to String.
func TestLoadCSV_AmbiguousColumnFallsBackToString(t *testing.T) {
	path := writeCSV(t, "mixed\n1\nalpha\n")
	table, err := LoadCSV(path, "t")
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if got := table.Schema()[0].Type; got != relation.TypeString {
		t.Errorf("ambiguous column inferred %s, want STRING", got)
	}
}

// TestLoadCSV_EmptyFileRejected proves the load-failure taxonomy.
func TestLoadCSV_EmptyFileRejected(t *testing.T) {
	path := writeCSV(t, "")
	_, err := LoadCSV(path, "t")
	if err == nil {
		t.Fatal("empty file must fail")
	}
	if _, ok := err.(*bferrors.ErrLoadFailure); !ok {
		t.Fatalf("got %T, want *ErrLoadFailure", err)
	}
}

func TestLoadCSV_MissingFileRejected(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "absent.csv"), "t")
	if err == nil {
		t.Fatal("missing file must fail")
	}
	if _, ok := err.(*bferrors.ErrLoadFailure); !ok {
		t.Fatalf("got %T, want *ErrLoadFailure", err)
	}
}

// TestGenerate_Deterministic proves the same seed yields the same
// table, and different seeds differ.
func TestGenerate_Deterministic(t *testing.T) {
	a := Generate("t", 100, 42)
	b := Generate("t", 100, 42)
	c := Generate("t", 100, 7)

	if a.RowCount() != 100 || a.ColumnCount() != 4 {
		t.Fatalf("generated %dx%d, want 100x4", a.RowCount(), a.ColumnCount())
	}
	for i := 0; i < a.RowCount(); i++ {
		for j := 0; j < a.ColumnCount(); j++ {
			if !a.Row(i).Value(j).Equal(b.Row(i).Value(j)) {
				t.Fatalf("seed 42 not deterministic at (%d,%d)", i, j)
			}
		}
	}

	same := true
	for i := 0; i < a.RowCount() && same; i++ {
		if !a.Row(i).Value(1).Equal(c.Row(i).Value(1)) {
			same = false
		}
	}
	if same {
		t.Error("different seeds produced identical value columns")
	}
}

// TestGenerate_ColumnContracts proves the generated column shapes the
// benchmarks rely on: sequential ids and a 50-way name cycle.
func TestGenerate_ColumnContracts(t *testing.T) {
	table := Generate("t", 120, 1)
	for i := 0; i < table.RowCount(); i++ {
		row := table.Row(i)
		if row.Value(0).Int() != int64(i+1) {
			t.Fatalf("id at row %d = %v", i, row.Value(0))
		}
		v := row.Value(1).Int()
		if v < 0 || v > 99 {
			t.Fatalf("value out of range at row %d: %d", i, v)
		}
		if row.Value(2).Text() != table.Row(i%50).Value(2).Text() {
			t.Fatalf("name cycle broken at row %d", i)
		}
		score := row.Value(3).Float()
		if score < 0 || score >= 100 {
			t.Fatalf("score out of range at row %d: %f", i, score)
		}
	}
}
