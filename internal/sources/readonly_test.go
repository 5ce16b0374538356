package sources

import (
	"testing"

	bferrors "github.com/bifrost-labs/bifrost/internal/errors"
)

// TestEnsureReadOnly_AcceptsSelects proves plain reads pass the guard.
func TestEnsureReadOnly_AcceptsSelects(t *testing.T) {
	queries := []string{
		"SELECT 1",
		"SELECT id, name FROM customers WHERE region = 'EU'",
		"select a.k, b.v from a join b on a.k = b.k",
		"SELECT k FROM a UNION SELECT k FROM b",
	}
	for _, q := range queries {
		if err := EnsureReadOnly(q); err != nil {
			t.Errorf("EnsureReadOnly(%q) = %v, want nil", q, err)
		}
	}
}

// TestEnsureReadOnly_RejectsWrites proves every mutating statement is
// turned away before reaching an engine.
func TestEnsureReadOnly_RejectsWrites(t *testing.T) {
	queries := []string{
		"INSERT INTO t VALUES (1)",
		"UPDATE t SET x = 1",
		"DELETE FROM t",
		"DROP TABLE t",
		"CREATE TABLE t (x int)",
	}
	for _, q := range queries {
		err := EnsureReadOnly(q)
		if err == nil {
			t.Errorf("EnsureReadOnly(%q) must fail", q)
			continue
		}
		if _, ok := err.(*bferrors.ErrQueryRejected); !ok {
			t.Errorf("EnsureReadOnly(%q) = %T, want *ErrQueryRejected", q, err)
		}
	}
}

// TestEnsureReadOnly_RejectsGarbage proves unparseable and empty input
// fail cleanly.
func TestEnsureReadOnly_RejectsGarbage(t *testing.T) {
	for _, q := range []string{"", "   ", "not sql at all ;;;"} {
		if EnsureReadOnly(q) == nil {
			t.Errorf("EnsureReadOnly(%q) must fail", q)
		}
	}
}
