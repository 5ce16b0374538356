package sources

import (
	"strings"

	"github.com/xwb1989/sqlparser"

	"github.com/bifrost-labs/bifrost/internal/errors"
)

// EnsureReadOnly verifies that an extraction query is a single
// read-only statement. Anything that is not a SELECT (or a UNION of
// SELECTs) is rejected before it reaches an engine.
func EnsureReadOnly(query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return errors.NewQueryRejected(query, "empty query", "provide a SELECT statement")
	}

	stmt, err := sqlparser.Parse(query)
	if err != nil {
		return errors.NewQueryRejected(query, "failed to parse SQL", err.Error())
	}

	switch stmt.(type) {
	case *sqlparser.Select, *sqlparser.Union:
		return nil
	default:
		return errors.NewQueryRejected(query,
			"only read-only SELECT statements may extract tables",
			"rewrite the extraction query as a SELECT")
	}
}
