package join

import (
	"fmt"
	"strings"
)

// Type selects the outer-completion policy of a join.
type Type int

const (
	// Inner emits matched row pairs only.
	Inner Type = iota

	// LeftOuter additionally preserves unmatched left rows, padded
	// with nulls on the right.
	LeftOuter

	// RightOuter additionally preserves unmatched right rows, padded
	// with nulls on the left.
	RightOuter

	// FullOuter preserves unmatched rows from both sides.
	FullOuter
)

// String returns the join type name.
func (t Type) String() string {
	switch t {
	case Inner:
		return "INNER"
	case LeftOuter:
		return "LEFT OUTER"
	case RightOuter:
		return "RIGHT OUTER"
	case FullOuter:
		return "FULL OUTER"
	default:
		return "UNKNOWN"
	}
}

// ParseType resolves a join type from its configuration name.
func ParseType(name string) (Type, error) {
	switch strings.ToLower(name) {
	case "inner":
		return Inner, nil
	case "left", "left-outer":
		return LeftOuter, nil
	case "right", "right-outer":
		return RightOuter, nil
	case "full", "full-outer":
		return FullOuter, nil
	default:
		return Inner, fmt.Errorf("unknown join type %q (want inner, left, right, or full)", name)
	}
}
