// Package relation provides the in-memory relational value model:
// typed cells, fixed-arity rows, and schema-carrying tables.
//
// The model is deliberately small. A cell is exactly one of four kinds
// (Null, Int, Float, Text) and the equality and ordering contracts defined
// here are the ones the join engine and the hash table consume.
package relation

import (
	"math"
	"strconv"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	KindInt Kind = iota
	KindFloat
	KindText
	KindNull
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindText:
		return "text"
	case KindNull:
		return "null"
	default:
		return "unknown"
	}
}

// DataType is the declared type of a table column. It is advisory:
// values stored in a column are never coerced to it, and the join engine
// compares cell values directly.
type DataType uint8

const (
	TypeInteger DataType = iota
	TypeDouble
	TypeString
	TypeNull
)

// String returns the type name.
func (t DataType) String() string {
	switch t {
	case TypeInteger:
		return "INTEGER"
	case TypeDouble:
		return "DOUBLE"
	case TypeString:
		return "STRING"
	case TypeNull:
		return "NULL"
	default:
		return "UNKNOWN"
	}
}

// Value is a single relational cell: exactly one of Null, Int (64-bit
// signed), Float (IEEE-754 double), or Text (byte string, compared
// bytewise).
//
// Two Null cells compare equal to each other. This is not SQL unknown
// semantics; it is a deliberate, documented divergence that keeps join
// results deterministic and testable.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
}

// Null returns the null cell.
func Null() Value {
	return Value{kind: KindNull}
}

// Int returns an integer cell.
func Int(i int64) Value {
	return Value{kind: KindInt, i: i}
}

// Float returns a floating-point cell. Negative zero is canonicalised to
// positive zero so that equal-comparing floats always hash identically.
// NaN is representable (a table may carry it) but is rejected as a join
// key by the engine.
func Float(f float64) Value {
	if f == 0 {
		f = 0
	}
	return Value{kind: KindFloat, f: f}
}

// Text returns a string cell.
func Text(s string) Value {
	return Value{kind: KindText, s: s}
}

// Kind returns the variant this value holds.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether the value is the null cell.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Int returns the integer payload. It is only meaningful when
// Kind() == KindInt.
func (v Value) Int() int64 {
	return v.i
}

// Float returns the floating-point payload. It is only meaningful when
// Kind() == KindFloat.
func (v Value) Float() float64 {
	return v.f
}

// Text returns the string payload. It is only meaningful when
// Kind() == KindText.
func (v Value) Text() string {
	return v.s
}

// Equal reports whether two values compare equal. Cross-kind comparisons
// are always false; Null equals Null. NaN never equals anything,
// including itself, which is exactly why the engine refuses it as a join
// key.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindInt:
		return v.i == other.i
	case KindFloat:
		return v.f == other.f
	case KindText:
		return v.s == other.s
	default:
		return false
	}
}

// Compare imposes a total order over values for deterministic
// tie-breaking: within a kind the natural order, across kinds the fixed
// tag order Int < Float < Text < Null. It returns -1, 0, or +1.
func (v Value) Compare(other Value) int {
	if v.kind != other.kind {
		if v.kind < other.kind {
			return -1
		}
		return 1
	}
	switch v.kind {
	case KindNull:
		return 0
	case KindInt:
		switch {
		case v.i < other.i:
			return -1
		case v.i > other.i:
			return 1
		}
		return 0
	case KindFloat:
		switch {
		case v.f < other.f:
			return -1
		case v.f > other.f:
			return 1
		}
		return 0
	case KindText:
		return strings.Compare(v.s, other.s)
	default:
		return 0
	}
}

// IsNaN reports whether the value is a floating-point NaN.
func (v Value) IsNaN() bool {
	return v.kind == KindFloat && math.IsNaN(v.f)
}

// MemorySize returns the estimated in-memory footprint of the cell in
// bytes: the fixed struct cost plus, for Text, the byte length of the
// payload.
func (v Value) MemorySize() int {
	const fixed = 8 + 8 + 16 + 1 // i + f + string header + kind, padded
	if v.kind == KindText {
		return fixed + len(v.s)
	}
	return fixed
}

// String renders the cell for display. Null renders as "NULL".
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "NULL"
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindText:
		return v.s
	default:
		return "NULL"
	}
}
