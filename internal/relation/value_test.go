package relation

import (
	"math"
	"testing"
)

// TestValue_NullEqualsNull proves the engine's documented divergence
// from SQL: two null cells compare equal.
func TestValue_NullEqualsNull(t *testing.T) {
	if !Null().Equal(Null()) {
		t.Fatal("Null must equal Null")
	}
}

// TestValue_CrossKindEqualityIsFalse proves that values of different
// kinds never compare equal, even when numerically alike.
func TestValue_CrossKindEqualityIsFalse(t *testing.T) {
	cases := []struct {
		a, b Value
	}{
		{Int(1), Float(1.0)},
		{Int(0), Null()},
		{Text("1"), Int(1)},
		{Float(0), Null()},
		{Text(""), Null()},
	}
	for _, tc := range cases {
		if tc.a.Equal(tc.b) || tc.b.Equal(tc.a) {
			t.Errorf("%v and %v must not compare equal", tc.a, tc.b)
		}
	}
}

func TestValue_Equality(t *testing.T) {
	cases := []struct {
		a, b Value
		want bool
	}{
		{Int(42), Int(42), true},
		{Int(42), Int(43), false},
		{Float(2.5), Float(2.5), true},
		{Float(2.5), Float(2.6), false},
		{Text("abc"), Text("abc"), true},
		{Text("abc"), Text("abd"), false},
	}
	for _, tc := range cases {
		if got := tc.a.Equal(tc.b); got != tc.want {
			t.Errorf("%v.Equal(%v) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

// TestValue_NegativeZeroCanonicalised proves that -0.0 and +0.0 are
// the same cell after construction.
func TestValue_NegativeZeroCanonicalised(t *testing.T) {
	neg := Float(math.Copysign(0, -1))
	pos := Float(0)
	if !neg.Equal(pos) {
		t.Fatal("-0.0 must equal +0.0")
	}
	if math.Signbit(neg.Float()) {
		t.Fatal("-0.0 must be canonicalised to +0.0 at construction")
	}
}

// TestValue_NaNDetectable proves NaN is representable and detectable,
// so the engine can refuse it as a join key.
func TestValue_NaNDetectable(t *testing.T) {
	v := Float(math.NaN())
	if !v.IsNaN() {
		t.Fatal("NaN cell must report IsNaN")
	}
	if v.Equal(v) {
		t.Fatal("NaN must not equal itself")
	}
	if Int(1).IsNaN() || Null().IsNaN() || Text("NaN").IsNaN() {
		t.Fatal("only float NaN cells report IsNaN")
	}
}

// TestValue_CompareTagOrder proves the cross-kind tie-break order:
// Int < Float < Text < Null.
func TestValue_CompareTagOrder(t *testing.T) {
	ordered := []Value{Int(99), Float(0.1), Text("a"), Null()}
	for i := 0; i < len(ordered); i++ {
		for j := 0; j < len(ordered); j++ {
			got := ordered[i].Compare(ordered[j])
			switch {
			case i < j && got != -1:
				t.Errorf("Compare(%v, %v) = %d, want -1", ordered[i], ordered[j], got)
			case i > j && got != 1:
				t.Errorf("Compare(%v, %v) = %d, want 1", ordered[i], ordered[j], got)
			case i == j && got != 0:
				t.Errorf("Compare(%v, %v) = %d, want 0", ordered[i], ordered[j], got)
			}
		}
	}
}

func TestValue_CompareWithinKind(t *testing.T) {
	cases := []struct {
		a, b Value
		want int
	}{
		{Int(1), Int(2), -1},
		{Int(2), Int(1), 1},
		{Int(2), Int(2), 0},
		{Float(1.5), Float(2.5), -1},
		{Text("a"), Text("b"), -1},
		{Text("b"), Text("b"), 0},
		{Null(), Null(), 0},
	}
	for _, tc := range cases {
		if got := tc.a.Compare(tc.b); got != tc.want {
			t.Errorf("Compare(%v, %v) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestValue_String(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Null(), "NULL"},
		{Int(-7), "-7"},
		{Text("hello"), "hello"},
		{Float(2.5), "2.5"},
	}
	for _, tc := range cases {
		if got := tc.v.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}

// TestValue_MemorySize proves that text cells account for their
// payload bytes.
func TestValue_MemorySize(t *testing.T) {
	short := Text("ab")
	long := Text("abcdefghij")
	if long.MemorySize()-short.MemorySize() != 8 {
		t.Errorf("text memory must grow with payload length")
	}
	if Int(1).MemorySize() != Null().MemorySize() {
		t.Errorf("scalar cells share a fixed footprint")
	}
}
