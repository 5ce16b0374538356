package hashtable_test

import (
	"fmt"
	"testing"

	"github.com/bifrost-labs/bifrost/internal/hashtable"
	"github.com/bifrost-labs/bifrost/internal/relation"
)

var strategies = []hashtable.CollisionStrategy{
	hashtable.Chaining,
	hashtable.LinearProbing,
}

// collideAll hashes every key to the same slot, forcing worst-case
// collision behaviour for both strategies.
type collideAll struct{}

func (collideAll) Hash(relation.Value) uint64 { return 0 }
func (collideAll) Name() string               { return "collideAll" }

// TestInsertFindRoundTrip proves that every inserted key is findable
// under both strategies.
func TestInsertFindRoundTrip(t *testing.T) {
	for _, strategy := range strategies {
		t.Run(strategy.String(), func(t *testing.T) {
			table := hashtable.New(16, strategy, nil)
			for i := 0; i < 100; i++ {
				table.Insert(relation.Int(int64(i)), i)
			}
			for i := 0; i < 100; i++ {
				got := table.Find(relation.Int(int64(i)))
				if len(got) != 1 || got[0] != i {
					t.Fatalf("Find(%d) = %v, want [%d]", i, got, i)
				}
			}
			if table.Find(relation.Int(1000)) != nil {
				t.Error("absent key must return no values")
			}
		})
	}
}

// TestDuplicateKeysAccumulateInOrder proves the multiset contract: a
// key inserted n times returns its n values in insertion order.
func TestDuplicateKeysAccumulateInOrder(t *testing.T) {
	for _, strategy := range strategies {
		t.Run(strategy.String(), func(t *testing.T) {
			table := hashtable.New(16, strategy, nil)
			key := relation.Text("dup")
			for v := 0; v < 10; v++ {
				table.Insert(key, v)
				table.Insert(relation.Int(int64(v)), 100+v) // interleave other keys
			}
			got := table.Find(key)
			if len(got) != 10 {
				t.Fatalf("Find returned %d values, want 10", len(got))
			}
			for i, v := range got {
				if v != i {
					t.Fatalf("values out of insertion order: %v", got)
				}
			}
			if table.Len() != 20 {
				t.Errorf("Len() = %d, want 20 (multiset cardinality)", table.Len())
			}
		})
	}
}

// TestProbingPassesDifferingKeys proves that linear probing scans past
// a colliding different key instead of overwriting it: both keys keep
// their full value lists.
func TestProbingPassesDifferingKeys(t *testing.T) {
	table := hashtable.New(16, hashtable.LinearProbing, collideAll{})
	a, b, c := relation.Text("a"), relation.Text("b"), relation.Text("c")

	table.Insert(a, 1)
	table.Insert(b, 2) // collides with a, must take the next slot
	table.Insert(c, 3) // collides with both
	table.Insert(a, 4) // must extend a's bucket, not b's or c's
	table.Insert(b, 5)

	if got := table.Find(a); len(got) != 2 || got[0] != 1 || got[1] != 4 {
		t.Errorf("Find(a) = %v, want [1 4]", got)
	}
	if got := table.Find(b); len(got) != 2 || got[0] != 2 || got[1] != 5 {
		t.Errorf("Find(b) = %v, want [2 5]", got)
	}
	if got := table.Find(c); len(got) != 1 || got[0] != 3 {
		t.Errorf("Find(c) = %v, want [3]", got)
	}
}

// TestChainingCollidingKeysCoexist is the chaining counterpart: keys
// hashing to one slot all stay reachable through the chain.
func TestChainingCollidingKeysCoexist(t *testing.T) {
	table := hashtable.New(16, hashtable.Chaining, collideAll{})
	for i := 0; i < 8; i++ {
		table.Insert(relation.Int(int64(i)), i)
	}
	for i := 0; i < 8; i++ {
		if got := table.Find(relation.Int(int64(i))); len(got) != 1 || got[0] != i {
			t.Fatalf("Find(%d) = %v", i, got)
		}
	}
	stats := table.Stats()
	if stats.UsedBuckets != 1 {
		t.Errorf("UsedBuckets = %d, want 1 (all keys share a slot)", stats.UsedBuckets)
	}
	if stats.MaxChainLength != 8 {
		t.Errorf("MaxChainLength = %d, want 8", stats.MaxChainLength)
	}
	if stats.Collisions != 7 {
		t.Errorf("Collisions = %d, want 7 (every chain node after the first)", stats.Collisions)
	}
}

// TestContainsAndClear proves invariant: after Insert the table
// contains the key; after Clear it does not and Len is 0.
func TestContainsAndClear(t *testing.T) {
	for _, strategy := range strategies {
		t.Run(strategy.String(), func(t *testing.T) {
			table := hashtable.New(16, strategy, nil)
			key := relation.Int(7)

			if table.Contains(key) || !table.IsEmpty() {
				t.Fatal("new table must be empty")
			}
			table.Insert(key, 1)
			if !table.Contains(key) {
				t.Fatal("Contains must be true after Insert")
			}
			table.Clear()
			if table.Contains(key) {
				t.Error("Contains must be false after Clear")
			}
			if table.Len() != 0 || !table.IsEmpty() {
				t.Error("Len must be 0 after Clear")
			}
			if table.Stats().TotalBuckets != table.Capacity() {
				t.Error("Clear must retain capacity in stats")
			}
		})
	}
}

// TestResizePreservesFindSequences proves that growing the table does
// not change any key's value sequence.
func TestResizePreservesFindSequences(t *testing.T) {
	for _, strategy := range strategies {
		t.Run(strategy.String(), func(t *testing.T) {
			table := hashtable.New(16, strategy, nil)
			startCapacity := table.Capacity()

			// Mix duplicate and unique keys, far past the resize point.
			for i := 0; i < 500; i++ {
				table.Insert(relation.Int(int64(i%50)), i)
			}
			if table.Capacity() == startCapacity {
				t.Fatal("table must have resized under this load")
			}

			for k := 0; k < 50; k++ {
				got := table.Find(relation.Int(int64(k)))
				if len(got) != 10 {
					t.Fatalf("key %d has %d values, want 10", k, len(got))
				}
				for i, v := range got {
					if v != k+50*i {
						t.Fatalf("key %d values out of order after resize: %v", k, got)
					}
				}
			}
		})
	}
}

// TestLoadFactorNeverExceedsCap proves the 0.75 ceiling holds after
// every single insert.
func TestLoadFactorNeverExceedsCap(t *testing.T) {
	for _, strategy := range strategies {
		t.Run(strategy.String(), func(t *testing.T) {
			table := hashtable.New(16, strategy, nil)
			for i := 0; i < 2000; i++ {
				table.Insert(relation.Int(int64(i)), i)
				if lf := table.Stats().LoadFactor; lf > 0.75 {
					t.Fatalf("load factor %f after insert %d", lf, i)
				}
			}
		})
	}
}

// TestStatsCounters proves the snapshot fields against a small known
// workload.
func TestStatsCounters(t *testing.T) {
	for _, strategy := range strategies {
		t.Run(strategy.String(), func(t *testing.T) {
			table := hashtable.New(64, strategy, nil)
			for i := 0; i < 10; i++ {
				table.Insert(relation.Int(int64(i)), i)
				table.Insert(relation.Int(int64(i)), 100+i)
			}
			stats := table.Stats()
			if stats.TotalEntries != 20 || stats.TotalEntries != table.Len() {
				t.Errorf("TotalEntries = %d, want 20 == Len()", stats.TotalEntries)
			}
			if stats.UsedBuckets == 0 || stats.UsedBuckets > 10 {
				t.Errorf("UsedBuckets = %d, want 1..10", stats.UsedBuckets)
			}
			if stats.LoadFactor != float64(stats.UsedBuckets)/float64(stats.TotalBuckets) {
				t.Error("LoadFactor must be UsedBuckets / TotalBuckets")
			}
			if stats.AvgChainLength != float64(stats.TotalEntries)/float64(stats.UsedBuckets) {
				t.Error("AvgChainLength must be TotalEntries / UsedBuckets")
			}
			if stats.MemoryUsage <= 0 {
				t.Error("MemoryUsage must be positive")
			}
		})
	}
}

// TestStrategiesAgreeOnContents proves both strategies expose the same
// mapping for the same inserts.
func TestStrategiesAgreeOnContents(t *testing.T) {
	chain := hashtable.New(16, hashtable.Chaining, nil)
	probe := hashtable.New(16, hashtable.LinearProbing, nil)

	keys := []relation.Value{
		relation.Int(1), relation.Int(-9), relation.Float(2.5),
		relation.Text("x"), relation.Text(""), relation.Null(),
	}
	for round := 0; round < 3; round++ {
		for i, key := range keys {
			chain.Insert(key, round*10+i)
			probe.Insert(key, round*10+i)
		}
	}

	if chain.Len() != probe.Len() {
		t.Fatalf("Len mismatch: %d vs %d", chain.Len(), probe.Len())
	}
	for _, key := range keys {
		a, b := chain.Find(key), probe.Find(key)
		if fmt.Sprint(a) != fmt.Sprint(b) {
			t.Errorf("Find(%v): chaining %v vs probing %v", key, a, b)
		}
	}
}

// TestNullKey proves the null cell is an ordinary key.
func TestNullKey(t *testing.T) {
	for _, strategy := range strategies {
		t.Run(strategy.String(), func(t *testing.T) {
			table := hashtable.New(16, strategy, nil)
			table.Insert(relation.Null(), 1)
			table.Insert(relation.Null(), 2)
			if got := table.Find(relation.Null()); len(got) != 2 {
				t.Errorf("Find(NULL) = %v, want two values", got)
			}
		})
	}
}
