// Package join implements the build-probe hash join over in-memory
// tables.
//
// The engine picks the smaller input as the build side, loads its join
// keys into a collision-instrumented hash table, streams the other side
// through it, and completes the requested outer-join semantics with a
// matched-row bitmap. Result rows always carry the left table's columns
// (prefixed L_) before the right table's (prefixed R_), regardless of
// which side was chosen to build.
package join

import (
	"github.com/bifrost-labs/bifrost/internal/errors"
	"github.com/bifrost-labs/bifrost/internal/hashtable"
	"github.com/bifrost-labs/bifrost/internal/profile"
	"github.com/bifrost-labs/bifrost/internal/relation"
)

// Engine executes hash joins. An engine is single-threaded; its
// profiler describes the most recent join and is undefined after a
// failed one.
type Engine struct {
	hasher   hashtable.Hasher
	profiler *profile.Profiler
}

// New creates an engine with the default value hasher.
func New() *Engine {
	return NewWithHasher(hashtable.ValueHasher{})
}

// NewWithHasher creates an engine using the given hasher for the build
// table.
func NewWithHasher(hasher hashtable.Hasher) *Engine {
	if hasher == nil {
		hasher = hashtable.ValueHasher{}
	}
	return &Engine{
		hasher:   hasher,
		profiler: profile.New(),
	}
}

// Profiler returns the engine's profiler. The reference must not be
// retained past the engine's lifetime.
func (e *Engine) Profiler() *profile.Profiler {
	return e.profiler
}

// HashJoin joins left and right on equality of the named key columns
// and returns the materialised result. The result schema is every left
// column prefixed L_ followed by every right column prefixed R_; the
// caller owns the returned table.
//
// Null keys match null keys. A NaN key on either side fails the call
// with ErrInvalidJoinKey.
func (e *Engine) HashJoin(
	left *relation.Table,
	leftColumn string,
	right *relation.Table,
	rightColumn string,
	joinType Type,
	strategy hashtable.CollisionStrategy,
) (*relation.Table, error) {
	e.profiler.Start()

	leftIdx, ok := left.ColumnIndex(leftColumn)
	if !ok {
		return nil, errors.NewMissingJoinColumn(left.Name(), leftColumn)
	}
	rightIdx, ok := right.ColumnIndex(rightColumn)
	if !ok {
		return nil, errors.NewMissingJoinColumn(right.Name(), rightColumn)
	}

	// The smaller table builds; ties go left. The output layout is
	// unaffected by the choice.
	build, probe := left, right
	leftIsBuild := true
	if right.RowCount() < left.RowCount() {
		build, probe = right, left
		leftIsBuild = false
	}

	buildIdx, probeIdx := leftIdx, rightIdx
	buildColumn, probeColumn := leftColumn, rightColumn
	if !leftIsBuild {
		buildIdx, probeIdx = rightIdx, leftIdx
		buildColumn, probeColumn = rightColumn, leftColumn
	}

	result := relation.NewTable("JoinResult")
	for _, col := range left.Schema() {
		if err := result.AddColumn("L_"+col.Name, col.Type); err != nil {
			return nil, err
		}
	}
	for _, col := range right.Schema() {
		if err := result.AddColumn("R_"+col.Name, col.Type); err != nil {
			return nil, err
		}
	}

	// Build phase.
	table := hashtable.New(2*build.RowCount(), strategy, e.hasher)
	for i := 0; i < build.RowCount(); i++ {
		key := build.Row(i).Value(buildIdx)
		if key.IsNaN() {
			return nil, errors.NewInvalidJoinKey(build.Name(), buildColumn, i)
		}
		table.Insert(key, i)
	}
	e.profiler.MarkBuildComplete()
	e.profiler.RecordHashStats(table.Stats())

	// Probe phase. buildMatched records which build rows ever matched;
	// the completion pass below needs it.
	buildMatched := make([]bool, build.RowCount())

	for j := 0; j < probe.RowCount(); j++ {
		key := probe.Row(j).Value(probeIdx)
		if key.IsNaN() {
			return nil, errors.NewInvalidJoinKey(probe.Name(), probeColumn, j)
		}

		matches := table.Find(key)
		if len(matches) > 0 {
			for _, i := range matches {
				buildMatched[i] = true
				var combined relation.Row
				if leftIsBuild {
					combined = build.Row(i).Concat(probe.Row(j))
				} else {
					combined = probe.Row(j).Concat(build.Row(i))
				}
				if err := result.AddRow(combined); err != nil {
					return nil, err
				}
			}
			continue
		}

		// Unmatched probe row: preserved when the join type keeps the
		// probe side.
		if !probeSidePreserved(joinType, leftIsBuild) {
			continue
		}
		var padded relation.Row
		if leftIsBuild {
			// Probe side is the right table.
			padded = relation.NullRow(left.ColumnCount()).Concat(probe.Row(j))
		} else {
			padded = probe.Row(j).Concat(relation.NullRow(right.ColumnCount()))
		}
		if err := result.AddRow(padded); err != nil {
			return nil, err
		}
	}
	e.profiler.MarkProbeComplete()

	// Completion pass: unmatched build rows, in build-row order.
	if buildSidePreserved(joinType, leftIsBuild) {
		for i := 0; i < build.RowCount(); i++ {
			if buildMatched[i] {
				continue
			}
			var padded relation.Row
			if leftIsBuild {
				padded = build.Row(i).Concat(relation.NullRow(right.ColumnCount()))
			} else {
				padded = relation.NullRow(left.ColumnCount()).Concat(build.Row(i))
			}
			if err := result.AddRow(padded); err != nil {
				return nil, err
			}
		}
	}

	e.profiler.RecordResults(result.RowCount(), left.RowCount()*right.RowCount())
	e.profiler.Stop()
	return result, nil
}

// probeSidePreserved reports whether unmatched probe rows appear in the
// output: the probe side is the right table when the left built, and
// the left table otherwise.
func probeSidePreserved(t Type, leftIsBuild bool) bool {
	if t == FullOuter {
		return true
	}
	if leftIsBuild {
		return t == RightOuter
	}
	return t == LeftOuter
}

// buildSidePreserved reports whether unmatched build rows appear in the
// output; mirror image of probeSidePreserved.
func buildSidePreserved(t Type, leftIsBuild bool) bool {
	if t == FullOuter {
		return true
	}
	if leftIsBuild {
		return t == LeftOuter
	}
	return t == RightOuter
}
