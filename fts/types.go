package fts

import (
	"errors"

	"github.com/katalvlaran/msplan/distances"
	"github.com/katalvlaran/msplan/labels"
	"github.com/katalvlaran/msplan/representation"
	"github.com/katalvlaran/msplan/transys"
)

// Sentinel errors, in the teacher's idiom (errors.New + errors.Is
// branching), grounded on dijkstra/types.go and builder/errors.go.
var (
	// ErrUnknownFactor is returned when a factor index is out of range.
	ErrUnknownFactor = errors.New("fts: unknown factor index")
	// ErrFactorEmpty is returned when an operation targets a slot that
	// has already been consumed by a merge.
	ErrFactorEmpty = errors.New("fts: factor slot is empty")
	// ErrCopyDepthMismatch is returned by ReleaseCopies when asked to
	// release more transient copies than currently exist.
	ErrCopyDepthMismatch = errors.New("fts: no transient copy to release")
)

// slot is one factor's parallel (TransitionSystem, Representation,
// Distances) triple (spec.md §3 "FactoredTransitionSystem (FTS)").
// transient marks an entry created by Copy for scoring-function
// probing (§9 "Temporary merge probing"); transient slots never count
// toward numActive and are only ever trimmed from the tail.
type slot struct {
	ts        *transys.TransitionSystem
	repr      *representation.Node
	dist      *distances.Distances
	live      bool
	transient bool
}

// FactoredTransitionSystem owns the Labels table and all factor
// slots. It is the sole mutator of both; merge and shrink strategies
// receive it only through read accessors (§5 "immutable-content
// view").
type FactoredTransitionSystem struct {
	table *labels.Table

	slots []slot

	numActive       int
	unsolvableIndex int // -1 if no factor has been found unsolvable yet
}
