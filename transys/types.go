package transys

import (
	"errors"

	"github.com/katalvlaran/msplan/labels"
)

// Sentinel errors for transys. As elsewhere in this module, callers
// branch with errors.Is; invariant violations the FTS owner must never
// trigger are still returned as regular errors at this layer (the mas
// main loop is the one that escalates them to a CriticalError panic).
var (
	// ErrEmptyAbstraction indicates ApplyAbstraction was called with a
	// mapping whose length does not match the current state count.
	ErrEmptyAbstraction = errors.New("transys: abstraction mapping length mismatch")

	// ErrAllStatesPruned indicates an abstraction mapped every state
	// (including every initial state) to PRUNED.
	ErrAllStatesPruned = errors.New("transys: abstraction prunes every state")

	// ErrGroupNotFound indicates a label reduction or lookup referenced
	// a label this transition system has no group for.
	ErrGroupNotFound = errors.New("transys: no group contains label")
)

// State indexes one of the contiguous abstract states {0..n-1} of a
// TransitionSystem.
type State int

// Pruned is the reserved sentinel state meaning "removed by
// abstraction" (SPEC_FULL.md §3 "Representation", §4.1 "Apply
// abstraction"). It is never a valid member of {0..n-1}.
const Pruned State = -1

// Transition is an ordered pair of abstract-state indices, held by a
// label group.
type Transition struct {
	Source State
	Target State
}

// TSTag is the coarse lifecycle state of a TransitionSystem
// (SPEC_FULL.md §4.1 "State machine").
type TSTag int

const (
	// AtomicTS is the state of a freshly built single-variable factor.
	AtomicTS TSTag = iota
	// Merged is a synchronized product not yet pruned or validated.
	Merged
	// Valid means transitions are sorted+unique and Distances (owned
	// by package fts/distances) are up to date with this TS.
	Valid
	// Unsolvable means the initial state was pruned, or no initial
	// state can reach any goal state.
	Unsolvable
)

func (t TSTag) String() string {
	switch t {
	case AtomicTS:
		return "ATOMIC"
	case Merged:
		return "MERGED"
	case Valid:
		return "VALID"
	case Unsolvable:
		return "UNSOLVABLE"
	default:
		return "UNKNOWN"
	}
}

// groupEntry is the internal representation of a labels.Group plus its
// sorted, deduplicated transition list within this transition system.
type groupEntry struct {
	group       labels.Group
	transitions []Transition
}
