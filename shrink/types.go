package shrink

import (
	"errors"

	"github.com/katalvlaran/msplan/distances"
	"github.com/katalvlaran/msplan/transys"
)

// Sentinel errors, grounded on dijkstra/types.go's errors.New style.
var (
	// ErrBadTargetSize indicates a non-positive target_size was given.
	ErrBadTargetSize = errors.New("shrink: target size must be positive")
)

// Strategy computes an equivalence relation over a factor's states
// (SPEC_FULL.md §4.6 "A shrink strategy receives (fts, index,
// target_size) and returns an equivalence relation E"). The mapping
// m has len(m) == ts.NumStates(); m[s] is the class index the state
// is folded into (never transys.Pruned — shrinking itself never
// prunes a state outright, only abstraction after distance-based
// pruning does).
type Strategy interface {
	Shrink(ts *transys.TransitionSystem, dist *distances.Distances, targetSize int) ([]transys.State, error)
}

// Variant selects bisimulation's signature-comparison rule.
type Variant int

const (
	// Exact considers every transition when building a state's
	// signature.
	Exact Variant = iota
	// Greedy omits transitions whose target's goal distance exceeds
	// the source's, converging faster at the cost of admissibility
	// unless labels are unit-cost (SPEC_FULL.md §4.6 "Bisimulation").
	Greedy
)

// Policy selects what Bisimulation does when the fixed-point
// partition is still larger than target_size.
type Policy int

const (
	// Return accepts the larger-than-requested partition rather than
	// refining it further.
	Return Policy = iota
	// UseUp greedily merges blocks until the size constraint holds.
	UseUp
)

// normalizeMapping renumbers an arbitrary block-id assignment into
// dense class indices 0..k-1, preserving the relative order blocks
// were first seen in (deterministic given a deterministic block
// array).
func normalizeMapping(block []int) []transys.State {
	next := 0
	seen := make(map[int]int, len(block))
	out := make([]transys.State, len(block))
	for i, b := range block {
		id, ok := seen[b]
		if !ok {
			id = next
			seen[b] = id
			next++
		}
		out[i] = transys.State(id)
	}
	return out
}
