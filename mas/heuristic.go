package mas

import (
	"github.com/katalvlaran/msplan/distances"
	"github.com/katalvlaran/msplan/fts"
	"github.com/katalvlaran/msplan/representation"
)

// Heuristic is the extracted callable of SPEC_FULL.md §6 "Heuristic
// output": h(state) -> non-negative integer | DEAD_END. It holds one
// distance-ified representation per surviving factor (normally one,
// but recovered feature D.1 allows several when size-restriction
// bailout leaves multiple solvable factors un-merged).
type Heuristic struct {
	factors []fts.FinalFactor
}

// newHeuristic distance-ifies every extracted factor's representation
// root exactly once (SPEC_FULL.md §4.3 "finish with SetDistances
// called once, on the root") and wraps the result for repeated
// Evaluate calls.
func newHeuristic(final []fts.FinalFactor) *Heuristic {
	for _, f := range final {
		if !f.Repr.Distanceified() {
			f.Repr.SetDistances(f.Dist.Goal, distances.Inf)
		}
	}
	return &Heuristic{factors: final}
}

// Evaluate computes h(state): DEAD_END if any extracted factor is
// unsolvable or any extracted representation reports it, otherwise
// the max over every extracted
// representation's own distance (SPEC_FULL.md §6 "Heuristic output":
// "if any returns DEAD_END, the result is DEAD_END; otherwise max over
// returned values").
func (h *Heuristic) Evaluate(state []int) (value int64, deadEnd bool) {
	var best int64 = -1
	for _, f := range h.factors {
		if f.Unsolvable {
			return 0, true
		}
		v := f.Repr.GetValue(state)
		if v == representation.DeadEnd {
			return 0, true
		}
		if int64(v) > best {
			best = int64(v)
		}
	}
	if best < 0 {
		// No factors at all (NumVariables == 0, excluded at task
		// construction by task.ErrNoVariables); defensive only.
		return 0, false
	}
	return best, false
}
