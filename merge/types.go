package merge

import (
	"errors"

	"github.com/katalvlaran/msplan/fts"
)

// Sentinel errors, in the teacher's errors.New + errors.Is idiom.
var (
	// ErrNoPair is returned when fewer than two live factors are
	// available to merge (or, for DFP, when no candidate satisfies the
	// goal-relevance rule at all).
	ErrNoPair = errors.New("merge: no candidate pair available")
	// ErrExhausted is returned by stateful strategies (Linear, SCCs,
	// MIASM, Predefined, Random) once their remembered merge order has been
	// fully consumed — a normal termination signal, not a failure.
	ErrExhausted = errors.New("merge: strategy's merge order is exhausted")
)

// Strategy decides the next pair of live factors to merge
// (SPEC_FULL.md §4.7: "next_pair(fts) -> (i, j), i != j, both live").
// allowed, when non-empty, restricts the candidate indices to that
// subset (used when the main loop excludes factors whose transition
// count would blow the merge budget); every strategy must tolerate it.
//
// AfterMerge is called once the caller has actually performed the
// fts.Merge this strategy proposed, reporting the resulting factor
// index, so stateful strategies can update which index now represents
// a previously separate group of variables. Stateless strategies
// (DFP, score-based filtering) give it an empty body.
type Strategy interface {
	NextPair(f *fts.FactoredTransitionSystem, allowed []int) (i, j int, err error)
	AfterMerge(newIndex int)
}

// restrictPair checks a stateful strategy's remembered candidate
// (i, j) against the allowed/live subset: if allowed is empty or
// already contains both i and j, the pair is returned unchanged
// (matched == true). Otherwise the strategy's own plan can't be
// honored this round — SPEC_FULL.md §4.7 still requires a live,
// allowed pair to come out, so the first two entries of
// liveIndices(f, allowed) are substituted instead (matched == false,
// telling the caller not to advance its remembered plan, since (i, j)
// was not actually the pair merged).
func restrictPair(f *fts.FactoredTransitionSystem, allowed []int, i, j int) (ri, rj int, matched bool, err error) {
	live := liveIndices(f, allowed)
	if len(allowed) == 0 || (containsInt(live, i) && containsInt(live, j)) {
		return i, j, true, nil
	}
	if len(live) < 2 {
		return -1, -1, false, ErrNoPair
	}
	return live[0], live[1], false, nil
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

// liveIndices returns the live factor indices to consider: allowed
// filtered down to currently-live entries if non-empty, else every
// live factor.
func liveIndices(f *fts.FactoredTransitionSystem, allowed []int) []int {
	if len(allowed) > 0 {
		out := make([]int, 0, len(allowed))
		for _, idx := range allowed {
			if f.IsLive(idx) {
				out = append(out, idx)
			}
		}
		return out
	}
	out := make([]int, 0, f.NumFactors())
	for idx := 0; idx < f.NumFactors(); idx++ {
		if f.IsLive(idx) {
			out = append(out, idx)
		}
	}
	return out
}
