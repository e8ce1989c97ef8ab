package merge

import (
	"math"
	"math/rand"

	"github.com/katalvlaran/msplan/distances"
	"github.com/katalvlaran/msplan/fts"
	"github.com/katalvlaran/msplan/task"
	"github.com/katalvlaran/msplan/transys"
)

// GoalRelevance scores 0 if either factor is goal-relevant, +Inf
// otherwise — a hard filter, not a graded preference (SPEC_FULL.md
// §4.7's scoring-function list, "goal relevance").
func GoalRelevance(f *fts.FactoredTransitionSystem, i, j int) float64 {
	ti, erri := f.TransitionSystem(i)
	tj, errj := f.TransitionSystem(j)
	if erri != nil || errj != nil {
		return math.Inf(1)
	}
	if ti.IsGoalRelevant() || tj.IsGoalRelevant() {
		return 0
	}
	return math.Inf(1)
}

// DFPWeight scores a pair by the same rank-based weight DFP uses as
// its primary criterion ("DFP weight" in the scoring-function list),
// letting score-based filtering reuse DFP's notion of "how much this
// pair's labels agree" as one stage among several.
func DFPWeight(f *fts.FactoredTransitionSystem, i, j int) float64 {
	ti, erri := f.TransitionSystem(i)
	tj, errj := f.TransitionSystem(j)
	if erri != nil || errj != nil {
		return math.Inf(1)
	}
	di, errdi := f.Distances(i)
	dj, errdj := f.Distances(j)
	if errdi != nil || errdj != nil {
		return math.Inf(1)
	}
	w, ok := pairWeight(computeLabelRanks(ti, di), computeLabelRanks(tj, dj))
	if !ok {
		return math.Inf(1)
	}
	return float64(w)
}

// ProductTransitionCount scores a pair by the number of transitions
// their synchronized product would carry, computed the same way
// transys.Merge buckets labels by (groupA, groupB) pairs — without
// actually building the product ("product transition count" in the
// scoring-function list).
func ProductTransitionCount(f *fts.FactoredTransitionSystem, i, j int) float64 {
	ti, erri := f.TransitionSystem(i)
	tj, errj := f.TransitionSystem(j)
	if erri != nil || errj != nil {
		return math.Inf(1)
	}
	table := f.Labels()
	type pairKey struct{ ga, gb int }
	seen := make(map[pairKey]struct{})
	total := 0
	for _, l := range table.ActiveIDs() {
		ga, okA := ti.GroupOfLabel(l)
		gb, okB := tj.GroupOfLabel(l)
		if !okA || !okB {
			continue
		}
		key := pairKey{ga, gb}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		_, ta, _ := ti.Group(ga)
		_, tb, _ := tj.Group(gb)
		total += len(ta) * len(tb)
	}
	return float64(total)
}

// MIASMRatio scores a pair by the actual ratio of reachable-and-
// relevant states to the full product size, computed by building the
// real synchronized product and pruning it ("MIASM" in the
// scoring-function list — the same ratio NewMIASM's internal probe
// uses, applied here to the real pair rather than a detached probe).
func MIASMRatio(f *fts.FactoredTransitionSystem, i, j int) float64 {
	ti, erri := f.TransitionSystem(i)
	tj, errj := f.TransitionSystem(j)
	if erri != nil || errj != nil {
		return math.Inf(1)
	}
	table := f.Labels()
	full := ti.NumStates() * tj.NumStates()
	if full == 0 {
		return 1
	}
	merged := transys.Merge(ti, tj, table, table.ActiveIDs())
	dist := distances.Compute(merged, table)
	m := dist.PruneMapping(true, true)
	alive := 0
	for _, c := range m {
		if c != transys.Pruned {
			alive++
		}
	}
	return float64(alive) / float64(full)
}

// NumVariables scores a pair by how many task variables it would
// incorporate in total ("variable count" in the scoring-function
// list) — smaller merges preferred when this stage runs.
func NumVariables(f *fts.FactoredTransitionSystem, i, j int) float64 {
	ti, erri := f.TransitionSystem(i)
	tj, errj := f.TransitionSystem(j)
	if erri != nil || errj != nil {
		return math.Inf(1)
	}
	return float64(len(ti.IncorporatedVariables()) + len(tj.IncorporatedVariables()))
}

// LabelReductionOpportunities scores a pair by the negative count of
// already-multi-member label groups across the two factors: a crude
// proxy (no cheap exact count of future Λ-equivalence classes exists
// without running label reduction itself) for "how much grouping this
// pair's labels already share", used as one stage of several rather
// than a precise measure ("label-reduction opportunities" in the
// scoring-function list — see DESIGN.md for this simplification).
func LabelReductionOpportunities(f *fts.FactoredTransitionSystem, i, j int) float64 {
	ti, erri := f.TransitionSystem(i)
	tj, errj := f.TransitionSystem(j)
	if erri != nil || errj != nil {
		return math.Inf(1)
	}
	count := 0
	for _, gid := range ti.GroupIDs() {
		group, _, _ := ti.Group(gid)
		if len(group.Members) > 1 {
			count += len(group.Members) - 1
		}
	}
	for _, gid := range tj.GroupIDs() {
		group, _, _ := tj.Group(gid)
		if len(group.Members) > 1 {
			count += len(group.Members) - 1
		}
	}
	return -float64(count)
}

// CausalGraphConnectivity returns a ScoringFunc (bound to cg, since
// the causal graph is task-level state the uniform ScoringFunc
// signature does not otherwise carry) scoring a pair by the negative
// count of causal-graph edges between their incorporated variables —
// denser internal connectivity preferred ("causal-graph connectivity"
// in the scoring-function list).
func CausalGraphConnectivity(cg *task.CausalGraph) ScoringFunc {
	return func(f *fts.FactoredTransitionSystem, i, j int) float64 {
		ti, erri := f.TransitionSystem(i)
		tj, errj := f.TransitionSystem(j)
		if erri != nil || errj != nil {
			return math.Inf(1)
		}
		vars := make(map[int]struct{})
		for _, v := range ti.IncorporatedVariables() {
			vars[v] = struct{}{}
		}
		for _, v := range tj.IncorporatedVariables() {
			vars[v] = struct{}{}
		}
		edges := 0
		for v := range vars {
			for _, u := range cg.Successors(v) {
				if _, ok := vars[u]; ok {
					edges++
				}
			}
		}
		return -float64(edges)
	}
}

// MutexDensity returns a ScoringFunc (bound to t) scoring a pair by
// the negative count of mutex fact pairs between their incorporated
// variables' values — denser mutex structure preferred, since it tends
// to yield better pruning once merged ("mutex density" in the
// scoring-function list).
func MutexDensity(t task.View) ScoringFunc {
	return func(f *fts.FactoredTransitionSystem, i, j int) float64 {
		ti, erri := f.TransitionSystem(i)
		tj, errj := f.TransitionSystem(j)
		if erri != nil || errj != nil {
			return math.Inf(1)
		}
		vars := append(append([]int(nil), ti.IncorporatedVariables()...), tj.IncorporatedVariables()...)
		count := 0
		for a := 0; a < len(vars); a++ {
			for b := a + 1; b < len(vars); b++ {
				v1, v2 := vars[a], vars[b]
				for x := 0; x < t.DomainSize(v1); x++ {
					for y := 0; y < t.DomainSize(v2); y++ {
						if t.IsMutex(v1, x, v2, y) {
							count++
						}
					}
				}
			}
		}
		return -float64(count)
	}
}

// TotalOrderTieBreaker returns a ScoringFunc implementing a fixed,
// deterministic total order over factor indices: score = min(i, j) —
// the last-resort tie-break when every other stage ties
// ("total-order tie-breaker" in the scoring-function list).
func TotalOrderTieBreaker() ScoringFunc {
	return func(_ *fts.FactoredTransitionSystem, i, j int) float64 {
		if i < j {
			return float64(i)
		}
		return float64(j)
	}
}

// SingleRandomTieBreaker returns a ScoringFunc that assigns each pair
// a fixed pseudo-random score derived from (seed, i, j), deterministic
// across calls with the same seed but otherwise unrelated to any
// factor property ("single-random tie-breaker" in the scoring-function
// list).
func SingleRandomTieBreaker(seed int64) ScoringFunc {
	if seed == 0 {
		seed = defaultSeed
	}
	return func(_ *fts.FactoredTransitionSystem, i, j int) float64 {
		r := rand.New(rand.NewSource(seed ^ int64(i)<<32 ^ int64(j)))
		return r.Float64()
	}
}
