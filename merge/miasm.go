package merge

import (
	"math"
	"sort"

	"github.com/katalvlaran/msplan/distances"
	"github.com/katalvlaran/msplan/labels"
	"github.com/katalvlaran/msplan/shrink"
	"github.com/katalvlaran/msplan/task"
	"github.com/katalvlaran/msplan/transys"
)

// MIASMOptions configures the bounded internal merge-and-shrink pass
// MIASM runs to score candidate variable groupings (SPEC_FULL.md §4.7
// "MIASM", recovered feature D.6).
type MIASMOptions struct {
	// InternalMaxStates bounds the abstract state count of the nested
	// probe transition system; once a candidate subset's simulated
	// product exceeds it, the probe shrinks back down via bisimulation
	// before continuing. Zero disables the cap.
	InternalMaxStates int
}

// miasmStrategy greedily grows a variable partition by a bounded
// internal merge-and-shrink probe (SPEC_FULL.md §4.7): starting from
// singletons, each block repeatedly absorbs the causal-graph neighbor
// that yields the best (lowest) ratio of reachable-and-relevant probe
// states to the full product size, stopping once no neighbor improves
// on "no reduction found" (ratio >= 1). The resulting blocks are then
// merged internally (in ascending variable order, via Linear) and folded
// together linearly, mirroring partitionFold's SCCs backbone.
type miasmStrategy struct {
	*partitionFold
}

// NewMIASM builds the MIASM strategy from t's variables and causal
// graph.
func NewMIASM(t task.View, opts MIASMOptions) Strategy {
	blocks := miasmPartition(t, opts)
	internal := func(block []int) Strategy { return NewLinear(block) }
	return &miasmStrategy{partitionFold: newPartitionFold(blocks, internal)}
}

func miasmPartition(t task.View, opts MIASMOptions) [][]int {
	n := t.NumVariables()
	assigned := make([]bool, n)
	cg := t.CausalGraph()
	var blocks [][]int

	for v := 0; v < n; v++ {
		if assigned[v] {
			continue
		}
		block := []int{v}
		assigned[v] = true
		for {
			cand, bestRatio := -1, math.Inf(1)
			for _, u := range miasmNeighbors(cg, block, assigned) {
				ratio := miasmSimulateRatio(t, append(append([]int(nil), block...), u), opts.InternalMaxStates)
				if ratio < bestRatio {
					bestRatio, cand = ratio, u
				}
			}
			if cand < 0 || bestRatio >= 1.0 {
				break
			}
			block = append(block, cand)
			assigned[cand] = true
		}
		sort.Ints(block)
		blocks = append(blocks, block)
	}
	return blocks
}

func miasmNeighbors(cg *task.CausalGraph, block []int, assigned []bool) []int {
	seen := make(map[int]struct{})
	var out []int
	add := func(u int) {
		if assigned[u] {
			return
		}
		if _, ok := seen[u]; ok {
			return
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	for _, v := range block {
		for _, u := range cg.Successors(v) {
			add(u)
		}
		for _, u := range cg.Predecessors(v) {
			add(u)
		}
	}
	sort.Ints(out)
	return out
}

// miasmSimulateRatio builds a detached probe: a fresh label table and
// one atomic transition system per variable in vars, folded together
// left to right via synchronized product, shrinking back to capStates
// (via exact bisimulation with the UseUp overflow policy) whenever the
// running product exceeds it. It returns the final ratio of surviving
// (reachable and relevant) states to the uncapped full product size —
// lower means the subset compresses well together.
func miasmSimulateRatio(t task.View, vars []int, capStates int) float64 {
	ops := t.Operators()
	costs := make([]int64, len(ops))
	labelIDs := make([]labels.ID, len(ops))
	for i, op := range ops {
		costs[i] = op.Cost
		labelIDs[i] = labels.ID(i)
	}
	table := labels.NewTable(costs)

	var cur *transys.TransitionSystem
	fullSize := 1
	for _, v := range vars {
		ts := transys.Atomic(t, v, labelIDs, table)
		fullSize *= ts.NumStates()
		if cur == nil {
			cur = ts
			continue
		}
		cur = transys.Merge(cur, ts, table, table.ActiveIDs())
		if capStates > 0 && cur.NumStates() > capStates {
			dist := distances.Compute(cur, table)
			m, err := shrink.NewBisimulation(shrink.WithPolicy(shrink.UseUp)).Shrink(cur, dist, capStates)
			if err == nil {
				transys.ApplyAbstraction(cur, m, table)
			}
		}
	}
	if cur == nil || fullSize == 0 {
		return 1
	}

	dist := distances.Compute(cur, table)
	m := dist.PruneMapping(true, true)
	alive := 0
	for _, c := range m {
		if c != transys.Pruned {
			alive++
		}
	}
	return float64(alive) / float64(fullSize)
}
