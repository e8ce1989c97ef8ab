package merge

import (
	"sort"

	"github.com/katalvlaran/msplan/task"
)

// SCCOrder selects how strongly-connected components of the causal
// graph are ordered before being folded together (SPEC_FULL.md §4.7
// "SCCs", recovered feature D.5).
type SCCOrder int

const (
	// Topological orders SCCs sources-first (a component is placed
	// before any component it has an edge into).
	Topological SCCOrder = iota
	// ReverseTopological orders SCCs sinks-first — Tarjan's natural
	// output order (original_source's scc.cc closes a component once
	// every successor component has already closed).
	ReverseTopological
	// Decreasing orders SCCs by size, largest first.
	Decreasing
	// Increasing orders SCCs by size, smallest first.
	Increasing
)

// sccStrategy merges each SCC of the causal graph down to one factor
// via an internal sub-strategy, then folds the per-SCC representatives
// together linearly in the chosen SCCOrder (SPEC_FULL.md §4.7 "SCCs:
// merge within a strongly-connected component before merging across
// components").
type sccStrategy struct {
	*partitionFold
}

// NewSCCs builds the SCCs strategy. internal builds the sub-strategy
// used to merge a non-singleton component's own atomic variables
// together (e.g. func(vars []int) Strategy { return NewLinear(vars) }
// or a DFP-based closure); it is invoked once per non-singleton
// component, freshly, scoped to that component's variable list.
func NewSCCs(cg *task.CausalGraph, order SCCOrder, internal func([]int) Strategy) Strategy {
	comps := tarjanSCCs(cg)
	comps = orderSCCs(comps, order)
	return &sccStrategy{partitionFold: newPartitionFold(comps, internal)}
}

// tarjanSCCs computes the strongly-connected components of cg via
// Tarjan's algorithm (grounded on original_source's
// symmetries/scc.cc: dfs_numbers/dfs_minima/stack_indices/stack,
// closing a component when a vertex's low-link equals its own index).
// The result is in the same sinks-first order Tarjan naturally
// produces; each component's members are sorted ascending.
func tarjanSCCs(cg *task.CausalGraph) [][]int {
	n := cg.NumVariables()
	index := make([]int, n)
	low := make([]int, n)
	onStack := make([]bool, n)
	for i := range index {
		index[i] = -1
	}
	var stack []int
	counter := 0
	var comps [][]int

	var strongconnect func(v int)
	strongconnect = func(v int) {
		index[v] = counter
		low[v] = counter
		counter++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range cg.Successors(v) {
			if index[w] == -1 {
				strongconnect(w)
				if low[w] < low[v] {
					low[v] = low[w]
				}
			} else if onStack[w] {
				if index[w] < low[v] {
					low[v] = index[w]
				}
			}
		}

		if low[v] == index[v] {
			var comp []int
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				comp = append(comp, w)
				if w == v {
					break
				}
			}
			sort.Ints(comp)
			comps = append(comps, comp)
		}
	}

	for v := 0; v < n; v++ {
		if index[v] == -1 {
			strongconnect(v)
		}
	}
	return comps
}

func orderSCCs(comps [][]int, order SCCOrder) [][]int {
	switch order {
	case Topological:
		out := make([][]int, len(comps))
		for i, c := range comps {
			out[len(comps)-1-i] = c
		}
		return out
	case Decreasing:
		out := append([][]int(nil), comps...)
		sort.SliceStable(out, func(i, j int) bool { return len(out[i]) > len(out[j]) })
		return out
	case Increasing:
		out := append([][]int(nil), comps...)
		sort.SliceStable(out, func(i, j int) bool { return len(out[i]) < len(out[j]) })
		return out
	default: // ReverseTopological
		return comps
	}
}
