package task

import "sort"

// CausalGraph is a directed graph over variable indices, with an edge
// v1 -> v2 whenever some operator's precondition or effect-condition on
// v1 appears together with an effect on v2 (the standard planning
// causal-graph definition), plus edges in both directions between any
// two variables affected by the same operator. Unlike github.com/katalvlaran/lvlath's
// core.Graph, a CausalGraph is built once by NewTask and never mutated
// afterwards, so it carries no locks: concurrent reads of a value that
// is never written again need no synchronization.
type CausalGraph struct {
	numVars int
	succ    [][]int // succ[v] = sorted, deduplicated successors of v
	pred    [][]int // pred[v] = sorted, deduplicated predecessors of v
}

// Successors returns the variables that v causally influences.
func (cg *CausalGraph) Successors(v int) []int { return cg.succ[v] }

// Predecessors returns the variables that causally influence v.
func (cg *CausalGraph) Predecessors(v int) []int { return cg.pred[v] }

// NumVariables reports the number of variables in the graph.
func (cg *CausalGraph) NumVariables() int { return cg.numVars }

// buildCausalGraph derives the causal graph from a set of operators,
// following the standard rule: for every operator, every variable
// mentioned in a precondition or an effect condition gets an edge to
// every variable mentioned in one of that operator's effects, and every
// two variables affected by that operator get edges in both directions
// (self edges are dropped).
func buildCausalGraph(numVars int, ops []Operator) *CausalGraph {
	adj := make([]map[int]struct{}, numVars)
	radj := make([]map[int]struct{}, numVars)
	for v := 0; v < numVars; v++ {
		adj[v] = make(map[int]struct{})
		radj[v] = make(map[int]struct{})
	}

	for _, op := range ops {
		influencers := make(map[int]struct{})
		for _, f := range op.Preconditions {
			influencers[f.Var] = struct{}{}
		}
		effected := make(map[int]struct{})
		for _, e := range op.Effects {
			effected[e.Var] = struct{}{}
			for _, c := range e.Conditions {
				influencers[c.Var] = struct{}{}
			}
		}
		for from := range influencers {
			for to := range effected {
				if from == to {
					continue
				}
				adj[from][to] = struct{}{}
				radj[to][from] = struct{}{}
			}
		}
		// Two effects of the same operator causally influence each other
		// (co-occurring effects), both directions.
		for to1 := range effected {
			for to2 := range effected {
				if to1 == to2 {
					continue
				}
				adj[to1][to2] = struct{}{}
				radj[to2][to1] = struct{}{}
			}
		}
	}

	cg := &CausalGraph{numVars: numVars, succ: make([][]int, numVars), pred: make([][]int, numVars)}
	for v := 0; v < numVars; v++ {
		cg.succ[v] = sortedKeys(adj[v])
		cg.pred[v] = sortedKeys(radj[v])
	}
	return cg
}

func sortedKeys(m map[int]struct{}) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}
