// Package msplan implements a merge-and-shrink abstraction heuristic
// core for classical planning tasks.
//
// A planning task (package task) is lifted into a factored transition
// system (package fts): one atomic transition system per state
// variable, sharing a single label table (package labels). Repeatedly
// merging two factors (package transys, synchronized product) and
// shrinking a factor down to a state budget (package shrink:
// bisimulation, f-preserving, random) drives the system toward a
// single abstract factor whose goal distances (package distances,
// multi-source Dijkstra) are an admissible distance estimate for the
// original task. A merge-tree representation (package representation)
// maps a concrete state back to its abstract value in O(depth).
//
// Package mas wires factor-pair selection (package merge: linear, DFP,
// SCC, MIASM, random, predefined, score-based) and a shrink strategy
// into the main merge-and-shrink loop and extracts the resulting
// Heuristic.
//
//	h, deadEnd := result.Heuristic.Evaluate(state)
//
// See mas.Run for the entry point.
package msplan
