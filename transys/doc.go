// Package transys implements TransitionSystem, one factor of a
// FactoredTransitionSystem: a finite set of abstract states, a
// label-grouped transition relation, initial and goal states, and the
// ordered list of variables it incorporates (SPEC_FULL.md §3, §4.1).
//
// A TransitionSystem is built once atomically (Atomic), then evolves
// through Merge (synchronized product, producing a brand new instance
// rather than mutating either input — mirroring how
// github.com/katalvlaran/lvlath's prim_kruskal/kruskal.go treats its
// disjoint-set structure as owned, single-use state), ApplyAbstraction
// (shrinking) and ApplyLabelReduction (label coalescing). Distances
// and Representation are tracked alongside it by package fts, not
// here: a TransitionSystem only knows about states, transitions and
// labels.
package transys
