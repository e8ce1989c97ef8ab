// Package shrink implements the shrink strategies of SPEC_FULL.md
// §4.6: given a factor's current TransitionSystem and Distances, and a
// target size, compute an equivalence relation E over its states with
// |E| at most (or, for the RETURN bisimulation policy, approximately)
// target_size.
//
// Strategies never mutate the factor they inspect — they return a
// mapping for the caller (package fts, via its ApplyAbstraction) to
// apply, matching SPEC_FULL.md §5's "immutable-content view" rule for
// strategies.
package shrink
