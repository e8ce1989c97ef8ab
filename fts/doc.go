// Package fts implements the FactoredTransitionSystem: the single
// owner of a Labels table and three parallel, factor-indexed vectors
// of optional entries — TransitionSystem, Representation, Distances
// (spec.md §3 "FactoredTransitionSystem (FTS)", §4.4).
//
// A factor index is consumed (its slot emptied) exactly when it is
// merged into a new, appended factor; indices are never reused and
// num_active_entries always equals n_atomic minus the number of
// merges performed so far (§4.4 invariants). Merge and shrink
// strategies (packages merge, shrink) receive an FTS by
// immutable-content view — they read live factors and enumerate
// labels but never mutate; only the FTS itself applies merges,
// abstractions, and label-reduction mappings.
package fts
