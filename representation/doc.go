// Package representation implements the merge-tree lookup table that
// maps a full task state to an abstract state (or, after
// distance-ification, directly to a goal distance) in O(depth)
// (SPEC_FULL.md §3 "Representation (merge tree node)", §4.3).
//
// Per SPEC_FULL.md §9's design note, Leaf vs. Merge — the only case in
// the original source with runtime type-testing — is expressed here as
// a single tagged Node type rather than a class hierarchy, since the
// two shapes need no dynamic downcasting once the kind tag is known.
package representation
