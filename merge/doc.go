// Package merge implements the merge strategies of SPEC_FULL.md §4.7:
// each decides next_pair(fts) -> (i, j), i != j, both live, optionally
// restricted to an allowed index subset (used when the main loop has
// excluded factors whose transition count exceeds a cap).
//
// Stateful strategies (Linear, SCCs, MIASM, Predefined, Random) track
// progress across repeated calls; the main loop must call
// AfterMerge(newIndex) once it has actually performed, via fts.Merge,
// the merge NextPair proposed, so the strategy's internal bookkeeping (which
// factor index now represents a previously-separate group of
// variables) stays correct.
package merge
