// Package task defines the read-only Task View consumed by the
// merge-and-shrink core: variables with finite domains, operators with
// preconditions/effects, the goal, the causal graph, and static mutexes.
//
// The task is an external collaborator (see github.com/katalvlaran/msplan's
// SPEC_FULL.md §6): parsing PDDL/SAS⁺ input is explicitly out of scope here.
// Callers construct a *Task directly (or provide their own View
// implementation) from an already-grounded planning task.
//
// A Task is immutable once built and safe for concurrent reads from
// multiple strategies, mirroring how github.com/katalvlaran/lvlath's
// core.Graph is read-only-safe for traversal algorithms.
package task
