// Package distances computes and maintains per-factor Distances: the
// shortest-path cost from any initial state to each state
// (init_distance) and from each state to any goal state
// (goal_distance), both using label costs as edge weights
// (SPEC_FULL.md §4.2).
//
// Compute adapts github.com/katalvlaran/lvlath/dijkstra's lazy
// decrease-key, container/heap-based Dijkstra to a multi-source
// setting (seeding the heap with every initial, respectively every
// goal, state at distance 0) and to transys's label-grouped
// transition relation instead of core.Edge adjacency.
package distances
