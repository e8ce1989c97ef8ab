package distances

import "math"

// Inf represents an unreachable / dead distance (SPEC_FULL.md §3
// "Distances": "Value ∞ marks unreachable / dead").
const Inf int64 = math.MaxInt64

// Distances holds the per-state init and goal distances of one
// transition system, as of the last Compute call.
type Distances struct {
	Init []int64 // Init[s] = shortest cost from any initial state to s
	Goal []int64 // Goal[s] = shortest cost from s to any goal state
}

// Unreachable reports whether s cannot be reached from any initial
// state (SPEC_FULL.md §4.2 "Pruning").
func (d *Distances) Unreachable(s int) bool { return d.Init[s] == Inf }

// Irrelevant reports whether no goal state is reachable from s.
func (d *Distances) Irrelevant(s int) bool { return d.Goal[s] == Inf }

// InitGoalDistance returns the min over initial states i of
// Goal[i] — i.e. the overall shortest plan cost represented by this
// factor alone, or Inf if unsolvable.
func (d *Distances) InitGoalDistance(initStates []int) int64 {
	best := Inf
	for _, s := range initStates {
		if d.Goal[s] < best {
			best = d.Goal[s]
		}
	}
	return best
}
