package shrink

import (
	"sort"

	"github.com/katalvlaran/msplan/distances"
	"github.com/katalvlaran/msplan/transys"
)

type fPreservingStrategy struct{}

// NewFPreserving builds the f-preserving / bucket-based strategy of
// SPEC_FULL.md §4.6: states are grouped by (init_dist, goal_dist), and
// the largest same-goal-class buckets are iteratively merged until the
// bucket count is at most target_size. A goal state is never merged
// with a non-goal state.
func NewFPreserving() Strategy { return &fPreservingStrategy{} }

type fpBucket struct {
	isGoal  bool
	f       int64 // tie-break value: init_dist + goal_dist
	members []int
}

func (*fPreservingStrategy) Shrink(ts *transys.TransitionSystem, dist *distances.Distances, targetSize int) ([]transys.State, error) {
	if targetSize <= 0 {
		return nil, ErrBadTargetSize
	}

	n := ts.NumStates()
	type key struct {
		init, goal int64
		isGoal     bool
	}
	byKey := make(map[key][]int)
	for s := 0; s < n; s++ {
		k := key{init: dist.Init[s], goal: dist.Goal[s], isGoal: ts.IsGoal(transys.State(s))}
		byKey[k] = append(byKey[k], s)
	}

	buckets := make([]*fpBucket, 0, len(byKey))
	for k, members := range byKey {
		buckets = append(buckets, &fpBucket{isGoal: k.isGoal, f: addSaturating(k.init, k.goal), members: members})
	}
	sortBuckets(buckets)

	for len(buckets) > targetSize {
		merged := false
		for i := 0; i < len(buckets) && !merged; i++ {
			for j := i + 1; j < len(buckets); j++ {
				if buckets[i].isGoal != buckets[j].isGoal {
					continue
				}
				buckets[i].members = append(buckets[i].members, buckets[j].members...)
				buckets = append(buckets[:j], buckets[j+1:]...)
				merged = true
				break
			}
		}
		if !merged {
			// Every remaining bucket pair straddles the goal/non-goal
			// boundary: cannot shrink further without violating the
			// "never merge a goal with a non-goal state" invariant.
			break
		}
		sortBuckets(buckets)
	}

	block := make([]int, n)
	for id, bkt := range buckets {
		for _, s := range bkt.members {
			block[s] = id
		}
	}
	return normalizeMapping(block), nil
}

// sortBuckets orders by descending size, then by descending f-value
// (SPEC_FULL.md §4.6: "Ties broken by highest init_dist + goal_dist
// (f-value) dropped first" — the highest-f bucket among equal sizes
// sorts first and so is merged away soonest).
func sortBuckets(buckets []*fpBucket) {
	sort.Slice(buckets, func(i, j int) bool {
		if len(buckets[i].members) != len(buckets[j].members) {
			return len(buckets[i].members) > len(buckets[j].members)
		}
		return buckets[i].f > buckets[j].f
	})
}

func addSaturating(a, b int64) int64 {
	if a == distances.Inf || b == distances.Inf {
		return distances.Inf
	}
	sum := a + b
	if sum < a || sum < b {
		return distances.Inf
	}
	return sum
}
