package labels

import (
	"math"
	"sort"
)

// Group is a maximal set of labels that, within one transition system,
// induce identical transitions (SPEC_FULL.md §3 "LabelGroup"). Group
// itself only tracks membership and the cached minimum cost; the
// owning transys.TransitionSystem is responsible for keeping the
// invariant "same group iff same transition set".
//
// A Group with zero members is a tombstone left behind by label
// reduction or shrinking (SPEC_FULL.md §4.1 "Apply label reduction");
// tombstones carry Cost == TombstoneCost and must never be selected by
// a merge or scoring function.
type Group struct {
	Members []ID
	Cost    int64
}

// TombstoneCost is the cost recorded for an emptied label group. It is
// deliberately a sentinel rather than 0 so that a rank/score computed
// over tombstones can never look cheaper than a real zero-cost label.
const TombstoneCost = int64(math.MaxInt64)

// NewGroup builds a Group from members, computing its cost from table.
func NewGroup(table *Table, members []ID) Group {
	if len(members) == 0 {
		return Group{Cost: TombstoneCost}
	}
	g := Group{Members: append([]ID(nil), members...)}
	sort.Slice(g.Members, func(i, j int) bool { return g.Members[i] < g.Members[j] })
	minCost := int64(-1)
	for _, id := range g.Members {
		c := table.Cost(id)
		if minCost < 0 || c < minCost {
			minCost = c
		}
	}
	g.Cost = minCost
	return g
}

// IsTombstone reports whether the group has no members.
func (g Group) IsTombstone() bool { return len(g.Members) == 0 }

// Contains reports whether id is a member of g.
func (g Group) Contains(id ID) bool {
	i := sort.Search(len(g.Members), func(i int) bool { return g.Members[i] >= id })
	return i < len(g.Members) && g.Members[i] == id
}

// Remove returns a copy of g with every id in remove dropped, and its
// cost recomputed from table (TombstoneCost if nothing is left).
func (g Group) Remove(table *Table, remove map[ID]struct{}) Group {
	kept := make([]ID, 0, len(g.Members))
	for _, id := range g.Members {
		if _, gone := remove[id]; !gone {
			kept = append(kept, id)
		}
	}
	return NewGroup(table, kept)
}
