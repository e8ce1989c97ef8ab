package merge

import (
	"github.com/katalvlaran/msplan/distances"
	"github.com/katalvlaran/msplan/fts"
	"github.com/katalvlaran/msplan/labels"
	"github.com/katalvlaran/msplan/transys"
)

// dfpTieBreakBase separates composite-factor priority from atomic-
// factor priority in pairPriority: atomics always rank after every
// composite, however many composites exist.
const dfpTieBreakBase = 1 << 30

// dfpStrategy implements SPEC_FULL.md §4.7's DFP rule: among pairs
// where at least one factor is goal-relevant, pick the one minimizing
// a per-label "rank" based max-then-min weight; ties break toward the
// most recently created composite factor, then toward atomics in
// their original variable order.
type dfpStrategy struct {
	nAtomic int
}

// NewDFP builds the DFP strategy. nAtomic is the task's variable count
// (= the number of atomic factors fts.New created), needed to tell
// composite factor indices (>= nAtomic) from atomic ones.
func NewDFP(nAtomic int) Strategy {
	return &dfpStrategy{nAtomic: nAtomic}
}

func (d *dfpStrategy) AfterMerge(int) {}

type dfpCandidate struct {
	i, j      int
	weight    int64
	hasWeight bool
}

func (d *dfpStrategy) NextPair(f *fts.FactoredTransitionSystem, allowed []int) (int, int, error) {
	indices := liveIndices(f, allowed)
	if len(indices) < 2 {
		return -1, -1, ErrNoPair
	}

	type info struct {
		idx          int
		goalRelevant bool
		ranks        map[labels.ID]int64
	}
	infos := make([]info, 0, len(indices))
	for _, idx := range indices {
		ts, err := f.TransitionSystem(idx)
		if err != nil {
			continue
		}
		dist, err := f.Distances(idx)
		if err != nil {
			continue
		}
		infos = append(infos, info{idx: idx, goalRelevant: ts.IsGoalRelevant(), ranks: computeLabelRanks(ts, dist)})
	}

	var best *dfpCandidate
	var firstGoalRelevant *dfpCandidate
	for a := 0; a < len(infos); a++ {
		for b := a + 1; b < len(infos); b++ {
			x, y := infos[a], infos[b]
			if !x.goalRelevant && !y.goalRelevant {
				continue
			}
			if firstGoalRelevant == nil {
				firstGoalRelevant = &dfpCandidate{i: x.idx, j: y.idx}
			}
			w, ok := pairWeight(x.ranks, y.ranks)
			if !ok {
				continue
			}
			c := dfpCandidate{i: x.idx, j: y.idx, weight: w, hasWeight: true}
			if best == nil || dfpBetter(c, *best, d.nAtomic) {
				cc := c
				best = &cc
			}
		}
	}
	if best != nil {
		return best.i, best.j, nil
	}
	if firstGoalRelevant != nil {
		return firstGoalRelevant.i, firstGoalRelevant.j, nil
	}
	return -1, -1, ErrNoPair
}

// computeLabelRanks computes, for every active label this transition
// system tracks, the min goal-distance its group's transitions reach
// — or -1 ("irrelevant") when every transition in the group is a
// self-loop covering every state (the label never actually changes
// this factor's abstract state).
func computeLabelRanks(ts *transys.TransitionSystem, dist *distances.Distances) map[labels.ID]int64 {
	out := make(map[labels.ID]int64)
	for _, gid := range ts.GroupIDs() {
		group, trans, _ := ts.Group(gid)
		rank := int64(-1)
		if !isIdentityEverywhere(trans, ts.NumStates()) {
			rank = distances.Inf
			for _, tr := range trans {
				if dist.Goal[int(tr.Target)] < rank {
					rank = dist.Goal[int(tr.Target)]
				}
			}
		}
		for _, m := range group.Members {
			out[m] = rank
		}
	}
	return out
}

func isIdentityEverywhere(trans []transys.Transition, numStates int) bool {
	if len(trans) != numStates {
		return false
	}
	for _, t := range trans {
		if t.Source != t.Target {
			return false
		}
	}
	return true
}

// pairWeight is min over labels tracked by both ranks maps (skipping
// any rank -1 = irrelevant in either) of max(rankA, rankB). ok is false
// if no label contributes a finite weight.
func pairWeight(a, b map[labels.ID]int64) (weight int64, ok bool) {
	best := distances.Inf
	found := false
	for k, ra := range a {
		rb, present := b[k]
		if !present || ra < 0 || rb < 0 {
			continue
		}
		w := ra
		if rb > w {
			w = rb
		}
		if !found || w < best {
			best = w
			found = true
		}
	}
	return best, found && best < distances.Inf
}

func indexPriority(idx, nAtomic int) int {
	if idx < nAtomic {
		return dfpTieBreakBase + idx
	}
	return -idx
}

func pairPriority(i, j, nAtomic int) (int, int) {
	pi, pj := indexPriority(i, nAtomic), indexPriority(j, nAtomic)
	if pi > pj {
		pi, pj = pj, pi
	}
	return pi, pj
}

func dfpBetter(c, cur dfpCandidate, nAtomic int) bool {
	if c.weight != cur.weight {
		return c.weight < cur.weight
	}
	ci1, ci2 := pairPriority(c.i, c.j, nAtomic)
	cu1, cu2 := pairPriority(cur.i, cur.j, nAtomic)
	if ci1 != cu1 {
		return ci1 < cu1
	}
	return ci2 < cu2
}
