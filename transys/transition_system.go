package transys

import (
	"sort"

	"github.com/katalvlaran/msplan/labels"
)

// TransitionSystem is one factor of a FactoredTransitionSystem. See
// the package doc comment for its lifecycle.
type TransitionSystem struct {
	tag              TSTag
	numStates        int
	init             []State // sorted, deduplicated
	goal             map[State]struct{}
	incorporatedVars []int
	nextGroupID      int
	groups           map[int]*groupEntry // group id -> entry; tombstones kept with empty members
	groupOfLabel     map[labels.ID]int
}

// Tag returns the transition system's current lifecycle state.
func (ts *TransitionSystem) Tag() TSTag { return ts.tag }

// NumStates returns |states| for this factor.
func (ts *TransitionSystem) NumStates() int { return ts.numStates }

// InitStates returns the (sorted) set of initial states.
func (ts *TransitionSystem) InitStates() []State { return ts.init }

// IsGoal reports whether s is a goal state.
func (ts *TransitionSystem) IsGoal(s State) bool {
	_, ok := ts.goal[s]
	return ok
}

// GoalStates returns every goal state, sorted.
func (ts *TransitionSystem) GoalStates() []State {
	out := make([]State, 0, len(ts.goal))
	for s := range ts.goal {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// IsGoalRelevant reports whether the factor has at least one
// non-goal state (SPEC_FULL.md GLOSSARY "Goal-relevant factor"; used
// by the DFP and score-based merge strategies).
func (ts *TransitionSystem) IsGoalRelevant() bool { return len(ts.goal) < ts.numStates }

// IncorporatedVariables returns the ordered list of task variables
// this factor abstracts.
func (ts *TransitionSystem) IncorporatedVariables() []int { return ts.incorporatedVars }

// GroupOfLabel returns the group id containing ℓ, or ok=false if ℓ is
// not tracked by this transition system (a CRITICAL_ERROR condition
// upstream per SPEC_FULL.md §4.1's "for every active label, some
// group contains it" invariant — transys itself just reports it).
func (ts *TransitionSystem) GroupOfLabel(l labels.ID) (int, bool) {
	gid, ok := ts.groupOfLabel[l]
	return gid, ok
}

// Group returns the labels.Group and its transitions for group id
// gid.
func (ts *TransitionSystem) Group(gid int) (labels.Group, []Transition, bool) {
	e, ok := ts.groups[gid]
	if !ok {
		return labels.Group{}, nil, false
	}
	return e.group, e.transitions, true
}

// GroupIDs returns every non-tombstone group id, sorted.
func (ts *TransitionSystem) GroupIDs() []int {
	out := make([]int, 0, len(ts.groups))
	for gid, e := range ts.groups {
		if !e.group.IsTombstone() {
			out = append(out, gid)
		}
	}
	sort.Ints(out)
	return out
}

// TransitionsForLabel returns the transitions of the group containing
// ℓ.
func (ts *TransitionSystem) TransitionsForLabel(l labels.ID) ([]Transition, bool) {
	gid, ok := ts.groupOfLabel[l]
	if !ok {
		return nil, false
	}
	return ts.groups[gid].transitions, true
}

// sortDedupTransitions sorts ts lexicographically by (Source, Target)
// and removes duplicates, per SPEC_FULL.md §4.1's invariant that
// transitions within a group are sorted and duplicate-free.
func sortDedupTransitions(ts []Transition) []Transition {
	sort.Slice(ts, func(i, j int) bool {
		if ts[i].Source != ts[j].Source {
			return ts[i].Source < ts[j].Source
		}
		return ts[i].Target < ts[j].Target
	})
	out := ts[:0]
	for i, t := range ts {
		if i == 0 || t != out[len(out)-1] {
			out = append(out, t)
		}
	}
	return out
}

// newGroup registers a fresh group (possibly a tombstone if members is
// empty) and returns its id.
func (ts *TransitionSystem) newGroup(table *labels.Table, members []labels.ID, transitions []Transition) int {
	gid := ts.nextGroupID
	ts.nextGroupID++
	g := labels.NewGroup(table, members)
	transitions = sortDedupTransitions(transitions)
	ts.groups[gid] = &groupEntry{group: g, transitions: transitions}
	for _, m := range members {
		ts.groupOfLabel[m] = gid
	}
	return gid
}
