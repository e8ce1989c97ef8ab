package transys

import "github.com/katalvlaran/msplan/labels"

// ApplyAbstraction rewrites ts in place according to the equivalence
// relation encoded by m: m[s] is the class index {0..k-1} that state s
// maps to, or Pruned if s is dropped entirely (SPEC_FULL.md §4.1
// "Apply abstraction"). table is needed because shrinking can cause
// previously-distinct label groups to collapse onto identical
// transition sets, requiring group costs to be recomputed.
//
// Returns (shrunk, err): shrunk is true iff the number of states
// strictly decreased. An error is returned if len(m) doesn't match
// ts.numStates, or if every state (in particular every initial state)
// maps to Pruned — the caller (fts) is responsible for transitioning
// the factor to Unsolvable in the latter case rather than treating it
// as a transys-level error in the happy path; ApplyAbstraction itself
// still reports it so an accidental silent full collapse can't hide.
func ApplyAbstraction(ts *TransitionSystem, m []State, table *labels.Table) (bool, error) {
	if len(m) != ts.numStates {
		return false, ErrEmptyAbstraction
	}

	newSize := 0
	for _, c := range m {
		if c != Pruned && int(c)+1 > newSize {
			newSize = int(c) + 1
		}
	}
	if newSize == 0 {
		return false, ErrAllStatesPruned
	}

	newInitSet := make(map[State]struct{})
	for _, s := range ts.init {
		if c := m[s]; c != Pruned {
			newInitSet[c] = struct{}{}
		}
	}
	if len(newInitSet) == 0 {
		return false, ErrAllStatesPruned
	}

	newGoal := make(map[State]struct{})
	for s := range ts.goal {
		if c := m[s]; c != Pruned {
			newGoal[c] = struct{}{}
		}
	}

	// Rewrite every group's transitions, dropping any edge whose
	// source or target was pruned away, then re-coalesce groups whose
	// rewritten transition sets have become identical (PRUNED states
	// disappearing can make previously distinct label groups
	// coincide).
	type rewritten struct {
		members     []labels.ID
		transitions []Transition
	}
	byKey := make(map[string]*rewritten)
	order := make([]string, 0, len(ts.groups))
	for _, gid := range ts.GroupIDs() {
		e := ts.groups[gid]
		var out []Transition
		for _, t := range e.transitions {
			ns, nt := m[t.Source], m[t.Target]
			if ns == Pruned || nt == Pruned {
				continue
			}
			out = append(out, Transition{Source: ns, Target: nt})
		}
		out = sortDedupTransitions(out)
		key := encodeTransitions(out)
		r, ok := byKey[key]
		if !ok {
			r = &rewritten{transitions: out}
			byKey[key] = r
			order = append(order, key)
		}
		r.members = append(r.members, e.group.Members...)
	}

	oldSize := ts.numStates
	ts.numStates = newSize
	ts.init = sortedStates(newInitSet)
	ts.goal = newGoal
	ts.nextGroupID = 0
	ts.groups = make(map[int]*groupEntry)
	ts.groupOfLabel = make(map[labels.ID]int)
	for _, key := range order {
		r := byKey[key]
		ts.newGroup(table, r.members, r.transitions)
	}
	if ts.tag == AtomicTS {
		ts.tag = Merged // no longer the untouched atomic projection
	}

	return newSize < oldSize, nil
}
