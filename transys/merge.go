package transys

import (
	"sort"

	"github.com/katalvlaran/msplan/labels"
)

// Merge computes the synchronized product of a and b
// (SPEC_FULL.md §4.1 "Merge (synchronized product)"). table is the
// shared label table; activeLabels should be every label currently
// active in the owning FactoredTransitionSystem (both a and b must
// have a group for each of them, per the TS invariant). The result is
// always a brand-new TransitionSystem; a and b are not mutated.
//
// State encoding: (x, y) in a×b maps to x*|b|+y, matching
// SPEC_FULL.md's canonical encoding.
func Merge(a, b *TransitionSystem, table *labels.Table, activeLabels []labels.ID) *TransitionSystem {
	nb := b.numStates
	encode := func(x, y State) State { return State(int(x)*nb + int(y)) }

	out := &TransitionSystem{
		tag:              Merged,
		numStates:        a.numStates * nb,
		goal:             make(map[State]struct{}),
		incorporatedVars: append(append([]int(nil), a.incorporatedVars...), b.incorporatedVars...),
		groups:           make(map[int]*groupEntry),
		groupOfLabel:     make(map[labels.ID]int),
	}

	initSet := make(map[State]struct{})
	for _, x := range a.init {
		for _, y := range b.init {
			initSet[encode(x, y)] = struct{}{}
		}
	}
	out.init = sortedStates(initSet)

	for x := range a.goal {
		for y := range b.goal {
			out.goal[encode(x, y)] = struct{}{}
		}
	}

	// Bucket labels by (groupA, groupB) first: identical pairs always
	// induce identical product transitions, so the product only needs
	// computing once per pair. That is not yet the final grouping,
	// though — two distinct (groupA, groupB) pairs can still produce
	// pointwise-equal product transition sets (e.g. when a's or b's
	// groups overlap on incorporated variables), and the §3 LabelGroup
	// invariant is an iff: two labels are in the same group exactly
	// when their transition sets are pointwise equal. So, as
	// ApplyAbstraction already does when PRUNED states collapse
	// distinct groups together, every pair's product is re-keyed by
	// encodeTransitions and pairs whose products coincide are folded
	// into one final group.
	type pairKey struct{ ga, gb int }
	buckets := make(map[pairKey][]labels.ID)
	for _, l := range activeLabels {
		ga, okA := a.GroupOfLabel(l)
		gb, okB := b.GroupOfLabel(l)
		if !okA || !okB {
			// Label not tracked by one of the factors: CRITICAL_ERROR
			// territory upstream (FTS invariant). transys stays
			// defensive and simply skips it here; the FTS layer is
			// responsible for never calling Merge with a stale label
			// set.
			continue
		}
		buckets[pairKey{ga, gb}] = append(buckets[pairKey{ga, gb}], l)
	}

	keys := make([]pairKey, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].ga != keys[j].ga {
			return keys[i].ga < keys[j].ga
		}
		return keys[i].gb < keys[j].gb
	})

	type coalesced struct {
		members     []labels.ID
		transitions []Transition
	}
	byKey := make(map[string]*coalesced)
	order := make([]string, 0, len(keys))
	for _, k := range keys {
		_, aTrans, _ := a.Group(k.ga)
		_, bTrans, _ := b.Group(k.gb)
		product := make([]Transition, 0, len(aTrans)*len(bTrans))
		for _, ta := range aTrans {
			for _, tb := range bTrans {
				product = append(product, Transition{
					Source: encode(ta.Source, tb.Source),
					Target: encode(ta.Target, tb.Target),
				})
			}
		}
		product = sortDedupTransitions(product)
		key := encodeTransitions(product)
		c, ok := byKey[key]
		if !ok {
			c = &coalesced{transitions: product}
			byKey[key] = c
			order = append(order, key)
		}
		c.members = append(c.members, buckets[k]...)
	}

	for _, key := range order {
		c := byKey[key]
		out.newGroup(table, c.members, c.transitions)
	}

	return out
}

func sortedStates(set map[State]struct{}) []State {
	out := make([]State, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
