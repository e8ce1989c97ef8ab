package transys

import (
	"sort"

	"github.com/katalvlaran/msplan/labels"
	"github.com/katalvlaran/msplan/task"
)

// Atomic builds the single-variable factor for variable v
// (SPEC_FULL.md §4.1 "Construction (atomic)"). labelIDs[i] must be the
// label table id for task.Operators()[i], 1-to-1 as required by
// §4.1; table is the shared global label table used to compute costs
// and fold operators that induce identical transitions on v into one
// label group.
//
// Goal states are {v=value} if the goal constrains v, else every
// state (an unconstrained variable can never fail the goal test, so
// every value for it is "goal-compatible" — matching
// original_source's atomic projection semantics).
func Atomic(t task.View, v int, labelIDs []labels.ID, table *labels.Table) *TransitionSystem {
	d := t.DomainSize(v)
	ts := &TransitionSystem{
		tag:              AtomicTS,
		numStates:        d,
		init:             []State{State(t.InitialState()[v])},
		goal:             make(map[State]struct{}),
		incorporatedVars: []int{v},
		groups:           make(map[int]*groupEntry),
		groupOfLabel:     make(map[labels.ID]int),
	}

	if goalVal, constrained := goalValueOf(t, v); constrained {
		ts.goal[State(goalVal)] = struct{}{}
	} else {
		for x := 0; x < d; x++ {
			ts.goal[State(x)] = struct{}{}
		}
	}

	// Bucket operators (via their label id) by their induced
	// transition relation on v, so identical relations share one group
	// from the start (SPEC_FULL.md §3 LabelGroup invariant).
	type bucketKey string
	buckets := make(map[bucketKey][]labels.ID)
	bucketTransitions := make(map[bucketKey][]Transition)
	ops := t.Operators()
	for i, op := range ops {
		trans := operatorTransitionsOnVar(op, v, d)
		key := bucketKey(encodeTransitions(trans))
		buckets[key] = append(buckets[key], labelIDs[i])
		if _, seen := bucketTransitions[key]; !seen {
			bucketTransitions[key] = trans
		}
	}

	keys := make([]bucketKey, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	for _, k := range keys {
		ts.newGroup(table, buckets[k], bucketTransitions[k])
	}

	return ts
}

func goalValueOf(t task.View, v int) (int, bool) {
	for _, f := range t.Goal() {
		if f.Var == v {
			return f.Value, true
		}
	}
	return 0, false
}

// operatorTransitionsOnVar computes the transition relation an
// operator induces on the single-variable factor for v
// (SPEC_FULL.md §4.1): a self-loop over every value it does not
// touch, or (precondition/effect-derived) pairs otherwise. Effect
// conditions that reference variables other than v are not
// evaluable at this atomic level: such an effect may or may not fire,
// so both its transition and the unchanged self-loop are included,
// which keeps the atomic factor an over-approximation of the
// operator on v.
func operatorTransitionsOnVar(op task.Operator, v, domainSize int) []Transition {
	effs := op.EffectsOn(v)
	pre, hasPre := opPrecondition(op, v)

	if len(effs) == 0 {
		if hasPre {
			return []Transition{{Source: State(pre), Target: State(pre)}}
		}
		out := make([]Transition, domainSize)
		for x := 0; x < domainSize; x++ {
			out[x] = Transition{Source: State(x), Target: State(x)}
		}
		return out
	}

	sources := []int{pre}
	if !hasPre {
		sources = make([]int, domainSize)
		for x := range sources {
			sources[x] = x
		}
	}

	var out []Transition
	for _, src := range sources {
		matched := false
		mayNotFire := false
		selfLoop := false
		for _, e := range effs {
			ok := true
			foreign := false
			for _, c := range e.Conditions {
				if c.Var != v {
					foreign = true
				} else if c.Value != src {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}
			out = append(out, Transition{Source: State(src), Target: State(e.Value)})
			matched = true
			mayNotFire = mayNotFire || foreign
			selfLoop = selfLoop || e.Value == src
		}
		if !matched || (mayNotFire && !selfLoop) {
			// No applicable effect for this source value under this
			// operator (e.g. a v-local condition excluded it): v is
			// left unchanged.
			out = append(out, Transition{Source: State(src), Target: State(src)})
		}
	}
	return out
}

func opPrecondition(op task.Operator, v int) (int, bool) {
	for _, f := range op.Preconditions {
		if f.Var == v {
			return f.Value, true
		}
	}
	return 0, false
}

func encodeTransitions(ts []Transition) string {
	sorted := append([]Transition(nil), ts...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Source != sorted[j].Source {
			return sorted[i].Source < sorted[j].Source
		}
		return sorted[i].Target < sorted[j].Target
	})
	buf := make([]byte, 0, len(sorted)*8)
	for _, t := range sorted {
		buf = appendInt(buf, int(t.Source))
		buf = append(buf, ',')
		buf = appendInt(buf, int(t.Target))
		buf = append(buf, ';')
	}
	return string(buf)
}

func appendInt(buf []byte, x int) []byte {
	if x < 0 {
		buf = append(buf, '-')
		x = -x
	}
	start := len(buf)
	if x == 0 {
		return append(buf, '0')
	}
	for x > 0 {
		buf = append(buf, byte('0'+x%10))
		x /= 10
	}
	// reverse digits written since x%10
	for l, r := start, len(buf)-1; l < r; l, r = l+1, r-1 {
		buf[l], buf[r] = buf[r], buf[l]
	}
	return buf
}
