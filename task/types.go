package task

import "errors"

// Sentinel errors for task validation. Per the module's error policy,
// these are never wrapped with formatted text at the definition site;
// callers should branch with errors.Is.
var (
	// ErrNoVariables indicates a task was built with zero variables.
	ErrNoVariables = errors.New("task: no variables")

	// ErrBadDomain indicates a variable's domain size is less than 2.
	ErrBadDomain = errors.New("task: domain size must be >= 2")

	// ErrBadFact indicates a (variable, value) pair references an
	// out-of-range variable or value.
	ErrBadFact = errors.New("task: fact references unknown variable or value")

	// ErrNegativeCost indicates an operator has a negative cost.
	ErrNegativeCost = errors.New("task: operator cost must be non-negative")

	// ErrBadInitialState indicates the initial state does not assign
	// exactly one value per variable.
	ErrBadInitialState = errors.New("task: initial state malformed")

	// ErrEmptyGoal indicates a goal with zero facts (accepted upstream
	// in real planners as "trivially solved", but rejected here since
	// the core always needs at least one goal-relevant factor to be
	// meaningful; callers wanting a trivial task should add a dummy
	// variable instead).
	ErrEmptyGoal = errors.New("task: goal has no facts")
)

// Fact is a (variable, value) pair. Variables and values are both
// zero-based dense integer indices.
type Fact struct {
	Var   int
	Value int
}

// Effect is a conditional assignment: Var is set to Value whenever all
// Conditions hold (an empty Conditions list means the effect is
// unconditional).
type Effect struct {
	Var        int
	Value      int
	Conditions []Fact
}

// Operator is one grounded action: a cost, a conjunction of
// preconditions, and a list of (possibly conditional) effects.
type Operator struct {
	Name          string
	Cost          int64
	Preconditions []Fact
	Effects       []Effect
}

// TouchesVariable reports whether the operator reads or writes v,
// i.e. whether the atomic transition system for v needs a non-self-loop
// transition for this operator.
func (o Operator) TouchesVariable(v int) bool {
	for _, f := range o.Preconditions {
		if f.Var == v {
			return true
		}
	}
	for _, e := range o.Effects {
		if e.Var == v {
			return true
		}
		for _, c := range e.Conditions {
			if c.Var == v {
				return true
			}
		}
	}
	return false
}

// precondition returns the required value of v for this operator to
// fire, and whether v is constrained at all.
func (o Operator) precondition(v int) (int, bool) {
	for _, f := range o.Preconditions {
		if f.Var == v {
			return f.Value, true
		}
	}
	return 0, false
}

// effect returns the value v is set to by this operator when fired
// from a state where the effect's conditions hold, and whether v has
// any effect at all. When multiple conditional effects target v, the
// caller (atomic transition-system construction) must evaluate
// conditions against a concrete value assignment; effect() only
// reports the first unconditional effect for convenience of simple
// callers and is not used directly by atomic construction (see
// EffectsOn).
func (o Operator) effect(v int) (int, bool) {
	for _, e := range o.Effects {
		if e.Var == v && len(e.Conditions) == 0 {
			return e.Value, true
		}
	}
	return 0, false
}

// EffectsOn returns every effect of the operator targeting variable v
// (there may be several, with disjoint or overlapping conditions — the
// caller building the atomic transition system resolves which ones
// apply; for the atomic, single-variable factor an effect applies to a
// source value when its conditions on v itself hold, and conditions on
// other variables are not evaluated there).
func (o Operator) EffectsOn(v int) []Effect {
	var out []Effect
	for _, e := range o.Effects {
		if e.Var == v {
			out = append(out, e)
		}
	}
	return out
}
