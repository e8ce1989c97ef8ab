package mas

import "fmt"

// CriticalError reports a main-loop invariant violation (SPEC_FULL.md
// §A: "Invariant violations... panic with a typed CriticalError") —
// a merge strategy returning a non-live or duplicate index, or an FTS
// call that should be impossible given the loop's own bookkeeping
// (SPEC_FULL.md §7 "Invariant violation" / "Strategy disagreement"
// rows). It is never recovered from within this package: a
// CriticalError indicates a bug in the core or in a user-supplied
// strategy, not a property of the input task.
type CriticalError struct {
	Op  string
	Err error
}

func (e *CriticalError) Error() string {
	return fmt.Sprintf("mas: CRITICAL_ERROR in %s: %v", e.Op, e.Err)
}

func (e *CriticalError) Unwrap() error { return e.Err }

// panicCritical raises a CriticalError; the sole place this package
// panics with one (the other panic, for a nil Option, is in resolve).
func panicCritical(op string, err error) {
	panic(&CriticalError{Op: op, Err: err})
}

// Outcome classifies how a Run terminated (SPEC_FULL.md §4.8
// "Failure semantics" and §6 "Exit codes" — INPUT_ERROR is instead
// reported as a returned error from Run, never as an Outcome, since
// it means Run never started looping at all).
type Outcome int

const (
	// Success means the loop ran every step the merge strategy
	// offered, with no budget exceeded and no factor reported
	// unsolvable.
	Success Outcome = iota
	// Unsolvable means some factor was proven to have no plan; the
	// returned heuristic reports DEAD_END for every state.
	Unsolvable
	// TimeExceeded means the wall-clock budget (Options.MaxTime) was
	// reached; the returned heuristic is the best partial one built
	// so far.
	TimeExceeded
	// TooManyTransitions means NumTransitionsToAbort was exceeded by
	// some live factor; the returned heuristic is the best partial
	// one built so far.
	TooManyTransitions
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case Unsolvable:
		return "unsolvable"
	case TimeExceeded:
		return "time_exceeded"
	case TooManyTransitions:
		return "too_many_transitions"
	default:
		return "unknown"
	}
}

// Result is Run's return value: the terminal Outcome, the number of
// merges actually completed, and the extracted Heuristic (always
// non-nil — even Unsolvable carries a DEAD_END-everywhere heuristic,
// per SPEC_FULL.md §8 scenario 2).
type Result struct {
	Outcome    Outcome
	Iterations int
	Heuristic  *Heuristic
}
