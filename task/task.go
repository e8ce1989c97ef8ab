package task

import "fmt"

// View is the read-only contract the merge-and-shrink core depends on.
// It is satisfied by *Task, and callers may supply their own
// implementation (e.g. a thin adapter over a PDDL/SAS⁺ front-end)
// instead of constructing a *Task directly.
type View interface {
	NumVariables() int
	DomainSize(v int) int
	FactName(v, x int) string
	Operators() []Operator
	InitialState() []int
	Goal() []Fact
	CausalGraph() *CausalGraph
	IsMutex(v1, x1, v2, x2 int) bool
}

// Task is the default, in-memory View implementation: a fully grounded
// planning task, built once by NewTask and read-only thereafter.
type Task struct {
	domains []int
	names   [][]string // names[v][x], lazily defaulted if nil
	ops     []Operator
	init    []int
	goal    []Fact
	cg      *CausalGraph
	mutex   map[mutexKey]struct{}
}

type mutexKey struct{ v1, x1, v2, x2 int }

func normalizeMutexKey(v1, x1, v2, x2 int) mutexKey {
	if v1 > v2 || (v1 == v2 && x1 > x2) {
		v1, x1, v2, x2 = v2, x2, v1, x1
	}
	return mutexKey{v1, x1, v2, x2}
}

// NewTask validates and constructs a Task. names may be nil (facts are
// then named "varV=X"); mutexPairs lists pairs of mutually exclusive
// facts (symmetric; each pair need only be given once).
func NewTask(domains []int, names [][]string, ops []Operator, initial []int, goal []Fact, mutexPairs [][4]int) (*Task, error) {
	if len(domains) == 0 {
		return nil, ErrNoVariables
	}
	for _, d := range domains {
		if d < 2 {
			return nil, ErrBadDomain
		}
	}
	if len(initial) != len(domains) {
		return nil, ErrBadInitialState
	}
	for v, x := range initial {
		if x < 0 || x >= domains[v] {
			return nil, ErrBadInitialState
		}
	}
	if len(goal) == 0 {
		return nil, ErrEmptyGoal
	}
	t := &Task{domains: append([]int(nil), domains...), names: names, init: append([]int(nil), initial...), goal: append([]Fact(nil), goal...)}

	checkFact := func(f Fact) error {
		if f.Var < 0 || f.Var >= len(domains) || f.Value < 0 || f.Value >= domains[f.Var] {
			return fmt.Errorf("%w: var=%d value=%d", ErrBadFact, f.Var, f.Value)
		}
		return nil
	}
	for _, f := range goal {
		if err := checkFact(f); err != nil {
			return nil, err
		}
	}
	for _, op := range ops {
		if op.Cost < 0 {
			return nil, ErrNegativeCost
		}
		for _, f := range op.Preconditions {
			if err := checkFact(f); err != nil {
				return nil, err
			}
		}
		for _, e := range op.Effects {
			if err := checkFact(Fact{e.Var, e.Value}); err != nil {
				return nil, err
			}
			for _, c := range e.Conditions {
				if err := checkFact(c); err != nil {
					return nil, err
				}
			}
		}
	}
	t.ops = append([]Operator(nil), ops...)
	t.cg = buildCausalGraph(len(domains), t.ops)

	t.mutex = make(map[mutexKey]struct{}, len(mutexPairs))
	for _, m := range mutexPairs {
		v1, x1, v2, x2 := m[0], m[1], m[2], m[3]
		if err := checkFact(Fact{v1, x1}); err != nil {
			return nil, err
		}
		if err := checkFact(Fact{v2, x2}); err != nil {
			return nil, err
		}
		t.mutex[normalizeMutexKey(v1, x1, v2, x2)] = struct{}{}
	}

	return t, nil
}

func (t *Task) NumVariables() int { return len(t.domains) }

func (t *Task) DomainSize(v int) int { return t.domains[v] }

func (t *Task) FactName(v, x int) string {
	if t.names != nil && v < len(t.names) && x < len(t.names[v]) && t.names[v][x] != "" {
		return t.names[v][x]
	}
	return fmt.Sprintf("var%d=%d", v, x)
}

func (t *Task) Operators() []Operator { return t.ops }

func (t *Task) InitialState() []int { return t.init }

func (t *Task) Goal() []Fact { return t.goal }

func (t *Task) CausalGraph() *CausalGraph { return t.cg }

func (t *Task) IsMutex(v1, x1, v2, x2 int) bool {
	_, ok := t.mutex[normalizeMutexKey(v1, x1, v2, x2)]
	return ok
}

// GoalValue returns the value the goal requires for v, and whether v
// is constrained by the goal at all.
func (t *Task) GoalValue(v int) (int, bool) {
	for _, f := range t.goal {
		if f.Var == v {
			return f.Value, true
		}
	}
	return 0, false
}
