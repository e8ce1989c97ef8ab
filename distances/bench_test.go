package distances_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/msplan/distances"
	"github.com/katalvlaran/msplan/labels"
	"github.com/katalvlaran/msplan/task"
	"github.com/katalvlaran/msplan/transys"
)

// chainMerged builds an n-variable chain task (var i's single operator
// preconditions var i-1 and sets var i; var 0 is unconditional) and
// merges every atomic factor into one, producing a 2^n-state factor —
// distances.Compute's hot-path input shape (SPEC_FULL.md §4.2).
func chainMerged(n int) (*transys.TransitionSystem, *labels.Table) {
	domains := make([]int, n)
	init := make([]int, n)
	for i := range domains {
		domains[i] = 2
	}
	var ops []task.Operator
	ops = append(ops, task.Operator{
		Name: "set-v0", Cost: 1,
		Preconditions: []task.Fact{{Var: 0, Value: 0}},
		Effects:       []task.Effect{{Var: 0, Value: 1}},
	})
	for i := 1; i < n; i++ {
		ops = append(ops, task.Operator{
			Name: fmt.Sprintf("set-v%d", i), Cost: 1,
			Preconditions: []task.Fact{{Var: i - 1, Value: 1}, {Var: i, Value: 0}},
			Effects:       []task.Effect{{Var: i, Value: 1}},
		})
	}
	tk, err := task.NewTask(domains, nil, ops, init, []task.Fact{{Var: n - 1, Value: 1}}, nil)
	if err != nil {
		panic(err)
	}

	costs := make([]int64, n)
	for i := range costs {
		costs[i] = 1
	}
	table := labels.NewTable(costs)

	merged := transys.Atomic(tk, 0, []labels.ID{0}, table)
	for v := 1; v < n; v++ {
		next := transys.Atomic(tk, v, []labels.ID{labels.ID(v)}, table)
		merged = transys.Merge(merged, next, table, table.ActiveIDs())
	}
	return merged, table
}

// BenchmarkCompute_Chain10 measures distances.Compute on a 2^10-state
// merged factor.
func BenchmarkCompute_Chain10(b *testing.B) {
	const n = 10
	ts, table := chainMerged(n)

	b.ReportAllocs()
	b.SetBytes(int64(ts.NumStates()))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = distances.Compute(ts, table)
	}
}
