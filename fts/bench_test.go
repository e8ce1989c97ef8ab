package fts_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/msplan/fts"
	"github.com/katalvlaran/msplan/task"
)

// chainTask builds an n-variable chain task (var i's single operator
// preconditions var i-1 and sets var i; var 0 is unconditional) — the
// shape FactoredTransitionSystem.Merge folds left-to-right.
func chainTask(n int) task.View {
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
	return tk
}

// BenchmarkFactoredTransitionSystem_Merge measures a single Merge call
// folding two atomic factors of an 8-variable chain task. Merge
// consumes its two source slots, so each iteration rebuilds the FTS
// outside the timed region and times only the Merge call itself.
func BenchmarkFactoredTransitionSystem_Merge(b *testing.B) {
	const n = 8
	tk := chainTask(n)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		b.StopTimer()
		f := fts.New(tk)
		b.StartTimer()

		if _, err := f.Merge(0, 1, false, false); err != nil {
			b.Fatal(err)
		}
	}
}
