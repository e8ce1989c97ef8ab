package mas_test

import (
	"fmt"

	"github.com/katalvlaran/msplan/mas"
	"github.com/katalvlaran/msplan/merge"
	"github.com/katalvlaran/msplan/task"
)

// ExampleRun demonstrates the two-variable, two-operator task of
// SPEC_FULL.md §8 scenario 1: V1 := 1 (precondition V1=0), then
// V2 := 1 (precondition V1=1), goal V2=1.
func ExampleRun() {
	ops := []task.Operator{
		{Name: "set-v1", Cost: 1, Preconditions: []task.Fact{{Var: 0, Value: 0}}, Effects: []task.Effect{{Var: 0, Value: 1}}},
		{Name: "set-v2", Cost: 1, Preconditions: []task.Fact{{Var: 0, Value: 1}}, Effects: []task.Effect{{Var: 1, Value: 1}}},
	}
	tk, err := task.NewTask([]int{2, 2}, nil, ops, []int{0, 0}, []task.Fact{{Var: 1, Value: 1}}, nil)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	result, err := mas.Run(tk, mas.WithMergeStrategy(merge.NewLinear([]int{0, 1})))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	h, deadEnd := result.Heuristic.Evaluate(tk.InitialState())
	fmt.Printf("outcome=%s h(initial)=%d deadEnd=%t\n", result.Outcome, h, deadEnd)
	// Output: outcome=success h(initial)=2 deadEnd=false
}
