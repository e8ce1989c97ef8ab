package task_test

import (
	"fmt"

	"github.com/katalvlaran/msplan/task"
)

// ExampleNewTask builds a two-variable task (set V1, then set V2 once
// V1 is set) and reads back its causal graph and initial/goal facts.
func ExampleNewTask() {
	ops := []task.Operator{
		{Name: "set-v1", Cost: 1, Preconditions: []task.Fact{{Var: 0, Value: 0}}, Effects: []task.Effect{{Var: 0, Value: 1}}},
		{Name: "set-v2", Cost: 1, Preconditions: []task.Fact{{Var: 0, Value: 1}}, Effects: []task.Effect{{Var: 1, Value: 1}}},
	}
	tk, err := task.NewTask([]int{2, 2}, nil, ops, []int{0, 0}, []task.Fact{{Var: 1, Value: 1}}, nil)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Printf("vars=%d init=%v goal=%v successors(0)=%v\n",
		tk.NumVariables(), tk.InitialState(), tk.Goal(), tk.CausalGraph().Successors(0))
	// Output: vars=2 init=[0 0] goal=[{1 1}] successors(0)=[1]
}
