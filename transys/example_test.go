package transys_test

import (
	"fmt"

	"github.com/katalvlaran/msplan/labels"
	"github.com/katalvlaran/msplan/task"
	"github.com/katalvlaran/msplan/transys"
)

// ExampleMerge builds the two atomic factors of SPEC_FULL.md §8
// scenario 1 and takes their synchronized product.
func ExampleMerge() {
	ops := []task.Operator{
		{Name: "set-v1", Cost: 1, Preconditions: []task.Fact{{Var: 0, Value: 0}}, Effects: []task.Effect{{Var: 0, Value: 1}}},
		{Name: "set-v2", Cost: 1, Preconditions: []task.Fact{{Var: 0, Value: 1}}, Effects: []task.Effect{{Var: 1, Value: 1}}},
	}
	tk, err := task.NewTask([]int{2, 2}, nil, ops, []int{0, 0}, []task.Fact{{Var: 1, Value: 1}}, nil)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	table := labels.NewTable([]int64{1, 1})
	ts0 := transys.Atomic(tk, 0, []labels.ID{0, 1}, table)
	ts1 := transys.Atomic(tk, 1, []labels.ID{0, 1}, table)
	merged := transys.Merge(ts0, ts1, table, table.ActiveIDs())

	fmt.Printf("states=%d incorporated=%v goal(1)=%t goal(3)=%t\n",
		merged.NumStates(), merged.IncorporatedVariables(), merged.IsGoal(1), merged.IsGoal(3))
	// Output: states=4 incorporated=[0 1] goal(1)=true goal(3)=true
}
