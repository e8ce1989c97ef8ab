package distances_test

import (
	"fmt"

	"github.com/katalvlaran/msplan/distances"
	"github.com/katalvlaran/msplan/labels"
	"github.com/katalvlaran/msplan/task"
	"github.com/katalvlaran/msplan/transys"
)

// ExampleCompute computes goal distances over the merged two-variable
// factor of SPEC_FULL.md §8 scenario 1.
func ExampleCompute() {
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

	d := distances.Compute(merged, table)
	encode := func(x, y int) int { return x*2 + y }
	fmt.Printf("h(0,0)=%d h(1,0)=%d h(1,1)=%d\n",
		d.Goal[encode(0, 0)], d.Goal[encode(1, 0)], d.Goal[encode(1, 1)])
	// Output: h(0,0)=2 h(1,0)=1 h(1,1)=0
}
