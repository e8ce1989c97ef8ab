package distances_test

import (
	"testing"

	"github.com/katalvlaran/msplan/distances"
	"github.com/katalvlaran/msplan/labels"
	"github.com/katalvlaran/msplan/task"
	"github.com/katalvlaran/msplan/transys"
	"github.com/stretchr/testify/require"
)

func buildMerged(t *testing.T) (*transys.TransitionSystem, *labels.Table) {
	t.Helper()
	ops := []task.Operator{
		{Name: "set-v1", Cost: 1, Preconditions: []task.Fact{{Var: 0, Value: 0}}, Effects: []task.Effect{{Var: 0, Value: 1}}},
		{Name: "set-v2", Cost: 1, Preconditions: []task.Fact{{Var: 0, Value: 1}}, Effects: []task.Effect{{Var: 1, Value: 1}}},
	}
	tk, err := task.NewTask([]int{2, 2}, nil, ops, []int{0, 0}, []task.Fact{{Var: 1, Value: 1}}, nil)
	require.NoError(t, err)
	table := labels.NewTable([]int64{1, 1})
	ts0 := transys.Atomic(tk, 0, []labels.ID{0, 1}, table)
	ts1 := transys.Atomic(tk, 1, []labels.ID{0, 1}, table)
	merged := transys.Merge(ts0, ts1, table, table.ActiveIDs())
	return merged, table
}

// TestCompute_SeedCase1 checks SPEC_FULL.md §8 scenario 1:
// h(initial)=2, h({V1=1,V2=0})=1, h({V1=1,V2=1})=0.
func TestCompute_SeedCase1(t *testing.T) {
	merged, table := buildMerged(t)
	d := distances.Compute(merged, table)

	// encode(x,y) = x*2+y
	encode := func(x, y int) int { return x*2 + y }
	require.Equal(t, int64(2), d.Goal[encode(0, 0)])
	require.Equal(t, int64(1), d.Goal[encode(1, 0)])
	require.Equal(t, int64(0), d.Goal[encode(1, 1)])
}

func TestCompute_UnreachableGoal(t *testing.T) {
	// SPEC_FULL.md §8 scenario 2: only operator is V1:=1, goal V2=1 is
	// unreachable.
	ops := []task.Operator{
		{Name: "set-v1", Cost: 1, Preconditions: []task.Fact{{Var: 0, Value: 0}}, Effects: []task.Effect{{Var: 0, Value: 1}}},
	}
	tk, err := task.NewTask([]int{2, 2}, nil, ops, []int{0, 0}, []task.Fact{{Var: 1, Value: 1}}, nil)
	require.NoError(t, err)
	table := labels.NewTable([]int64{1})
	ts0 := transys.Atomic(tk, 0, []labels.ID{0}, table)
	ts1 := transys.Atomic(tk, 1, []labels.ID{0}, table)
	merged := transys.Merge(ts0, ts1, table, table.ActiveIDs())
	d := distances.Compute(merged, table)
	require.Equal(t, distances.Inf, d.InitGoalDistance([]int{0}))
}

func TestPruneMapping_DropsUnreachableAndIrrelevant(t *testing.T) {
	merged, table := buildMerged(t)
	d := distances.Compute(merged, table)
	m := d.PruneMapping(true, true)
	shrunk, err := transys.ApplyAbstraction(merged, m, table)
	require.NoError(t, err)
	require.True(t, shrunk)
	require.Equal(t, 3, merged.NumStates())
}
