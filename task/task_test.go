package task_test

import (
	"testing"

	"github.com/katalvlaran/msplan/task"
	"github.com/stretchr/testify/require"
)

// twoVarTask builds the scenario 1 task from SPEC_FULL.md §8: V1={0,1},
// V2={0,1}, op1 sets V1:=1 (pre V1=0), op2 sets V2:=1 (pre V1=1), goal V2=1.
func twoVarTask(t *testing.T) *task.Task {
	t.Helper()
	ops := []task.Operator{
		{Name: "set-v1", Cost: 1, Preconditions: []task.Fact{{Var: 0, Value: 0}}, Effects: []task.Effect{{Var: 0, Value: 1}}},
		{Name: "set-v2", Cost: 1, Preconditions: []task.Fact{{Var: 0, Value: 1}}, Effects: []task.Effect{{Var: 1, Value: 1}}},
	}
	tk, err := task.NewTask([]int{2, 2}, nil, ops, []int{0, 0}, []task.Fact{{Var: 1, Value: 1}}, nil)
	require.NoError(t, err)
	return tk
}

func TestNewTask_Basic(t *testing.T) {
	tk := twoVarTask(t)
	require.Equal(t, 2, tk.NumVariables())
	require.Equal(t, 2, tk.DomainSize(0))
	require.Equal(t, "var0=0", tk.FactName(0, 0))
}

func TestNewTask_CausalGraph(t *testing.T) {
	tk := twoVarTask(t)
	cg := tk.CausalGraph()
	require.Equal(t, []int{1}, cg.Successors(0))
	require.Equal(t, []int{0}, cg.Predecessors(1))
}

func TestNewTask_RejectsBadDomain(t *testing.T) {
	_, err := task.NewTask([]int{1}, nil, nil, []int{0}, []task.Fact{{Var: 0, Value: 0}}, nil)
	require.ErrorIs(t, err, task.ErrBadDomain)
}

func TestNewTask_RejectsNegativeCost(t *testing.T) {
	ops := []task.Operator{{Cost: -1}}
	_, err := task.NewTask([]int{2}, nil, ops, []int{0}, []task.Fact{{Var: 0, Value: 0}}, nil)
	require.ErrorIs(t, err, task.ErrNegativeCost)
}

func TestNewTask_Mutex(t *testing.T) {
	tk, err := task.NewTask([]int{2, 2}, nil, nil, []int{0, 0}, []task.Fact{{Var: 0, Value: 0}}, [][4]int{{0, 0, 1, 1}})
	require.NoError(t, err)
	require.True(t, tk.IsMutex(0, 0, 1, 1))
	require.True(t, tk.IsMutex(1, 1, 0, 0)) // symmetric
	require.False(t, tk.IsMutex(0, 1, 1, 0))
}
