package merge_test

import (
	"testing"

	"github.com/katalvlaran/msplan/fts"
	"github.com/katalvlaran/msplan/merge"
	"github.com/katalvlaran/msplan/task"
	"github.com/stretchr/testify/require"
)

// chainTask builds a 3-variable causal chain v0 -> v1 -> v2 (each
// operator's precondition on one variable conditions an effect on the
// next), mirroring SPEC_FULL.md §8 scenario 1 extended by one
// variable.
func chainTask(t *testing.T) *task.Task {
	t.Helper()
	ops := []task.Operator{
		{Name: "set-v0", Cost: 1, Preconditions: []task.Fact{{Var: 0, Value: 0}}, Effects: []task.Effect{{Var: 0, Value: 1}}},
		{Name: "set-v1", Cost: 1, Preconditions: []task.Fact{{Var: 0, Value: 1}}, Effects: []task.Effect{{Var: 1, Value: 1}}},
		{Name: "set-v2", Cost: 1, Preconditions: []task.Fact{{Var: 1, Value: 1}}, Effects: []task.Effect{{Var: 2, Value: 1}}},
	}
	tk, err := task.NewTask([]int{2, 2, 2}, nil, ops, []int{0, 0, 0}, []task.Fact{{Var: 2, Value: 1}}, nil)
	require.NoError(t, err)
	return tk
}

func driveToCompletion(t *testing.T, f *fts.FactoredTransitionSystem, s merge.Strategy) []int {
	t.Helper()
	var produced []int
	for {
		i, j, err := s.NextPair(f, nil)
		if err != nil {
			return produced
		}
		newIdx, merr := f.Merge(i, j, false, false)
		require.NoError(t, merr)
		s.AfterMerge(newIdx)
		produced = append(produced, newIdx)
	}
}

func TestLinear_MergesEveryVariableInOrder(t *testing.T) {
	tk := chainTask(t)
	f := fts.New(tk)
	s := merge.NewLinear([]int{0, 1, 2})
	produced := driveToCompletion(t, f, s)
	require.Len(t, produced, 2)
	require.Equal(t, 1, f.NumActiveEntries())
}

func TestLinear_SingleVariable_Exhausted(t *testing.T) {
	tk := chainTask(t)
	f := fts.New(tk)
	s := merge.NewLinear([]int{0})
	_, _, err := s.NextPair(f, nil)
	require.ErrorIs(t, err, merge.ErrExhausted)
}

func TestDFP_PrefersGoalRelevantPair(t *testing.T) {
	tk := chainTask(t)
	f := fts.New(tk)
	s := merge.NewDFP(tk.NumVariables())
	i, j, err := s.NextPair(f, nil)
	require.NoError(t, err)
	require.NotEqual(t, i, j)
	// Only v2's atomic factor is goal-relevant (the goal constrains v2,
	// so its value 0 is a non-goal state; v0 and v1 are unconstrained
	// and every one of their states is a goal state), so the chosen
	// pair must include factor 2.
	require.True(t, f.IsLive(i))
	require.True(t, f.IsLive(j))
	require.True(t, i == 2 || j == 2)
}

func TestSCCs_ChainHasNoNonTrivialComponent(t *testing.T) {
	tk := chainTask(t)
	f := fts.New(tk)
	s := merge.NewSCCs(tk.CausalGraph(), merge.Topological, func(vars []int) merge.Strategy { return merge.NewLinear(vars) })
	produced := driveToCompletion(t, f, s)
	require.Len(t, produced, 2)
	require.Equal(t, 1, f.NumActiveEntries())
}

func TestScoreBasedFiltering_GoalRelevanceThenTotalOrder(t *testing.T) {
	tk := chainTask(t)
	f := fts.New(tk)
	s := merge.NewScoreBasedFiltering([]merge.ScoringFunc{
		merge.GoalRelevance,
		merge.TotalOrderTieBreaker(),
	}, nil)
	i, j, err := s.NextPair(f, nil)
	require.NoError(t, err)
	require.Equal(t, 0, i)
	require.Equal(t, 2, j)
}

func TestRandom_DeterministicAndExhausts(t *testing.T) {
	tk := chainTask(t)
	f1 := fts.New(tk)
	produced1 := driveToCompletion(t, f1, merge.NewRandom(11))
	f2 := fts.New(tk)
	produced2 := driveToCompletion(t, f2, merge.NewRandom(11))
	require.Equal(t, produced1, produced2)
	require.Equal(t, 1, f1.NumActiveEntries())
}

func TestPredefinedPairs_ReplaysExactSequence(t *testing.T) {
	tk := chainTask(t)
	f := fts.New(tk)
	s := merge.NewPredefinedPairs([][2]int{{0, 1}, {3, 2}})
	produced := driveToCompletion(t, f, s)
	require.Equal(t, []int{3, 4}, produced)
}

func TestPredefinedTree_ReplaysTreeOrder(t *testing.T) {
	tk := chainTask(t)
	f := fts.New(tk)
	tree := &merge.PredefinedTree{
		Var: -1,
		Left: &merge.PredefinedTree{
			Var:  -1,
			Left: &merge.PredefinedTree{Var: 0},
			Right: &merge.PredefinedTree{Var: 1},
		},
		Right: &merge.PredefinedTree{Var: 2},
	}
	s := merge.NewPredefinedTree(tree)
	produced := driveToCompletion(t, f, s)
	require.Equal(t, []int{3, 4}, produced)
}

func TestMIASM_PartitionsAndMergesToOne(t *testing.T) {
	tk := chainTask(t)
	f := fts.New(tk)
	s := merge.NewMIASM(tk, merge.MIASMOptions{InternalMaxStates: 8})
	produced := driveToCompletion(t, f, s)
	require.Equal(t, 1, f.NumActiveEntries())
	require.NotEmpty(t, produced)
}
