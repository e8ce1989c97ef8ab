package labels_test

import (
	"testing"

	"github.com/katalvlaran/msplan/labels"
	"github.com/stretchr/testify/require"
)

func TestTable_ReduceTakesMinCost(t *testing.T) {
	tbl := labels.NewTable([]int64{5, 2, 9})
	newID, err := tbl.Reduce([]labels.ID{0, 1, 2})
	require.NoError(t, err)
	require.False(t, tbl.Active(0))
	require.False(t, tbl.Active(1))
	require.False(t, tbl.Active(2))
	require.True(t, tbl.Active(newID))
	require.Equal(t, int64(2), tbl.Cost(newID))
}

func TestTable_ReduceRejectsInactive(t *testing.T) {
	tbl := labels.NewTable([]int64{1, 1})
	_, err := tbl.Reduce([]labels.ID{0})
	require.NoError(t, err)
	_, err = tbl.Reduce([]labels.ID{0, 1})
	require.ErrorIs(t, err, labels.ErrInactiveLabel)
}

func TestTable_ReduceRejectsEmpty(t *testing.T) {
	tbl := labels.NewTable([]int64{1})
	_, err := tbl.Reduce(nil)
	require.ErrorIs(t, err, labels.ErrNoLabels)
}

func TestTable_ReduceDisjointSetsMintDistinctLabels(t *testing.T) {
	// Two reductions in a row on disjoint label sets each mint their
	// own fresh label, costed at the minimum of its set, and each
	// leaves one record in the history.
	tbl := labels.NewTable([]int64{3, 4, 5, 6})
	id1, err := tbl.Reduce([]labels.ID{0, 1})
	require.NoError(t, err)
	id2, err := tbl.Reduce([]labels.ID{2, 3})
	require.NoError(t, err)
	require.NotEqual(t, id1, id2)
	require.Equal(t, int64(3), tbl.Cost(id1))
	require.Equal(t, int64(5), tbl.Cost(id2))
	require.Len(t, tbl.History(), 2)
}

func TestGroup_RemoveRecomputesCost(t *testing.T) {
	tbl := labels.NewTable([]int64{10, 2, 7})
	g := labels.NewGroup(tbl, []labels.ID{0, 1, 2})
	require.Equal(t, int64(2), g.Cost)
	g2 := g.Remove(tbl, map[labels.ID]struct{}{1: {}})
	require.Equal(t, int64(7), g2.Cost)
	require.False(t, g2.Contains(1))
}

func TestGroup_EmptyIsTombstone(t *testing.T) {
	tbl := labels.NewTable([]int64{1})
	g := labels.NewGroup(tbl, nil)
	require.True(t, g.IsTombstone())
	require.Equal(t, labels.TombstoneCost, g.Cost)
}
