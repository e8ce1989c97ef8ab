package representation_test

import (
	"testing"

	"github.com/katalvlaran/msplan/representation"
	"github.com/stretchr/testify/require"
)

// TestLeaf_IdentityLookup checks that a fresh Leaf is the identity
// mapping over its domain (SPEC_FULL.md §4.3 "Leaf").
func TestLeaf_IdentityLookup(t *testing.T) {
	n := representation.NewLeaf(0, 3)
	require.Equal(t, representation.Leaf, n.Kind())
	for v := 0; v < 3; v++ {
		require.Equal(t, representation.Value(v), n.GetValue([]int{v}))
	}
}

// TestMerge_IdentityLookup checks SPEC_FULL.md §8 scenario 1's
// encode(x,y) = x*2+y convention, matching transys.Merge.
func TestMerge_IdentityLookup(t *testing.T) {
	left := representation.NewLeaf(0, 2)
	right := representation.NewLeaf(1, 2)
	m := representation.NewMerge(left, right)
	require.Equal(t, representation.Merge, m.Kind())
	require.Equal(t, representation.Value(0), m.GetValue([]int{0, 0}))
	require.Equal(t, representation.Value(1), m.GetValue([]int{0, 1}))
	require.Equal(t, representation.Value(2), m.GetValue([]int{1, 0}))
	require.Equal(t, representation.Value(3), m.GetValue([]int{1, 1}))
}

// TestApplyAbstraction_CollapsesAndPropagatesPruned checks that
// ApplyAbstraction rewrites entries via the mapping and that a Pruned
// entry short-circuits GetValue through a Merge parent.
func TestApplyAbstraction_CollapsesAndPropagatesPruned(t *testing.T) {
	left := representation.NewLeaf(0, 2)
	right := representation.NewLeaf(1, 2)
	m := representation.NewMerge(left, right)

	// Collapse left's two values into one class; right is pruned entirely
	// except value 0.
	left.ApplyAbstraction([]representation.Value{0, 0}, 1)
	right.ApplyAbstraction([]representation.Value{0, representation.Pruned}, 1)

	require.Equal(t, representation.Value(0), left.GetValue([]int{0}))
	require.Equal(t, representation.Value(0), left.GetValue([]int{1}))
	require.Equal(t, representation.Pruned, right.GetValue([]int{0, 1}))

	// The parent's own table still refers to pre-abstraction child
	// indices until it is itself rebuilt/abstracted by the caller; here
	// we only check that a Pruned child short-circuits GetValue.
	require.Equal(t, representation.Pruned, m.GetValue([]int{0, 1}))
}

// TestSetDistances_RootOnly checks SPEC_FULL.md §4.3 "set_distances":
// Pruned and ∞ both become DeadEnd, everything else becomes the goal
// distance looked up by abstract index.
func TestSetDistances_RootOnly(t *testing.T) {
	n := representation.NewLeaf(0, 3)
	n.ApplyAbstraction([]representation.Value{0, 1, representation.Pruned}, 2)

	goalDist := []int64{2, representation.Infinite}
	n.SetDistances(goalDist, representation.Infinite)

	require.True(t, n.Distanceified())
	require.Equal(t, representation.Value(2), n.GetValue([]int{0}))
	require.Equal(t, representation.DeadEnd, n.GetValue([]int{1}))
	require.Equal(t, representation.DeadEnd, n.GetValue([]int{2}))
}

// TestIsTotal reports false once any entry is Pruned.
func TestIsTotal(t *testing.T) {
	n := representation.NewLeaf(0, 2)
	require.True(t, n.IsTotal())
	n.ApplyAbstraction([]representation.Value{0, representation.Pruned}, 1)
	require.False(t, n.IsTotal())
}
