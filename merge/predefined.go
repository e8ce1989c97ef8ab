package merge

import "github.com/katalvlaran/msplan/fts"

// PredefinedTree describes a merge order as a binary tree over atomic
// variable indices (SPEC_FULL.md §4.7 "Predefined: replays a static
// list of pairs, or a parsed binary tree of atomic indices"). A leaf
// has Var >= 0 and nil children; an internal node has Var < 0 and both
// children set.
type PredefinedTree struct {
	Var         int
	Left, Right *PredefinedTree
}

// predefinedTreeStrategy replays a PredefinedTree's post-order
// internal-node sequence: each internal node merges its two children's
// resolved factor indices, in an order computed once at construction.
type predefinedTreeStrategy struct {
	order    []*PredefinedTree
	resolved map[*PredefinedTree]int
	pos      int

	// pendingMatched mirrors linearStrategy.pendingAdvance: whether the
	// last NextPair returned order[pos]'s own children (true) or a
	// restrictPair fallback (false), so AfterMerge knows whether pos
	// actually advanced and resolved gained an entry.
	pendingMatched bool
}

// NewPredefinedTree builds a strategy that replays root's merge order.
func NewPredefinedTree(root *PredefinedTree) Strategy {
	var order []*PredefinedTree
	var walk func(n *PredefinedTree)
	walk = func(n *PredefinedTree) {
		if n == nil || n.Left == nil || n.Right == nil {
			return
		}
		walk(n.Left)
		walk(n.Right)
		order = append(order, n)
	}
	walk(root)
	return &predefinedTreeStrategy{order: order, resolved: make(map[*PredefinedTree]int)}
}

func (s *predefinedTreeStrategy) resolve(n *PredefinedTree) int {
	if n.Left == nil || n.Right == nil {
		return n.Var
	}
	return s.resolved[n]
}

func (s *predefinedTreeStrategy) NextPair(f *fts.FactoredTransitionSystem, allowed []int) (int, int, error) {
	if s.pos >= len(s.order) {
		return -1, -1, ErrExhausted
	}
	n := s.order[s.pos]
	i, j, matched, err := restrictPair(f, allowed, s.resolve(n.Left), s.resolve(n.Right))
	if err != nil {
		return -1, -1, err
	}
	s.pendingMatched = matched
	return i, j, nil
}

func (s *predefinedTreeStrategy) AfterMerge(newIndex int) {
	if s.pos >= len(s.order) {
		return
	}
	if s.pendingMatched {
		s.resolved[s.order[s.pos]] = newIndex
		s.pos++
	}
}

// predefinedPairsStrategy replays a flat, pre-computed list of factor
// index pairs (the simpler half of "Predefined": a static list of
// pairs rather than a tree).
type predefinedPairsStrategy struct {
	pairs          [][2]int
	pos            int
	pendingMatched bool // see predefinedTreeStrategy.pendingMatched
}

// NewPredefinedPairs builds a strategy that replays pairs verbatim, in
// order; the caller is responsible for the pairs already accounting
// for the factor indices fts.Merge will actually assign.
func NewPredefinedPairs(pairs [][2]int) Strategy {
	return &predefinedPairsStrategy{pairs: append([][2]int(nil), pairs...)}
}

func (s *predefinedPairsStrategy) NextPair(f *fts.FactoredTransitionSystem, allowed []int) (int, int, error) {
	if s.pos >= len(s.pairs) {
		return -1, -1, ErrExhausted
	}
	p := s.pairs[s.pos]
	i, j, matched, err := restrictPair(f, allowed, p[0], p[1])
	if err != nil {
		return -1, -1, err
	}
	s.pendingMatched = matched
	return i, j, nil
}

func (s *predefinedPairsStrategy) AfterMerge(int) {
	if s.pendingMatched {
		s.pos++
	}
}
