package merge

import "github.com/katalvlaran/msplan/fts"

// linearStrategy merges a remembered sequence of factor indices
// pairwise, left-fold style: first it merges order[0] with order[1],
// then folds each subsequent order[k] into the running result
// (SPEC_FULL.md §4.7 "Linear: maintains a remembered variable-order
// vector"). order is fixed at construction; AfterMerge tracks which
// factor index now represents the accumulated prefix.
type linearStrategy struct {
	order      []int
	pos        int // next index into order not yet folded in
	lastMerged int // -1 until the first merge has happened

	// pendingAdvance records whether the most recent NextPair returned
	// the strategy's own planned pair (true) or a restrictPair
	// fallback forced by an external allowed subset (false); AfterMerge
	// only advances pos/lastMerged's planned meaning when true, since a
	// fallback pair was not the pair this strategy actually folded in.
	pendingAdvance bool
}

// NewLinear builds a Linear strategy over order (atomic variable
// indices, or — when used as the internal sub-strategy of SCCs/MIASM —
// the current factor indices of one block). len(order) < 2 is legal;
// the strategy then always returns ErrExhausted.
func NewLinear(order []int) Strategy {
	return &linearStrategy{order: append([]int(nil), order...), lastMerged: -1}
}

func (l *linearStrategy) NextPair(f *fts.FactoredTransitionSystem, allowed []int) (int, int, error) {
	if l.lastMerged < 0 {
		if len(l.order) < 2 {
			return -1, -1, ErrExhausted
		}
		i, j, matched, err := restrictPair(f, allowed, l.order[0], l.order[1])
		if err != nil {
			return -1, -1, err
		}
		l.pendingAdvance = matched
		return i, j, nil
	}
	if l.pos >= len(l.order) {
		return -1, -1, ErrExhausted
	}
	i, j, matched, err := restrictPair(f, allowed, l.lastMerged, l.order[l.pos])
	if err != nil {
		return -1, -1, err
	}
	l.pendingAdvance = matched
	return i, j, nil
}

func (l *linearStrategy) AfterMerge(newIndex int) {
	if l.lastMerged < 0 {
		l.lastMerged = newIndex
		if l.pendingAdvance {
			l.pos = 2
		}
		return
	}
	if l.pendingAdvance {
		l.pos++
	}
	l.lastMerged = newIndex
}
