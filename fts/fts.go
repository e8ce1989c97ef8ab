package fts

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/msplan/distances"
	"github.com/katalvlaran/msplan/labels"
	"github.com/katalvlaran/msplan/representation"
	"github.com/katalvlaran/msplan/task"
	"github.com/katalvlaran/msplan/transys"
)

// Stats is the per-factor snapshot returned by Statistics
// (SPEC_FULL.md D.3, recovered from original_source's
// factored_transition_system.cc "statistics(index)").
type Stats struct {
	NumStates      int
	NumTransitions int
	NumDeadLabels  int // active labels whose group carries zero transitions
}

// FinalFactor is one (Representation, Distances) pair produced by
// ExtractFinal: normally the single surviving factor, but recovered
// feature D.1 (merge_and_shrink_heuristic.cc) allows more than one
// when size-restriction bailout leaves several solvable factors
// un-merged.
type FinalFactor struct {
	Index      int
	Repr       *representation.Node
	Dist       *distances.Distances
	Unsolvable bool
}

// New builds the atomic FTS for t: one TransitionSystem/Representation/
// Distances triple per variable, and a Labels table with one label per
// operator in task order (SPEC_FULL.md §3 "Lifecycle summary: Atomic
// factors are constructed first").
func New(t task.View) *FactoredTransitionSystem {
	ops := t.Operators()
	costs := make([]int64, len(ops))
	labelIDs := make([]labels.ID, len(ops))
	for i, op := range ops {
		costs[i] = op.Cost
		labelIDs[i] = labels.ID(i)
	}
	table := labels.NewTable(costs)

	f := &FactoredTransitionSystem{table: table, unsolvableIndex: -1}
	for v := 0; v < t.NumVariables(); v++ {
		ts := transys.Atomic(t, v, labelIDs, table)
		repr := representation.NewLeaf(v, t.DomainSize(v))
		dist := distances.Compute(ts, table)
		f.appendSlot(slot{ts: ts, repr: repr, dist: dist, live: true})
	}
	return f
}

// Labels returns the shared label table (read-only use by strategies;
// only the FTS itself calls Reduce through ApplyLabelReduction).
func (f *FactoredTransitionSystem) Labels() *labels.Table { return f.table }

// NumFactors returns the number of slots ever allocated, live or not
// (the high-water mark for factor indices).
func (f *FactoredTransitionSystem) NumFactors() int { return len(f.slots) }

// NumActiveEntries returns the count of live, non-transient slots
// (SPEC_FULL.md §4.4 invariant: "equals n_atomic − k after k merges").
func (f *FactoredTransitionSystem) NumActiveEntries() int { return f.numActive }

// IsLive reports whether i names a currently occupied slot.
func (f *FactoredTransitionSystem) IsLive(i int) bool {
	return i >= 0 && i < len(f.slots) && f.slots[i].live
}

// TransitionSystem returns the live factor's transition system for
// read-only inspection by merge/shrink strategies (SPEC_FULL.md §5
// "immutable-content view").
func (f *FactoredTransitionSystem) TransitionSystem(i int) (*transys.TransitionSystem, error) {
	s, err := f.liveSlot(i)
	if err != nil {
		return nil, err
	}
	return s.ts, nil
}

// Distances returns the live factor's current distances.
func (f *FactoredTransitionSystem) Distances(i int) (*distances.Distances, error) {
	s, err := f.liveSlot(i)
	if err != nil {
		return nil, err
	}
	return s.dist, nil
}

func (f *FactoredTransitionSystem) liveSlot(i int) (*slot, error) {
	if i < 0 || i >= len(f.slots) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownFactor, i)
	}
	if !f.slots[i].live {
		return nil, fmt.Errorf("%w: %d", ErrFactorEmpty, i)
	}
	return &f.slots[i], nil
}

func (f *FactoredTransitionSystem) appendSlot(s slot) int {
	idx := len(f.slots)
	f.slots = append(f.slots, s)
	if s.live && !s.transient {
		f.numActive++
	}
	return idx
}

// consume empties the named slots (SPEC_FULL.md §3 "Slots i, j become
// empty"); indices are never reused, only vacated.
func (f *FactoredTransitionSystem) consume(indices ...int) {
	for _, i := range indices {
		f.slots[i] = slot{}
		f.numActive--
	}
}

func toReprMapping(m []transys.State) []representation.Value {
	out := make([]representation.Value, len(m))
	for i, s := range m {
		if s == transys.Pruned {
			out[i] = representation.Pruned
		} else {
			out[i] = representation.Value(s)
		}
	}
	return out
}

func toIntStates(ss []transys.State) []int {
	out := make([]int, len(ss))
	for i, s := range ss {
		out[i] = int(s)
	}
	return out
}

// Merge appends the synchronized product of factors i and j at a new
// index, emptying i and j (SPEC_FULL.md §4.4 "merge(i, j, options)").
// If pruneUnreachable or pruneIrrelevant is set, the new factor is
// pruned immediately after construction; if pruning removes every
// state (in particular every initial state), the new factor is
// recorded as the FTS's unsolvable factor rather than erroring.
func (f *FactoredTransitionSystem) Merge(i, j int, pruneUnreachable, pruneIrrelevant bool) (int, error) {
	si, err := f.liveSlot(i)
	if err != nil {
		return -1, err
	}
	sj, err := f.liveSlot(j)
	if err != nil {
		return -1, err
	}

	ts := transys.Merge(si.ts, sj.ts, f.table, f.table.ActiveIDs())
	repr := representation.NewMerge(si.repr, sj.repr)
	dist := distances.Compute(ts, f.table)

	if pruneUnreachable || pruneIrrelevant {
		m := dist.PruneMapping(pruneUnreachable, pruneIrrelevant)
		_, aerr := transys.ApplyAbstraction(ts, m, f.table)
		if aerr != nil {
			if !errors.Is(aerr, transys.ErrAllStatesPruned) {
				return -1, aerr
			}
			newIdx := f.appendSlot(slot{ts: ts, repr: repr, dist: dist, live: true})
			f.consume(i, j)
			f.unsolvableIndex = newIdx
			return newIdx, nil
		}
		repr.ApplyAbstraction(toReprMapping(m), ts.NumStates())
		dist = dist.ApplyAbstraction(m, ts.NumStates())
	}

	newIdx := f.appendSlot(slot{ts: ts, repr: repr, dist: dist, live: true})
	f.consume(i, j)
	return newIdx, nil
}

// ApplyAbstraction shrinks factor i in place under equivalence mapping
// m, recomputing its distances incrementally from the pre-abstraction
// ones (SPEC_FULL.md §4.4 "apply_abstraction(i, E)"). Returns whether
// the size strictly decreased. If every state collapses to Pruned, the
// factor is marked unsolvable instead of erroring.
func (f *FactoredTransitionSystem) ApplyAbstraction(i int, m []transys.State) (bool, error) {
	s, err := f.liveSlot(i)
	if err != nil {
		return false, err
	}
	shrunk, aerr := transys.ApplyAbstraction(s.ts, m, f.table)
	if aerr != nil {
		if errors.Is(aerr, transys.ErrAllStatesPruned) {
			f.unsolvableIndex = i
			return false, nil
		}
		return false, aerr
	}
	s.repr.ApplyAbstraction(toReprMapping(m), s.ts.NumStates())
	s.dist = s.dist.ApplyAbstraction(m, s.ts.NumStates())
	return shrunk, nil
}

// ApplyLabelReduction broadcasts a reduction mapping to every live,
// non-transient factor (SPEC_FULL.md §4.4
// "apply_label_reduction(mapping, exempt_index)"). Every live factor
// must receive it, including the one(s) about to be merged or shrunk:
// transys.ApplyLabelReduction's union-of-groups fallback is exactly
// what reconstructs correct behavior there (see its doc comment) —
// "exempt_index" only ever governs which factors the label-reduction
// *strategy* consulted when deciding which labels are Λ-equivalent
// (ComputeLabelReductionPlan), never which factors the resulting
// mapping is applied to. Label reduction never changes a label's
// induced transitions (only its bookkeeping identity), so distances
// are left untouched.
func (f *FactoredTransitionSystem) ApplyLabelReduction(records []labels.ReductionRecord) error {
	for idx := range f.slots {
		s := &f.slots[idx]
		if !s.live || s.transient {
			continue
		}
		if err := transys.ApplyLabelReduction(s.ts, records, f.table); err != nil {
			return err
		}
	}
	return nil
}

// IsSolvable reports whether factor i is live and has not been
// recorded as the FTS's unsolvable factor.
func (f *FactoredTransitionSystem) IsSolvable(i int) (bool, error) {
	if _, err := f.liveSlot(i); err != nil {
		return false, err
	}
	return i != f.unsolvableIndex, nil
}

// IsUnsolvableReported reports whether any factor has ever been marked
// unsolvable.
func (f *FactoredTransitionSystem) IsUnsolvableReported() bool { return f.unsolvableIndex >= 0 }

// GetInitGoalDistance returns factor i's overall shortest-plan
// distance (min over its initial states of their goal distance), or
// distances.Inf if unsolvable.
func (f *FactoredTransitionSystem) GetInitGoalDistance(i int) (int64, error) {
	s, err := f.liveSlot(i)
	if err != nil {
		return distances.Inf, err
	}
	return s.dist.InitGoalDistance(toIntStates(s.ts.InitStates())), nil
}

// Statistics returns per-factor counts for Debug-verbosity reporting
// (SPEC_FULL.md D.3).
func (f *FactoredTransitionSystem) Statistics(i int) (Stats, error) {
	s, err := f.liveSlot(i)
	if err != nil {
		return Stats{}, err
	}
	st := Stats{NumStates: s.ts.NumStates()}
	for _, gid := range s.ts.GroupIDs() {
		group, trans, _ := s.ts.Group(gid)
		st.NumTransitions += len(trans)
		if len(trans) == 0 {
			st.NumDeadLabels += len(group.Members)
		}
	}
	return st, nil
}

// Dump renders factor i's statistics as a single line, grounded on
// original_source's statistics(index) debug output (SPEC_FULL.md D.3).
func (f *FactoredTransitionSystem) Dump(i int) (string, error) {
	st, err := f.Statistics(i)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("factor %d: %d states, %d transitions, %d dead labels", i, st.NumStates, st.NumTransitions, st.NumDeadLabels), nil
}

// ExtractFinal returns the surviving (Representation, Distances) pairs
// (SPEC_FULL.md §4.4 "extract_final()", widened to a slice per
// recovered feature D.1). If a factor has been reported unsolvable,
// only that one is returned, flagged Unsolvable.
func (f *FactoredTransitionSystem) ExtractFinal() []FinalFactor {
	if f.unsolvableIndex >= 0 {
		s := f.slots[f.unsolvableIndex]
		return []FinalFactor{{Index: f.unsolvableIndex, Repr: s.repr, Dist: s.dist, Unsolvable: true}}
	}
	var out []FinalFactor
	for idx, s := range f.slots {
		if s.live && !s.transient {
			out = append(out, FinalFactor{Index: idx, Repr: s.repr, Dist: s.dist})
		}
	}
	return out
}

// Copy creates a transient side-index for factor i whose distances are
// duplicated (its TransitionSystem and Representation are shared by
// reference, since scoring functions only read them) so a scoring
// function can probe a hypothetical further mutation without
// committing (SPEC_FULL.md §9 "Temporary merge probing"). It does not
// count toward NumActiveEntries.
func (f *FactoredTransitionSystem) Copy(i int) (int, error) {
	s, err := f.liveSlot(i)
	if err != nil {
		return -1, err
	}
	dup := &distances.Distances{
		Init: append([]int64(nil), s.dist.Init...),
		Goal: append([]int64(nil), s.dist.Goal...),
	}
	idx := f.appendSlot(slot{ts: s.ts, repr: s.repr, dist: dup, live: true, transient: true})
	return idx, nil
}

// ReleaseCopies discards the n most recently created transient copies,
// in LIFO order (SPEC_FULL.md §9 "release_copies()"). It errors rather
// than silently truncating permanent entries if fewer than n transient
// copies exist at the tail.
func (f *FactoredTransitionSystem) ReleaseCopies(n int) error {
	for k := 0; k < n; k++ {
		if len(f.slots) == 0 || !f.slots[len(f.slots)-1].transient {
			return ErrCopyDepthMismatch
		}
		f.slots = f.slots[:len(f.slots)-1]
	}
	return nil
}
