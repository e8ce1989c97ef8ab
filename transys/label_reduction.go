package transys

import "github.com/katalvlaran/msplan/labels"

// ApplyLabelReduction broadcasts a batch of label.Table reductions
// into ts (SPEC_FULL.md §4.1 "Apply label reduction"). For each
// record: if every old label is already in the same group here, that
// group absorbs the new label and its cost is recomputed as
// min(group.cost, new_label.cost); otherwise the old labels are
// stripped out of whatever groups they were in (possibly several),
// and the new label becomes a fresh group whose transitions are the
// union of every touched group's transitions. The union is exact, not
// an approximation: this case only arises in the factor(s) exempted
// from the label-reduction strategy's Λ-equivalence check (the one
// about to be merged or shrunk), and since the old labels are
// Λ-equivalent in every OTHER live factor, the union here reproduces
// exactly what a separate-labels product/abstraction would have
// produced once combined. Groups left empty by the removal are kept
// as cost-TombstoneCost tombstones rather than deleted, per
// SPEC_FULL.md's labels.Group contract.
func ApplyLabelReduction(ts *TransitionSystem, records []labels.ReductionRecord, table *labels.Table) error {
	for _, rec := range records {
		sameGroup := true
		var gid int
		for i, old := range rec.Old {
			g, ok := ts.GroupOfLabel(old)
			if !ok {
				return ErrGroupNotFound
			}
			if i == 0 {
				gid = g
			} else if g != gid {
				sameGroup = false
			}
		}

		if sameGroup {
			e := ts.groups[gid]
			members := append(append([]labels.ID(nil), e.group.Members...), rec.New)
			e.group = labels.NewGroup(table, members)
			ts.groupOfLabel[rec.New] = gid
			continue
		}

		remove := make(map[labels.ID]struct{}, len(rec.Old))
		for _, old := range rec.Old {
			remove[old] = struct{}{}
		}
		touched := make(map[int]struct{})
		for _, old := range rec.Old {
			g := ts.groupOfLabel[old]
			touched[g] = struct{}{}
			delete(ts.groupOfLabel, old)
		}
		var union []Transition
		for g := range touched {
			e := ts.groups[g]
			union = append(union, e.transitions...)
			e.group = e.group.Remove(table, remove)
		}
		ts.newGroup(table, []labels.ID{rec.New}, union)
	}

	return nil
}
