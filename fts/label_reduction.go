package fts

import "github.com/katalvlaran/msplan/labels"

// ComputeLabelReductionPlan finds maximal sets of active labels that
// are Λ-equivalent over every live, non-transient factor other than
// those named in exempt (SPEC_FULL.md §4.5: "Two labels may be
// combined iff they are Λ-equivalent over the factors other than the
// one about to be operated on"): two labels are in the same set iff,
// in every considered factor, they currently belong to the same group.
// Every index named in exempt is left out; when that leaves no live
// factor, all active labels share one signature and form one set.
// mas calls this with a single exempt index at a time.
// Omitting exempt considers every live factor. Singleton sets (a
// label equivalent only to itself) are omitted, since reducing them
// would be a no-op.
func (f *FactoredTransitionSystem) ComputeLabelReductionPlan(exempt ...int) [][]labels.ID {
	skip := make(map[int]bool, len(exempt))
	for _, idx := range exempt {
		skip[idx] = true
	}
	sigOf := make(map[labels.ID]string, f.table.Len())
	for _, l := range f.table.ActiveIDs() {
		var buf []byte
		for idx := range f.slots {
			s := f.slots[idx]
			if !s.live || s.transient || skip[idx] {
				continue
			}
			gid, ok := s.ts.GroupOfLabel(l)
			if !ok {
				gid = -1
			}
			buf = appendSigInt(buf, idx)
			buf = append(buf, ':')
			buf = appendSigInt(buf, gid)
			buf = append(buf, ';')
		}
		sigOf[l] = string(buf)
	}

	groups := make(map[string][]labels.ID)
	order := make([]string, 0)
	for _, l := range f.table.ActiveIDs() {
		key := sigOf[l]
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], l)
	}

	var plan [][]labels.ID
	for _, key := range order {
		if len(groups[key]) > 1 {
			plan = append(plan, groups[key])
		}
	}
	return plan
}

// ReduceLabels computes the Λ-equivalence plan (ComputeLabelReductionPlan),
// commits each maximal set via the label table's Reduce, and broadcasts
// the resulting records to every live factor via ApplyLabelReduction
// (SPEC_FULL.md §4.5 "the strategy enumerates maximal such sets and
// emits a reduction mapping, which is applied atomically"). Returns the
// (possibly empty) list of records actually committed.
func (f *FactoredTransitionSystem) ReduceLabels(exempt ...int) ([]labels.ReductionRecord, error) {
	plan := f.ComputeLabelReductionPlan(exempt...)
	if len(plan) == 0 {
		return nil, nil
	}
	records := make([]labels.ReductionRecord, 0, len(plan))
	for _, group := range plan {
		newID, err := f.table.Reduce(group)
		if err != nil {
			return nil, err
		}
		records = append(records, labels.ReductionRecord{New: newID, Old: append([]labels.ID(nil), group...)})
	}
	if err := f.ApplyLabelReduction(records); err != nil {
		return nil, err
	}
	return records, nil
}

func appendSigInt(buf []byte, x int) []byte {
	if x < 0 {
		buf = append(buf, '-')
		x = -x
	}
	start := len(buf)
	if x == 0 {
		return append(buf, '0')
	}
	for x > 0 {
		buf = append(buf, byte('0'+x%10))
		x /= 10
	}
	for l, r := start, len(buf)-1; l < r; l, r = l+1, r-1 {
		buf[l], buf[r] = buf[r], buf[l]
	}
	return buf
}
