package labels

import (
	"errors"
	"fmt"
)

// Sentinel errors for the labels package. Per the module's error
// policy (see builder/errors.go in the corpus this is grounded on),
// these are never wrapped with formatted text at the definition site;
// callers branch with errors.Is and implementations attach context
// with fmt.Errorf("%w: ...").
var (
	// ErrNoLabels indicates Reduce was called with an empty input set.
	ErrNoLabels = errors.New("labels: reduce requires at least one input label")

	// ErrUnknownLabel indicates a referenced label ID does not exist.
	ErrUnknownLabel = errors.New("labels: unknown label id")

	// ErrInactiveLabel indicates Reduce was asked to combine a label
	// that has already been reduced (a tombstone). Combining an
	// already-reduced label would silently break the one-owner
	// invariant every LabelGroup relies on, so this is a programmer
	// error signaled via the sentinel rather than silently ignored.
	ErrInactiveLabel = errors.New("labels: label is not active")
)

// ID identifies a label. IDs are dense, start at 0, and are never
// reused even after the label they named is reduced away.
type ID int

// Entry is the per-label record stored in the table: its cost and
// whether it is still active (i.e. not yet absorbed by a reduction).
type Entry struct {
	Cost   int64
	Active bool
}

// ReductionRecord documents one call to Reduce: the freshly minted
// label and the (now inactive) labels it replaces. FTS label-reduction
// broadcasts operate on a batch of these.
type ReductionRecord struct {
	New ID
	Old []ID
}

// Table is the global label table owned exclusively by one
// FactoredTransitionSystem. It is not safe for concurrent mutation —
// the core is single-threaded cooperative throughout
// (SPEC_FULL.md §5) — callers must not share a *Table across
// goroutines while mutating it.
type Table struct {
	entries []Entry
	history []ReductionRecord
}

// NewTable builds a Table with one active label per operator cost, in
// order: label ID i corresponds to costs[i]. This matches the 1-to-1
// operator-to-label correspondence at atomic construction
// (SPEC_FULL.md §4.1).
func NewTable(costs []int64) *Table {
	t := &Table{entries: make([]Entry, len(costs))}
	for i, c := range costs {
		t.entries[i] = Entry{Cost: c, Active: true}
	}
	return t
}

// Len returns the total number of labels ever created, including
// tombstones.
func (t *Table) Len() int { return len(t.entries) }

// Get returns the entry for id.
func (t *Table) Get(id ID) (Entry, error) {
	if int(id) < 0 || int(id) >= len(t.entries) {
		return Entry{}, fmt.Errorf("%w: %d", ErrUnknownLabel, id)
	}
	return t.entries[id], nil
}

// Cost returns the cost of id, or -1 if id is out of range (callers
// that have already validated id via a LabelGroup should prefer Get).
func (t *Table) Cost(id ID) int64 {
	if int(id) < 0 || int(id) >= len(t.entries) {
		return -1
	}
	return t.entries[id].Cost
}

// Active reports whether id is still active (not yet reduced away).
func (t *Table) Active(id ID) bool {
	if int(id) < 0 || int(id) >= len(t.entries) {
		return false
	}
	return t.entries[id].Active
}

// ActiveIDs returns every currently active label ID, in ascending
// order.
func (t *Table) ActiveIDs() []ID {
	out := make([]ID, 0, len(t.entries))
	for i, e := range t.entries {
		if e.Active {
			out = append(out, ID(i))
		}
	}
	return out
}

// Reduce creates a fresh label whose cost is the minimum over ids,
// marks every label in ids inactive, and appends a ReductionRecord to
// the table's history. It preserves the induced heuristic: the new
// label's cost never exceeds any combined label's cost, so no
// abstract distance can increase and admissibility is kept (SPEC_FULL.md §4.5, §8 "Label
// reduction preserves h").
//
// Reduce fails with ErrNoLabels if ids is empty, ErrUnknownLabel if
// any id is out of range, and ErrInactiveLabel if any id has already
// been reduced — invariant violations the FTS owner must never trigger
// in practice (SPEC_FULL.md §7 "Invariant violation" row); callers at
// this layer still get a regular error rather than a panic, since
// Reduce itself does not know whether it is being called from a
// critical path.
func (t *Table) Reduce(ids []ID) (ID, error) {
	if len(ids) == 0 {
		return -1, ErrNoLabels
	}
	minCost := int64(-1)
	for _, id := range ids {
		e, err := t.Get(id)
		if err != nil {
			return -1, err
		}
		if !e.Active {
			return -1, fmt.Errorf("%w: %d", ErrInactiveLabel, id)
		}
		if minCost < 0 || e.Cost < minCost {
			minCost = e.Cost
		}
	}

	newID := ID(len(t.entries))
	t.entries = append(t.entries, Entry{Cost: minCost, Active: true})
	for _, id := range ids {
		t.entries[id].Active = false
	}
	t.history = append(t.history, ReductionRecord{New: newID, Old: append([]ID(nil), ids...)})

	return newID, nil
}

// History returns every reduction performed so far, in order.
func (t *Table) History() []ReductionRecord { return t.history }
