package distances

import "github.com/katalvlaran/msplan/transys"

// ApplyAbstraction recomputes distances for the classes produced by an
// equivalence mapping m (m[s] = class index or transys.Pruned):
// dist[c] = min over s in c of dist[s] (SPEC_FULL.md §4.2
// "apply_abstraction(E)"). newSize must be the number of classes (the
// caller already knows this from transys.ApplyAbstraction's return).
func (d *Distances) ApplyAbstraction(m []transys.State, newSize int) *Distances {
	out := &Distances{Init: make([]int64, newSize), Goal: make([]int64, newSize)}
	for i := range out.Init {
		out.Init[i] = Inf
		out.Goal[i] = Inf
	}
	for s, c := range m {
		if c == transys.Pruned {
			continue
		}
		if d.Init[s] < out.Init[c] {
			out.Init[c] = d.Init[s]
		}
		if d.Goal[s] < out.Goal[c] {
			out.Goal[c] = d.Goal[s]
		}
	}
	return out
}

// PruneMapping builds the abstraction mapping that drops every
// unreachable or irrelevant state (SPEC_FULL.md §4.2 "Pruning"):
// surviving states are renumbered densely in their original order;
// dropped states map to transys.Pruned. pruneUnreachable/pruneIrrelevant
// gate which of the two criteria apply (SPEC_FULL.md §6 configuration
// surface "prune_unreachable_states"/"prune_irrelevant_states").
func (d *Distances) PruneMapping(pruneUnreachable, pruneIrrelevant bool) []transys.State {
	m := make([]transys.State, len(d.Init))
	next := transys.State(0)
	for s := range m {
		drop := (pruneUnreachable && d.Unreachable(s)) || (pruneIrrelevant && d.Irrelevant(s))
		if drop {
			m[s] = transys.Pruned
			continue
		}
		m[s] = next
		next++
	}
	return m
}
