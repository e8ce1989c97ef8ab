package shrink

import (
	"sort"

	"github.com/katalvlaran/msplan/distances"
	"github.com/katalvlaran/msplan/transys"
)

// BisimulationOption configures a bisimulation Strategy, following the
// teacher's functional-options idiom (dijkstra.Option/Options).
type BisimulationOption func(*bisimulationConfig)

type bisimulationConfig struct {
	variant Variant
	policy  Policy
}

// WithVariant selects Exact (default) or Greedy signature comparison.
func WithVariant(v Variant) BisimulationOption {
	return func(c *bisimulationConfig) { c.variant = v }
}

// WithPolicy selects Return (default) or UseUp overflow handling.
func WithPolicy(p Policy) BisimulationOption {
	return func(c *bisimulationConfig) { c.policy = p }
}

type bisimulationStrategy struct {
	cfg bisimulationConfig
}

// NewBisimulation builds the coarsest-partition-refinement strategy of
// SPEC_FULL.md §4.6 "Bisimulation".
func NewBisimulation(opts ...BisimulationOption) Strategy {
	cfg := bisimulationConfig{variant: Exact, policy: Return}
	for _, o := range opts {
		o(&cfg)
	}
	return &bisimulationStrategy{cfg: cfg}
}

func (b *bisimulationStrategy) Shrink(ts *transys.TransitionSystem, dist *distances.Distances, targetSize int) ([]transys.State, error) {
	if targetSize <= 0 {
		return nil, ErrBadTargetSize
	}

	block := refineToFixedPoint(ts, dist, b.cfg.variant == Greedy)
	numBlocks := countDistinct(block)

	if numBlocks > targetSize && b.cfg.policy == UseUp {
		block = useUpMerge(block, targetSize)
	}

	return normalizeMapping(block), nil
}

// refineToFixedPoint computes the coarsest partition refining {goal,
// non-goal} x group-indexed transition signatures, iterating until no
// block splits further (SPEC_FULL.md §4.6: "a state's signature is
// the multiset of (group_id, target_partition_block_id) pairs").
func refineToFixedPoint(ts *transys.TransitionSystem, dist *distances.Distances, greedy bool) []int {
	n := ts.NumStates()
	block := make([]int, n)
	for s := 0; s < n; s++ {
		if ts.IsGoal(transys.State(s)) {
			block[s] = 1
		}
	}

	groupIDs := ts.GroupIDs()
	type groupTrans struct {
		gid   int
		trans []transys.Transition
	}
	groups := make([]groupTrans, 0, len(groupIDs))
	for _, gid := range groupIDs {
		_, trans, _ := ts.Group(gid)
		groups = append(groups, groupTrans{gid: gid, trans: trans})
	}

	for {
		sig := make([][]sigPair, n)
		for _, g := range groups {
			for _, tr := range g.trans {
				src := int(tr.Source)
				if greedy && dist.Goal[int(tr.Target)] > dist.Goal[src] {
					continue
				}
				sig[src] = append(sig[src], sigPair{gid: g.gid, blk: block[tr.Target]})
			}
		}
		for s := range sig {
			sort.Slice(sig[s], func(i, j int) bool {
				if sig[s][i].gid != sig[s][j].gid {
					return sig[s][i].gid < sig[s][j].gid
				}
				return sig[s][i].blk < sig[s][j].blk
			})
		}

		type key struct {
			block int
			sig   string
		}
		newID := make(map[key]int)
		newBlock := make([]int, n)
		next := 0
		for s := 0; s < n; s++ {
			k := key{block: block[s], sig: encodeSig(sig[s])}
			id, ok := newID[k]
			if !ok {
				id = next
				newID[k] = id
				next++
			}
			newBlock[s] = id
		}

		if next == countDistinct(block) {
			return newBlock
		}
		block = newBlock
	}
}

// sigPair is one (group_id, target_partition_block_id) entry of a
// state's bisimulation signature (SPEC_FULL.md §4.6 "Bisimulation").
type sigPair struct{ gid, blk int }

func encodeSig(ps []sigPair) string {
	buf := make([]byte, 0, len(ps)*8)
	for _, p := range ps {
		buf = appendIntDec(buf, p.gid)
		buf = append(buf, ':')
		buf = appendIntDec(buf, p.blk)
		buf = append(buf, ';')
	}
	return string(buf)
}

func appendIntDec(buf []byte, x int) []byte {
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

func countDistinct(block []int) int {
	seen := make(map[int]struct{})
	for _, b := range block {
		seen[b] = struct{}{}
	}
	return len(seen)
}

// useUpMerge greedily coalesces the two smallest blocks, repeatedly,
// until at most targetSize blocks remain (SPEC_FULL.md §4.6 "USE_UP:
// greedily merge blocks until |E| ≤ target"). Simplification: block
// pairs are chosen purely by size, not by goal-distance proximity
// (original_source's shrink_bisimulation.cc additionally prefers
// merging blocks whose f-values are close; omitted here for
// simplicity, noted in DESIGN.md).
func useUpMerge(block []int, targetSize int) []int {
	members := make(map[int][]int)
	for s, b := range block {
		members[b] = append(members[b], s)
	}
	ids := make([]int, 0, len(members))
	for id := range members {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for len(ids) > targetSize {
		sort.Slice(ids, func(i, j int) bool {
			if len(members[ids[i]]) != len(members[ids[j]]) {
				return len(members[ids[i]]) < len(members[ids[j]])
			}
			return ids[i] < ids[j]
		})
		a, b := ids[0], ids[1]
		members[a] = append(members[a], members[b]...)
		delete(members, b)
		ids = append(ids[:1], ids[2:]...)
	}

	out := make([]int, len(block))
	for id, ss := range members {
		for _, s := range ss {
			out[s] = id
		}
	}
	return out
}
