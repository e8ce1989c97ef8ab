package merge

import "github.com/katalvlaran/msplan/fts"

// partitionFold is the shared backbone of SCCs and MIASM (SPEC_FULL.md
// §4.7): given a partition of atomic factor indices into blocks
// (already in the order the strategy wants them processed), it first
// merges each multi-variable block down to a single factor via a
// per-block sub-strategy, then folds the resulting block
// representatives together linearly, in block order.
type partitionFold struct {
	blocks     [][]int
	subFactory func(block []int) Strategy

	idx    int // current block being resolved
	cur    Strategy
	curRep int // last factor index produced while resolving the current block
	reps   []int
	cross  Strategy
}

func newPartitionFold(blocks [][]int, subFactory func([]int) Strategy) *partitionFold {
	return &partitionFold{blocks: blocks, subFactory: subFactory, curRep: -1}
}

func (p *partitionFold) NextPair(f *fts.FactoredTransitionSystem, allowed []int) (int, int, error) {
	for p.idx < len(p.blocks) {
		blk := p.blocks[p.idx]
		if len(blk) == 1 {
			p.reps = append(p.reps, blk[0])
			p.idx++
			continue
		}
		if p.cur == nil {
			p.cur = p.subFactory(blk)
		}
		i, j, err := p.cur.NextPair(f, allowed)
		if err != nil {
			p.reps = append(p.reps, p.curRep)
			p.cur = nil
			p.curRep = -1
			p.idx++
			continue
		}
		return i, j, nil
	}
	if p.cross == nil {
		if len(p.reps) <= 1 {
			return -1, -1, ErrExhausted
		}
		p.cross = NewLinear(p.reps)
	}
	return p.cross.NextPair(f, allowed)
}

func (p *partitionFold) AfterMerge(newIndex int) {
	if p.cur != nil {
		p.cur.AfterMerge(newIndex)
		p.curRep = newIndex
		return
	}
	if p.cross != nil {
		p.cross.AfterMerge(newIndex)
	}
}
