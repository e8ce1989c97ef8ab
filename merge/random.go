package merge

import (
	"math/rand"

	"github.com/katalvlaran/msplan/fts"
)

// defaultSeed mirrors shrink.defaultSeed's convention (seed==0 selects
// a fixed, reproducible seed rather than an unseeded source), grounded
// on tsp/rng.go's rngFromSeed.
const defaultSeed int64 = 1

// randomStrategy merges uniformly-chosen live pairs, folding the
// result back in as one of the two next candidates, until only one
// factor remains.
type randomStrategy struct {
	rng  *rand.Rand
	last int // -1 until the first merge
}

// NewRandom builds a seeded random merge strategy.
func NewRandom(seed int64) Strategy {
	if seed == 0 {
		seed = defaultSeed
	}
	return &randomStrategy{rng: rand.New(rand.NewSource(seed)), last: -1}
}

func (r *randomStrategy) NextPair(f *fts.FactoredTransitionSystem, allowed []int) (int, int, error) {
	indices := liveIndices(f, allowed)
	if r.last >= 0 && containsInt(indices, r.last) {
		// Fold the running result back in: pick one other live index at
		// random to merge with it.
		var others []int
		for _, idx := range indices {
			if idx != r.last {
				others = append(others, idx)
			}
		}
		if len(others) == 0 {
			return -1, -1, ErrExhausted
		}
		return r.last, others[r.rng.Intn(len(others))], nil
	}
	if len(indices) < 2 {
		return -1, -1, ErrNoPair
	}
	i := indices[r.rng.Intn(len(indices))]
	var rest []int
	for _, idx := range indices {
		if idx != i {
			rest = append(rest, idx)
		}
	}
	j := rest[r.rng.Intn(len(rest))]
	return i, j, nil
}

func (r *randomStrategy) AfterMerge(newIndex int) {
	r.last = newIndex
}
