package shrink

import (
	"math/rand"

	"github.com/katalvlaran/msplan/distances"
	"github.com/katalvlaran/msplan/transys"
)

// defaultSeed is the fixed "zero" seed used when callers pass seed==0,
// grounded on tsp/rng.go's rngFromSeed convention (deterministic by
// default, reproducible across platforms).
const defaultSeed int64 = 1

type randomStrategy struct {
	rng *rand.Rand
}

// NewRandom builds the random-partitioning strategy of SPEC_FULL.md
// §4.6 ("Random: random partitioning with blocks of ⌈n/target⌉").
// seed==0 selects the fixed default seed, matching tsp.rngFromSeed.
func NewRandom(seed int64) Strategy {
	if seed == 0 {
		seed = defaultSeed
	}
	return &randomStrategy{rng: rand.New(rand.NewSource(seed))}
}

func (r *randomStrategy) Shrink(ts *transys.TransitionSystem, _ *distances.Distances, targetSize int) ([]transys.State, error) {
	if targetSize <= 0 {
		return nil, ErrBadTargetSize
	}
	n := ts.NumStates()

	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := r.rng.Intn(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}

	blockSize := (n + targetSize - 1) / targetSize
	block := make([]int, n)
	for rank, s := range perm {
		block[s] = rank / blockSize
	}
	return normalizeMapping(block), nil
}
