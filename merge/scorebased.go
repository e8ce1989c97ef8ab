package merge

import (
	"log"
	"math"

	"github.com/katalvlaran/msplan/fts"
)

// ScoringFunc scores a candidate pair (i, j) of live factors; lower is
// better. Score-based filtering iterates its list of ScoringFuncs,
// keeping at each step only the pairs tied for the minimum score,
// until either one pair remains or every function has run (at which
// point the first surviving pair, in enumeration order, is the
// tie-break winner) — SPEC_FULL.md §4.7 "score-based filtering".
type ScoringFunc func(f *fts.FactoredTransitionSystem, i, j int) float64

// scoreBasedStrategy is stateless across calls: every call re-derives
// the winning pair from the FTS's current live set.
type scoreBasedStrategy struct {
	funcs  []ScoringFunc
	logger *log.Logger // optional, recovered feature D.2
}

// NewScoreBasedFiltering builds a score-based filtering strategy.
// logger may be nil to disable the per-stage trace it otherwise emits.
func NewScoreBasedFiltering(funcs []ScoringFunc, logger *log.Logger) Strategy {
	return &scoreBasedStrategy{funcs: funcs, logger: logger}
}

func (s *scoreBasedStrategy) AfterMerge(int) {}

func (s *scoreBasedStrategy) NextPair(f *fts.FactoredTransitionSystem, allowed []int) (int, int, error) {
	indices := liveIndices(f, allowed)
	if len(indices) < 2 {
		return -1, -1, ErrNoPair
	}

	type pr struct{ i, j int }
	pairs := make([]pr, 0, len(indices)*(len(indices)-1)/2)
	for a := 0; a < len(indices); a++ {
		for b := a + 1; b < len(indices); b++ {
			pairs = append(pairs, pr{indices[a], indices[b]})
		}
	}

	for stage, fn := range s.funcs {
		if len(pairs) <= 1 {
			break
		}
		best := math.Inf(1)
		for _, p := range pairs {
			if v := fn(f, p.i, p.j); v < best {
				best = v
			}
		}
		kept := pairs[:0:0]
		for _, p := range pairs {
			if fn(f, p.i, p.j) == best {
				kept = append(kept, p)
			}
		}
		pairs = kept
		if s.logger != nil {
			s.logger.Printf("merge: score-based filtering stage %d left %d candidate(s)", stage, len(pairs))
		}
	}

	if len(pairs) == 0 {
		return -1, -1, ErrNoPair
	}
	chosen := pairs[0]
	if s.logger != nil {
		s.logger.Printf("merge: score-based filtering chose (%d, %d)", chosen.i, chosen.j)
	}
	return chosen.i, chosen.j, nil
}
