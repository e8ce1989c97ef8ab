package mas

import (
	"errors"
	"time"

	"github.com/katalvlaran/msplan/fts"
	"github.com/katalvlaran/msplan/merge"
	"github.com/katalvlaran/msplan/shrink"
	"github.com/katalvlaran/msplan/task"
)

// errNonLiveOrDuplicatePair reports a merge strategy returning two
// equal indices or a non-live index (SPEC_FULL.md §7 "Strategy
// disagreement" row), always wrapped in a CriticalError.
var errNonLiveOrDuplicatePair = errors.New("mas: merge strategy returned a duplicate or non-live index")

// Run builds the atomic FTS for t and drives the main loop of
// SPEC_FULL.md §4.8 to completion, returning the extracted heuristic
// and how the loop terminated. The only error Run itself returns is
// a bad Options (ErrInvalidConfiguration); every other failure mode —
// an unsolvable factor, the time budget, or the transition-count
// budget — is a graceful Result.Outcome, never an error (§4.8
// "Failure semantics": "Invalid user options at configuration time
// are the only fatal errors").
func Run(t task.View, opts ...Option) (Result, error) {
	cfg, err := resolve(opts)
	if err != nil {
		return Result{}, err
	}

	f := fts.New(t)
	l := &loop{f: f, cfg: cfg}
	if cfg.MaxTime > 0 {
		l.deadline = time.Now().Add(cfg.MaxTime)
	}

	outcome := l.run()
	return Result{
		Outcome:    outcome,
		Iterations: l.iterations,
		Heuristic:  newHeuristic(f.ExtractFinal()),
	}, nil
}

// loop holds one Run call's mutable state, kept off Options so a
// single Options value can be reused across multiple Run calls.
type loop struct {
	f          *fts.FactoredTransitionSystem
	cfg        Options
	deadline   time.Time
	excluded   map[int]bool
	iterations int
}

func (l *loop) timeExceeded() bool {
	return !l.deadline.IsZero() && time.Now().After(l.deadline)
}

func (l *loop) logf(v Verbosity, format string, args ...any) {
	if l.cfg.Logger == nil || l.cfg.Verbosity < v {
		return
	}
	l.cfg.Logger.Printf(format, args...)
}

// allowed returns the allowed index set for the merge strategy: nil
// (meaning "every live factor") once nothing has been excluded yet,
// else every live, non-excluded index.
func (l *loop) allowed() []int {
	if len(l.excluded) == 0 {
		return nil
	}
	out := make([]int, 0, l.f.NumFactors())
	for idx := 0; idx < l.f.NumFactors(); idx++ {
		if l.f.IsLive(idx) && !l.excluded[idx] {
			out = append(out, idx)
		}
	}
	return out
}

func (l *loop) liveAllowedCount() int {
	n := 0
	for idx := 0; idx < l.f.NumFactors(); idx++ {
		if l.f.IsLive(idx) && !l.excluded[idx] {
			n++
		}
	}
	return n
}

// run executes SPEC_FULL.md §4.8's 9-step pseudo-state-machine until
// a terminal Outcome is reached.
func (l *loop) run() Outcome {
	if l.f.IsUnsolvableReported() {
		return Unsolvable
	}

	for {
		if l.liveAllowedCount() <= 1 {
			return Success
		}

		// Step 1: ask merge strategy for (i, j) from the allowed set.
		i, j, err := l.cfg.MergeStrategy.NextPair(l.f, l.allowed())
		if err != nil {
			if errors.Is(err, merge.ErrExhausted) || errors.Is(err, merge.ErrNoPair) {
				return Success
			}
			panicCritical("MergeStrategy.NextPair", err)
		}
		if i == j || !l.f.IsLive(i) || !l.f.IsLive(j) || l.excluded[i] || l.excluded[j] {
			panicCritical("MergeStrategy.NextPair", errNonLiveOrDuplicatePair)
		}
		l.logf(Normal, "next pair: (%d, %d)", i, j)

		// Step 2: time check.
		if l.timeExceeded() {
			return TimeExceeded
		}

		// Step 3: label reduction before shrinking.
		if l.cfg.ReduceBeforeShrinking {
			l.reduceLabels(i, j)
		}
		if l.timeExceeded() {
			return TimeExceeded
		}

		// Step 4: shrink-before-merge.
		l.shrinkBeforeMerge(i, j)
		if l.f.IsUnsolvableReported() {
			return Unsolvable
		}
		if l.timeExceeded() {
			return TimeExceeded
		}

		// Step 5: label reduction before merging.
		if l.cfg.ReduceBeforeMerging {
			l.reduceLabels(i, j)
		}
		if l.timeExceeded() {
			return TimeExceeded
		}

		// Step 6: merge.
		k, err := l.f.Merge(i, j, l.cfg.PruneUnreachable, l.cfg.PruneIrrelevant)
		if err != nil {
			panicCritical("Merge", err)
		}
		l.cfg.MergeStrategy.AfterMerge(k)
		l.iterations++
		l.logf(Normal, "merged (%d, %d) -> %d", i, j, k)
		if l.cfg.Verbosity >= Debug {
			if line, derr := l.f.Dump(k); derr == nil {
				l.logf(Debug, "%s", line)
			}
		}

		// Step 7: pruning/unsolvable check.
		if l.f.IsUnsolvableReported() {
			return Unsolvable
		}

		// Step 8: update the allowed/excluded set.
		stats, err := l.f.Statistics(k)
		if err != nil {
			panicCritical("Statistics", err)
		}
		if l.cfg.NumTransitionsToExclude > 0 && int64(stats.NumTransitions) > l.cfg.NumTransitionsToExclude {
			if l.excluded == nil {
				l.excluded = make(map[int]bool)
			}
			l.excluded[k] = true
			l.logf(Verbose, "factor %d excluded: %d transitions > %d", k, stats.NumTransitions, l.cfg.NumTransitionsToExclude)
		}
		if l.liveAllowedCount() <= 1 {
			return Success
		}

		// Step 9: global transition-count abort check.
		if l.cfg.NumTransitionsToAbort > 0 {
			for idx := 0; idx < l.f.NumFactors(); idx++ {
				if !l.f.IsLive(idx) {
					continue
				}
				st, err := l.f.Statistics(idx)
				if err != nil {
					panicCritical("Statistics", err)
				}
				if int64(st.NumTransitions) > l.cfg.NumTransitionsToAbort {
					return TooManyTransitions
				}
			}
		}
	}
}

// reduceLabels applies label reduction once per operand of the pair
// about to be merged, each time exempting only that operand, so labels
// are combined only when they are Λ-equivalent in every other live
// factor.
func (l *loop) reduceLabels(i, j int) {
	for _, idx := range []int{i, j} {
		if _, err := l.f.ReduceLabels(idx); err != nil {
			panicCritical("ReduceLabels", err)
		}
	}
}

// shrinkBeforeMerge computes balanced target sizes for i and j
// (shrink.BeforeMergeSizes) and shrinks whichever side exceeds
// min(target, ThresholdBeforeMerge) (SPEC_FULL.md §4.6 "Combined
// shrink-before-merge").
func (l *loop) shrinkBeforeMerge(i, j int) {
	if l.cfg.ShrinkStrategy == nil {
		return
	}
	tsI, err := l.f.TransitionSystem(i)
	if err != nil {
		panicCritical("TransitionSystem", err)
	}
	tsJ, err := l.f.TransitionSystem(j)
	if err != nil {
		panicCritical("TransitionSystem", err)
	}

	targetI, targetJ := shrink.BeforeMergeSizes(tsI.NumStates(), tsJ.NumStates(), l.cfg.MaxStates, l.cfg.MaxStatesBeforeMerge)

	l.shrinkOne(i, targetI)
	if l.f.IsUnsolvableReported() {
		return
	}
	l.shrinkOne(j, targetJ)
}

func (l *loop) shrinkOne(idx, target int) {
	ts, err := l.f.TransitionSystem(idx)
	if err != nil {
		panicCritical("TransitionSystem", err)
	}
	limit := target
	if l.cfg.ThresholdBeforeMerge < limit {
		limit = l.cfg.ThresholdBeforeMerge
	}
	if ts.NumStates() <= limit {
		return
	}

	dist, err := l.f.Distances(idx)
	if err != nil {
		panicCritical("Distances", err)
	}
	mapping, err := l.cfg.ShrinkStrategy.Shrink(ts, dist, target)
	if err != nil {
		panicCritical("ShrinkStrategy.Shrink", err)
	}
	if _, err := l.f.ApplyAbstraction(idx, mapping); err != nil {
		panicCritical("ApplyAbstraction", err)
	}
}
