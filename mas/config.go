package mas

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/katalvlaran/msplan/merge"
	"github.com/katalvlaran/msplan/shrink"
)

// Sentinel errors, grounded on dijkstra/types.go's errors.New style.
var (
	// ErrInvalidConfiguration is returned by Run when a user-supplied
	// option value is out of range (SPEC_FULL.md §6
	// "Exit codes" INPUT_ERROR). It is the only fatal-at-startup error
	// this package defines; everything past configuration degrades
	// gracefully instead (SPEC_FULL.md §4.8 "Failure semantics").
	ErrInvalidConfiguration = errors.New("mas: invalid configuration")
)

// Verbosity selects how much the main loop reports via Options.Logger
// (SPEC_FULL.md §6 "verbosity: silent|normal|verbose|debug").
type Verbosity int

const (
	Silent Verbosity = iota
	Normal
	Verbose
	Debug
)

// Options configures a Run (SPEC_FULL.md §4.8 "Inputs" and §6
// "Configuration surface").
//
// MergeStrategy is required; ShrinkStrategy may be nil (shrinking is
// then skipped entirely, equivalent to target sizes always being
// respected for free). Label reduction is controlled by the two
// ReduceBefore* flags directly rather than a `none|exact{...}` enum,
// since in Go a disabled strategy is simply two false bools, not a
// nil-variant case needing its own tag.
type Options struct {
	MergeStrategy  merge.Strategy
	ShrinkStrategy shrink.Strategy

	ReduceBeforeShrinking bool
	ReduceBeforeMerging   bool

	MaxStates               int
	MaxStatesBeforeMerge    int
	ThresholdBeforeMerge    int
	PruneUnreachable        bool
	PruneIrrelevant         bool
	PruningAsAbstraction    bool
	NumTransitionsToAbort   int64
	NumTransitionsToExclude int64

	MaxTime time.Duration

	Verbosity Verbosity
	Logger    *log.Logger
}

// Option is a functional option over Options, following
// dijkstra.Option's convention.
type Option func(*Options)

// WithMergeStrategy sets the required merge strategy.
func WithMergeStrategy(s merge.Strategy) Option {
	return func(o *Options) { o.MergeStrategy = s }
}

// WithShrinkStrategy sets the shrink strategy; omit (or pass nil) to
// run without shrinking.
func WithShrinkStrategy(s shrink.Strategy) Option {
	return func(o *Options) { o.ShrinkStrategy = s }
}

// WithLabelReduction enables label reduction before the named loop
// steps (SPEC_FULL.md §6 "label_reduction: exact{before_shrinking,
// before_merging, system_order}"; system_order is the order factors
// are visited in, already fixed by fts.ComputeLabelReductionPlan's
// slot iteration, so there is no separate knob for it here).
func WithLabelReduction(beforeShrinking, beforeMerging bool) Option {
	return func(o *Options) {
		o.ReduceBeforeShrinking = beforeShrinking
		o.ReduceBeforeMerging = beforeMerging
	}
}

// WithMaxStates sets the per-factor state cap (default 50000).
func WithMaxStates(n int) Option {
	return func(o *Options) { o.MaxStates = n }
}

// WithMaxStatesBeforeMerge sets the pre-merge per-factor cap (default
// = MaxStates).
func WithMaxStatesBeforeMerge(n int) Option {
	return func(o *Options) { o.MaxStatesBeforeMerge = n }
}

// WithThresholdBeforeMerge sets the size above which a factor is
// shrunk ahead of a merge even if the product would otherwise fit
// (default = MaxStates).
func WithThresholdBeforeMerge(n int) Option {
	return func(o *Options) { o.ThresholdBeforeMerge = n }
}

// WithPruning enables unreachable/irrelevant state pruning after each
// merge (SPEC_FULL.md §4.8 step 7).
func WithPruning(unreachable, irrelevant bool) Option {
	return func(o *Options) {
		o.PruneUnreachable = unreachable
		o.PruneIrrelevant = irrelevant
	}
}

// WithPruningAsAbstraction sets Options.PruningAsAbstraction
// (SPEC_FULL.md §6 "pruning_as_abstraction"). Run stores the flag but
// does not read it: the main loop behaves the same whichever value it
// has.
func WithPruningAsAbstraction(b bool) Option {
	return func(o *Options) { o.PruningAsAbstraction = b }
}

// WithTransitionBudgets sets the global abort threshold and the
// per-factor exclusion threshold (0 means unlimited for either).
func WithTransitionBudgets(toAbort, toExclude int64) Option {
	return func(o *Options) {
		o.NumTransitionsToAbort = toAbort
		o.NumTransitionsToExclude = toExclude
	}
}

// WithMaxTime sets the wall-clock budget for the whole loop (default
// 0, meaning unlimited).
func WithMaxTime(d time.Duration) Option {
	return func(o *Options) { o.MaxTime = d }
}

// WithVerbosity sets the reporting level and the logger major steps
// are written to; a nil logger with non-Silent verbosity is allowed
// and simply reports nothing (matching flow.FlowOptions.Verbose's
// gate-a-log-line convention, generalized to four levels).
func WithVerbosity(v Verbosity, logger *log.Logger) Option {
	return func(o *Options) {
		o.Verbosity = v
		o.Logger = logger
	}
}

// DefaultOptions returns the SPEC_FULL.md §6 defaults, mirroring
// dijkstra.DefaultOptions's role as the starting point for
// With...-option overrides.
func DefaultOptions() Options {
	return Options{
		MaxStates:            50000,
		MaxStatesBeforeMerge: 50000,
		ThresholdBeforeMerge: 50000,
		Verbosity:            Normal,
	}
}

// resolve applies opts over DefaultOptions, fills the
// MaxStatesBeforeMerge/ThresholdBeforeMerge defaults from a
// caller-overridden MaxStates, and validates the result.
func resolve(opts []Option) (Options, error) {
	cfg := DefaultOptions()
	maxStatesSet := false
	for _, o := range opts {
		if o == nil {
			panic("mas: nil Option passed to Run")
		}
		before := cfg.MaxStates
		o(&cfg)
		if cfg.MaxStates != before {
			maxStatesSet = true
		}
	}

	// If the caller only touched MaxStates and never the other two,
	// their defaults must track it (DefaultOptions() sets all three
	// to the same literal, so this only matters when MaxStates was
	// customized after being constructed via DefaultOptions()).
	if maxStatesSet {
		// Only re-derive a field if the caller left it untouched,
		// i.e. still at the module-wide default of 50000.
		if cfg.MaxStatesBeforeMerge == 50000 {
			cfg.MaxStatesBeforeMerge = cfg.MaxStates
		}
		if cfg.ThresholdBeforeMerge == 50000 {
			cfg.ThresholdBeforeMerge = cfg.MaxStates
		}
	}

	if err := validate(cfg); err != nil {
		return Options{}, err
	}
	return cfg, nil
}

func validate(cfg Options) error {
	if cfg.MergeStrategy == nil {
		return fmt.Errorf("%w: MergeStrategy is required", ErrInvalidConfiguration)
	}
	if cfg.MaxStates < 1 {
		return ErrInvalidConfiguration
	}
	if cfg.MaxStatesBeforeMerge < 1 {
		return ErrInvalidConfiguration
	}
	if cfg.ThresholdBeforeMerge < 1 {
		return ErrInvalidConfiguration
	}
	if cfg.NumTransitionsToAbort < 0 || cfg.NumTransitionsToExclude < 0 {
		return ErrInvalidConfiguration
	}
	if cfg.MaxTime < 0 {
		return ErrInvalidConfiguration
	}
	return nil
}
