// Package mas is the top-level orchestration package: it drives the
// main loop of SPEC_FULL.md §4.8 over a *fts.FactoredTransitionSystem,
// using an injected merge.Strategy and (optionally) shrink.Strategy,
// and extracts a callable heuristic once the loop terminates.
//
// Configuration follows the functional-options idiom, grounded on
// dijkstra.Option/Options, flow.FlowOptions and
// builder.BuilderOption/builderConfig: strategies are passed as
// interface values (merge.Strategy, shrink.Strategy) rather than
// through a string-keyed factory, since this is idiomatic Go — the
// caller constructs e.g. merge.NewDFP(n) directly instead of the
// source's enum-configuration surface naming a strategy by string.
//
// Run never panics on graceful degradation (unsolvable factor, time
// budget, transition budget): those are returned as a Result's
// Outcome. Run panics with a CriticalError on invariant violations
// that indicate a bug in the core rather than a property of the input
// task (SPEC_FULL.md §7 "Invariant violation" / "Strategy
// disagreement" rows), and with a plain string panic when a nil Option
// is passed to it.
package mas
