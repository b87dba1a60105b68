package sim

import "github.com/san-kum/molsim/internal/energy"

// Reporter receives the engine's output hooks. Report is called with
// force=true unconditionally at the start and end of a run, and once per
// dynamics step or Monte-Carlo accepted configuration in between; the
// implementation decides, from its own cadence bookkeeping, whether anything
// is actually written. Close always runs, on normal completion and on any
// propagating failure.
type Reporter interface {
	Report(st *State, res energy.Result, force bool) error
	Close() error
}

// NopReporter discards everything. Used when a caller only wants the final
// state.
type NopReporter struct{}

func (NopReporter) Report(*State, energy.Result, bool) error { return nil }
func (NopReporter) Close() error                             { return nil }
