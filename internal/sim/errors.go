package sim

import (
	"errors"
	"fmt"
)

// Failure classes for a run.
var (
	// ErrInvalidConfiguration indicates run parameters the engine cannot
	// start or continue from (non-positive mass, non-positive temperature
	// where positivity is required, degenerate ratios).
	ErrInvalidConfiguration = errors.New("sim: invalid configuration")

	// ErrNonFinite indicates a position, velocity or acceleration component
	// became NaN or Inf after an update. Continued propagation is
	// physically meaningless.
	ErrNonFinite = errors.New("sim: non-finite particle state")

	// ErrNoTrials indicates the displacement controller was invoked before
	// any trial was recorded. Unreachable from the run loops, which always
	// complete at least one trial per controller window.
	ErrNoTrials = errors.New("sim: displacement update with no recorded trials")
)

// StepError carries the position in the run at which a failure occurred.
type StepError struct {
	Time float64 // simulated time, ps (dynamics runs)
	Conf int     // accepted configurations (Monte-Carlo runs)
	Err  error
}

func (e *StepError) Error() string {
	if e.Conf > 0 || e.Time == 0 {
		return fmt.Sprintf("conf %d: %v", e.Conf, e.Err)
	}
	return fmt.Sprintf("t=%.6f ps: %v", e.Time, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }
