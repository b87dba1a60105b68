package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/molsim/internal/energy"
)

// MD propagates a system with the leapfrog integrator: velocities live at
// half-integer time offsets relative to positions. One half-step velocity
// update at the start establishes the stagger; every iteration after that
// advances positions and velocities by a full step each.
type MD struct {
	st    *State
	model energy.Model
	rep   Reporter
}

// NewMD builds a dynamics runner. A nil reporter discards output.
func NewMD(st *State, model energy.Model, rep Reporter) *MD {
	if rep == nil {
		rep = NopReporter{}
	}
	return &MD{st: st, model: model, rep: rep}
}

// Run executes the dynamics until the simulated clock reaches the total
// time. ctx is checked once per step; with a background context the loop is
// unconditional. The reporter is closed on every exit path so output written
// before a failure stays intact.
func (m *MD) Run(ctx context.Context) (err error) {
	st := m.st
	if err := st.validateMD(); err != nil {
		return err
	}
	defer func() {
		if cerr := m.rep.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := st.InitializeVelocities(m.model); err != nil {
		return err
	}
	res, err := m.model.Evaluate(energy.Standard)
	if err != nil {
		return err
	}
	grad, err := m.model.Gradient()
	if err != nil {
		return err
	}
	st.Sys.UpdateAccelerations(grad)
	if err := m.rep.Report(st, res, true); err != nil {
		return err
	}
	st.Sys.UpdateVelocities(0.5 * st.Timestep)

	for st.Time < st.TotalTime {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		st.Sys.UpdatePositions(st.Timestep, 1.0, 0.0)
		if grad, err = m.model.Gradient(); err != nil {
			return &StepError{Time: st.Time, Err: err}
		}
		st.Sys.UpdateAccelerations(grad)
		st.Sys.UpdateVelocities(st.Timestep)
		if res, err = m.model.Evaluate(energy.Leapfrog); err != nil {
			return &StepError{Time: st.Time, Err: err}
		}
		if st.Time < st.EqTime {
			if err := st.equilibrate(res.Temperature); err != nil {
				return &StepError{Time: st.Time, Err: err}
			}
		}
		if !st.Sys.Finite() {
			return &StepError{Time: st.Time, Err: fmt.Errorf("%w after step", ErrNonFinite)}
		}
		if err := m.rep.Report(st, res, false); err != nil {
			return &StepError{Time: st.Time, Err: err}
		}
		st.Time += st.Timestep
	}

	return m.rep.Report(st, res, true)
}
