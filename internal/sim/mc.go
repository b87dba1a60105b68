package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/molsim/internal/energy"
	"github.com/san-kum/molsim/internal/system"
)

// MC samples the system's configuration space with a Metropolis walk:
// Gaussian trial displacements, Boltzmann-weighted acceptance, exact
// reversal on rejection, and a displacement magnitude steered toward 50%
// acceptance.
type MC struct {
	st    *State
	model energy.Model
	rep   Reporter
}

// NewMC builds a Monte-Carlo runner. A nil reporter discards output.
func NewMC(st *State, model energy.Model, rep Reporter) *MC {
	if rep == nil {
		rep = NopReporter{}
	}
	return &MC{st: st, model: model, rep: rep}
}

// Run executes trials until the accepted-configuration count reaches the
// total. Rejected trials do not advance the count but do count toward the
// displacement-update cadence. ctx is checked once per trial.
func (c *MC) Run(ctx context.Context) (err error) {
	st := c.st
	if err := st.validateMC(); err != nil {
		return err
	}
	defer func() {
		if cerr := c.rep.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	st.Sys.ZeroVelocities()
	res, err := c.model.Evaluate(energy.Standard)
	if err != nil {
		return err
	}
	if err := c.rep.Report(st, res, true); err != nil {
		return err
	}
	eprev := res.Total

	disp := make([][3]float64, st.Sys.NumAtoms())
	trials := 0
	for st.Conf < st.TotalConfs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		c.randomDisplacement(disp)
		st.Sys.Displace(disp)
		if res, err = c.model.Evaluate(energy.Standard); err != nil {
			return &StepError{Conf: st.Conf, Err: err}
		}

		bf := boltzmannFactor(res.Total-eprev, st.Temperature)
		if bf >= st.RNG.Uniform() {
			st.Conf++
			st.NAccept++
			st.Accepted++
			eprev = res.Total
			if !st.Sys.Finite() {
				return &StepError{Conf: st.Conf, Err: fmt.Errorf("%w after trial", ErrNonFinite)}
			}
			if err := c.rep.Report(st, res, false); err != nil {
				return &StepError{Conf: st.Conf, Err: err}
			}
		} else {
			for i := range disp {
				for j := 0; j < 3; j++ {
					disp[i][j] = -disp[i][j]
				}
			}
			st.Sys.Displace(disp)
			st.NReject++
			st.Rejected++
		}

		trials++
		if trials >= st.DispInterval {
			if err := st.UpdateDisplacement(); err != nil {
				return &StepError{Conf: st.Conf, Err: err}
			}
			trials = 0
		}
	}

	return c.rep.Report(st, res, true)
}

// boltzmannFactor is the Metropolis acceptance weight for an energy change
// at a temperature. The clamp sits on the exponent, not the probability, so
// the saturation boundary falls exactly at deltaE = 0 and the exponent can
// never grow without bound; any value >= 1 means unconditional acceptance
// against a uniform draw from [0,1).
func boltzmannFactor(deltaE, temp float64) float64 {
	return math.Exp(math.Min(1.0, -deltaE/(system.Kb*temp)))
}

// randomDisplacement fills disp with independent zero-mean Gaussian samples
// of standard deviation DispMag for all 3N coordinates.
func (c *MC) randomDisplacement(disp [][3]float64) {
	for i := range disp {
		for j := 0; j < 3; j++ {
			disp[i][j] = c.st.RNG.Gaussian(c.st.DispMag)
		}
	}
}
