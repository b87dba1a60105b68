package sim

import (
	"fmt"
	"math"

	"github.com/san-kum/molsim/internal/energy"
	"github.com/san-kum/molsim/internal/system"
)

// InitializeVelocities assigns every particle a velocity drawn from the
// Maxwell-Boltzmann distribution at the target temperature, then rescales
// globally so the instantaneous kinetic temperature matches the target
// exactly. A zero target leaves the velocities untouched. The running mean
// temperature is seeded with the target for the thermostat.
func (st *State) InitializeVelocities(model energy.Model) error {
	if st.Temperature <= 0 {
		return nil
	}
	st.ETemp = st.Temperature

	for i := range st.Sys.Atoms {
		a := &st.Sys.Atoms[i]
		sigma := math.Sqrt(2.0 * system.Rgas * st.Temperature / (3.0 * a.Mass))
		for j := 0; j < 3; j++ {
			a.Vel[j] = st.RNG.Gaussian(sigma)
		}
	}

	res, err := model.Evaluate(energy.Standard)
	if err != nil {
		return err
	}
	if res.Temperature <= 0 {
		return fmt.Errorf("%w: instantaneous temperature %g K after velocity draw",
			ErrInvalidConfiguration, res.Temperature)
	}
	st.Sys.ScaleVelocities(math.Sqrt(st.Temperature / res.Temperature))
	return nil
}
