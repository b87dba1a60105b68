package sim

import (
	"fmt"
	"math"
)

// equilibrate pulls the kinetic temperature toward the target by scaling the
// velocities against an exponential moving average of the instantaneous
// temperature. Averaging instead of pointwise rescaling avoids the artifacts
// a hard rescale thermostat would introduce into otherwise energy-conserving
// dynamics. Called once per step while the clock is inside the
// equilibration window.
func (st *State) equilibrate(tinst float64) error {
	tweight := 10.0 * st.Timestep
	st.ETemp = (st.ETemp + tweight*tinst) / (1.0 + tweight)
	if st.ETemp <= 0 {
		return fmt.Errorf("%w: running mean temperature %g K at t=%g ps",
			ErrInvalidConfiguration, st.ETemp, st.Time)
	}
	tscale := st.Timestep / st.EqRate
	st.Sys.ScaleVelocities(1.0 + tscale*(math.Sqrt(st.Temperature/st.ETemp)-1.0))
	return nil
}
