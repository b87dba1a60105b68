package sim

import "math"

// UpdateDisplacement steers the trial displacement magnitude toward a 50%
// acceptance ratio over the window since the previous update: the magnitude
// grows when more than half the trials were accepted and shrinks when fewer
// were. The window counters reset afterward; the run totals (Accepted,
// Rejected) are untouched. Precondition: at least one trial has
// been recorded; the run loop's cadence guarantees this, and direct callers
// get ErrNoTrials instead of a division by zero.
func (st *State) UpdateDisplacement() error {
	total := st.NAccept + st.NReject
	if total == 0 {
		return ErrNoTrials
	}
	pAccept := float64(st.NAccept) / float64(total)
	st.NAccept, st.NReject = 0, 0
	st.DispMag *= math.Exp(2.0 * st.DispRate * (pAccept - 0.5))
	return nil
}
