package sim

import (
	"errors"
	"math"
	"testing"
)

func TestEquilibrateMovingAverage(t *testing.T) {
	sys := singleAtom(39.948)
	sys.Atoms[0].Vel = [3]float64{1, 0, 0}
	st := NewState(sys, Config{Temperature: 300, Timestep: 0.01, EqRate: 2.0})
	st.ETemp = 300

	if err := st.equilibrate(350); err != nil {
		t.Fatalf("equilibrate: %v", err)
	}

	// tweight = 0.1: (300 + 0.1*350)/1.1
	wantETemp := (300 + 0.1*350) / 1.1
	if math.Abs(st.ETemp-wantETemp) > 1e-12 {
		t.Errorf("running mean = %g, want %g", st.ETemp, wantETemp)
	}

	// Running mean above target, so velocities must shrink.
	wantScale := 1 + (0.01/2.0)*(math.Sqrt(300/wantETemp)-1)
	if math.Abs(sys.Atoms[0].Vel[0]-wantScale) > 1e-12 {
		t.Errorf("velocity = %g, want %g", sys.Atoms[0].Vel[0], wantScale)
	}
	if sys.Atoms[0].Vel[0] >= 1 {
		t.Error("velocity should shrink when running mean exceeds target")
	}
}

func TestEquilibratePullsUpward(t *testing.T) {
	sys := singleAtom(39.948)
	sys.Atoms[0].Vel = [3]float64{1, 0, 0}
	st := NewState(sys, Config{Temperature: 300, Timestep: 0.01, EqRate: 2.0})
	st.ETemp = 300

	if err := st.equilibrate(200); err != nil {
		t.Fatalf("equilibrate: %v", err)
	}
	if sys.Atoms[0].Vel[0] <= 1 {
		t.Errorf("velocity = %g, should grow when running mean falls below target", sys.Atoms[0].Vel[0])
	}
}

func TestEquilibrateNonPositiveMean(t *testing.T) {
	sys := singleAtom(39.948)
	st := NewState(sys, Config{Temperature: 300, Timestep: 0.01, EqRate: 2.0})
	st.ETemp = 1

	// A wildly negative instantaneous reading drives the mean non-positive;
	// that is a configuration error, not a NaN.
	err := st.equilibrate(-1000)
	if !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("error = %v, want ErrInvalidConfiguration", err)
	}
}
