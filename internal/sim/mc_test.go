package sim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/molsim/internal/energy"
)

func TestBoltzmannFactorBounds(t *testing.T) {
	const temp = 298.15

	// Energy drops or stays level: factor saturates at or above one, which
	// always beats a uniform draw from [0,1).
	for _, dE := range []float64{0, -1e-12, -0.001, -5, -1e6} {
		if bf := boltzmannFactor(dE, temp); bf < 1 {
			t.Errorf("boltzmannFactor(%g) = %g, want >= 1", dE, bf)
		}
	}
	// The clamp caps the exponent at 1, so the factor never exceeds e.
	if bf := boltzmannFactor(-1e6, temp); bf != math.E {
		t.Errorf("saturated factor = %g, want e", bf)
	}
	// Energy climbs without bound: factor collapses to zero.
	if bf := boltzmannFactor(1e9, temp); bf != 0 {
		t.Errorf("boltzmannFactor(+inf-ish) = %g, want 0", bf)
	}
	// Small positive increase lands strictly inside (0, 1).
	if bf := boltzmannFactor(0.1, temp); bf <= 0 || bf >= 1 {
		t.Errorf("boltzmannFactor(0.1) = %g, want within (0,1)", bf)
	}
}

func TestMCDownhillAlwaysAccepts(t *testing.T) {
	sys := argonCluster()
	// Potential drops on every evaluation, so every trial is downhill.
	pots := make([]float64, 40)
	for i := range pots {
		pots[i] = -float64(i)
	}
	st := NewState(sys, Config{
		Mode:        MonteCarlo,
		Temperature: 300,
		TotalConfs:  25,
		DispMag:     0.1,
		Seed:        5,
	})
	model := &stubModel{sys: sys, potential: pots}

	if err := NewMC(st, model, nil).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if st.Conf != 25 {
		t.Errorf("configurations = %d, want exactly 25", st.Conf)
	}
	if st.Rejected != 0 {
		t.Errorf("rejects = %d, want 0 for monotonically downhill trials", st.Rejected)
	}
}

func TestMCRejectionRestoresPositions(t *testing.T) {
	sys := argonCluster()
	before := make([][3]float64, len(sys.Atoms))
	for i := range sys.Atoms {
		before[i] = sys.Atoms[i].Pos
	}

	st := NewState(sys, Config{
		Mode:        MonteCarlo,
		Temperature: 300,
		TotalConfs:  1,
		DispMag:     0.1,
		Seed:        9,
	})
	// Every displaced configuration costs 1e9 kcal/mol, so every trial is
	// rejected; cancel after a fixed number of evaluations to exit the loop.
	ctx, cancel := context.WithCancel(context.Background())
	model := &stubModel{sys: sys, potential: append([]float64{0}, 1e9)}
	model.onEval = func(calls int) {
		if calls >= 50 {
			cancel()
		}
	}

	err := NewMC(st, model, nil).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if st.Rejected == 0 {
		t.Fatal("expected rejected trials")
	}
	for i := range sys.Atoms {
		if sys.Atoms[i].Pos != before[i] {
			t.Errorf("atom %d: position %v, want %v restored bitwise", i, sys.Atoms[i].Pos, before[i])
		}
	}
}

func TestMCTerminatesAtExactCount(t *testing.T) {
	// A reject-heavy run must still stop at exactly TotalConfs.
	sys := argonCluster()
	st := NewState(sys, Config{
		Mode:        MonteCarlo,
		Temperature: 120,
		TotalConfs:  30,
		DispMag:     0.5,
		Seed:        17,
	})
	if err := NewMC(st, energy.NewLennardJones(sys), nil).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if st.Conf != 30 {
		t.Errorf("configurations = %d, want exactly 30", st.Conf)
	}
}

func TestMCZeroesVelocities(t *testing.T) {
	sys := argonCluster()
	sys.Atoms[0].Vel = [3]float64{3, 2, 1}
	st := NewState(sys, Config{
		Mode:        MonteCarlo,
		Temperature: 300,
		TotalConfs:  1,
		DispMag:     0.01,
		Seed:        2,
	})
	model := &stubModel{sys: sys, potential: []float64{0, -1}}

	if err := NewMC(st, model, nil).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sys.Atoms[0].Vel != [3]float64{} {
		t.Errorf("velocity = %v, want zeroed on entry", sys.Atoms[0].Vel)
	}
}

func TestMCAdaptiveCadence(t *testing.T) {
	// With an interval of 10 and all trials accepted, the controller fires
	// every 10 trials and grows the magnitude each time.
	sys := argonCluster()
	pots := make([]float64, 40)
	for i := range pots {
		pots[i] = -float64(i)
	}
	st := NewState(sys, Config{
		Mode:         MonteCarlo,
		Temperature:  300,
		TotalConfs:   20,
		DispMag:      0.1,
		DispInterval: 10,
		Seed:         3,
	})
	if err := NewMC(st, &stubModel{sys: sys, potential: pots}, nil).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Two windows of 100% acceptance: 0.1 * e^(2*ln2*0.5) twice.
	want := 0.1 * math.Exp(2*math.Ln2*0.5) * math.Exp(2*math.Ln2*0.5)
	if math.Abs(st.DispMag-want) > 1e-12 {
		t.Errorf("displacement magnitude = %g, want %g", st.DispMag, want)
	}
	if st.NAccept != 0 || st.NReject != 0 {
		t.Errorf("counters = %d/%d, want reset after the last window", st.NAccept, st.NReject)
	}
}

func TestMCRunTotalsSurviveControllerResets(t *testing.T) {
	// The controller zeroes its window counters every DispInterval trials;
	// the run totals must keep counting across those resets.
	sys := argonCluster()
	pots := make([]float64, 40)
	for i := range pots {
		pots[i] = -float64(i)
	}
	st := NewState(sys, Config{
		Mode:         MonteCarlo,
		Temperature:  300,
		TotalConfs:   25,
		DispMag:      0.1,
		DispInterval: 10,
		Seed:         7,
	})
	if err := NewMC(st, &stubModel{sys: sys, potential: pots}, nil).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if st.Accepted != 25 || st.Rejected != 0 {
		t.Errorf("run totals = %d/%d, want 25/0", st.Accepted, st.Rejected)
	}
	// Resets at trials 10 and 20 leave five trials in the open window.
	if st.NAccept != 5 {
		t.Errorf("window counter = %d, want 5", st.NAccept)
	}
}

func TestMCValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero temperature", Config{TotalConfs: 10, DispMag: 0.1}},
		{"zero confs", Config{Temperature: 300, DispMag: 0.1}},
		{"zero displacement", Config{Temperature: 300, TotalConfs: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := argonCluster()
			st := NewState(sys, tt.cfg)
			err := NewMC(st, &stubModel{sys: sys}, nil).Run(context.Background())
			if !errors.Is(err, ErrInvalidConfiguration) {
				t.Errorf("error = %v, want ErrInvalidConfiguration", err)
			}
		})
	}
}

func TestMCReproducibleDecisions(t *testing.T) {
	run := func() (int, int, [3]float64) {
		sys := argonCluster()
		st := NewState(sys, Config{
			Mode:        MonteCarlo,
			Temperature: 120,
			TotalConfs:  40,
			DispMag:     0.3,
			Seed:        23,
		})
		if err := NewMC(st, energy.NewLennardJones(sys), nil).Run(context.Background()); err != nil {
			t.Fatalf("Run: %v", err)
		}
		return st.Accepted + st.Rejected, st.Conf, sys.Atoms[1].Pos
	}

	t1, c1, p1 := run()
	t2, c2, p2 := run()
	if t1 != t2 || c1 != c2 || p1 != p2 {
		t.Errorf("identical seeds diverged: trials %d/%d, confs %d/%d, pos %v vs %v",
			t1, t2, c1, c2, p1, p2)
	}
}
