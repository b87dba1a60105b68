package sim

import (
	"github.com/san-kum/molsim/internal/energy"
	"github.com/san-kum/molsim/internal/system"
)

// stubModel is a scriptable energy model. Kinetic terms are computed from
// the real velocities; the potential comes from the script (one value per
// Evaluate call, last value repeating) and the gradient is constant.
type stubModel struct {
	sys       *system.System
	grad      [][3]float64
	potential []float64
	calls     int
	onEval    func(calls int)
}

func (m *stubModel) Evaluate(mode energy.Mode) (energy.Result, error) {
	if m.onEval != nil {
		m.onEval(m.calls)
	}
	var pot float64
	if len(m.potential) > 0 {
		i := m.calls
		if i >= len(m.potential) {
			i = len(m.potential) - 1
		}
		pot = m.potential[i]
	}
	m.calls++

	kin := energy.Kinetic(m.sys, mode)
	return energy.Result{
		Total:       pot + kin,
		Kinetic:     kin,
		Potential:   pot,
		Temperature: energy.Temperature(kin, m.sys.NumAtoms()),
	}, nil
}

func (m *stubModel) Gradient() ([][3]float64, error) {
	if m.grad != nil {
		return m.grad, nil
	}
	return make([][3]float64, m.sys.NumAtoms()), nil
}

// countingReporter tallies forced and scheduled report calls.
type countingReporter struct {
	forced    int
	scheduled int
	closed    int
}

func (r *countingReporter) Report(st *State, res energy.Result, force bool) error {
	if force {
		r.forced++
	} else {
		r.scheduled++
	}
	return nil
}

func (r *countingReporter) Close() error {
	r.closed++
	return nil
}

func singleAtom(mass float64) *system.System {
	return &system.System{
		Name:  "one",
		Atoms: []system.Particle{{Element: "Ar", Mass: mass}},
	}
}

func argonCluster() *system.System {
	sigma, eps := 3.405, 0.238
	spacing := 3.8
	var atoms []system.Particle
	for i := 0; i < 4; i++ {
		atoms = append(atoms, system.Particle{
			Element: "Ar", Mass: 39.948, Sigma: sigma, Epsilon: eps,
			Pos: [3]float64{float64(i) * spacing, 0, 0},
		})
	}
	return &system.System{Name: "ar4", Atoms: atoms}
}
