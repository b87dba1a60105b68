// Package energy defines the energy-model contract consumed by the
// propagation engine, plus a built-in pairwise Lennard-Jones/Coulomb model
// for noble-gas-like systems.
package energy

import (
	"github.com/san-kum/molsim/internal/system"
)

// Mode selects how kinetic energy is derived from velocities.
type Mode int

const (
	// Standard computes kinetic energy from the velocities as stored.
	Standard Mode = iota
	// Leapfrog synchronizes the half-stepped velocities by averaging each
	// component with its previous value before squaring.
	Leapfrog
)

func (m Mode) String() string {
	switch m {
	case Standard:
		return "standard"
	case Leapfrog:
		return "leapfrog"
	default:
		return "unknown"
	}
}

// Result is one full evaluation of the system's energetics. All energies are
// in kcal/mol, temperature in K, pressure in bar.
type Result struct {
	Total     float64
	Kinetic   float64
	Potential float64

	Vdw   float64
	Elst  float64
	Bound float64

	Temperature float64
	Pressure    float64
}

// Model is the external collaborator the engine drives. Evaluate is a pure
// function of the current particle positions (and velocities, for the kinetic
// terms); Gradient is evaluated at current positions and is only called by
// the dynamics integrator, never by the Monte-Carlo sampler.
type Model interface {
	Evaluate(mode Mode) (Result, error)
	Gradient() ([][3]float64, error)
}

// Kinetic returns the kinetic energy of sys in kcal/mol under the given
// evaluation mode.
func Kinetic(sys *system.System, mode Mode) float64 {
	var e float64
	for i := range sys.Atoms {
		a := &sys.Atoms[i]
		for j := 0; j < 3; j++ {
			v := a.Vel[j]
			if mode == Leapfrog {
				v = 0.5 * (v + a.PrevVel[j])
			}
			e += 0.5 * a.Mass * v * v
		}
	}
	return e / system.AccConv
}

// Temperature returns the instantaneous kinetic temperature in K for a
// kinetic energy over n atoms.
func Temperature(kinetic float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return 2.0 * kinetic / (3.0 * float64(n) * system.Kb)
}
