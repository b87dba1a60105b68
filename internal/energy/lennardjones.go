package energy

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/molsim/internal/system"
)

// CoulConv converts e^2/A into kcal/mol.
const CoulConv = 332.0637

// ErrSingularGeometry reports coincident atoms, for which neither the energy
// nor its gradient is defined. Retrying without changing the configuration
// cannot succeed, so callers should abort the run.
var ErrSingularGeometry = errors.New("energy: coincident atoms (singular geometry)")

// LennardJones is a pairwise van der Waals + electrostatic model with an
// optional harmonic spherical boundary. Mixing rules are geometric for the
// well depth and arithmetic for the diameter.
type LennardJones struct {
	sys *system.System
}

func NewLennardJones(sys *system.System) *LennardJones {
	return &LennardJones{sys: sys}
}

// Evaluate computes the full energy decomposition plus the instantaneous
// kinetic temperature and virial pressure at the current configuration.
func (m *LennardJones) Evaluate(mode Mode) (Result, error) {
	var res Result
	sys := m.sys
	n := sys.NumAtoms()

	var virial float64
	for i := 0; i < n; i++ {
		ai := &sys.Atoms[i]
		for j := i + 1; j < n; j++ {
			aj := &sys.Atoms[j]
			r := distance(ai.Pos, aj.Pos)
			if r == 0 {
				return Result{}, fmt.Errorf("%w: atoms %d and %d", ErrSingularGeometry, i, j)
			}
			eps := math.Sqrt(ai.Epsilon * aj.Epsilon)
			sig := 0.5 * (ai.Sigma + aj.Sigma)

			sr6 := math.Pow(sig/r, 6)
			sr12 := sr6 * sr6
			res.Vdw += 4 * eps * (sr12 - sr6)
			dvdr := 24 * eps / r * (sr6 - 2*sr12)
			virial -= r * dvdr

			if ai.Charge != 0 && aj.Charge != 0 {
				qq := CoulConv * ai.Charge * aj.Charge
				res.Elst += qq / r
				virial -= r * (-qq / (r * r))
			}
		}
	}

	if sys.BoundaryRadius > 0 && sys.BoundarySpring > 0 {
		for i := 0; i < n; i++ {
			d := norm(sys.Atoms[i].Pos)
			if d > sys.BoundaryRadius {
				out := d - sys.BoundaryRadius
				res.Bound += sys.BoundarySpring * out * out
				virial -= d * 2 * sys.BoundarySpring * out
			}
		}
	}

	res.Potential = res.Vdw + res.Elst + res.Bound
	res.Kinetic = Kinetic(sys, mode)
	res.Total = res.Potential + res.Kinetic
	res.Temperature = Temperature(res.Kinetic, n)
	if vol := sys.Volume(); vol > 0 {
		res.Pressure = system.PressConv * (float64(n)*system.Kb*res.Temperature + virial/3) / vol
	}
	return res, nil
}

// Gradient returns dE/dr per atom in kcal/(mol*A) at the current positions.
func (m *LennardJones) Gradient() ([][3]float64, error) {
	sys := m.sys
	n := sys.NumAtoms()
	grad := make([][3]float64, n)

	for i := 0; i < n; i++ {
		ai := &sys.Atoms[i]
		for j := i + 1; j < n; j++ {
			aj := &sys.Atoms[j]
			r := distance(ai.Pos, aj.Pos)
			if r == 0 {
				return nil, fmt.Errorf("%w: atoms %d and %d", ErrSingularGeometry, i, j)
			}
			eps := math.Sqrt(ai.Epsilon * aj.Epsilon)
			sig := 0.5 * (ai.Sigma + aj.Sigma)

			sr6 := math.Pow(sig/r, 6)
			sr12 := sr6 * sr6
			dvdr := 24 * eps / r * (sr6 - 2*sr12)
			if ai.Charge != 0 && aj.Charge != 0 {
				dvdr -= CoulConv * ai.Charge * aj.Charge / (r * r)
			}

			for k := 0; k < 3; k++ {
				dir := (ai.Pos[k] - aj.Pos[k]) / r
				grad[i][k] += dvdr * dir
				grad[j][k] -= dvdr * dir
			}
		}
	}

	if sys.BoundaryRadius > 0 && sys.BoundarySpring > 0 {
		for i := 0; i < n; i++ {
			d := norm(sys.Atoms[i].Pos)
			if d > sys.BoundaryRadius {
				dvdd := 2 * sys.BoundarySpring * (d - sys.BoundaryRadius)
				for k := 0; k < 3; k++ {
					grad[i][k] += dvdd * sys.Atoms[i].Pos[k] / d
				}
			}
		}
	}
	return grad, nil
}

func distance(a, b [3]float64) float64 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	dz := a[2] - b[2]
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

func norm(a [3]float64) float64 {
	return math.Sqrt(a[0]*a[0] + a[1]*a[1] + a[2]*a[2])
}
