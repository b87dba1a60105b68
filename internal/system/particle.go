package system

import (
	"fmt"
	"math"
)

// Particle is one atom of the simulated system. Mass is fixed after
// construction; the Prev* fields hold the value each kinematic quantity had
// immediately before its last overwrite.
type Particle struct {
	Element string
	Mass    float64 // amu
	Charge  float64 // e
	Sigma   float64 // Lennard-Jones diameter, A
	Epsilon float64 // Lennard-Jones well depth, kcal/mol

	Pos [3]float64 // A
	Vel [3]float64 // A/ps
	Acc [3]float64 // A/ps^2

	PrevPos [3]float64
	PrevVel [3]float64
	PrevAcc [3]float64
}

// System is an ordered collection of particles; index i always refers to the
// same physical atom for the lifetime of a run.
type System struct {
	Name  string
	Atoms []Particle

	// Spherical boundary. Radius 0 means unbounded.
	BoundaryRadius float64 // A
	BoundarySpring float64 // kcal/(mol*A^2)
}

func (s *System) NumAtoms() int { return len(s.Atoms) }

// Validate reports whether the system can be propagated at all.
func (s *System) Validate() error {
	if len(s.Atoms) == 0 {
		return fmt.Errorf("system %q has no atoms", s.Name)
	}
	for i := range s.Atoms {
		if s.Atoms[i].Mass <= 0 {
			return fmt.Errorf("atom %d (%s): mass must be positive, got %g",
				i, s.Atoms[i].Element, s.Atoms[i].Mass)
		}
	}
	return nil
}

// Finite reports whether every position, velocity and acceleration component
// is a finite number.
func (s *System) Finite() bool {
	for i := range s.Atoms {
		a := &s.Atoms[i]
		for j := 0; j < 3; j++ {
			if !finite(a.Pos[j]) || !finite(a.Vel[j]) || !finite(a.Acc[j]) {
				return false
			}
		}
	}
	return true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Volume returns the volume enclosed by the spherical boundary, or 0 when
// the system is unbounded.
func (s *System) Volume() float64 {
	if s.BoundaryRadius <= 0 {
		return 0
	}
	r := s.BoundaryRadius
	return 4.0 / 3.0 * math.Pi * r * r * r
}
