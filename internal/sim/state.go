package sim

import (
	"fmt"
	"math"

	"github.com/san-kum/molsim/internal/rng"
	"github.com/san-kum/molsim/internal/system"
)

// Mode selects the propagation scheme for a run.
type Mode int

const (
	MolecularDynamics Mode = iota
	MonteCarlo
)

func (m Mode) String() string {
	switch m {
	case MolecularDynamics:
		return "md"
	case MonteCarlo:
		return "mc"
	default:
		return "unknown"
	}
}

// timeEpsilon seeds the dynamics clock slightly above zero so that the
// accumulated float error in time += dt cannot produce one extra iteration
// of the while time < total loop.
const timeEpsilon = 1e-10

// Config carries the run parameters for either scheme. Time quantities are
// in ps, the temperature in K, the pressure in bar, displacements in A.
type Config struct {
	Mode        Mode
	Temperature float64
	Pressure    float64
	Seed        uint64

	// Molecular dynamics.
	TotalTime float64
	Timestep  float64
	EqTime    float64 // thermal equilibration window
	EqRate    float64 // equilibration rate constant

	// Monte-Carlo.
	TotalConfs   int
	DispMag      float64 // Gaussian sigma of trial displacements
	DispRate     float64 // displacement growth rate (ln 2 when zero)
	DispInterval int     // trials between displacement updates (100 when zero)
}

// State is the mutable simulation state owned by one run. It is created once
// from a Config, mutated in place by every step or trial, and never shared
// across runs.
type State struct {
	Sys  *system.System
	Mode Mode

	Temperature float64 // target, K
	Pressure    float64 // target, bar (reported, not controlled)

	// Time domain (dynamics).
	Time      float64
	TotalTime float64
	Timestep  float64
	EqTime    float64
	EqRate    float64
	ETemp     float64 // exponential moving average of the kinetic temperature

	// Configuration domain (Monte-Carlo).
	Conf         int
	TotalConfs   int
	DispMag      float64
	DispRate     float64
	DispInterval int
	NAccept      int // accepted trials in the current controller window
	NReject      int // rejected trials in the current controller window
	Accepted     int // accepted trials over the whole run
	Rejected     int // rejected trials over the whole run

	RNG *rng.Source
}

// NewState builds the run state and seeds its random source. A zero seed
// selects the generator's fixed default.
func NewState(sys *system.System, cfg Config) *State {
	st := &State{
		Sys:          sys,
		Mode:         cfg.Mode,
		Temperature:  cfg.Temperature,
		Pressure:     cfg.Pressure,
		Time:         timeEpsilon,
		TotalTime:    cfg.TotalTime,
		Timestep:     cfg.Timestep,
		EqTime:       cfg.EqTime,
		EqRate:       cfg.EqRate,
		TotalConfs:   cfg.TotalConfs,
		DispMag:      cfg.DispMag,
		DispRate:     cfg.DispRate,
		DispInterval: cfg.DispInterval,
		RNG:          rng.New(cfg.Seed),
	}
	if st.DispRate == 0 {
		st.DispRate = math.Ln2
	}
	if st.DispInterval == 0 {
		st.DispInterval = 100
	}
	return st
}

func (st *State) validate() error {
	if st.Sys == nil {
		return fmt.Errorf("%w: nil system", ErrInvalidConfiguration)
	}
	if err := st.Sys.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	if st.Temperature < 0 {
		return fmt.Errorf("%w: temperature %g K", ErrInvalidConfiguration, st.Temperature)
	}
	return nil
}

func (st *State) validateMD() error {
	if err := st.validate(); err != nil {
		return err
	}
	if st.Timestep <= 0 {
		return fmt.Errorf("%w: timestep %g ps", ErrInvalidConfiguration, st.Timestep)
	}
	if st.TotalTime <= 0 {
		return fmt.Errorf("%w: total time %g ps", ErrInvalidConfiguration, st.TotalTime)
	}
	if st.EqTime > 0 && st.EqRate <= 0 {
		return fmt.Errorf("%w: equilibration rate %g ps", ErrInvalidConfiguration, st.EqRate)
	}
	return nil
}

func (st *State) validateMC() error {
	if err := st.validate(); err != nil {
		return err
	}
	if st.Temperature <= 0 {
		return fmt.Errorf("%w: monte-carlo needs a positive temperature, got %g K",
			ErrInvalidConfiguration, st.Temperature)
	}
	if st.TotalConfs <= 0 {
		return fmt.Errorf("%w: total configurations %d", ErrInvalidConfiguration, st.TotalConfs)
	}
	if st.DispMag <= 0 {
		return fmt.Errorf("%w: displacement magnitude %g A", ErrInvalidConfiguration, st.DispMag)
	}
	if st.DispRate <= 0 || st.DispInterval <= 0 {
		return fmt.Errorf("%w: displacement update rate %g every %d trials",
			ErrInvalidConfiguration, st.DispRate, st.DispInterval)
	}
	return nil
}
