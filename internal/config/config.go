// Package config reads and validates run configurations and builds the
// particle system they describe.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/molsim/internal/sim"
	"github.com/san-kum/molsim/internal/system"
)

const (
	DefaultTemperature = 298.15
	DefaultPressure    = 1.0
	DefaultTotalTime   = 1.0
	DefaultTimestep    = 0.001
	DefaultEqRate      = 2.0
	DefaultEnergyTime  = 0.01
	DefaultGeomTime    = 0.01
	DefaultTotalConfs  = 1000
	DefaultDispMag     = 0.1
	DefaultDispConfs   = 100
	DefaultEnergyConfs = 100
	DefaultGeomConfs   = 100
	DefaultStatusEvery = 60.0
	DefaultEnergyOut   = "energy.dat"
	DefaultGeomOut     = "geom.xyz"
)

// Config is the YAML run description. Times are in ps, temperature in K,
// pressure in bar, lengths in A.
type Config struct {
	Name        string  `yaml:"name"`
	Mode        string  `yaml:"mode"` // "md" or "mc"
	Temperature float64 `yaml:"temperature"`
	Pressure    float64 `yaml:"pressure"`
	Seed        uint64  `yaml:"seed"`

	TotalTime  float64 `yaml:"total_time"`
	Timestep   float64 `yaml:"timestep"`
	EqTime     float64 `yaml:"eq_time"`
	EqRate     float64 `yaml:"eq_rate"`
	EnergyTime float64 `yaml:"energy_time"`
	GeomTime   float64 `yaml:"geom_time"`

	TotalConfs  int     `yaml:"total_confs"`
	DispMag     float64 `yaml:"disp_mag"`
	DispConfs   int     `yaml:"disp_confs"`
	EnergyConfs int     `yaml:"energy_confs"`
	GeomConfs   int     `yaml:"geom_confs"`

	StatusEvery float64 `yaml:"status_time"` // seconds of wall clock
	EnergyOut   string  `yaml:"energy_out"`
	GeomOut     string  `yaml:"geom_out"`

	Boundary BoundaryConfig `yaml:"boundary"`
	Atoms    []AtomConfig   `yaml:"atoms"`
}

type BoundaryConfig struct {
	Radius float64 `yaml:"radius"` // A; 0 disables the boundary
	Spring float64 `yaml:"spring"` // kcal/(mol*A^2)
}

type AtomConfig struct {
	Element  string     `yaml:"element"`
	Position [3]float64 `yaml:"position"`
	Charge   float64    `yaml:"charge"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:        "system",
		Mode:        "md",
		Temperature: DefaultTemperature,
		Pressure:    DefaultPressure,
		TotalTime:   DefaultTotalTime,
		Timestep:    DefaultTimestep,
		EqRate:      DefaultEqRate,
		EnergyTime:  DefaultEnergyTime,
		GeomTime:    DefaultGeomTime,
		TotalConfs:  DefaultTotalConfs,
		DispMag:     DefaultDispMag,
		DispConfs:   DefaultDispConfs,
		EnergyConfs: DefaultEnergyConfs,
		GeomConfs:   DefaultGeomConfs,
		StatusEvery: DefaultStatusEvery,
		EnergyOut:   DefaultEnergyOut,
		GeomOut:     DefaultGeomOut,
	}
}

// Load reads path over the defaults, so absent keys keep their default
// values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	switch c.Mode {
	case "md", "mc":
	default:
		return fmt.Errorf("config: mode must be md or mc, got %q", c.Mode)
	}
	if len(c.Atoms) == 0 {
		return fmt.Errorf("config: no atoms")
	}
	for i, a := range c.Atoms {
		if _, ok := elements[a.Element]; !ok {
			return fmt.Errorf("config: atom %d: unknown element %q", i, a.Element)
		}
	}
	return nil
}

// SimMode maps the textual mode onto the engine's enumeration.
func (c *Config) SimMode() sim.Mode {
	if c.Mode == "mc" {
		return sim.MonteCarlo
	}
	return sim.MolecularDynamics
}

// SimConfig translates the file-level parameters into the engine's Config.
func (c *Config) SimConfig() sim.Config {
	return sim.Config{
		Mode:         c.SimMode(),
		Temperature:  c.Temperature,
		Pressure:     c.Pressure,
		Seed:         c.Seed,
		TotalTime:    c.TotalTime,
		Timestep:     c.Timestep,
		EqTime:       c.EqTime,
		EqRate:       c.EqRate,
		TotalConfs:   c.TotalConfs,
		DispMag:      c.DispMag,
		DispInterval: c.DispConfs,
	}
}

// element carries the per-species mass and Lennard-Jones parameters.
type element struct {
	mass    float64 // amu
	sigma   float64 // A
	epsilon float64 // kcal/mol
}

var elements = map[string]element{
	"He": {4.0026, 2.556, 0.0203},
	"Ne": {20.180, 2.749, 0.0692},
	"Ar": {39.948, 3.405, 0.2380},
	"Kr": {83.798, 3.600, 0.3250},
	"Xe": {131.293, 3.961, 0.4330},
}

// BuildSystem materializes the configured atoms into a particle system.
func (c *Config) BuildSystem() (*system.System, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	sys := &system.System{
		Name:           c.Name,
		Atoms:          make([]system.Particle, 0, len(c.Atoms)),
		BoundaryRadius: c.Boundary.Radius,
		BoundarySpring: c.Boundary.Spring,
	}
	for _, a := range c.Atoms {
		el := elements[a.Element]
		sys.Atoms = append(sys.Atoms, system.Particle{
			Element: a.Element,
			Mass:    el.mass,
			Charge:  a.Charge,
			Sigma:   el.sigma,
			Epsilon: el.epsilon,
			Pos:     a.Position,
		})
	}
	return sys, nil
}
