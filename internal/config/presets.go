package config

import "sort"

// Presets are ready-to-run configurations for common small systems.
var Presets = map[string]func() *Config{
	// Argon dimer near the potential minimum, short dynamics run.
	"ar2-md": func() *Config {
		c := DefaultConfig()
		c.Name = "ar2"
		c.Mode = "md"
		c.Temperature = 120
		c.TotalTime = 10.0
		c.EqTime = 1.0
		c.Atoms = []AtomConfig{
			{Element: "Ar", Position: [3]float64{0, 0, 0}},
			{Element: "Ar", Position: [3]float64{3.82, 0, 0}},
		}
		return c
	},
	// Eight argon atoms on a cube, Metropolis walk in a soft sphere.
	"ar8-mc": func() *Config {
		c := DefaultConfig()
		c.Name = "ar8"
		c.Mode = "mc"
		c.Temperature = 120
		c.TotalConfs = 5000
		c.DispMag = 0.2
		c.Boundary = BoundaryConfig{Radius: 8, Spring: 10}
		c.Atoms = cube("Ar", 3.9)
		return c
	},
	// Light neon cluster with a longer equilibration window.
	"ne8-md": func() *Config {
		c := DefaultConfig()
		c.Name = "ne8"
		c.Mode = "md"
		c.Temperature = 40
		c.TotalTime = 20.0
		c.EqTime = 5.0
		c.Boundary = BoundaryConfig{Radius: 8, Spring: 10}
		c.Atoms = cube("Ne", 3.1)
		return c
	},
}

// cube places eight atoms of one element on the corners of a cube with the
// given edge length.
func cube(el string, edge float64) []AtomConfig {
	var atoms []AtomConfig
	for i := 0; i < 8; i++ {
		atoms = append(atoms, AtomConfig{
			Element: el,
			Position: [3]float64{
				float64(i&1) * edge,
				float64(i>>1&1) * edge,
				float64(i>>2&1) * edge,
			},
		})
	}
	return atoms
}

// GetPreset returns a fresh copy of the named preset, or nil.
func GetPreset(name string) *Config {
	f, ok := Presets[name]
	if !ok {
		return nil
	}
	return f()
}

// ListPresets returns the preset names in stable order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
