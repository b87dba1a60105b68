package system

// Unit conversion constants for the amu/Angstrom/ps/kcal-mol unit system.
const (
	// Rgas is the gas constant in amu*A^2/(ps^2*K).
	Rgas = 0.83144598

	// AccConv converts a gradient in kcal/(mol*A) over a mass in amu into
	// an acceleration in A/ps^2.
	AccConv = 418.400000

	// Kb is the Boltzmann constant in kcal/(mol*K).
	Kb = 0.001987204

	// PressConv converts kcal/(mol*A^3) into bar.
	PressConv = 69476.95
)
