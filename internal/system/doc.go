// Package system holds the particle state shared by the molecular dynamics
// integrator and the Monte-Carlo sampler, along with the per-particle
// kinematic update primitives both of them use:
//
//   - [System.UpdateAccelerations]: accelerations from an energy gradient
//   - [System.UpdateVelocities]: velocity propagation over a time increment
//   - [System.UpdatePositions]: position propagation over a time increment
//   - [System.Displace]: uniform coordinate displacement (and its reversal)
//   - [System.ZeroVelocities]: deterministic entry into Monte-Carlo runs
//
// Every primitive snapshots the previous value of the quantity it overwrites,
// so one level of history is always available for diagnostics and rollback.
//
// Units follow the amu / Angstrom / picosecond / kcal-per-mol system; the
// conversion constants live in units.go.
package system
