// Package sim is the propagation engine: it advances a particle system
// forward in simulated time with a leapfrog molecular dynamics integrator,
// or samples its configuration space with a Metropolis Monte-Carlo walk.
//
// The engine owns a single [State] per run and drives an [energy.Model]
// supplied by the caller:
//
//	st := sim.NewState(sys, cfg)
//	md := sim.NewMD(st, energy.NewLennardJones(sys), reporter)
//	err := md.Run(ctx)
//
// Runs are single-threaded and synchronous. All randomness flows through the
// one seeded source owned by the State, so a fixed seed reproduces a run bit
// for bit, including the exact sequence of Monte-Carlo accept/reject
// decisions.
//
// # Output
//
// Both runners call their [Reporter] with force=true once at the start and
// once after the loop exits, and once per step/accepted configuration in
// between; Close is guaranteed to run even when a step fails, so output
// written before a failure stays flushed and well formed.
package sim
