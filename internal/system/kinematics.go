package system

// UpdateAccelerations recomputes every acceleration from an energy gradient.
// The force is the negated gradient, so acc = -AccConv * grad / mass.
// Previous accelerations are snapshotted first.
func (s *System) UpdateAccelerations(grad [][3]float64) {
	for i := range s.Atoms {
		a := &s.Atoms[i]
		for j := 0; j < 3; j++ {
			a.PrevAcc[j] = a.Acc[j]
			a.Acc[j] = -AccConv * grad[i][j] / a.Mass
		}
	}
}

// UpdateVelocities advances every velocity by acceleration over dt.
// The leapfrog stagger comes from the call sites: a half step once at the
// start of a dynamics run, a full step every iteration after.
func (s *System) UpdateVelocities(dt float64) {
	for i := range s.Atoms {
		a := &s.Atoms[i]
		for j := 0; j < 3; j++ {
			a.PrevVel[j] = a.Vel[j]
			a.Vel[j] += a.Acc[j] * dt
		}
	}
}

// UpdatePositions advances every position by velocity over vconst*dt and by
// acceleration over aconst*dt^2. Leapfrog propagation uses (1, 0); the
// parameterization exists so other integrators can share the primitive.
func (s *System) UpdatePositions(dt, vconst, aconst float64) {
	vdt := vconst * dt
	adt2 := aconst * dt * dt
	for i := range s.Atoms {
		a := &s.Atoms[i]
		for j := 0; j < 3; j++ {
			a.PrevPos[j] = a.Pos[j]
			a.Pos[j] += a.Vel[j]*vdt + a.Acc[j]*adt2
		}
	}
}

// Displace adds disp[i] to atom i's position. Applying disp and then its
// negation restores every coordinate exactly, which is what the Monte-Carlo
// rejection path relies on.
func (s *System) Displace(disp [][3]float64) {
	for i := range s.Atoms {
		a := &s.Atoms[i]
		for j := 0; j < 3; j++ {
			a.PrevPos[j] = a.Pos[j]
			a.Pos[j] += disp[i][j]
		}
	}
}

// ZeroVelocities clears every velocity component.
func (s *System) ZeroVelocities() {
	for i := range s.Atoms {
		for j := 0; j < 3; j++ {
			s.Atoms[i].Vel[j] = 0
		}
	}
}

// ScaleVelocities multiplies every velocity component by scale. Used by
// velocity initialization and the thermostat; scaling is a correction, not a
// propagation step, so it does not touch the previous-value snapshots.
func (s *System) ScaleVelocities(scale float64) {
	for i := range s.Atoms {
		a := &s.Atoms[i]
		for j := 0; j < 3; j++ {
			a.Vel[j] *= scale
		}
	}
}
