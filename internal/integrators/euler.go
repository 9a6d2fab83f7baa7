package integrators

import "gonum.org/v1/gonum/spatial/r3"

// StepEuler advances one particle by dt. The position update uses the
// velocity after it has been updated, which makes this the symplectic
// (semi-implicit) variant of Euler's method.
func StepEuler(pos, vel, acc r3.Vec, dt float64) (r3.Vec, r3.Vec) {
	vel = r3.Add(vel, r3.Scale(dt, acc))
	pos = r3.Add(pos, r3.Scale(dt, vel))
	return pos, vel
}
