package integrators

import "gonum.org/v1/gonum/spatial/r3"

// StepMidpoint advances one particle by dt using two velocity half steps.
// The first half step uses the accumulated acceleration; the acceleration
// is then replaced by gravity alone for the second half step. Spring forces
// are not re-evaluated at the half-stepped state, so this is not a true
// midpoint method.
//
// The returned acceleration is the value left on the particle (gravity).
func StepMidpoint(pos, vel, acc, gravity r3.Vec, dt float64) (r3.Vec, r3.Vec, r3.Vec) {
	half := dt * 0.5
	vel = r3.Add(vel, r3.Scale(half, acc))

	acc = gravity
	vel = r3.Add(vel, r3.Scale(half, acc))
	pos = r3.Add(pos, r3.Scale(dt, vel))
	return pos, vel, acc
}

// Step dispatches to the update function for s. Euler leaves the
// acceleration untouched.
func Step(s Scheme, pos, vel, acc, gravity r3.Vec, dt float64) (r3.Vec, r3.Vec, r3.Vec, error) {
	switch s {
	case Euler:
		p, v := StepEuler(pos, vel, acc, dt)
		return p, v, acc, nil
	case Midpoint:
		p, v, a := StepMidpoint(pos, vel, acc, gravity, dt)
		return p, v, a, nil
	}
	return pos, vel, acc, ErrUnknownScheme
}
