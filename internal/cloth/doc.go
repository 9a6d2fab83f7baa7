// Package cloth implements a mass-spring model of a square piece of fabric.
//
// A [Cloth] owns a grid of [Particle] values and a flat set of [Spring]
// values that reference particles by index. Three spring families are
// generated over the grid:
//
//   - [Neighbor]: axis-adjacent particles (structural)
//   - [Shear]: both diagonals of every grid cell
//   - [Bending]: particles two cells apart along an axis
//
// Each call to [Cloth.Step] resets accelerations to gravity, accumulates
// every spring force from the pre-step positions, integrates all particles
// with the selected [integrators.Scheme] and finally rewrites the derived
// geometry in package mesh.
//
// # Example
//
//	cfg := cloth.DefaultConfig()
//	c, err := cloth.New(cfg)
//	if err != nil {
//	    return err
//	}
//	for i := 0; i < 100; i++ {
//	    if err := c.Step(0.1, integrators.Euler); err != nil {
//	        return err
//	    }
//	}
//	positions := c.Positions()
//
// # Thread Safety
//
// A Cloth is NOT safe for concurrent use. Independent cloths may be stepped
// from different goroutines.
package cloth
