package cloth

import (
	"fmt"
	"math"
	"slices"

	"github.com/san-kum/clothsim/internal/integrators"
	"github.com/san-kum/clothsim/internal/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// Cloth owns a square particle grid, the springs between its particles and
// the geometry derived from them.
type Cloth struct {
	cfg           Config
	width, height int
	gravity       r3.Vec

	particles []Particle
	springs   []Spring
	forces    []r3.Vec

	surface  *mesh.Mesh
	segments []mesh.Segment
	markers  []mesh.Marker

	steps    int
	released bool
}

// New builds the grid, generates the enabled spring families and derives
// the initial geometry.
func New(cfg Config) (*Cloth, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Cloth{
		cfg:     cfg,
		width:   cfg.Dimension,
		height:  cfg.Dimension,
		gravity: cfg.Gravity,
	}
	c.cfg.Pinned = slices.Clone(cfg.Pinned)

	c.particles = make([]Particle, 0, c.width*c.height)
	for x := 0; x < c.width; x++ {
		for y := 0; y < c.height; y++ {
			pos := r3.Vec{X: float64(x), Y: 0, Z: float64(y)}
			c.particles = append(c.particles, NewParticle(pos, cfg.Mass, c.gravity))
		}
	}

	pinned := cfg.Pinned
	if pinned == nil {
		pinned = DefaultPinned(c.width, c.height)
	}
	for _, idx := range pinned {
		c.particles[idx].Pinned = true
	}

	for _, f := range Families() {
		fam := cfg.Family(f)
		if !fam.Enabled {
			continue
		}
		for _, p := range Pairs(f, c.width, c.height) {
			c.springs = append(c.springs, NewSpring(c.particles, p.A, p.B, fam.K, f))
		}
	}
	c.forces = make([]r3.Vec, len(c.springs))

	c.segments = make([]mesh.Segment, len(c.springs))
	for i, s := range c.springs {
		c.segments[i].Color = c.springColor(s.Family)
		s.SyncGeometry(c.particles, &c.segments[i])
	}
	c.markers = make([]mesh.Marker, len(c.particles))
	for i := range c.particles {
		c.markers[i] = mesh.NewMarker(c.particles[i].Position)
	}
	c.surface = mesh.New(c.width, c.height, c.Positions())

	return c, nil
}

func (c *Cloth) springColor(f Family) mesh.Color {
	if !c.cfg.ColorSprings {
		return mesh.DefaultSpringColor
	}
	return c.cfg.Family(f).Color
}

// Step advances the cloth by dt using the gravity it was built with.
func (c *Cloth) Step(dt float64, scheme integrators.Scheme) error {
	return c.StepWithGravity(dt, scheme, c.gravity)
}

// StepWithGravity advances the cloth by dt under the given gravity. All
// spring forces are computed from the pre-step positions before any
// particle moves.
func (c *Cloth) StepWithGravity(dt float64, scheme integrators.Scheme, gravity r3.Vec) error {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return fmt.Errorf("%w: dt must be positive and finite, got %v", ErrInvalidStepInput, dt)
	}
	if !scheme.Valid() {
		return fmt.Errorf("%w: %w", ErrInvalidStepInput, integrators.ErrUnknownScheme)
	}
	if c.released {
		return ErrReleased
	}

	for i := range c.particles {
		c.particles[i].resetForces(gravity)
	}

	c.accumulateForces()

	for i := range c.particles {
		if err := c.particles[i].Integrate(dt, scheme, gravity); err != nil {
			return err
		}
	}

	c.syncGeometry()
	c.steps++
	return nil
}

func (c *Cloth) accumulateForces() {
	parallelFor(len(c.springs), c.cfg.Workers, func(start, end int) {
		for i := start; i < end; i++ {
			c.forces[i] = c.springs[i].Force(c.particles)
		}
	})
	for i, s := range c.springs {
		f := c.forces[i]
		c.particles[s.A].ApplyForce(f)
		c.particles[s.B].ApplyForce(r3.Scale(-1, f))
	}
}

func (c *Cloth) syncGeometry() {
	for i, s := range c.springs {
		s.SyncGeometry(c.particles, &c.segments[i])
	}
	for i := range c.particles {
		c.markers[i].Position = c.particles[i].Position
	}
	if !c.cfg.MeshRendered {
		return
	}
	c.surface.Sync(c.Positions())
}

// Reset releases the geometry. Particle state is left alone; restarting a
// simulation means building a new Cloth from the same Config.
func (c *Cloth) Reset() {
	if c.released {
		return
	}
	c.surface.Release()
	c.segments = nil
	c.markers = nil
	c.released = true
}

// Released reports whether Reset has freed the geometry.
func (c *Cloth) Released() bool { return c.released }

// Center is the midpoint between the first and the last particle.
func (c *Cloth) Center() r3.Vec {
	first := c.particles[0].Position
	last := c.particles[len(c.particles)-1].Position
	return r3.Scale(0.5, r3.Add(first, last))
}

// ExportGeometry returns a copy of every particle marker and every spring
// segment. Both are nil after Reset.
func (c *Cloth) ExportGeometry() ([]mesh.Marker, []mesh.Segment) {
	if c.released {
		return nil, nil
	}
	markers := append([]mesh.Marker(nil), c.markers...)
	segments := append([]mesh.Segment(nil), c.segments...)
	return markers, segments
}

// Positions returns a snapshot of particle positions in grid order.
func (c *Cloth) Positions() []r3.Vec {
	out := make([]r3.Vec, len(c.particles))
	for i := range c.particles {
		out[i] = c.particles[i].Position
	}
	return out
}

// Particles returns a copy of the particle sequence.
func (c *Cloth) Particles() []Particle {
	return append([]Particle(nil), c.particles...)
}

// Springs returns a copy of the spring set.
func (c *Cloth) Springs() []Spring {
	return append([]Spring(nil), c.springs...)
}

// SpringForces returns the force on each spring's A endpoint from the last step.
func (c *Cloth) SpringForces() []r3.Vec {
	return append([]r3.Vec(nil), c.forces...)
}

// SpringCount reports how many springs of family f were generated.
func (c *Cloth) SpringCount(f Family) int {
	n := 0
	for _, s := range c.springs {
		if s.Family == f {
			n++
		}
	}
	return n
}

// Mesh is the solid surface. Its vertex buffer only tracks the particles
// when the cloth was built with MeshRendered.
func (c *Cloth) Mesh() *mesh.Mesh { return c.surface }

// Finite reports whether every particle position and velocity is finite.
func (c *Cloth) Finite() bool {
	for i := range c.particles {
		if !c.particles[i].finite() {
			return false
		}
	}
	return true
}

// Width and Height are the grid size in particles.
func (c *Cloth) Width() int  { return c.width }
func (c *Cloth) Height() int { return c.height }

// Gravity is the acceleration Step applies.
func (c *Cloth) Gravity() r3.Vec { return c.gravity }

// Steps counts successful steps since construction.
func (c *Cloth) Steps() int { return c.steps }

// Config returns the configuration the cloth was built with.
func (c *Cloth) Config() Config {
	cfg := c.cfg
	cfg.Pinned = slices.Clone(c.cfg.Pinned)
	return cfg
}
