package metrics_test

import (
	"context"
	"math"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/integrators"
	"github.com/san-kum/clothsim/internal/metrics"
	"github.com/san-kum/clothsim/internal/sim"
	"gonum.org/v1/gonum/spatial/r3"
)

func hanging(t *testing.T) *cloth.Cloth {
	t.Helper()
	c, err := cloth.New(cloth.Config{
		Dimension: 3,
		Mass:      1,
		Neighbor:  cloth.SpringFamily{Enabled: true, K: 1},
		Gravity:   r3.Vec{Y: -0.1},
		Pinned:    []int{2, 5, 8},
	})
	if err != nil {
		t.Fatalf("cloth.New: %v", err)
	}
	return c
}

func TestEnergyAtRest(t *testing.T) {
	g := NewWithT(t)
	c := hanging(t)

	g.Expect(metrics.Kinetic(c)).To(BeZero())
	g.Expect(metrics.Potential(c)).To(BeZero())
	g.Expect(metrics.Elastic(c)).To(BeZero())
	g.Expect(metrics.Total(c)).To(BeZero())
}

func TestEnergyAfterOneStep(t *testing.T) {
	g := NewWithT(t)
	c := hanging(t)
	g.Expect(c.Step(0.1, integrators.Euler)).To(Succeed())

	// six free unit masses at v=-0.01, y=-0.001
	g.Expect(metrics.Kinetic(c)).To(BeNumerically("~", 6*0.5*1e-4, 1e-15))
	g.Expect(metrics.Potential(c)).To(BeNumerically("~", 6*0.1*-0.001, 1e-15))

	// the three springs from the middle column to the pinned row stretch
	stretched := math.Sqrt(1+1e-6) - 1
	g.Expect(metrics.Elastic(c)).To(BeNumerically("~", 3*0.5*stretched*stretched, 1e-15))
}

func TestKineticEnergyMean(t *testing.T) {
	g := NewWithT(t)
	c := hanging(t)
	m := metrics.NewKineticEnergy()

	m.Observe(c, 0)
	g.Expect(c.Step(0.1, integrators.Euler)).To(Succeed())
	m.Observe(c, 0.1)

	g.Expect(m.Value()).To(BeNumerically("~", metrics.Kinetic(c)/2, 1e-15))

	m.Reset()
	g.Expect(m.Value()).To(BeZero())
}

func TestEnergyDrift(t *testing.T) {
	g := NewWithT(t)
	c := hanging(t)
	m := metrics.NewEnergyDrift()

	// the resting cloth has zero energy; the first non-zero total becomes the baseline
	m.Observe(c, 0)
	g.Expect(m.Value()).To(BeZero())
	g.Expect(c.Step(0.1, integrators.Euler)).To(Succeed())
	g.Expect(metrics.Total(c)).NotTo(BeZero())
	m.Observe(c, 0.1)
	g.Expect(m.Value()).To(BeZero())

	baseline := metrics.Total(c)
	want := 0.0
	for i := 0; i < 50; i++ {
		g.Expect(c.Step(0.1, integrators.Euler)).To(Succeed())
		m.Observe(c, 0)
		want = math.Max(want, math.Abs(metrics.Total(c)-baseline)/math.Abs(baseline))
	}
	g.Expect(m.Value()).To(BeNumerically(">", 0))
	g.Expect(m.Value()).To(BeNumerically("~", want, 1e-12))

	m.Reset()
	g.Expect(m.Value()).To(BeZero())
}

func TestEnergyDriftThroughSimulator(t *testing.T) {
	g := NewWithT(t)
	c, err := cloth.New(cloth.DefaultConfig())
	g.Expect(err).NotTo(HaveOccurred())

	result, err := sim.New(sim.WithMetrics(metrics.Default()...)).Run(context.Background(), c, sim.RunConfig{
		Dt:       0.1,
		Duration: 20,
		Scheme:   integrators.Euler,
	})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(metrics.Total(c)).NotTo(BeZero())
	g.Expect(result.Metrics).To(HaveKey("energy_drift"))
	g.Expect(result.Metrics["energy_drift"]).To(BeNumerically(">", 0))
}

func TestPointInTimeMetrics(t *testing.T) {
	g := NewWithT(t)
	c := hanging(t)
	pe, se := metrics.NewPotentialEnergy(), metrics.NewSpringEnergy()

	for i := 0; i < 5; i++ {
		g.Expect(c.Step(0.1, integrators.Euler)).To(Succeed())
		pe.Observe(c, 0)
		se.Observe(c, 0)
	}
	g.Expect(pe.Value()).To(Equal(metrics.Potential(c)))
	g.Expect(se.Value()).To(Equal(metrics.Elastic(c)))

	pe.Reset()
	se.Reset()
	g.Expect(pe.Value()).To(BeZero())
	g.Expect(se.Value()).To(BeZero())
}
