package metrics_test

import (
	"testing"

	. "github.com/onsi/gomega"
	"github.com/san-kum/clothsim/internal/integrators"
	"github.com/san-kum/clothsim/internal/metrics"
)

func TestSag(t *testing.T) {
	g := NewWithT(t)
	c := hanging(t)
	s := metrics.NewSag()

	s.Observe(c, 0)
	g.Expect(s.Value()).To(BeZero())

	g.Expect(c.Step(0.1, integrators.Euler)).To(Succeed())
	s.Observe(c, 0.1)
	g.Expect(s.Value()).To(BeNumerically("~", -0.001, 1e-15))

	s.Reset()
	g.Expect(s.Value()).To(BeZero())
}

func TestCenterDrift(t *testing.T) {
	g := NewWithT(t)
	c := hanging(t)
	d := metrics.NewCenterDrift()
	g.Expect(d.Value()).To(BeZero())

	d.Observe(c, 0)
	g.Expect(d.Value()).To(BeZero())

	// center is the midpoint of particle 0 (free) and particle 8 (pinned)
	g.Expect(c.Step(0.1, integrators.Euler)).To(Succeed())
	d.Observe(c, 0.1)
	g.Expect(d.Value()).To(BeNumerically("~", 0.0005, 1e-15))
}

func TestDefault(t *testing.T) {
	g := NewWithT(t)
	ms := metrics.Default()

	names := make(map[string]bool)
	for _, m := range ms {
		names[m.Name()] = true
	}
	g.Expect(names).To(HaveLen(len(ms)))
	g.Expect(names).To(HaveKey("sag"))
	g.Expect(names).To(HaveKey("kinetic_energy"))

	// fresh instances on every call
	g.Expect(metrics.Default()[0]).NotTo(BeIdenticalTo(ms[0]))
}
