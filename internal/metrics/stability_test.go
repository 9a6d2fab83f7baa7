package metrics_test

import (
	"testing"

	. "github.com/onsi/gomega"
	"github.com/san-kum/clothsim/internal/integrators"
	"github.com/san-kum/clothsim/internal/metrics"
)

func TestStrains(t *testing.T) {
	g := NewWithT(t)
	c := hanging(t)

	strains := metrics.Strains(c)
	g.Expect(strains).To(HaveLen(len(c.Springs())))
	for _, s := range strains {
		g.Expect(s).To(BeZero())
	}

	g.Expect(c.Step(0.1, integrators.Euler)).To(Succeed())
	g.Expect(metrics.Strains(c)).To(ContainElement(BeNumerically(">", 0)))
}

func TestMaxStrain(t *testing.T) {
	g := NewWithT(t)
	c := hanging(t)
	m := metrics.NewMaxStrain()

	m.Observe(c, 0)
	g.Expect(m.Value()).To(BeZero())

	var peak float64
	for i := 0; i < 20; i++ {
		g.Expect(c.Step(0.1, integrators.Euler)).To(Succeed())
		m.Observe(c, 0)
		for _, s := range metrics.Strains(c) {
			if s > peak {
				peak = s
			}
		}
	}
	g.Expect(m.Value()).To(Equal(peak))

	m.Reset()
	g.Expect(m.Value()).To(BeZero())
}

func TestStability(t *testing.T) {
	g := NewWithT(t)
	c := hanging(t)

	s := metrics.NewStability(1.0)
	g.Expect(s.Value()).To(Equal(1.0))
	s.Observe(c, 0)
	g.Expect(s.Value()).To(Equal(1.0))

	strict := metrics.NewStability(-1)
	strict.Observe(c, 0)
	strict.Observe(c, 0)
	g.Expect(strict.Value()).To(BeZero())

	strict.Reset()
	g.Expect(strict.Value()).To(Equal(1.0))
}
