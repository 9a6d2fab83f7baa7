package integrators

import (
	"errors"
	"testing"

	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r3"
)

var gravity = r3.Vec{Y: -0.1}

func TestStepEuler_Gravity(t *testing.T) {
	g := NewWithT(t)

	pos, vel := StepEuler(r3.Vec{}, r3.Vec{}, gravity, 0.1)

	g.Expect(vel.Y).To(BeNumerically("~", -0.01, 1e-12))
	g.Expect(pos.Y).To(BeNumerically("~", -0.001, 1e-12))
	g.Expect(vel.X).To(BeZero())
	g.Expect(pos.Z).To(BeZero())
}

func TestStepEuler_UsesUpdatedVelocity(t *testing.T) {
	g := NewWithT(t)

	// textbook explicit Euler would leave the position untouched here
	pos, _ := StepEuler(r3.Vec{}, r3.Vec{}, r3.Vec{X: 2}, 0.5)
	g.Expect(pos.X).To(Equal(0.5))
}

func TestStepMidpoint_GravityOnlyMatchesEuler(t *testing.T) {
	g := NewWithT(t)

	pe, ve := StepEuler(r3.Vec{X: 1}, r3.Vec{Y: 0.3}, gravity, 0.1)
	pm, vm, am := StepMidpoint(r3.Vec{X: 1}, r3.Vec{Y: 0.3}, gravity, gravity, 0.1)

	g.Expect(vm.Y).To(BeNumerically("~", ve.Y, 1e-12))
	g.Expect(pm.Y).To(BeNumerically("~", pe.Y, 1e-12))
	g.Expect(am).To(Equal(gravity))
}

func TestStepMidpoint_DropsSecondHalfOfSpringForce(t *testing.T) {
	g := NewWithT(t)

	acc := r3.Vec{X: 1}
	pos, vel, left := StepMidpoint(r3.Vec{}, r3.Vec{}, acc, r3.Vec{}, 0.1)

	g.Expect(vel.X).To(BeNumerically("~", 0.05, 1e-12))
	g.Expect(pos.X).To(BeNumerically("~", 0.005, 1e-12))
	g.Expect(left).To(Equal(r3.Vec{}))
}

func TestStep_Dispatch(t *testing.T) {
	tests := []struct {
		name   string
		scheme Scheme
		wantX  float64
	}{
		{"euler", Euler, 0.1},
		{"midpoint", Midpoint, 0.05},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewWithT(t)
			_, vel, _, err := Step(tt.scheme, r3.Vec{}, r3.Vec{}, r3.Vec{X: 1}, r3.Vec{}, 0.1)
			g.Expect(err).NotTo(HaveOccurred())
			g.Expect(vel.X).To(BeNumerically("~", tt.wantX, 1e-12))
		})
	}
}

func TestStep_UnknownScheme(t *testing.T) {
	g := NewWithT(t)

	pos, vel, acc, err := Step(Scheme(42), r3.Vec{X: 1}, r3.Vec{Y: 1}, r3.Vec{Z: 1}, r3.Vec{}, 0.1)
	g.Expect(errors.Is(err, ErrUnknownScheme)).To(BeTrue())
	g.Expect(pos).To(Equal(r3.Vec{X: 1}))
	g.Expect(vel).To(Equal(r3.Vec{Y: 1}))
	g.Expect(acc).To(Equal(r3.Vec{Z: 1}))
}

func TestParseScheme(t *testing.T) {
	tests := []struct {
		in      string
		want    Scheme
		wantErr bool
	}{
		{"euler", Euler, false},
		{"EULER", Euler, false},
		{"", Euler, false},
		{" midpoint ", Midpoint, false},
		{"rk4", 0, true},
	}

	for _, tt := range tests {
		g := NewWithT(t)
		got, err := ParseScheme(tt.in)
		if tt.wantErr {
			g.Expect(err).To(MatchError(ErrUnknownScheme))
			continue
		}
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(got).To(Equal(tt.want))
	}
}

func TestScheme_TextRoundTrip(t *testing.T) {
	g := NewWithT(t)

	for _, s := range Schemes() {
		text, err := s.MarshalText()
		g.Expect(err).NotTo(HaveOccurred())

		var back Scheme
		g.Expect(back.UnmarshalText(text)).To(Succeed())
		g.Expect(back).To(Equal(s))
	}

	_, err := Scheme(9).MarshalText()
	g.Expect(err).To(HaveOccurred())
	g.Expect(Scheme(9).String()).To(Equal("scheme(9)"))
}
