package analysis

import (
	"math"
	"strings"
	"testing"

	. "github.com/onsi/gomega"
)

func sine(freq, dt float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 3 + math.Sin(2*math.Pi*freq*float64(i)*dt)
	}
	return out
}

func TestPowerSpectrum(t *testing.T) {
	g := NewWithT(t)
	g.Expect(PowerSpectrum(nil)).To(BeNil())

	ps := PowerSpectrum(sine(2, 0.01, 200))
	g.Expect(ps).To(HaveLen(101))
	// mean is removed before the transform
	g.Expect(ps[0]).To(BeNumerically("~", 0, 1e-9))
	g.Expect(ps[4]).To(BeNumerically("~", 100, 1e-6))
}

func TestDominantFrequency(t *testing.T) {
	g := NewWithT(t)

	f, err := DominantFrequency(sine(2, 0.01, 200), 0.01)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(f).To(BeNumerically("~", 2, 1e-9))

	f, err = DominantFrequency([]float64{1, 1, 1, 1, 1}, 0.1)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(f).To(BeZero())

	_, err = DominantFrequency([]float64{1, 2}, 0.1)
	g.Expect(err).To(MatchError(ErrShortSeries))

	_, err = DominantFrequency(sine(2, 0.01, 16), 0)
	g.Expect(err).To(HaveOccurred())
}

func TestSummarize(t *testing.T) {
	g := NewWithT(t)
	g.Expect(Summarize(nil)).To(Equal(Summary{}))

	s := Summarize([]float64{1, 2, 3, 4})
	g.Expect(s.Mean).To(Equal(2.5))
	g.Expect(s.Min).To(Equal(1.0))
	g.Expect(s.Max).To(Equal(4.0))
	g.Expect(s.Final).To(Equal(4.0))
	g.Expect(s.StdDev).To(BeNumerically("~", math.Sqrt(5.0/3.0), 1e-12))

	g.Expect(Summarize([]float64{7}).StdDev).To(BeZero())
}

func TestSettlingTime(t *testing.T) {
	g := NewWithT(t)
	times := []float64{0, 1, 2, 3, 4}

	g.Expect(SettlingTime(nil, nil, 0.1)).To(Equal(-1.0))
	g.Expect(SettlingTime(times, []float64{5, 3, 1.05, 0.95, 1}, 0.1)).To(Equal(2.0))
	g.Expect(SettlingTime(times, []float64{1, 1, 1, 1, 1}, 0)).To(Equal(0.0))
	g.Expect(SettlingTime(times, []float64{0, 0, 0, 0, 1}, 0.1)).To(Equal(4.0))
}

func TestPhasePortrait(t *testing.T) {
	g := NewWithT(t)
	g.Expect(NewPhasePortrait([]float64{0}, []float64{1})).To(BeNil())

	p := NewPhasePortrait([]float64{0, 1, 2}, []float64{0, 2, 6})
	g.Expect(p.Points).To(HaveLen(3))
	g.Expect(p.Points[0].Y).To(Equal(2.0))
	g.Expect(p.Points[1].Y).To(Equal(3.0))
	g.Expect(p.Points[2].Y).To(Equal(4.0))
	g.Expect(p.Points[2].X).To(Equal(6.0))

	art := PhasePortraitToASCII(p, 20, 10)
	g.Expect(strings.Count(art, "\n")).To(Equal(10))
	g.Expect(art).To(ContainSubstring("•"))
	g.Expect(PhasePortraitToASCII(nil, 20, 10)).To(BeEmpty())
}
