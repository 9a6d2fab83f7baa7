package analysis

import (
	"errors"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/stat"
)

var ErrShortSeries = errors.New("analysis: series too short")

// PowerSpectrum returns the magnitude of each non-negative frequency bin
// of the mean-removed series. Bin i corresponds to i/len(series) cycles
// per sample.
func PowerSpectrum(series []float64) []float64 {
	n := len(series)
	if n == 0 {
		return nil
	}

	mean := stat.Mean(series, nil)
	centered := make([]float64, n)
	for i, v := range series {
		centered[i] = v - mean
	}

	coeffs := fourier.NewFFT(n).Coefficients(nil, centered)
	ps := make([]float64, len(coeffs))
	for i, c := range coeffs {
		ps[i] = cmplx.Abs(c)
	}
	return ps
}

// DominantFrequency returns the frequency in Hz of the strongest non-DC
// bin of a series sampled every sampleDt seconds.
func DominantFrequency(series []float64, sampleDt float64) (float64, error) {
	n := len(series)
	if n < 4 {
		return 0, ErrShortSeries
	}
	if !(sampleDt > 0) {
		return 0, errors.New("analysis: sample interval must be positive")
	}

	ps := PowerSpectrum(series)
	best := 1
	for i := 2; i < len(ps); i++ {
		if ps[i] > ps[best] {
			best = i
		}
	}
	if ps[best] == 0 {
		return 0, nil
	}

	fft := fourier.NewFFT(n)
	return fft.Freq(best) / sampleDt, nil
}
