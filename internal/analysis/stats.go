package analysis

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

type Summary struct {
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	Final  float64
}

func Summarize(series []float64) Summary {
	if len(series) == 0 {
		return Summary{}
	}
	s := Summary{
		Mean:  stat.Mean(series, nil),
		Min:   floats.Min(series),
		Max:   floats.Max(series),
		Final: series[len(series)-1],
	}
	if len(series) > 1 {
		s.StdDev = stat.StdDev(series, nil)
	}
	return s
}

// SettlingTime returns the first time after which every sample stays within
// tol of the final sample. It returns -1 when the series is empty.
func SettlingTime(times, values []float64, tol float64) float64 {
	n := len(times)
	if len(values) < n {
		n = len(values)
	}
	if n == 0 {
		return -1
	}
	final := values[n-1]
	settled := times[n-1]
	for i := n - 1; i >= 0; i-- {
		if math.Abs(values[i]-final) > tol {
			break
		}
		settled = times[i]
	}
	return settled
}
