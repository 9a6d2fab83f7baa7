// Package analysis characterizes the time series a cloth run produces.
//
//   - [PowerSpectrum] and [DominantFrequency]: oscillation content of a
//     series sampled at a fixed interval
//   - [Summarize]: basic statistics of a series
//   - [SettlingTime]: when a series stops leaving a band around its final value
//   - [NewPhasePortrait]: value against its finite-difference rate
//
// A hanging cloth bounces on its springs before friction-free explicit
// integration lets it drift, so the dominant frequency of the center
// height is a quick check on effective stiffness:
//
//	f, err := analysis.DominantFrequency(centerY, dt)
package analysis
