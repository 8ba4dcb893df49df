// Package testkit generates deterministic synthetic series for tests and
// the CLI demo. Every generator takes a seed and is reproducible.
package testkit

import (
	"math"

	"par2/internal/rng"
)

// AR2Series simulates y(t) = c + phi1*y(t-1) + phi2*y(t-2) + sigma*noise
// after a burn-in of 50 steps.
func AR2Series(phi1, phi2, c, sigma float64, n int, seed int64) []float64 {
	g := rng.New(seed)
	const burnIn = 50
	prev2, prev1 := 0.0, 0.0
	out := make([]float64, 0, n)
	for t := 0; t < burnIn+n; t++ {
		y := c + phi1*prev1 + phi2*prev2 + sigma*g.Norm()
		prev2, prev1 = prev1, y
		if t >= burnIn {
			out = append(out, y)
		}
	}
	return out
}

// RandomWalk simulates a unit-root series y(t) = y(t-1) + noise.
func RandomWalk(sigma float64, n int, seed int64) []float64 {
	g := rng.New(seed)
	out := make([]float64, n)
	y := 0.0
	for t := 0; t < n; t++ {
		y += sigma * g.Norm()
		out[t] = y
	}
	return out
}

// MeanRevertingAR1 simulates y(t) = phi*y(t-1) + noise with |phi| < 1.
func MeanRevertingAR1(phi, sigma float64, n int, seed int64) []float64 {
	g := rng.New(seed)
	out := make([]float64, n)
	y := 0.0
	for t := 0; t < n; t++ {
		y = phi*y + sigma*g.Norm()
		out[t] = y
	}
	return out
}

// WhiteNoise returns independent standard-normal draws scaled by sigma.
func WhiteNoise(sigma float64, n int, seed int64) []float64 {
	g := rng.New(seed)
	out := make([]float64, n)
	for t := 0; t < n; t++ {
		out[t] = sigma * g.Norm()
	}
	return out
}

// CircadianSeries generates a cosine oscillation with the given period and
// phase offset plus noise, sampled at the given timepoints.
func CircadianSeries(timepoints []float64, period, amplitude, phase, sigma float64, seed int64) []float64 {
	g := rng.New(seed)
	omega := 2 * math.Pi / period
	out := make([]float64, len(timepoints))
	for i, t := range timepoints {
		out[i] = amplitude*math.Cos(omega*t-phase) + sigma*g.Norm()
	}
	return out
}

// CoupledAR2Series simulates an AR(2) process whose lag-1 coefficient is
// modulated by the clock phase, the alternative the coupling test is built
// to detect.
func CoupledAR2Series(phi1, phi2, gain, period, sigma float64, timepoints []float64, seed int64) []float64 {
	g := rng.New(seed)
	omega := 2 * math.Pi / period
	prev2, prev1 := 0.0, 0.0
	out := make([]float64, len(timepoints))
	for i, t := range timepoints {
		effPhi1 := phi1 * (1 + gain*math.Cos(omega*t))
		y := effPhi1*prev1 + phi2*prev2 + sigma*g.Norm()
		prev2, prev1 = prev1, y
		out[i] = y
	}
	return out
}

// Timepoints returns n evenly spaced timepoints starting at 0.
func Timepoints(n int, dt float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i) * dt
	}
	return out
}
