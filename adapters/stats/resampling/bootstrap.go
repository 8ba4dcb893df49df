package resampling

import (
	"sort"

	"par2/internal/rng"
)

// DefaultBootstrapDraws is the resample count when the caller does not
// configure one.
const DefaultBootstrapDraws = 5000

// BootstrapCI is a percentile bootstrap confidence interval for a group
// mean.
type BootstrapCI struct {
	Mean  float64 `json:"mean"`
	Lower float64 `json:"lower"` // 2.5 percentile
	Upper float64 `json:"upper"` // 97.5 percentile
	Draws int     `json:"draws"`
}

// BootstrapMeanCI resamples the group with replacement and reports the
// 2.5/97.5 percentiles of the resampled means. Deterministic per seed.
func BootstrapMeanCI(values []float64, draws int, seed int64) BootstrapCI {
	if draws <= 0 {
		draws = DefaultBootstrapDraws
	}
	ci := BootstrapCI{Draws: draws}
	n := len(values)
	if n == 0 {
		return ci
	}
	ci.Mean = mean(values)
	if n == 1 {
		ci.Lower, ci.Upper = values[0], values[0]
		return ci
	}

	g := rng.New(seed)
	means := make([]float64, draws)
	for i := 0; i < draws; i++ {
		sum := 0.0
		for j := 0; j < n; j++ {
			sum += values[g.Intn(n)]
		}
		means[i] = sum / float64(n)
	}

	sort.Float64s(means)
	ci.Lower = percentile(means, 2.5)
	ci.Upper = percentile(means, 97.5)
	return ci
}

// percentile linearly interpolates on an already-sorted slice.
func percentile(sorted []float64, pct float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := pct / 100 * float64(len(sorted)-1)
	lo := int(pos)
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[lo+1]*frac
}
