package stationarity

import (
	"math"

	"par2/domain/analysis"
)

// Level-stationarity critical values for the KPSS eta statistic.
const (
	kpssCritical10 = 0.347
	kpssCritical5  = 0.463
	kpssCritical1  = 0.739
)

// KPSS runs the Kwiatkowski-Phillips-Schmidt-Shin level-stationarity test.
// Residuals against a constant are accumulated into partial sums; the
// statistic is their scaled sum of squares over a Bartlett-kernel long-run
// variance with lag window floor(sqrt(n)). The null is stationarity, so the
// series passes when the statistic stays below the 5% critical value.
func KPSS(values []float64) analysis.KPSSResult {
	res := analysis.KPSSResult{
		Critical10: kpssCritical10,
		Critical5:  kpssCritical5,
		Critical1:  kpssCritical1,
		Statistic:  math.Inf(1),
	}
	n := len(values)
	if n < MinObservations {
		return res
	}

	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(n)

	resid := make([]float64, n)
	for i, v := range values {
		resid[i] = v - mean
	}

	// Cumulative partial sums of the residuals.
	partial := make([]float64, n)
	sum := 0.0
	for i, e := range resid {
		sum += e
		partial[i] = sum
	}

	lrVar := bartlettLongRunVariance(resid)
	if lrVar < 1e-12 {
		// Zero-variance series: defined degenerate non-stationary result.
		return res
	}

	num := 0.0
	for _, s := range partial {
		num += s * s
	}
	res.Statistic = num / (float64(n) * float64(n) * lrVar)
	res.Stationary = res.Statistic < kpssCritical5
	return res
}

// bartlettLongRunVariance estimates the long-run variance of a zero-mean
// residual series with Bartlett weights over floor(sqrt(n)) lags.
func bartlettLongRunVariance(resid []float64) float64 {
	n := len(resid)
	lagWindow := int(math.Floor(math.Sqrt(float64(n))))

	variance := 0.0
	for _, e := range resid {
		variance += e * e
	}
	variance /= float64(n)

	for l := 1; l <= lagWindow; l++ {
		weight := 1 - float64(l)/float64(lagWindow+1)
		cov := 0.0
		for t := l; t < n; t++ {
			cov += resid[t] * resid[t-l]
		}
		variance += 2 * weight * cov / float64(n)
	}
	if variance < 0 {
		variance = 0
	}
	return variance
}
