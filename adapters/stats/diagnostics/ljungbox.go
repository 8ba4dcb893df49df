// Package diagnostics grades how much a fitted AR(2) model should be
// trusted: residual autocorrelation, trend contamination, sample size,
// model-order mismatch, nonlinearity, and unit-root boundary proximity,
// aggregated into a single confidence level.
package diagnostics

import "par2/internal/specfunc"

// LjungBoxResult is the residual autocorrelation test outcome.
type LjungBoxResult struct {
	Statistic float64 `json:"statistic"`
	Lags      int     `json:"lags"`
	PValue    float64 `json:"p_value"`
	Pass      bool    `json:"pass"` // residuals look like white noise
}

// ljungBoxFitDF is the AR(2) lag-parameter count subtracted from the
// chi-square degrees of freedom.
const ljungBoxFitDF = 2

// LjungBox tests fitted residuals for leftover autocorrelation over up to
// ten lags. Pass means the white-noise null survives at the 5% level.
// Too-short residual vectors pass trivially with p = 1.
func LjungBox(residuals []float64) LjungBoxResult {
	n := len(residuals)
	lags := 10
	if max := n/2 - 1; lags > max {
		lags = max
	}
	res := LjungBoxResult{Lags: lags, PValue: 1, Pass: true}
	if lags <= ljungBoxFitDF || n < 4 {
		return res
	}

	mean := 0.0
	for _, e := range residuals {
		mean += e
	}
	mean /= float64(n)

	denom := 0.0
	for _, e := range residuals {
		d := e - mean
		denom += d * d
	}
	if denom < 1e-12 {
		return res
	}

	q := 0.0
	for k := 1; k <= lags; k++ {
		num := 0.0
		for t := k; t < n; t++ {
			num += (residuals[t] - mean) * (residuals[t-k] - mean)
		}
		rk := num / denom
		q += rk * rk / float64(n-k)
	}
	q *= float64(n) * float64(n+2)

	df := lags - ljungBoxFitDF
	res.Statistic = q
	res.PValue = 1 - specfunc.ChiSquareCDF(q, float64(df))
	res.Pass = res.PValue >= 0.05
	return res
}
