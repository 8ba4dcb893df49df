// Package stationarity implements the dual Augmented Dickey-Fuller / KPSS
// verdict used to vet every series before its AR(2) persistence estimate is
// trusted. The two tests carry opposite null hypotheses; only agreement
// yields a definite verdict.
package stationarity

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"par2/domain/analysis"
	"par2/internal/linalg"
)

// MinObservations is the shortest series either test will run on.
// Shorter input gets the defined infinite-statistic non-stationary result.
const MinObservations = 6

// MacKinnon-style critical values for the constant-only ADF regression.
const (
	adfCritical10 = -2.57
	adfCritical5  = -2.86
	adfCritical1  = -3.43
)

// ADF runs an Augmented Dickey-Fuller test: delta-y regressed on a constant,
// the lagged level, and floor(n^(1/3)) lagged differences. The statistic is
// the t-ratio on the lagged level; values below the 5% critical value reject
// the unit-root null.
func ADF(values []float64) analysis.ADFResult {
	res := analysis.ADFResult{
		Critical10: adfCritical10,
		Critical5:  adfCritical5,
		Critical1:  adfCritical1,
		Statistic:  math.Inf(1),
	}
	n := len(values)
	if n < MinObservations {
		return res
	}

	lags := int(math.Floor(math.Cbrt(float64(n))))
	if lags < 1 {
		lags = 1
	}

	diffs := make([]float64, n-1)
	for t := 1; t < n; t++ {
		diffs[t-1] = values[t] - values[t-1]
	}

	// Rows start once every lagged difference is available.
	rows := len(diffs) - lags
	cols := 2 + lags
	if rows < cols+1 {
		// Not enough observations for the augmented design; fall back to
		// the plain Dickey-Fuller regression without difference lags.
		lags = 0
		rows = len(diffs)
		cols = 2
		if rows < cols+1 {
			return res
		}
	}

	X := mat.NewDense(rows, cols, nil)
	y := make([]float64, rows)
	for i := 0; i < rows; i++ {
		t := i + lags // index into diffs
		X.Set(i, 0, 1)
		X.Set(i, 1, values[t]) // level y(t-1) for response diffs[t]
		for l := 1; l <= lags; l++ {
			X.Set(i, 1+l, diffs[t-l])
		}
		y[i] = diffs[t]
	}

	fit := linalg.OLS(X, y, linalg.DefaultPivotTol)
	if fit.Degenerate || fit.StdErrors[1] == 0 || math.IsInf(fit.StdErrors[1], 0) {
		return res
	}

	res.Statistic = fit.Coefficients[1] / fit.StdErrors[1]
	res.RejectsUnitRoot = res.Statistic < adfCritical5
	return res
}
