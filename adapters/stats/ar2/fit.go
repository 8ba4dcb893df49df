// Package ar2 fits order-2 autoregressive models to single gene-expression
// series and converts the fitted lag coefficients into the characteristic
// eigenvalue that summarizes decay/oscillation persistence.
package ar2

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"par2/domain/analysis"
	"par2/internal/linalg"
)

// MinObservations is the minimum raw series length for any AR(2) fit.
// Shorter series get the defined degenerate zero result, never an error.
const MinObservations = 5

// Fit estimates y(t) = c + phi1*y(t-1) + phi2*y(t-2) + e by OLS.
// The returned fit is immutable; residuals have length n-2.
func Fit(values []float64) analysis.RegressionFit {
	return FitOrder(values, 2)
}

// FitOrder estimates an AR(p) model. Order 3 backs the model-order
// diagnostic; nothing in the engine fits beyond that.
func FitOrder(values []float64, p int) analysis.RegressionFit {
	if p < 1 {
		panic("ar2: FitOrder requires p >= 1")
	}
	n := len(values)
	if n < MinObservations || n <= p {
		return degenerate(n, p)
	}

	// One row per observation with a full lag window.
	rows := n - p
	cols := p + 1
	X := mat.NewDense(rows, cols, nil)
	y := make([]float64, rows)
	for t := 0; t < rows; t++ {
		X.Set(t, 0, 1)
		for lag := 1; lag <= p; lag++ {
			X.Set(t, lag, values[t+p-lag])
		}
		y[t] = values[t+p]
	}

	fit := linalg.OLS(X, y, linalg.DefaultPivotTol)
	return analysis.RegressionFit{
		Coefficients: fit.Coefficients,
		Residuals:    fit.Residuals,
		StdErrors:    fit.StdErrors,
		RSS:          fit.RSS,
		NObs:         n,
		Degenerate:   fit.Degenerate,
	}
}

func degenerate(n, p int) analysis.RegressionFit {
	residLen := n - p
	if residLen < 0 {
		residLen = 0
	}
	stdErrs := make([]float64, p+1)
	for i := range stdErrs {
		stdErrs[i] = math.Inf(1)
	}
	return analysis.RegressionFit{
		Coefficients: make([]float64, p+1),
		Residuals:    make([]float64, residLen),
		StdErrors:    stdErrs,
		NObs:         n,
		Degenerate:   true,
	}
}
