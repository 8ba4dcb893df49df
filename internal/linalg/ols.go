package linalg

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Fit is the output of one ordinary least squares call.
type Fit struct {
	Coefficients []float64
	Residuals    []float64
	StdErrors    []float64
	RSS          float64
	Degenerate   bool
}

// OLS solves y = X*beta by the normal equations, inverting X'X with
// partial-pivot Gaussian elimination. Under-determined systems (n < k+1),
// singular designs, and non-finite coefficients all yield the defined
// degenerate result - zero coefficients with infinite standard errors -
// rather than an error, so genome-scale scans survive their inevitable
// handful of pathological genes.
// Panics when len(y) does not match the design's row count; that is a
// caller bug, not a data edge case.
func OLS(X *mat.Dense, y []float64, pivotTol float64) Fit {
	n, k := X.Dims()
	if len(y) != n {
		panic("linalg: OLS design row count does not match response length")
	}
	if n < k+1 {
		return degenerateFit(k, y)
	}

	// X'X and X'y.
	xtx := mat.NewDense(k, k, nil)
	xtx.Mul(X.T(), X)
	yVec := mat.NewVecDense(n, append([]float64(nil), y...))
	xty := mat.NewVecDense(k, nil)
	xty.MulVec(X.T(), yVec)

	inv, ok := Invert(xtx, pivotTol)
	if !ok {
		return degenerateFit(k, y)
	}

	var betaVec mat.VecDense
	betaVec.MulVec(inv, xty)
	beta := make([]float64, k)
	for j := 0; j < k; j++ {
		beta[j] = betaVec.AtVec(j)
		if math.IsNaN(beta[j]) || math.IsInf(beta[j], 0) {
			return degenerateFit(k, y)
		}
	}

	// Residuals and residual sum of squares.
	var fitted mat.VecDense
	fitted.MulVec(X, &betaVec)
	residuals := make([]float64, n)
	rss := 0.0
	for i := 0; i < n; i++ {
		residuals[i] = y[i] - fitted.AtVec(i)
		rss += residuals[i] * residuals[i]
	}

	// Standard errors from the diagonal of (X'X)^-1 scaled by the
	// residual mean square.
	sigma2 := rss / float64(n-k)
	stdErrs := make([]float64, k)
	for j := 0; j < k; j++ {
		v := inv.At(j, j) * sigma2
		if v < 0 || math.IsNaN(v) {
			stdErrs[j] = math.Inf(1)
			continue
		}
		stdErrs[j] = math.Sqrt(v)
	}

	return Fit{
		Coefficients: beta,
		Residuals:    residuals,
		StdErrors:    stdErrs,
		RSS:          rss,
	}
}

// degenerateFit is the documented zero/infinite placeholder for
// under-determined or singular designs.
func degenerateFit(k int, y []float64) Fit {
	coeffs := make([]float64, k)
	stdErrs := make([]float64, k)
	for j := range stdErrs {
		stdErrs[j] = math.Inf(1)
	}
	residuals := append([]float64(nil), y...)
	rss := 0.0
	for _, v := range y {
		rss += v * v
	}
	return Fit{
		Coefficients: coeffs,
		Residuals:    residuals,
		StdErrors:    stdErrs,
		RSS:          rss,
		Degenerate:   true,
	}
}

// RSquared computes the coefficient of determination of a fit against its
// response vector. Returns 0 when the response has no variance.
func RSquared(fit Fit, y []float64) float64 {
	if len(y) == 0 {
		return 0
	}
	mean := 0.0
	for _, v := range y {
		mean += v
	}
	mean /= float64(len(y))
	tss := 0.0
	for _, v := range y {
		d := v - mean
		tss += d * d
	}
	if tss <= 0 {
		return 0
	}
	r2 := 1 - fit.RSS/tss
	if r2 < 0 {
		return 0
	}
	return r2
}
