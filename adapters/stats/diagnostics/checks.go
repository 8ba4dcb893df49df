package diagnostics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"par2/adapters/stats/ar2"
	"par2/domain/analysis"
	"par2/internal/linalg"
	"par2/internal/specfunc"
)

// Check names, stable across runs so downstream filters can match on them.
const (
	CheckResidualAutocorr = "residual_autocorrelation"
	CheckTrend            = "trend"
	CheckSampleSize       = "sample_size"
	CheckModelOrder       = "model_order"
	CheckNonlinearity     = "nonlinearity"
	CheckBoundary         = "boundary"
)

const (
	minConfidentSample = 12
	// Relative RSS reduction from the extra AR(3) lag above which the
	// fixed order-2 model is suspect.
	orderMismatchThreshold = 0.15
	// |modulus - 1| below this flags unit-root boundary fragility.
	boundaryTolerance = 0.05
)

// ResidualAutocorrelationCheck runs Ljung-Box over the fitted residuals and
// flags leftover autocorrelation, which means the AR(2) model has not
// absorbed the series' dependence structure.
func ResidualAutocorrelationCheck(fit analysis.RegressionFit) analysis.DiagnosticCheck {
	check := analysis.DiagnosticCheck{Name: CheckResidualAutocorr}
	if fit.Degenerate {
		return check
	}
	res := LjungBox(fit.Residuals)
	check.Statistic = res.Statistic
	check.Triggered = !res.Pass
	if check.Triggered {
		check.Detail = fmt.Sprintf("Ljung-Box Q=%.2f p=%.4f over %d lags", res.Statistic, res.PValue, res.Lags)
	}
	return check
}

// TrendCheck fits a straight line through the raw series and flags a
// significant slope (two-sided t-test at the 5% level). A trending series
// violates the mean-stationarity the AR(2) persistence reading assumes.
func TrendCheck(values []float64) analysis.DiagnosticCheck {
	check := analysis.DiagnosticCheck{Name: CheckTrend}
	n := len(values)
	if n < 4 {
		return check
	}

	X := mat.NewDense(n, 2, nil)
	for t := 0; t < n; t++ {
		X.Set(t, 0, 1)
		X.Set(t, 1, float64(t))
	}
	fit := linalg.OLS(X, values, linalg.DefaultPivotTol)
	if fit.Degenerate || math.IsInf(fit.StdErrors[1], 0) || fit.StdErrors[1] == 0 {
		return check
	}

	t := fit.Coefficients[1] / fit.StdErrors[1]
	p := 2 * (1 - specfunc.StudentTCDF(math.Abs(t), float64(n-2)))
	check.Statistic = t
	check.Triggered = p < 0.05
	if check.Triggered {
		check.Detail = fmt.Sprintf("linear trend t=%.2f p=%.4f", t, p)
	}
	return check
}

// SampleSizeCheck flags series shorter than the engine's confident minimum.
func SampleSizeCheck(n int) analysis.DiagnosticCheck {
	check := analysis.DiagnosticCheck{
		Name:      CheckSampleSize,
		Statistic: float64(n),
		Triggered: n < minConfidentSample,
	}
	if check.Triggered {
		check.Detail = fmt.Sprintf("n=%d below confident minimum %d", n, minConfidentSample)
	}
	return check
}

// ModelOrderCheck refits with one extra lag and flags a large relative RSS
// reduction, which suggests AR(2) under-fits the dynamics.
func ModelOrderCheck(values []float64, fit2 analysis.RegressionFit) analysis.DiagnosticCheck {
	check := analysis.DiagnosticCheck{Name: CheckModelOrder}
	if fit2.Degenerate || fit2.RSS <= 0 {
		return check
	}
	fit3 := ar2.FitOrder(values, 3)
	if fit3.Degenerate {
		return check
	}

	reduction := (fit2.RSS - fit3.RSS) / fit2.RSS
	check.Statistic = reduction
	check.Triggered = reduction > orderMismatchThreshold
	if check.Triggered {
		check.Detail = fmt.Sprintf("AR(3) cuts RSS by %.0f%%", reduction*100)
	}
	return check
}

// NonlinearityCheck augments the AR(2) design with a squared first lag and
// F-tests the improvement. A significant quadratic term means the linear
// model misses curvature in the response surface.
func NonlinearityCheck(values []float64, fit2 analysis.RegressionFit) analysis.DiagnosticCheck {
	check := analysis.DiagnosticCheck{Name: CheckNonlinearity}
	n := len(values)
	if fit2.Degenerate || fit2.RSS <= 0 || n < 8 {
		return check
	}

	rows := n - 2
	X := mat.NewDense(rows, 4, nil)
	y := make([]float64, rows)
	for t := 0; t < rows; t++ {
		lag1 := values[t+1]
		X.Set(t, 0, 1)
		X.Set(t, 1, lag1)
		X.Set(t, 2, values[t])
		X.Set(t, 3, lag1*lag1)
		y[t] = values[t+2]
	}
	full := linalg.OLS(X, y, linalg.DefaultPivotTol)
	if full.Degenerate || full.RSS <= 0 {
		return check
	}

	dfFull := rows - 4
	if dfFull < 1 {
		return check
	}
	f := (fit2.RSS - full.RSS) / (full.RSS / float64(dfFull))
	if f < 0 {
		f = 0
	}
	p := 1 - specfunc.FDistCDF(f, 1, float64(dfFull))
	check.Statistic = f
	check.Triggered = p < 0.05
	if check.Triggered {
		check.Detail = fmt.Sprintf("quadratic lag term F=%.2f p=%.4f", f, p)
	}
	return check
}

// BoundaryCheck flags an eigenvalue modulus within tolerance of the unit
// root, where the persistence estimate is most fragile.
func BoundaryCheck(eigen analysis.EigenSolution) analysis.DiagnosticCheck {
	dist := math.Abs(eigen.Modulus - 1)
	check := analysis.DiagnosticCheck{
		Name:      CheckBoundary,
		Statistic: eigen.Modulus,
		Triggered: dist < boundaryTolerance,
	}
	if check.Triggered {
		check.Detail = fmt.Sprintf("modulus %.3f within %.2f of unit root", eigen.Modulus, boundaryTolerance)
	}
	return check
}
