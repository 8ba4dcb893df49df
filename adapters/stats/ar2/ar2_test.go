package ar2

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"par2/adapters/stats/stationarity"
	"par2/internal/testkit"
)

func TestFit_RecoversCoefficients(t *testing.T) {
	// Long series pins the estimates tightly around the generating values.
	values := testkit.AR2Series(0.6, -0.2, 0, 0.3, 2000, 42)
	fit := Fit(values)

	require.False(t, fit.Degenerate)
	assert.InDelta(t, 0.6, fit.Phi1(), 0.1)
	assert.InDelta(t, -0.2, fit.Phi2(), 0.1)
	assert.Equal(t, len(values)-2, len(fit.Residuals))
	assert.Equal(t, len(values), fit.NObs)
}

func TestFit_ShortSeriesIsDegenerate(t *testing.T) {
	for _, n := range []int{0, 1, 3, 4} {
		values := make([]float64, n)
		fit := Fit(values)
		assert.True(t, fit.Degenerate, "n=%d", n)
		assert.Equal(t, []float64{0, 0, 0}, fit.Coefficients, "n=%d", n)
		for _, se := range fit.StdErrors {
			assert.True(t, math.IsInf(se, 1), "n=%d", n)
		}
	}
}

func TestFit_ConstantSeriesIsDegenerate(t *testing.T) {
	values := make([]float64, 30)
	for i := range values {
		values[i] = 3.5
	}
	fit := Fit(values)
	assert.True(t, fit.Degenerate, "constant series has a collinear design")
}

func TestFit_ResidualLengthInvariant(t *testing.T) {
	values := testkit.AR2Series(0.5, -0.1, 0, 0.5, 30, 7)
	fit := Fit(values)
	require.False(t, fit.Degenerate)
	assert.Equal(t, fit.NObs-2, len(fit.Residuals))
}

func TestFitOrder_ExtraLag(t *testing.T) {
	values := testkit.AR2Series(0.6, -0.2, 0, 0.3, 100, 11)
	fit3 := FitOrder(values, 3)
	require.False(t, fit3.Degenerate)
	assert.Len(t, fit3.Coefficients, 4)
	assert.Equal(t, len(values)-3, len(fit3.Residuals))

	// The extra lag can only lower RSS.
	fit2 := Fit(values)
	assert.LessOrEqual(t, fit3.RSS, fit2.RSS+1e-9)
}

func TestSolve_ComplexRegion(t *testing.T) {
	// 0.6^2 + 4*(-0.2) = -0.44 < 0: complex-conjugate pair.
	sol := Solve(0.6, -0.2)

	require.True(t, sol.Oscillatory())
	assert.InDelta(t, 0.3, sol.Real, 1e-12)
	assert.InDelta(t, math.Sqrt(0.44)/2, sol.Imag, 1e-12)
	assert.InDelta(t, math.Sqrt(sol.Real*sol.Real+sol.Imag*sol.Imag), sol.Modulus, 1e-12)
	assert.InDelta(t, math.Sqrt(0.2), sol.Modulus, 1e-12)
	assert.Greater(t, sol.ImpliedPeriod, 0.0)
}

func TestSolve_RealRegion(t *testing.T) {
	// 0.5^2 + 4*0.2 = 1.05 > 0: two real roots.
	sol := Solve(0.5, 0.2)

	assert.False(t, sol.Oscillatory())
	assert.Zero(t, sol.Imag)
	assert.Zero(t, sol.ImpliedPeriod)

	root := math.Sqrt(1.05)
	wantDominant := (0.5 + root) / 2
	assert.InDelta(t, wantDominant, sol.Modulus, 1e-12)
}

func TestSolve_DominantRealRootMayBeNegative(t *testing.T) {
	// phi1 strongly negative: the dominant root is negative, modulus is its
	// magnitude.
	sol := Solve(-1.2, -0.2)
	assert.False(t, sol.Oscillatory())
	assert.Less(t, sol.Real, 0.0)
	assert.InDelta(t, math.Abs(sol.Real), sol.Modulus, 1e-12)
}

func TestSolveAt_PeriodScalesWithSamplingInterval(t *testing.T) {
	unit := SolveAt(0.6, -0.2, 1)
	twoHour := SolveAt(0.6, -0.2, 2)
	assert.InDelta(t, 2*unit.ImpliedPeriod, twoHour.ImpliedPeriod, 1e-12)
	assert.Equal(t, unit.Modulus, twoHour.Modulus)
}

func TestSolve_NeverClamps(t *testing.T) {
	// Explosive coefficients: the raw solver must report modulus > 1.
	sol := Solve(1.5, 0.2)
	assert.Greater(t, sol.Modulus, 1.0)
}

func TestSolveOrder_MatchesClosedFormForP2(t *testing.T) {
	cases := [][2]float64{{0.6, -0.2}, {0.5, 0.2}, {-0.3, 0.1}, {1.1, -0.4}}
	for _, c := range cases {
		closed := Solve(c[0], c[1])
		companion := SolveOrder([]float64{c[0], c[1]})
		assert.InDelta(t, closed.Modulus, companion.Modulus, 1e-6,
			"phi=%v", c)
	}
}

func TestEndToEnd_SyntheticAR2(t *testing.T) {
	// y(t) = 0.6 y(t-1) - 0.2 y(t-2) + noise over 30 points: coefficient
	// recovery within 0.1, a stationary ADF verdict, and a complex root
	// pair inside the unit circle.
	values := testkit.AR2Series(0.6, -0.2, 0, 0.3, 30, 1086)
	fit := Fit(values)
	require.False(t, fit.Degenerate)
	assert.InDelta(t, 0.6, fit.Phi1(), 0.1)
	assert.InDelta(t, -0.2, fit.Phi2(), 0.1)

	adf := stationarity.ADF(values)
	assert.True(t, adf.RejectsUnitRoot, "ADF statistic %.3f", adf.Statistic)

	sol := Solve(fit.Phi1(), fit.Phi2())
	assert.Less(t, sol.Modulus, 1.0)
	assert.True(t, sol.Oscillatory())
}
