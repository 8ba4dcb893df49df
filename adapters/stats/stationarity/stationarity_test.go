package stationarity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"par2/domain/analysis"
	"par2/internal/testkit"
)

func TestVerdict_MeanRevertingSeriesIsStationary(t *testing.T) {
	values := testkit.MeanRevertingAR1(0.4, 1.0, 150, 42)
	verdict := Verdict(values)

	assert.True(t, verdict.ADF.RejectsUnitRoot,
		"ADF statistic %.3f should be below %.2f", verdict.ADF.Statistic, verdict.ADF.Critical5)
	assert.Equal(t, analysis.VerdictStationary, verdict.Outcome)
}

func TestVerdict_RandomWalkIsNotStationary(t *testing.T) {
	values := testkit.RandomWalk(1.0, 200, 42)
	verdict := Verdict(values)

	assert.False(t, verdict.KPSS.Stationary,
		"KPSS statistic %.3f should exceed %.3f", verdict.KPSS.Statistic, verdict.KPSS.Critical5)
	assert.NotEqual(t, analysis.VerdictStationary, verdict.Outcome)
}

func TestADF_ShortSeriesDegenerate(t *testing.T) {
	res := ADF([]float64{1, 2, 3})
	assert.True(t, math.IsInf(res.Statistic, 1))
	assert.False(t, res.RejectsUnitRoot)
}

func TestADF_CriticalValues(t *testing.T) {
	res := ADF(testkit.WhiteNoise(1, 50, 3))
	assert.Equal(t, -2.57, res.Critical10)
	assert.Equal(t, -2.86, res.Critical5)
	assert.Equal(t, -3.43, res.Critical1)
}

func TestKPSS_ShortSeriesDegenerate(t *testing.T) {
	res := KPSS([]float64{1, 2, 3})
	assert.True(t, math.IsInf(res.Statistic, 1))
	assert.False(t, res.Stationary)
}

func TestKPSS_ConstantSeriesDegenerate(t *testing.T) {
	values := make([]float64, 30)
	for i := range values {
		values[i] = 5
	}
	res := KPSS(values)
	assert.True(t, math.IsInf(res.Statistic, 1))
	assert.False(t, res.Stationary)
}

func TestKPSS_CriticalValues(t *testing.T) {
	res := KPSS(testkit.WhiteNoise(1, 50, 3))
	assert.Equal(t, 0.347, res.Critical10)
	assert.Equal(t, 0.463, res.Critical5)
	assert.Equal(t, 0.739, res.Critical1)
}

func TestCombine_VerdictRules(t *testing.T) {
	adfReject := analysis.ADFResult{RejectsUnitRoot: true}
	adfFail := analysis.ADFResult{RejectsUnitRoot: false}
	kpssPass := analysis.KPSSResult{Stationary: true}
	kpssFail := analysis.KPSSResult{Stationary: false}

	cases := []struct {
		adf  analysis.ADFResult
		kpss analysis.KPSSResult
		want analysis.VerdictOutcome
	}{
		{adfReject, kpssPass, analysis.VerdictStationary},
		{adfFail, kpssFail, analysis.VerdictNonStationary},
		{adfReject, kpssFail, analysis.VerdictInconclusive},
		{adfFail, kpssPass, analysis.VerdictInconclusive},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Combine(c.adf, c.kpss).Outcome)
	}
}

func TestVerdict_WhiteNoiseRejectsUnitRoot(t *testing.T) {
	// Pure white noise is the strongest stationary case: ADF power is
	// essentially 1 at this length.
	values := testkit.WhiteNoise(1, 100, 17)
	verdict := Verdict(values)
	assert.True(t, verdict.ADF.RejectsUnitRoot)
}
