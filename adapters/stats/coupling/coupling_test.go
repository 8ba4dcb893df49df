package coupling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"par2/domain/core"
	"par2/internal/testkit"
)

func TestEstimatePhase_RecoversCircadianPeriod(t *testing.T) {
	timepoints := testkit.Timepoints(36, 2) // spans 70h
	clock := testkit.CircadianSeries(timepoints, 24, 1.0, 0.5, 0.05, 42)

	phase, ok := EstimatePhase(timepoints, clock)
	require.True(t, ok)
	assert.Equal(t, 24.0, phase.Period)
	assert.Greater(t, phase.R2, 0.9)
}

func TestEstimatePhase_ShortSpanScalesCandidates(t *testing.T) {
	// Span 20h: fixed circadian candidates are unresolvable, candidates
	// rescale so the chosen period stays below the span.
	timepoints := testkit.Timepoints(11, 2)
	clock := testkit.CircadianSeries(timepoints, 10, 1.0, 0, 0.05, 7)

	phase, ok := EstimatePhase(timepoints, clock)
	require.True(t, ok)
	assert.Less(t, phase.Period, 20.0)
}

func TestTest_NilBelowRawMinimum(t *testing.T) {
	timepoints := testkit.Timepoints(9, 2)
	target := testkit.WhiteNoise(1, 9, 1)
	clock := testkit.CircadianSeries(timepoints, 24, 1, 0, 0.1, 2)

	assert.Nil(t, Test(core.GeneKey("g"), timepoints, target, clock))
}

func TestTest_PanicsOnLengthMismatch(t *testing.T) {
	assert.Panics(t, func() {
		Test(core.GeneKey("g"), []float64{1, 2}, []float64{1, 2, 3}, []float64{1, 2, 3})
	})
}

func TestTest_DetectsStrongCoupling(t *testing.T) {
	timepoints := testkit.Timepoints(72, 2)
	clock := testkit.CircadianSeries(timepoints, 24, 1.0, 0, 0.05, 3)
	target := testkit.CoupledAR2Series(0.6, -0.2, 1.0, 24, 0.2, timepoints, 4)

	res := Test(core.GeneKey("coupled"), timepoints, target, clock)
	require.NotNil(t, res)
	assert.Less(t, res.PValue, 0.05,
		"strong phase gating should be detected, F=%.2f", res.FStatistic)
	assert.Greater(t, res.CohensF2, 0.0)
	assert.GreaterOrEqual(t, res.R2Full, res.R2Reduced)
	assert.Equal(t, len(timepoints)-2, res.NObs)
}

func TestTest_UncoupledSeriesUsuallyInsignificant(t *testing.T) {
	// Null series: the p-value must at least be a valid probability and the
	// effect size non-negative. (Distributional behavior is covered by the
	// uniformity test below.)
	timepoints := testkit.Timepoints(48, 2)
	clock := testkit.CircadianSeries(timepoints, 24, 1.0, 0, 0.05, 5)
	target := testkit.AR2Series(0.6, -0.2, 0, 0.3, 48, 6)

	res := Test(core.GeneKey("uncoupled"), timepoints, target, clock)
	require.NotNil(t, res)
	assert.GreaterOrEqual(t, res.PValue, 0.0)
	assert.LessOrEqual(t, res.PValue, 1.0)
	assert.GreaterOrEqual(t, res.CohensF2, 0.0)
}

func TestTest_NullPValuesRoughlyUniform(t *testing.T) {
	// Independent white-noise pairs: the p-value distribution over many
	// seeded reruns should be roughly uniform, with no pile-up of false
	// positives.
	timepoints := testkit.Timepoints(20, 2)
	reruns := 400
	sum := 0.0
	below05 := 0
	got := 0
	for i := 0; i < reruns; i++ {
		clock := testkit.WhiteNoise(1, 20, int64(1000+2*i))
		target := testkit.WhiteNoise(1, 20, int64(1001+2*i))
		res := Test(core.GeneKey("null"), timepoints, target, clock)
		if res == nil {
			continue
		}
		got++
		sum += res.PValue
		if res.PValue < 0.05 {
			below05++
		}
	}
	require.Greater(t, got, reruns/2)

	mean := sum / float64(got)
	assert.InDelta(t, 0.5, mean, 0.15, "null p-values should center near 0.5")
	assert.Less(t, float64(below05)/float64(got), 0.15,
		"no systematic bias toward false positives")
}

func TestTest_ConstantTargetReturnsNil(t *testing.T) {
	timepoints := testkit.Timepoints(24, 2)
	clock := testkit.CircadianSeries(timepoints, 24, 1, 0, 0.1, 9)
	target := make([]float64, 24)
	for i := range target {
		target[i] = 2
	}
	assert.Nil(t, Test(core.GeneKey("flat"), timepoints, target, clock))
}
