package coupling

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"par2/domain/analysis"
	"par2/domain/core"
	"par2/internal/linalg"
	"par2/internal/specfunc"
)

// Observation floors below which no statistic is produced. A nil result is
// the defined outcome, never an unreliable F value.
const (
	MinRawObservations = 10
	MinLagObservations = 8
	interactionParams  = 4 // lag1/lag2 crossed with cos/sin of the phase
	reducedParams      = 3
	fullParams         = reducedParams + interactionParams
)

// Test runs the nested-model circadian coupling test for one target gene
// against a clock reference sharing the same timepoints. Returns nil when
// the series is too short or either design collapses; the caller records
// that as an explicit skip.
func Test(gene core.GeneKey, timepoints, target, clock []float64) *analysis.CouplingResult {
	if len(timepoints) != len(target) || len(target) != len(clock) {
		panic("coupling: series lengths differ")
	}
	n := len(target)
	if n < MinRawObservations {
		return nil
	}
	rows := n - 2
	if rows < MinLagObservations {
		return nil
	}

	phase, ok := EstimatePhase(timepoints, clock)
	if !ok {
		return nil
	}

	// Reduced: intercept + two AR lags. Full: reduced plus each lag
	// interacted with cos/sin of the estimated phase at the response time.
	reduced := mat.NewDense(rows, reducedParams, nil)
	full := mat.NewDense(rows, fullParams, nil)
	y := make([]float64, rows)
	for t := 0; t < rows; t++ {
		lag1 := target[t+1]
		lag2 := target[t]
		y[t] = target[t+2]

		reduced.Set(t, 0, 1)
		reduced.Set(t, 1, lag1)
		reduced.Set(t, 2, lag2)

		phi := phase.Phase(timepoints[t+2])
		cosPhi, sinPhi := math.Cos(phi), math.Sin(phi)
		full.Set(t, 0, 1)
		full.Set(t, 1, lag1)
		full.Set(t, 2, lag2)
		full.Set(t, 3, lag1*cosPhi)
		full.Set(t, 4, lag1*sinPhi)
		full.Set(t, 5, lag2*cosPhi)
		full.Set(t, 6, lag2*sinPhi)
	}

	reducedFit := linalg.OLS(reduced, y, linalg.DefaultPivotTol)
	fullFit := linalg.OLS(full, y, linalg.DefaultPivotTol)
	if reducedFit.Degenerate || fullFit.Degenerate || fullFit.RSS <= 0 {
		return nil
	}

	dfResid := rows - fullParams
	if dfResid < 1 {
		return nil
	}

	f := ((reducedFit.RSS - fullFit.RSS) / float64(interactionParams)) /
		(fullFit.RSS / float64(dfResid))
	if f < 0 || math.IsNaN(f) {
		f = 0
	}
	p := 1 - specfunc.FDistCDF(f, float64(interactionParams), float64(dfResid))

	cohensF2 := (reducedFit.RSS - fullFit.RSS) / fullFit.RSS
	if cohensF2 < 0 {
		cohensF2 = 0
	}

	return &analysis.CouplingResult{
		Gene:       gene,
		FStatistic: f,
		PValue:     p,
		CohensF2:   cohensF2,
		R2Full:     linalg.RSquared(fullFit, y),
		R2Reduced:  linalg.RSquared(reducedFit, y),
		BestPeriod: phase.Period,
		NObs:       rows,
	}
}
