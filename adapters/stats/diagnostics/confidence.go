package diagnostics

import "par2/domain/analysis"

// Fixed per-check penalty weights. Residual autocorrelation and trend
// contamination are the strongest signals that the persistence reading is
// untrustworthy.
var checkWeights = map[string]float64{
	CheckResidualAutocorr: 0.20,
	CheckTrend:            0.20,
	CheckSampleSize:       0.15,
	CheckModelOrder:       0.15,
	CheckNonlinearity:     0.10,
	CheckBoundary:         0.20,
}

const (
	highThreshold   = 0.75
	mediumThreshold = 0.50
)

// Assess runs the full diagnostic battery for one fitted series and folds
// the triggered checks into a 0-1 confidence score. Checks are read-only
// over the fit; the fit is never mutated.
func Assess(values []float64, fit analysis.RegressionFit, eigen analysis.EigenSolution) analysis.ConfidenceDiagnostics {
	checks := []analysis.DiagnosticCheck{
		ResidualAutocorrelationCheck(fit),
		TrendCheck(values),
		SampleSizeCheck(len(values)),
		ModelOrderCheck(values, fit),
		NonlinearityCheck(values, fit),
		BoundaryCheck(eigen),
	}
	return Score(checks)
}

// Score aggregates an ordered check list into the score and level.
func Score(checks []analysis.DiagnosticCheck) analysis.ConfidenceDiagnostics {
	score := 1.0
	for _, c := range checks {
		if c.Triggered {
			score -= checkWeights[c.Name]
		}
	}
	if score < 0 {
		score = 0
	}

	level := analysis.ConfidenceLow
	switch {
	case score >= highThreshold:
		level = analysis.ConfidenceHigh
	case score >= mediumThreshold:
		level = analysis.ConfidenceMedium
	}

	return analysis.ConfidenceDiagnostics{
		Checks: checks,
		Score:  score,
		Level:  level,
	}
}
