package stationarity

import "par2/domain/analysis"

// Verdict runs both tests on the same series and combines them.
// ADF rejecting the unit root and KPSS failing to reject stationarity must
// agree before the series is called stationary; agreement the other way is
// non-stationary; a split is inconclusive.
func Verdict(values []float64) analysis.StationarityVerdict {
	adf := ADF(values)
	kpss := KPSS(values)
	return Combine(adf, kpss)
}

// Combine applies the dual-verdict rule to already-computed test results.
func Combine(adf analysis.ADFResult, kpss analysis.KPSSResult) analysis.StationarityVerdict {
	v := analysis.StationarityVerdict{ADF: adf, KPSS: kpss}
	switch {
	case adf.RejectsUnitRoot && kpss.Stationary:
		v.Outcome = analysis.VerdictStationary
	case !adf.RejectsUnitRoot && !kpss.Stationary:
		v.Outcome = analysis.VerdictNonStationary
	default:
		v.Outcome = analysis.VerdictInconclusive
	}
	return v
}
