package specfunc

// StudentTCDF returns P(T <= t) for a Student-t variable with df degrees of
// freedom, computed exactly from the incomplete beta function.
// Panics for df <= 0.
func StudentTCDF(t, df float64) float64 {
	if df <= 0 {
		panic("specfunc: StudentTCDF requires df > 0")
	}
	// One-tail mass via I_x(df/2, 1/2) with x = df/(df + t^2).
	p := 0.5 * RegIncBeta(df/2, 0.5, df/(df+t*t))
	if t > 0 {
		return 1 - p
	}
	return p
}

// FDistCDF returns P(F <= f) for an F variable with (df1, df2) degrees of
// freedom. Returns 0 for f <= 0. Panics for non-positive degrees of freedom.
func FDistCDF(f, df1, df2 float64) float64 {
	if df1 <= 0 || df2 <= 0 {
		panic("specfunc: FDistCDF requires positive degrees of freedom")
	}
	if f <= 0 {
		return 0
	}
	return RegIncBeta(df1/2, df2/2, df1*f/(df1*f+df2))
}

// ChiSquareCDF returns P(X <= x) for a chi-square variable with df degrees
// of freedom. Returns 0 for x <= 0. Panics for df <= 0.
func ChiSquareCDF(x, df float64) float64 {
	if df <= 0 {
		panic("specfunc: ChiSquareCDF requires df > 0")
	}
	if x <= 0 {
		return 0
	}
	return RegIncGamma(df/2, x/2)
}
