// Package resampling implements the permutation, sign-test, and bootstrap
// machinery behind aggregate group-level claims (e.g. identity-marker versus
// clock-marker persistence gaps). Every random draw comes from a seeded
// generator so results are bit-for-bit reproducible.
package resampling

import "math"

// SignTestResult is an exact two-sided binomial sign test outcome.
type SignTestResult struct {
	Concordant int     `json:"concordant"`
	N          int     `json:"n"`
	PValue     float64 `json:"p_value"`
}

// SignTest tests whether signed shifts favor the expected sign more often
// than chance. Zero shifts are dropped; the two-sided p-value is the exact
// binomial tail 2*P(X >= k) under p=0.5, computed with a deterministic
// coefficient accumulator rather than a normal approximation.
func SignTest(shifts []float64, expectPositive bool) SignTestResult {
	n := 0
	concordant := 0
	for _, s := range shifts {
		if s == 0 {
			continue
		}
		n++
		if (s > 0) == expectPositive {
			concordant++
		}
	}
	if n == 0 {
		return SignTestResult{PValue: 1}
	}

	// Fold to the larger tail so the doubling is two-sided.
	k := concordant
	if n-k > k {
		k = n - k
	}
	p := 2 * binomialUpperTail(k, n)
	if p > 1 {
		p = 1
	}
	return SignTestResult{Concordant: concordant, N: n, PValue: p}
}

// binomialUpperTail is P(X >= k) for X ~ Binomial(n, 0.5). Coefficients
// accumulate multiplicatively in log space to stay exact for the small n
// this engine sees.
func binomialUpperTail(k, n int) float64 {
	logHalfN := float64(n) * math.Log(0.5)
	tail := 0.0
	logCoef := 0.0 // log C(n, 0)
	for x := 0; x <= n; x++ {
		if x >= k {
			tail += math.Exp(logCoef + logHalfN)
		}
		// C(n, x+1) = C(n, x) * (n-x)/(x+1)
		logCoef += math.Log(float64(n-x)) - math.Log(float64(x+1))
	}
	if tail > 1 {
		tail = 1
	}
	return tail
}
