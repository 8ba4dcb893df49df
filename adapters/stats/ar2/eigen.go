package ar2

import (
	"math"

	"par2/domain/analysis"
	"par2/internal/linalg"
)

// Solve computes the characteristic eigenvalue of the AR(2) polynomial
// lambda^2 - phi1*lambda - phi2 = 0 with a unit sampling interval.
func Solve(phi1, phi2 float64) analysis.EigenSolution {
	return SolveAt(phi1, phi2, 1)
}

// SolveAt is Solve with an explicit sampling interval dt, which scales the
// implied oscillation period in the complex-root case.
//
// The solver never clamps the modulus. Clamping into a reporting band is a
// caller policy applied at aggregation time, not an engine invariant.
func SolveAt(phi1, phi2, dt float64) analysis.EigenSolution {
	disc := phi1*phi1 + 4*phi2
	if disc >= 0 {
		// Two real roots; the dominant one carries the persistence.
		root := math.Sqrt(disc)
		l1 := (phi1 + root) / 2
		l2 := (phi1 - root) / 2
		dominant := l1
		if math.Abs(l2) > math.Abs(l1) {
			dominant = l2
		}
		return analysis.EigenSolution{
			Modulus: math.Abs(dominant),
			Real:    dominant,
		}
	}

	// Complex-conjugate pair: damped oscillation.
	re := phi1 / 2
	im := math.Sqrt(-disc) / 2
	sol := analysis.EigenSolution{
		Modulus: math.Sqrt(re*re + im*im),
		Real:    re,
		Imag:    im,
	}
	if angle := math.Abs(math.Atan2(im, re)); angle > 0 {
		sol.ImpliedPeriod = 2 * math.Pi / angle * dt
	}
	return sol
}

// SolveOrder computes the dominant characteristic eigenvalue of an AR(p)
// polynomial via its companion matrix and QR iteration. For p == 2 it
// agrees with the closed form in Solve.
func SolveOrder(phi []float64) analysis.EigenSolution {
	if len(phi) == 0 {
		panic("ar2: SolveOrder requires at least one coefficient")
	}
	eigs := linalg.Eigenvalues(linalg.CompanionMatrix(phi))

	var dominant complex128
	maxMod := -1.0
	for _, e := range eigs {
		if m := math.Hypot(real(e), imag(e)); m > maxMod {
			maxMod = m
			dominant = e
		}
	}
	sol := analysis.EigenSolution{
		Modulus: maxMod,
		Real:    real(dominant),
		Imag:    imag(dominant),
	}
	if imag(dominant) != 0 {
		if angle := math.Abs(math.Atan2(imag(dominant), real(dominant))); angle > 0 {
			sol.ImpliedPeriod = 2 * math.Pi / angle
		}
	}
	return sol
}
