// Package linalg is the single linear-algebra kernel behind every
// regression and eigenvalue computation in the engine. The original
// analysis grew several near-duplicate OLS implementations with slightly
// different epsilons; here there is one, with the tolerance as a parameter.
package linalg

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// DefaultPivotTol is the pivot magnitude below which a matrix is declared
// singular. Part of the engine's observable contract; do not tune casually.
const DefaultPivotTol = 1e-10

// Invert computes the inverse of the square matrix a by partial-pivot
// Gaussian elimination on the identity-augmented system. Returns
// (nil, false) when the pivot magnitude at any step falls below pivotTol.
// The input matrix is not modified.
func Invert(a *mat.Dense, pivotTol float64) (*mat.Dense, bool) {
	n, c := a.Dims()
	if n != c {
		panic("linalg: Invert requires a square matrix")
	}
	if pivotTol <= 0 {
		pivotTol = DefaultPivotTol
	}

	// Augmented system [A | I].
	aug := mat.NewDense(n, 2*n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			aug.Set(i, j, a.At(i, j))
		}
		aug.Set(i, n+i, 1)
	}

	for col := 0; col < n; col++ {
		// Partial pivot: largest magnitude in the remaining column.
		pivotRow := col
		pivotVal := math.Abs(aug.At(col, col))
		for r := col + 1; r < n; r++ {
			if v := math.Abs(aug.At(r, col)); v > pivotVal {
				pivotVal = v
				pivotRow = r
			}
		}
		if pivotVal < pivotTol {
			return nil, false
		}
		if pivotRow != col {
			swapRows(aug, pivotRow, col)
		}

		// Scale the pivot row.
		p := aug.At(col, col)
		for j := 0; j < 2*n; j++ {
			aug.Set(col, j, aug.At(col, j)/p)
		}

		// Eliminate the column from every other row.
		for r := 0; r < n; r++ {
			if r == col {
				continue
			}
			factor := aug.At(r, col)
			if factor == 0 {
				continue
			}
			for j := 0; j < 2*n; j++ {
				aug.Set(r, j, aug.At(r, j)-factor*aug.At(col, j))
			}
		}
	}

	inv := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			inv.Set(i, j, aug.At(i, n+j))
		}
	}
	return inv, true
}

func swapRows(m *mat.Dense, a, b int) {
	_, cols := m.Dims()
	for j := 0; j < cols; j++ {
		va, vb := m.At(a, j), m.At(b, j)
		m.Set(a, j, vb)
		m.Set(b, j, va)
	}
}
