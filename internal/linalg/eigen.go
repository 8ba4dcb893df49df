package linalg

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

const (
	qrMaxIter     = 100
	qrConvergeTol = 1e-10
	invIterCount  = 20
	invIterShift  = 0.001
)

// CompanionMatrix builds the companion matrix of the AR(p) characteristic
// polynomial lambda^p - phi1*lambda^(p-1) - ... - phip = 0. Its eigenvalues
// are the polynomial's roots, which extends the scalar AR(2) analysis to
// multivariate latent-state systems.
func CompanionMatrix(phi []float64) *mat.Dense {
	p := len(phi)
	if p == 0 {
		panic("linalg: CompanionMatrix requires at least one coefficient")
	}
	c := mat.NewDense(p, p, nil)
	for j, v := range phi {
		c.Set(0, j, v)
	}
	for i := 1; i < p; i++ {
		c.Set(i, i-1, 1)
	}
	return c
}

// Eigenvalues computes all eigenvalues of a real square matrix by QR
// iteration with Householder reflections. Iterates until the strictly
// lower part below the first subdiagonal has Frobenius norm under 1e-10,
// or 100 iterations, then reads real eigenvalues off converged diagonal
// entries and complex-conjugate pairs out of remaining 2x2 blocks via
// their trace/determinant.
func Eigenvalues(a *mat.Dense) []complex128 {
	n, c := a.Dims()
	if n != c {
		panic("linalg: Eigenvalues requires a square matrix")
	}
	if n == 1 {
		return []complex128{complex(a.At(0, 0), 0)}
	}

	work := mat.DenseCopyOf(a)
	for iter := 0; iter < qrMaxIter; iter++ {
		if belowSubdiagonalNorm(work) < qrConvergeTol {
			break
		}
		q, r := householderQR(work)
		work.Mul(r, q)
	}

	return extractEigenvalues(work)
}

// belowSubdiagonalNorm returns the Frobenius norm of the entries strictly
// below the first subdiagonal. Unshifted QR drives these to zero while 2x2
// blocks for complex pairs persist on the subdiagonal itself.
func belowSubdiagonalNorm(a *mat.Dense) float64 {
	n, _ := a.Dims()
	sum := 0.0
	for i := 2; i < n; i++ {
		for j := 0; j < i-1; j++ {
			v := a.At(i, j)
			sum += v * v
		}
	}
	return math.Sqrt(sum)
}

// householderQR factors a = q*r with q orthogonal and r upper triangular,
// one Householder reflection per column.
func householderQR(a *mat.Dense) (q, r *mat.Dense) {
	n, _ := a.Dims()
	r = mat.DenseCopyOf(a)
	q = identity(n)

	for k := 0; k < n-1; k++ {
		// Reflection vector for column k below the diagonal.
		v := make([]float64, n-k)
		norm := 0.0
		for i := k; i < n; i++ {
			v[i-k] = r.At(i, k)
			norm += v[i-k] * v[i-k]
		}
		norm = math.Sqrt(norm)
		if norm < 1e-15 {
			continue
		}
		if v[0] >= 0 {
			v[0] += norm
		} else {
			v[0] -= norm
		}
		vnorm := 0.0
		for _, x := range v {
			vnorm += x * x
		}
		vnorm = math.Sqrt(vnorm)
		if vnorm < 1e-15 {
			continue
		}
		for i := range v {
			v[i] /= vnorm
		}

		// R <- (I - 2vv')R on the trailing block.
		for j := k; j < n; j++ {
			dot := 0.0
			for i := k; i < n; i++ {
				dot += v[i-k] * r.At(i, j)
			}
			for i := k; i < n; i++ {
				r.Set(i, j, r.At(i, j)-2*v[i-k]*dot)
			}
		}
		// Q <- Q(I - 2vv').
		for i := 0; i < n; i++ {
			dot := 0.0
			for j := k; j < n; j++ {
				dot += q.At(i, j) * v[j-k]
			}
			for j := k; j < n; j++ {
				q.Set(i, j, q.At(i, j)-2*dot*v[j-k])
			}
		}
	}
	return q, r
}

// extractEigenvalues reads eigenvalues off a quasi-triangular matrix.
func extractEigenvalues(a *mat.Dense) []complex128 {
	n, _ := a.Dims()
	eigs := make([]complex128, 0, n)
	i := 0
	for i < n {
		if i == n-1 || math.Abs(a.At(i+1, i)) < qrConvergeTol {
			eigs = append(eigs, complex(a.At(i, i), 0))
			i++
			continue
		}
		// 2x2 block: roots of lambda^2 - tr*lambda + det.
		tr := a.At(i, i) + a.At(i+1, i+1)
		det := a.At(i, i)*a.At(i+1, i+1) - a.At(i, i+1)*a.At(i+1, i)
		disc := tr*tr - 4*det
		if disc >= 0 {
			root := math.Sqrt(disc)
			eigs = append(eigs,
				complex((tr+root)/2, 0),
				complex((tr-root)/2, 0))
		} else {
			im := math.Sqrt(-disc) / 2
			eigs = append(eigs,
				complex(tr/2, im),
				complex(tr/2, -im))
		}
		i += 2
	}
	return eigs
}

// DominantModulus returns the largest eigenvalue magnitude of a matrix.
func DominantModulus(a *mat.Dense) float64 {
	maxMod := 0.0
	for _, e := range Eigenvalues(a) {
		if m := cmplxAbs(e); m > maxMod {
			maxMod = m
		}
	}
	return maxMod
}

func cmplxAbs(z complex128) float64 {
	return math.Hypot(real(z), imag(z))
}

// Eigenvector approximates the unit eigenvector for a known real eigenvalue
// by shifted inverse iteration (20 iterations, shift offset 0.001 keeps the
// shifted system invertible). Returns nil when the shifted matrix is
// singular even so.
func Eigenvector(a *mat.Dense, lambda float64) []float64 {
	n, c := a.Dims()
	if n != c {
		panic("linalg: Eigenvector requires a square matrix")
	}

	shifted := mat.DenseCopyOf(a)
	shift := lambda + invIterShift
	for i := 0; i < n; i++ {
		shifted.Set(i, i, shifted.At(i, i)-shift)
	}
	inv, ok := Invert(shifted, 1e-12)
	if !ok {
		return nil
	}

	v := make([]float64, n)
	for i := range v {
		v[i] = 1
	}
	normalize(v)
	next := make([]float64, n)
	for iter := 0; iter < invIterCount; iter++ {
		for i := 0; i < n; i++ {
			sum := 0.0
			for j := 0; j < n; j++ {
				sum += inv.At(i, j) * v[j]
			}
			next[i] = sum
		}
		copy(v, next)
		normalize(v)
	}
	return v
}

func normalize(v []float64) {
	norm := 0.0
	for _, x := range v {
		norm += x * x
	}
	norm = math.Sqrt(norm)
	if norm < 1e-15 {
		return
	}
	for i := range v {
		v[i] /= norm
	}
}

func identity(n int) *mat.Dense {
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}
	return m
}
