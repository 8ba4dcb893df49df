package linalg

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestInvert_RecoversKnownInverse(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{4, 7, 2, 6})
	inv, ok := Invert(a, DefaultPivotTol)
	if !ok {
		t.Fatal("matrix is invertible, got singular")
	}
	// det = 10; inverse = [0.6 -0.7; -0.2 0.4]
	want := [][]float64{{0.6, -0.7}, {-0.2, 0.4}}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if math.Abs(inv.At(i, j)-want[i][j]) > 1e-12 {
				t.Errorf("inv[%d][%d] = %v, want %v", i, j, inv.At(i, j), want[i][j])
			}
		}
	}
}

func TestInvert_SingularMatrix(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{1, 2, 2, 4})
	if _, ok := Invert(a, DefaultPivotTol); ok {
		t.Fatal("rank-deficient matrix should be reported singular")
	}
}

func TestInvert_DoesNotMutateInput(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{4, 7, 2, 6})
	Invert(a, DefaultPivotTol)
	if a.At(0, 0) != 4 || a.At(1, 1) != 6 {
		t.Fatal("input matrix was mutated")
	}
}

func TestOLS_ExactLinearFit(t *testing.T) {
	// y = 2 + 3x with no noise: coefficients recovered exactly, RSS ~ 0.
	n := 10
	X := mat.NewDense(n, 2, nil)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x := float64(i)
		X.Set(i, 0, 1)
		X.Set(i, 1, x)
		y[i] = 2 + 3*x
	}
	fit := OLS(X, y, DefaultPivotTol)
	if fit.Degenerate {
		t.Fatal("well-posed design reported degenerate")
	}
	if math.Abs(fit.Coefficients[0]-2) > 1e-9 || math.Abs(fit.Coefficients[1]-3) > 1e-9 {
		t.Errorf("coefficients = %v, want [2 3]", fit.Coefficients)
	}
	if fit.RSS > 1e-12 {
		t.Errorf("RSS = %v, want ~0", fit.RSS)
	}
	if len(fit.Residuals) != n {
		t.Errorf("len(residuals) = %d, want %d", len(fit.Residuals), n)
	}
}

func TestOLS_CollinearDesignIsDegenerate(t *testing.T) {
	// Two identical columns: the documented zero/infinite result, never NaN
	// propagation or a panic.
	n := 12
	X := mat.NewDense(n, 3, nil)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x := float64(i) + 1
		X.Set(i, 0, 1)
		X.Set(i, 1, x)
		X.Set(i, 2, x)
		y[i] = 2 * x
	}
	fit := OLS(X, y, DefaultPivotTol)
	if !fit.Degenerate {
		t.Fatal("collinear design should be degenerate")
	}
	for j, c := range fit.Coefficients {
		if c != 0 {
			t.Errorf("coefficient[%d] = %v, want 0", j, c)
		}
	}
	for j, se := range fit.StdErrors {
		if !math.IsInf(se, 1) {
			t.Errorf("stderr[%d] = %v, want +Inf", j, se)
		}
	}
}

func TestOLS_UnderDeterminedIsDegenerate(t *testing.T) {
	X := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})
	fit := OLS(X, []float64{1, 2}, DefaultPivotTol)
	if !fit.Degenerate {
		t.Fatal("n < k+1 should be degenerate")
	}
}

func TestOLS_PanicsOnLengthMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on mismatched lengths")
		}
	}()
	OLS(mat.NewDense(3, 2, nil), []float64{1, 2}, DefaultPivotTol)
}

func TestEigenvalues_DiagonalMatrix(t *testing.T) {
	a := mat.NewDense(3, 3, []float64{2, 0, 0, 0, 5, 0, 0, 0, -1})
	eigs := Eigenvalues(a)
	if len(eigs) != 3 {
		t.Fatalf("got %d eigenvalues, want 3", len(eigs))
	}
	found := map[float64]bool{}
	for _, e := range eigs {
		if imag(e) != 0 {
			t.Errorf("diagonal matrix should have real eigenvalues, got %v", e)
		}
		found[math.Round(real(e))] = true
	}
	for _, want := range []float64{2, 5, -1} {
		if !found[want] {
			t.Errorf("eigenvalue %v not found in %v", want, eigs)
		}
	}
}

func TestEigenvalues_RotationGivesComplexPair(t *testing.T) {
	// Scaled rotation: eigenvalues 0.5 +/- 0.5i, modulus sqrt(0.5).
	a := mat.NewDense(2, 2, []float64{0.5, -0.5, 0.5, 0.5})
	eigs := Eigenvalues(a)
	if len(eigs) != 2 {
		t.Fatalf("got %d eigenvalues, want 2", len(eigs))
	}
	for _, e := range eigs {
		if math.Abs(real(e)-0.5) > 1e-8 || math.Abs(math.Abs(imag(e))-0.5) > 1e-8 {
			t.Errorf("eigenvalue %v, want 0.5 +/- 0.5i", e)
		}
	}
}

func TestCompanionMatrix_RootsMatchClosedForm(t *testing.T) {
	// lambda^2 - 0.6 lambda + 0.2 = 0 has complex roots of modulus
	// sqrt(0.2).
	phi := []float64{0.6, -0.2}
	mod := DominantModulus(CompanionMatrix(phi))
	want := math.Sqrt(0.2)
	if math.Abs(mod-want) > 1e-8 {
		t.Errorf("dominant modulus = %v, want %v", mod, want)
	}
}

func TestEigenvector_DiagonalMatrix(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{3, 0, 0, 1})
	v := Eigenvector(a, 3)
	if v == nil {
		t.Fatal("expected an eigenvector")
	}
	// Unit eigenvector for lambda=3 is +/- e1.
	if math.Abs(math.Abs(v[0])-1) > 1e-6 || math.Abs(v[1]) > 1e-6 {
		t.Errorf("eigenvector = %v, want +/- [1 0]", v)
	}
}

func TestRSquared_PerfectAndNoFit(t *testing.T) {
	y := []float64{1, 2, 3, 4}
	if r2 := RSquared(Fit{RSS: 0}, y); math.Abs(r2-1) > 1e-12 {
		t.Errorf("zero RSS should give R2=1, got %v", r2)
	}
	if r2 := RSquared(Fit{RSS: 100}, []float64{2, 2, 2}); r2 != 0 {
		t.Errorf("zero-variance response should give R2=0, got %v", r2)
	}
}
