package shap

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// TestDeepLinearExactness tests that the deterministic path attribution is
// exact for linear models: phi_j = coef_j * (x_j - mean reference_j)
func TestDeepLinearExactness(t *testing.T) {
	model := &linearTestModel{coef: []float64{1.0, -2.0}, intercept: 0.5}
	references := mat.NewDense(3, 2, []float64{
		0, 0,
		2, 2,
		4, 1,
	})

	strategy, err := NewDeep(model, references)
	if err != nil {
		t.Fatalf("NewDeep failed: %v", err)
	}

	X := mat.NewDense(1, 2, []float64{5, 4})
	values, err := strategy.ShapValues(X)
	if err != nil {
		t.Fatalf("ShapValues failed: %v", err)
	}

	means := colMeans(references)
	for j := 0; j < 2; j++ {
		want := model.coef[j] * (X.At(0, j) - means[j])
		got := values.Output(0).At(0, j)
		if math.Abs(got-want) > 1e-12 {
			t.Errorf("phi[%d] = %v, want %v", j, got, want)
		}
	}
}

// TestDeepDeterminism tests that repeated runs agree without seeding
func TestDeepDeterminism(t *testing.T) {
	model := &quadraticTestModel{}
	references := mat.NewDense(2, 1, []float64{0, 1})
	X := mat.NewDense(1, 1, []float64{3})

	run := func() float64 {
		strategy, err := NewDeep(model, references, WithDeepSteps(16))
		if err != nil {
			t.Fatalf("NewDeep failed: %v", err)
		}
		values, err := strategy.ShapValues(X)
		if err != nil {
			t.Fatalf("ShapValues failed: %v", err)
		}
		return values.Output(0).At(0, 0)
	}

	if first, second := run(), run(); first != second {
		t.Errorf("deterministic strategy produced %v then %v", first, second)
	}
}

// TestDeepStepConvergence tests that the midpoint grid approaches the
// analytic integrated gradient as steps grow
func TestDeepStepConvergence(t *testing.T) {
	model := &quadraticTestModel{}
	references := mat.NewDense(1, 1, []float64{0})
	X := mat.NewDense(1, 1, []float64{3})

	// Analytic value along the 0 -> 3 path is 9. The midpoint rule is exact
	// for the linear integrand 2*alpha*x*x at any step count, so even a
	// coarse grid lands on it.
	strategy, err := NewDeep(model, references, WithDeepSteps(4))
	if err != nil {
		t.Fatalf("NewDeep failed: %v", err)
	}
	values, err := strategy.ShapValues(X)
	if err != nil {
		t.Fatalf("ShapValues failed: %v", err)
	}

	if got := values.Output(0).At(0, 0); math.Abs(got-9.0) > 1e-9 {
		t.Errorf("phi[0] = %v, want 9", got)
	}
}

// TestDeepValidation tests construction guards
func TestDeepValidation(t *testing.T) {
	model := &linearTestModel{coef: []float64{1}}
	references := mat.NewDense(1, 1, []float64{0})

	if _, err := NewDeep(nil, references); err == nil {
		t.Error("nil model accepted")
	}
	if _, err := NewDeep(model, references, WithDeepSteps(0)); err == nil {
		t.Error("zero steps accepted")
	}
	if _, err := NewDeep(model, &mat.Dense{}); err == nil {
		t.Error("empty reference batch accepted")
	}
}
