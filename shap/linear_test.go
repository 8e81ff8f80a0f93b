package shap

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/robsdavis/Explainability/pkg/errors"
)

// TestLinearExactness tests phi_j = coef_j * (x_j - mean background_j)
func TestLinearExactness(t *testing.T) {
	model := &linearTestModel{coef: []float64{2.0, -1.0}, intercept: 0.5}
	background := mat.NewDense(4, 2, []float64{
		1, 1,
		3, 2,
		5, 3,
		7, 4,
	})

	strategy, err := NewLinear(model, background)
	if err != nil {
		t.Fatalf("NewLinear failed: %v", err)
	}

	X := mat.NewDense(1, 2, []float64{6, 1})
	values, err := strategy.ShapValues(X)
	if err != nil {
		t.Fatalf("ShapValues failed: %v", err)
	}

	means := colMeans(background)
	for j := 0; j < 2; j++ {
		want := model.coef[j] * (X.At(0, j) - means[j])
		got := values.Output(0).At(0, j)
		if math.Abs(got-want) > 1e-12 {
			t.Errorf("phi[%d] = %v, want %v", j, got, want)
		}
	}
}

// TestLinearLocalAccuracy tests base + sum(phi) == f(x)
func TestLinearLocalAccuracy(t *testing.T) {
	model := &linearTestModel{coef: []float64{1.5, 2.5, -0.5}, intercept: 3.0}
	background := mat.NewDense(3, 3, []float64{
		0, 0, 0,
		1, 2, 3,
		2, 4, 6,
	})

	strategy, err := NewLinear(model, background)
	if err != nil {
		t.Fatalf("NewLinear failed: %v", err)
	}

	X := mat.NewDense(2, 3, []float64{
		1, 1, 1,
		-2, 0, 4,
	})
	values, err := strategy.ShapValues(X)
	if err != nil {
		t.Fatalf("ShapValues failed: %v", err)
	}

	preds, _ := model.Predict(X)
	for i := 0; i < 2; i++ {
		total := values.BaseValues[0]
		for j := 0; j < 3; j++ {
			total += values.Output(0).At(i, j)
		}
		if math.Abs(total-preds.At(i, 0)) > 1e-12 {
			t.Errorf("row %d: base + sum(phi) = %v, want f(x) = %v", i, total, preds.At(i, 0))
		}
	}
}

// TestLinearCoefMismatch tests dimension validation at construction
func TestLinearCoefMismatch(t *testing.T) {
	model := &linearTestModel{coef: []float64{1, 2, 3}}
	background := mat.NewDense(2, 2, []float64{1, 2, 3, 4})

	_, err := NewLinear(model, background)
	if err == nil {
		t.Fatal("expected error for coef/background mismatch")
	}
	var de *errors.DimensionError
	if !errors.As(err, &de) {
		t.Errorf("expected DimensionError, got %T", err)
	}
}

// TestLinearFeatureMismatchAtExplain tests dimension validation on X
func TestLinearFeatureMismatchAtExplain(t *testing.T) {
	model := &linearTestModel{coef: []float64{1, 2}}
	background := mat.NewDense(2, 2, []float64{1, 2, 3, 4})

	strategy, err := NewLinear(model, background)
	if err != nil {
		t.Fatalf("NewLinear failed: %v", err)
	}

	if _, err := strategy.ShapValues(mat.NewDense(1, 3, nil)); err == nil {
		t.Error("expected error for mismatched feature count")
	}
}
