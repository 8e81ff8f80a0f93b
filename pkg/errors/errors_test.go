package errors

import (
	"testing"
)

// TestNotFittedError tests the error message and type detection
func TestNotFittedError(t *testing.T) {
	err := NewNotFittedError("KernelExplainer", "Explain")
	if err == nil {
		t.Fatal("NewNotFittedError returned nil")
	}

	var nfe *NotFittedError
	if !As(err, &nfe) {
		t.Fatalf("expected NotFittedError, got %T", err)
	}
	if nfe.EstimatorName != "KernelExplainer" || nfe.Method != "Explain" {
		t.Errorf("unexpected fields: %+v", nfe)
	}

	want := "explainability: KernelExplainer: this explainer is not fitted yet. Call Fit() before using Explain()"
	if err.Error() != want {
		t.Errorf("unexpected message:\n got: %s\nwant: %s", err.Error(), want)
	}
}

// TestCapabilityError tests the capability error used by gradient-based explainers
func TestCapabilityError(t *testing.T) {
	err := NewCapabilityError("GradientExplainer", "core.GradientModel")

	var ce *CapabilityError
	if !As(err, &ce) {
		t.Fatalf("expected CapabilityError, got %T", err)
	}
	if ce.Capability != "core.GradientModel" {
		t.Errorf("unexpected capability: %s", ce.Capability)
	}
}

// TestDimensionError tests axis naming in dimension mismatch messages
func TestDimensionError(t *testing.T) {
	rowErr := NewDimensionError("DeepExplainer.New", 10, 5, 0)
	if got := rowErr.Error(); got != "explainability: DeepExplainer.New: dimension mismatch on axis 0 (rows). Expected 10, got 5" {
		t.Errorf("unexpected row message: %s", got)
	}

	colErr := NewDimensionError("LinearExplainer.Explain", 3, 4, 1)
	var de *DimensionError
	if !As(colErr, &de) {
		t.Fatalf("expected DimensionError, got %T", colErr)
	}
	if de.Axis != 1 {
		t.Errorf("expected axis 1, got %d", de.Axis)
	}
}

// TestWarningHandler tests that a custom handler receives warnings
func TestWarningHandler(t *testing.T) {
	var captured error
	SetWarningHandler(func(w error) {
		captured = w
	})
	defer SetWarningHandler(nil)

	warning := New("test warning")
	Warn(warning)

	if captured == nil {
		t.Fatal("warning handler was not called")
	}
	if captured.Error() != "test warning" {
		t.Errorf("unexpected warning: %v", captured)
	}
}

// TestCheckValues tests NaN/Inf detection on slices
func TestCheckValues(t *testing.T) {
	if err := CheckValues("test_op", []float64{1.0, -2.5, 0.0}); err != nil {
		t.Errorf("stable values flagged as unstable: %v", err)
	}

	err := CheckValues("test_op", []float64{1.0, nan()})
	if err == nil {
		t.Fatal("NaN not detected")
	}
	var nie *NumericalInstabilityError
	if !As(err, &nie) {
		t.Fatalf("expected NumericalInstabilityError, got %T", err)
	}
	if nie.Operation != "test_op" {
		t.Errorf("unexpected operation: %s", nie.Operation)
	}
}

// TestRecover tests panic-to-error conversion at the model boundary
func TestRecover(t *testing.T) {
	callPanickyModel := func() (err error) {
		defer Recover(&err, "TestRecover.model")
		panic("model blew up")
	}

	err := callPanickyModel()
	if err == nil {
		t.Fatal("panic was not converted to an error")
	}

	var pe *PanicError
	if !As(err, &pe) {
		t.Fatalf("expected PanicError, got %T", err)
	}
	if pe.Operation != "TestRecover.model" {
		t.Errorf("unexpected operation: %s", pe.Operation)
	}
}

func nan() float64 {
	var zero float64
	return zero / zero
}
