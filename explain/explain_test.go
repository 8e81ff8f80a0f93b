package explain

import (
	"math"
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"

	xaierrors "github.com/robsdavis/Explainability/pkg/errors"
	"github.com/robsdavis/Explainability/pkg/log"
	"github.com/robsdavis/Explainability/shap"
)

// affineTestModel is f(x) = coef·x + intercept with an analytic gradient.
// Coefficients are mutable so tests can verify that Explain recomputes
// rather than caches.
type affineTestModel struct {
	coef      []float64
	intercept float64
}

func (m *affineTestModel) Predict(X mat.Matrix) (mat.Matrix, error) {
	rows, cols := X.Dims()
	out := mat.NewDense(rows, 1, nil)
	for i := 0; i < rows; i++ {
		y := m.intercept
		for j := 0; j < cols; j++ {
			y += m.coef[j] * X.At(i, j)
		}
		out.Set(i, 0, y)
	}
	return out, nil
}

func (m *affineTestModel) Gradient(x []float64) ([]float64, error) {
	grad := make([]float64, len(x))
	copy(grad, m.coef)
	return grad, nil
}

func (m *affineTestModel) Coef() []float64 { return m.coef }

func (m *affineTestModel) Intercept() float64 { return m.intercept }

// stumpEnsemble is a single-tree ensemble splitting on feature 0 at 0.5 with
// gain 10, so every sample's path holds exactly one split of depth-2 length.
func stumpEnsemble() *shap.Ensemble {
	return &shap.Ensemble{
		Trees: []shap.DecisionTree{{
			Nodes: []shap.Node{
				{Type: shap.SplitNode, SplitFeature: 0, Threshold: 0.5, LeftChild: 1, RightChild: 2, Gain: 10, Count: 10},
				{Type: shap.LeafNode, LeafValue: -1, Count: 5, LeftChild: -1, RightChild: -1},
				{Type: shap.LeafNode, LeafValue: 1, Count: 5, LeftChild: -1, RightChild: -1},
			},
		}},
		LearningRate: 1.0,
		NumFeatures:  2,
	}
}

func testInputs() *mat.Dense {
	return mat.NewDense(4, 2, []float64{
		0, 0,
		1, 0,
		0, 1,
		1, 1,
	})
}

func newTestExplainers(t *testing.T) map[string]Explainer {
	t.Helper()

	model := &affineTestModel{coef: []float64{2, 3}, intercept: 1}
	X := testInputs()
	y := mat.NewDense(4, 1, []float64{1, 3, 4, 6})

	kernel, err := NewKernelExplainer(model, X)
	if err != nil {
		t.Fatalf("NewKernelExplainer: %v", err)
	}
	gradient, err := NewGradientExplainer(model, X)
	if err != nil {
		t.Fatalf("NewGradientExplainer: %v", err)
	}
	deep, err := NewDeepExplainer(model, X, y)
	if err != nil {
		t.Fatalf("NewDeepExplainer: %v", err)
	}
	tree, err := NewTreeExplainer(stumpEnsemble(), X)
	if err != nil {
		t.Fatalf("NewTreeExplainer: %v", err)
	}
	linear, err := NewLinearExplainer(model, X)
	if err != nil {
		t.Fatalf("NewLinearExplainer: %v", err)
	}

	return map[string]Explainer{
		KernelExplainerName:   kernel,
		GradientExplainerName: gradient,
		DeepExplainerName:     deep,
		TreeExplainerName:     tree,
		LinearExplainerName:   linear,
	}
}

func TestExplainerIdentification(t *testing.T) {
	pretty := map[string]string{
		KernelExplainerName:   "SHAP Kernel Explainer",
		GradientExplainerName: "SHAP Gradient Explainer",
		DeepExplainerName:     "SHAP Deep Explainer",
		TreeExplainerName:     "SHAP Tree Explainer",
		LinearExplainerName:   "SHAP Linear Explainer",
	}

	for name, e := range newTestExplainers(t) {
		if e.Name() != name {
			t.Errorf("Name() = %q, want %q", e.Name(), name)
		}
		if e.PrettyName() != pretty[name] {
			t.Errorf("%s: PrettyName() = %q, want %q", name, e.PrettyName(), pretty[name])
		}
		if e.Type() != TypeExplainer {
			t.Errorf("%s: Type() = %q, want %q", name, e.Type(), TypeExplainer)
		}
	}
}

func TestFitIsNoOpAndLogsNotice(t *testing.T) {
	logger, buffer := log.NewTestLogger(log.LevelDebug)
	log.SetProvider(&log.TestProvider{Logger: logger})
	defer log.SetProvider(nil)

	model := &affineTestModel{coef: []float64{2, 3}, intercept: 1}
	e, err := NewLinearExplainer(model, testInputs())
	if err != nil {
		t.Fatalf("NewLinearExplainer: %v", err)
	}

	if err := e.Fit(); err != nil {
		t.Fatalf("Fit() error: %v", err)
	}
	out := buffer.String()
	if !strings.Contains(out, "do not need to be fit") {
		t.Errorf("Fit notice not logged, got: %q", out)
	}
	if !strings.Contains(out, LinearExplainerName) {
		t.Errorf("notice missing explainer name, got: %q", out)
	}
}

func TestLinearExplainLocalAccuracy(t *testing.T) {
	model := &affineTestModel{coef: []float64{2, 3}, intercept: 1}
	X := testInputs()
	e, err := NewLinearExplainer(model, X)
	if err != nil {
		t.Fatalf("NewLinearExplainer: %v", err)
	}

	explanation, err := e.Explain()
	if err != nil {
		t.Fatalf("Explain: %v", err)
	}
	if explanation.NumOutputs() != 1 {
		t.Fatalf("NumOutputs = %d, want 1", explanation.NumOutputs())
	}

	preds, _ := model.Predict(X)
	contrib := explanation.Contrib(0)
	base := explanation.BaseValue(0)
	rows, cols := contrib.Dims()
	for i := 0; i < rows; i++ {
		sum := base
		for j := 0; j < cols; j++ {
			sum += contrib.At(i, j)
		}
		if math.Abs(sum-preds.At(i, 0)) > 1e-10 {
			t.Errorf("row %d: base+sum(contrib) = %v, want %v", i, sum, preds.At(i, 0))
		}
	}
}

func TestExplainOverwritesPreviousResult(t *testing.T) {
	model := &affineTestModel{coef: []float64{2, 3}, intercept: 1}
	e, err := NewLinearExplainer(model, testInputs())
	if err != nil {
		t.Fatalf("NewLinearExplainer: %v", err)
	}

	first, err := e.Explain()
	if err != nil {
		t.Fatalf("first Explain: %v", err)
	}
	firstVal := first.Contrib(0).At(1, 0)

	model.coef[0] = 8
	second, err := e.Explain()
	if err != nil {
		t.Fatalf("second Explain: %v", err)
	}
	secondVal := second.Contrib(0).At(1, 0)

	if firstVal == secondVal {
		t.Errorf("contribution unchanged after model update: %v", firstVal)
	}
	if got := e.LastExplanation().Contrib(0).At(1, 0); got != secondVal {
		t.Errorf("LastExplanation = %v, want latest result %v", got, secondVal)
	}
}

func TestDeepExplainerBatchMatchesLabelCount(t *testing.T) {
	model := &affineTestModel{coef: []float64{2, 3}, intercept: 1}
	X := mat.NewDense(5, 2, []float64{
		0, 0,
		1, 1,
		2, 2,
		3, 3,
		4, 4,
	})
	y := mat.NewDense(5, 1, []float64{1, 6, 11, 16, 21})

	e, err := NewDeepExplainer(model, X, y, WithDeepShuffleSeed(7))
	if err != nil {
		t.Fatalf("NewDeepExplainer: %v", err)
	}

	batch := e.ExplainInputs()
	rows, cols := batch.Dims()
	if rows != 5 || cols != 2 {
		t.Fatalf("batch dims = (%d, %d), want (5, 2)", rows, cols)
	}

	// The batch must be a permutation of the original rows: every original
	// row appears exactly once.
	seen := make(map[float64]int)
	for i := 0; i < rows; i++ {
		seen[batch.At(i, 0)]++
	}
	for v := 0.0; v < 5; v++ {
		if seen[v] != 1 {
			t.Errorf("row with leading value %v appears %d times, want 1", v, seen[v])
		}
	}

	explanation, err := e.Explain()
	if err != nil {
		t.Fatalf("Explain: %v", err)
	}
	gotRows, _ := explanation.Contrib(0).Dims()
	if gotRows != 5 {
		t.Errorf("contribution rows = %d, want 5", gotRows)
	}
}

func TestTreeExplainerAttribution(t *testing.T) {
	e, err := NewTreeExplainer(stumpEnsemble(), testInputs())
	if err != nil {
		t.Fatalf("NewTreeExplainer: %v", err)
	}

	explanation, err := e.Explain()
	if err != nil {
		t.Fatalf("Explain: %v", err)
	}

	contrib := explanation.Contrib(0)
	rows, _ := contrib.Dims()
	for i := 0; i < rows; i++ {
		// One split of gain 10 on a path of length 2.
		if got := contrib.At(i, 0); math.Abs(got-5) > 1e-10 {
			t.Errorf("row %d feature 0: got %v, want 5", i, got)
		}
		if got := contrib.At(i, 1); got != 0 {
			t.Errorf("row %d feature 1: got %v, want 0", i, got)
		}
	}
}

func TestExplainerInputValidation(t *testing.T) {
	model := &affineTestModel{coef: []float64{2, 3}, intercept: 1}
	empty := &mat.Dense{}

	if _, err := NewKernelExplainer(model, empty); err == nil {
		t.Error("NewKernelExplainer accepted empty inputs")
	}
	if _, err := NewLinearExplainer(model, empty); err == nil {
		t.Error("NewLinearExplainer accepted empty inputs")
	}

	// Labels that do not match the input rows must be rejected.
	X := testInputs()
	yBad := mat.NewDense(3, 1, []float64{1, 2, 3})
	if _, err := NewDeepExplainer(model, X, yBad); err == nil {
		t.Error("NewDeepExplainer accepted mismatched labels")
	}
}

// TestDeepExplainerNilLabels tests that missing labels fail fast instead of
// panicking inside the dataset layer.
func TestDeepExplainerNilLabels(t *testing.T) {
	model := &affineTestModel{coef: []float64{2, 3}, intercept: 1}

	_, err := NewDeepExplainer(model, testInputs(), nil)
	if err == nil {
		t.Fatal("NewDeepExplainer accepted nil labels")
	}
	var validationErr *xaierrors.ValidationError
	if !xaierrors.As(err, &validationErr) {
		t.Errorf("error is not a ValidationError: %v", err)
	}
}

func TestExplainerInputsAreCopied(t *testing.T) {
	model := &affineTestModel{coef: []float64{2, 3}, intercept: 1}
	X := testInputs()
	e, err := NewLinearExplainer(model, X)
	if err != nil {
		t.Fatalf("NewLinearExplainer: %v", err)
	}

	before, err := e.Explain()
	if err != nil {
		t.Fatalf("Explain: %v", err)
	}
	want := before.Contrib(0).At(1, 0)

	X.Set(1, 0, 100)
	after, err := e.Explain()
	if err != nil {
		t.Fatalf("Explain after mutation: %v", err)
	}
	if got := after.Contrib(0).At(1, 0); got != want {
		t.Errorf("caller mutation leaked into explainer: got %v, want %v", got, want)
	}
}

func TestExplainerSatisfiesCore(t *testing.T) {
	for name, e := range newTestExplainers(t) {
		base, ok := e.(interface{ IsFitted() bool })
		if !ok {
			t.Fatalf("%s does not expose fitted state", name)
		}
		if !base.IsFitted() {
			t.Errorf("%s: not fitted at construction", name)
		}
	}
}
