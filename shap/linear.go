package shap

import (
	"gonum.org/v1/gonum/mat"

	"github.com/robsdavis/Explainability/core"
	"github.com/robsdavis/Explainability/pkg/errors"
)

// Linear computes exact SHAP values for linear models.
//
// For a model f(x) = coef·x + intercept with independent features, the
// attribution of feature j is coef_j * (x_j - E[x_j]), with the expectation
// taken over the background set.
type Linear struct {
	model core.LinearModel
	means []float64
	base  float64
}

// NewLinear creates a Linear strategy for model against the given background
// set.
func NewLinear(model core.LinearModel, background mat.Matrix) (*Linear, error) {
	if model == nil {
		return nil, errors.NewValidationError("model", "model must not be nil", nil)
	}
	rows, cols := background.Dims()
	if rows == 0 || cols == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "shap.NewLinear")
	}

	coef := model.Coef()
	if len(coef) != cols {
		return nil, errors.NewDimensionError("shap.NewLinear", len(coef), cols, 1)
	}

	// Column means of the background set.
	means := make([]float64, cols)
	for j := 0; j < cols; j++ {
		sum := 0.0
		for i := 0; i < rows; i++ {
			sum += background.At(i, j)
		}
		means[j] = sum / float64(rows)
	}

	base := model.Intercept()
	for j, c := range coef {
		base += c * means[j]
	}

	return &Linear{model: model, means: means, base: base}, nil
}

// ShapValues computes exact attributions for each row of X.
func (l *Linear) ShapValues(X mat.Matrix) (v *Values, err error) {
	defer errors.Recover(&err, "Linear.ShapValues")

	rows, cols := X.Dims()
	if rows == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "Linear.ShapValues")
	}
	if cols != len(l.means) {
		return nil, errors.NewDimensionError("Linear.ShapValues", len(l.means), cols, 1)
	}

	coef := l.model.Coef()
	contrib := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			contrib.Set(i, j, coef[j]*(X.At(i, j)-l.means[j]))
		}
	}

	if err := errors.CheckMatrix("Linear.ShapValues", contrib, rows, cols); err != nil {
		return nil, err
	}

	return &Values{
		Contrib:    []*mat.Dense{contrib},
		BaseValues: []float64{l.base},
	}, nil
}
