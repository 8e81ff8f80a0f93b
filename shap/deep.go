package shap

import (
	"gonum.org/v1/gonum/mat"

	"github.com/robsdavis/Explainability/core"
	"github.com/robsdavis/Explainability/pkg/errors"
)

// Deep implements a deterministic interpolation-path attribution strategy for
// differentiable models.
//
// Unlike Gradient it does not sample: every row of the fixed reference batch
// is used as a baseline, and gradients are evaluated on a fixed midpoint grid
// along each path. Deterministic by construction, which suits the deep
// explainer's single pre-drawn reference batch.
type Deep struct {
	model      core.GradientModel
	references *mat.Dense
	steps      int
}

// DeepOption is a function that configures a Deep.
type DeepOption func(*Deep)

// WithDeepSteps sets the number of interpolation steps per reference path.
func WithDeepSteps(steps int) DeepOption {
	return func(d *Deep) {
		d.steps = steps
	}
}

// NewDeep creates a Deep strategy for model against a fixed reference batch.
func NewDeep(model core.GradientModel, references mat.Matrix, options ...DeepOption) (*Deep, error) {
	if model == nil {
		return nil, errors.NewValidationError("model", "model must not be nil", nil)
	}
	rows, cols := references.Dims()
	if rows == 0 || cols == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "shap.NewDeep")
	}

	d := &Deep{
		model:      model,
		references: mat.DenseCopyOf(references),
		steps:      32,
	}
	for _, opt := range options {
		opt(d)
	}
	if d.steps <= 0 {
		return nil, errors.NewValidationError("steps", "must be positive", d.steps)
	}
	return d, nil
}

// ShapValues computes attributions for each row of X.
func (d *Deep) ShapValues(X mat.Matrix) (v *Values, err error) {
	defer errors.Recover(&err, "Deep.ShapValues")

	rows, nFeatures := X.Dims()
	if rows == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "Deep.ShapValues")
	}
	refRows, refCols := d.references.Dims()
	if nFeatures != refCols {
		return nil, errors.NewDimensionError("Deep.ShapValues", refCols, nFeatures, 1)
	}

	base, err := expectedOutput(d.model, d.references)
	if err != nil {
		return nil, err
	}

	contrib := mat.NewDense(rows, nFeatures, nil)
	point := make([]float64, nFeatures)
	for i := 0; i < rows; i++ {
		xRow := mat.Row(nil, i, X)
		phi := make([]float64, nFeatures)

		for r := 0; r < refRows; r++ {
			ref := mat.Row(nil, r, d.references)
			for s := 0; s < d.steps; s++ {
				// Midpoint rule along the reference-to-sample path.
				alpha := (float64(s) + 0.5) / float64(d.steps)
				for j := 0; j < nFeatures; j++ {
					point[j] = ref[j] + alpha*(xRow[j]-ref[j])
				}

				grad, err := d.model.Gradient(point)
				if err != nil {
					return nil, errors.NewModelError("Deep.ShapValues", "gradient evaluation failed", err)
				}
				if len(grad) != nFeatures {
					return nil, errors.NewDimensionError("Deep.ShapValues", nFeatures, len(grad), 1)
				}

				for j := 0; j < nFeatures; j++ {
					phi[j] += grad[j] * (xRow[j] - ref[j])
				}
			}
		}

		norm := float64(refRows * d.steps)
		for j := 0; j < nFeatures; j++ {
			phi[j] /= norm
		}
		contrib.SetRow(i, phi)
	}

	if err := errors.CheckMatrix("Deep.ShapValues", contrib, rows, nFeatures); err != nil {
		return nil, err
	}

	return &Values{
		Contrib:    []*mat.Dense{contrib},
		BaseValues: []float64{base},
	}, nil
}
