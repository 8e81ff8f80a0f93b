package shap

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/robsdavis/Explainability/core"
	"github.com/robsdavis/Explainability/pkg/errors"
)

// Gradient implements the expected-gradients attribution strategy.
//
// For each explained sample x, baselines b are drawn from the background set
// and interpolation coefficients uniformly from (0, 1); the attribution of
// feature j averages dF/dx_j evaluated at b + a*(x-b), times (x_j - b_j).
type Gradient struct {
	model      core.GradientModel
	background *mat.Dense
	nSamples   int
	rng        *rand.Rand
}

// GradientOption is a function that configures a Gradient.
type GradientOption func(*Gradient)

// WithGradientSamples sets the number of (baseline, coefficient) draws per
// explained sample.
func WithGradientSamples(n int) GradientOption {
	return func(g *Gradient) {
		g.nSamples = n
	}
}

// WithGradientSeed seeds baseline sampling for reproducible estimates.
func WithGradientSeed(seed int64) GradientOption {
	return func(g *Gradient) {
		g.rng = rand.New(rand.NewSource(seed))
	}
}

// NewGradient creates a Gradient strategy for model against the given
// background set.
func NewGradient(model core.GradientModel, background mat.Matrix, options ...GradientOption) (*Gradient, error) {
	if model == nil {
		return nil, errors.NewValidationError("model", "model must not be nil", nil)
	}
	rows, cols := background.Dims()
	if rows == 0 || cols == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "shap.NewGradient")
	}

	g := &Gradient{
		model:      model,
		background: mat.DenseCopyOf(background),
		nSamples:   200,
		rng:        rand.New(rand.NewSource(0)),
	}
	for _, opt := range options {
		opt(g)
	}
	if g.nSamples <= 0 {
		return nil, errors.NewValidationError("nSamples", "must be positive", g.nSamples)
	}
	return g, nil
}

// ShapValues computes attributions for each row of X.
func (g *Gradient) ShapValues(X mat.Matrix) (v *Values, err error) {
	defer errors.Recover(&err, "Gradient.ShapValues")

	rows, nFeatures := X.Dims()
	if rows == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "Gradient.ShapValues")
	}
	bgRows, bgCols := g.background.Dims()
	if nFeatures != bgCols {
		return nil, errors.NewDimensionError("Gradient.ShapValues", bgCols, nFeatures, 1)
	}

	base, err := expectedOutput(g.model, g.background)
	if err != nil {
		return nil, err
	}

	contrib := mat.NewDense(rows, nFeatures, nil)
	point := make([]float64, nFeatures)
	for i := 0; i < rows; i++ {
		xRow := mat.Row(nil, i, X)
		phi := make([]float64, nFeatures)

		for s := 0; s < g.nSamples; s++ {
			bRow := mat.Row(nil, g.rng.Intn(bgRows), g.background)
			alpha := g.rng.Float64()
			for j := 0; j < nFeatures; j++ {
				point[j] = bRow[j] + alpha*(xRow[j]-bRow[j])
			}

			grad, err := g.model.Gradient(point)
			if err != nil {
				return nil, errors.NewModelError("Gradient.ShapValues", "gradient evaluation failed", err)
			}
			if len(grad) != nFeatures {
				return nil, errors.NewDimensionError("Gradient.ShapValues", nFeatures, len(grad), 1)
			}

			for j := 0; j < nFeatures; j++ {
				phi[j] += grad[j] * (xRow[j] - bRow[j])
			}
		}

		for j := 0; j < nFeatures; j++ {
			phi[j] /= float64(g.nSamples)
		}
		contrib.SetRow(i, phi)
	}

	if err := errors.CheckMatrix("Gradient.ShapValues", contrib, rows, nFeatures); err != nil {
		return nil, err
	}

	return &Values{
		Contrib:    []*mat.Dense{contrib},
		BaseValues: []float64{base},
	}, nil
}

// expectedOutput returns the mean first-column model output over the rows of X.
func expectedOutput(model core.Predictor, X *mat.Dense) (float64, error) {
	out, err := model.Predict(X)
	if err != nil {
		return 0, errors.NewModelError("shap.expectedOutput", "model evaluation failed", err)
	}
	rows, _ := out.Dims()
	if rows == 0 {
		return 0, errors.Wrap(errors.ErrEmptyData, "shap.expectedOutput")
	}
	sum := 0.0
	for i := 0; i < rows; i++ {
		sum += out.At(i, 0)
	}
	return sum / float64(rows), nil
}
