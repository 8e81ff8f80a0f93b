package shap

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/robsdavis/Explainability/core"
	"github.com/robsdavis/Explainability/pkg/errors"
)

// Kernel implements model-agnostic Kernel SHAP.
//
// Feature coalitions are sampled (or fully enumerated when the feature count
// is small enough), hybrid samples are built against the background set, and
// attributions are recovered by solving the Shapley-kernel weighted least
// squares problem. Models exposing per-class probabilities through
// core.ProbaPredictor get one attribution matrix per class.
type Kernel struct {
	model      core.Predictor
	background *mat.Dense
	nSamples   int
	rng        *rand.Rand
}

// KernelOption is a function that configures a Kernel.
type KernelOption func(*Kernel)

// WithKernelSamples sets the coalition sample budget. When the full coalition
// space fits within the budget it is enumerated instead, making the result
// deterministic. Zero selects an automatic budget of 2*features + 2048.
func WithKernelSamples(n int) KernelOption {
	return func(k *Kernel) {
		k.nSamples = n
	}
}

// WithKernelSeed seeds coalition sampling for reproducible estimates.
func WithKernelSeed(seed int64) KernelOption {
	return func(k *Kernel) {
		k.rng = rand.New(rand.NewSource(seed))
	}
}

// NewKernel creates a Kernel strategy for model against the given background
// set.
func NewKernel(model core.Predictor, background mat.Matrix, options ...KernelOption) (*Kernel, error) {
	if model == nil {
		return nil, errors.NewValidationError("model", "model must not be nil", nil)
	}
	rows, cols := background.Dims()
	if rows == 0 || cols == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "shap.NewKernel")
	}

	k := &Kernel{
		model:      model,
		background: mat.DenseCopyOf(background),
		rng:        rand.New(rand.NewSource(0)),
	}
	for _, opt := range options {
		opt(k)
	}
	if k.nSamples < 0 {
		return nil, errors.NewValidationError("nSamples", "must be non-negative", k.nSamples)
	}
	return k, nil
}

// modelOutputs evaluates the model on X, preferring per-class probabilities
// when the model exposes them.
func (k *Kernel) modelOutputs(X mat.Matrix) (*mat.Dense, error) {
	var out mat.Matrix
	var err error
	if proba, ok := k.model.(core.ProbaPredictor); ok {
		out, err = proba.PredictProba(X)
	} else {
		out, err = k.model.Predict(X)
	}
	if err != nil {
		return nil, errors.NewModelError("Kernel.modelOutputs", "model evaluation failed", err)
	}
	return mat.DenseCopyOf(out), nil
}

// ShapValues computes attributions for each row of X.
func (k *Kernel) ShapValues(X mat.Matrix) (v *Values, err error) {
	defer errors.Recover(&err, "Kernel.ShapValues")

	rows, nFeatures := X.Dims()
	if rows == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "Kernel.ShapValues")
	}
	bgRows, bgCols := k.background.Dims()
	if nFeatures != bgCols {
		return nil, errors.NewDimensionError("Kernel.ShapValues", bgCols, nFeatures, 1)
	}

	bgOut, err := k.modelOutputs(k.background)
	if err != nil {
		return nil, err
	}
	_, nOutputs := bgOut.Dims()

	base := make([]float64, nOutputs)
	for c := 0; c < nOutputs; c++ {
		sum := 0.0
		for i := 0; i < bgRows; i++ {
			sum += bgOut.At(i, c)
		}
		base[c] = sum / float64(bgRows)
	}

	xOut, err := k.modelOutputs(X)
	if err != nil {
		return nil, err
	}

	contrib := make([]*mat.Dense, nOutputs)
	for c := range contrib {
		contrib[c] = mat.NewDense(rows, nFeatures, nil)
	}

	// A single feature owns the whole deviation from the base value.
	if nFeatures == 1 {
		for c := 0; c < nOutputs; c++ {
			for i := 0; i < rows; i++ {
				contrib[c].Set(i, 0, xOut.At(i, c)-base[c])
			}
		}
		return &Values{Contrib: contrib, BaseValues: base}, nil
	}

	masks := k.coalitions(nFeatures)
	nMasks := len(masks)

	// Design matrix with the last feature eliminated so that the efficiency
	// constraint (attributions sum to fx - base) holds exactly.
	design := mat.NewDense(nMasks, nFeatures-1, nil)
	sqrtW := make([]float64, nMasks)
	for m, mask := range masks {
		size := 0
		for _, on := range mask {
			if on {
				size++
			}
		}
		sqrtW[m] = math.Sqrt(shapleyKernelWeight(nFeatures, size))

		last := 0.0
		if mask[nFeatures-1] {
			last = 1.0
		}
		for j := 0; j < nFeatures-1; j++ {
			zj := 0.0
			if mask[j] {
				zj = 1.0
			}
			design.Set(m, j, (zj-last)*sqrtW[m])
		}
	}

	var qr mat.QR
	qr.Factorize(design)

	y := mat.NewDense(nMasks, 1, nil)
	phi := mat.NewDense(nFeatures-1, 1, nil)
	for i := 0; i < rows; i++ {
		xRow := mat.Row(nil, i, X)

		// Expected model output per coalition, averaged over the
		// background set.
		expected, err := k.coalitionOutputs(masks, xRow, nOutputs)
		if err != nil {
			return nil, err
		}

		for c := 0; c < nOutputs; c++ {
			fx := xOut.At(i, c)
			for m, mask := range masks {
				target := expected.At(m, c) - base[c]
				if mask[nFeatures-1] {
					target -= fx - base[c]
				}
				y.Set(m, 0, target*sqrtW[m])
			}

			if err := qr.SolveTo(phi, false, y); err != nil {
				return nil, errors.Wrap(errors.ErrSingularMatrix, "Kernel.ShapValues: weighted least squares")
			}

			lastPhi := fx - base[c]
			for j := 0; j < nFeatures-1; j++ {
				contrib[c].Set(i, j, phi.At(j, 0))
				lastPhi -= phi.At(j, 0)
			}
			contrib[c].Set(i, nFeatures-1, lastPhi)
		}
	}

	for c := 0; c < nOutputs; c++ {
		if err := errors.CheckMatrix("Kernel.ShapValues", contrib[c], rows, nFeatures); err != nil {
			return nil, err
		}
	}

	return &Values{Contrib: contrib, BaseValues: base}, nil
}

// coalitionOutputs evaluates the model on hybrid samples for every mask:
// masked-on features take their value from xRow, the rest keep the background
// rows. Returns the per-mask, per-output background average.
func (k *Kernel) coalitionOutputs(masks [][]bool, xRow []float64, nOutputs int) (*mat.Dense, error) {
	bgRows, nFeatures := k.background.Dims()

	expected := mat.NewDense(len(masks), nOutputs, nil)
	hybrid := mat.NewDense(bgRows, nFeatures, nil)
	for m, mask := range masks {
		hybrid.Copy(k.background)
		for j, on := range mask {
			if !on {
				continue
			}
			for r := 0; r < bgRows; r++ {
				hybrid.Set(r, j, xRow[j])
			}
		}

		out, err := k.modelOutputs(hybrid)
		if err != nil {
			return nil, err
		}
		for c := 0; c < nOutputs; c++ {
			sum := 0.0
			for r := 0; r < bgRows; r++ {
				sum += out.At(r, c)
			}
			expected.Set(m, c, sum/float64(bgRows))
		}
	}
	return expected, nil
}

// coalitions returns the non-trivial coalition masks to regress on: the full
// space when it fits the sample budget, otherwise a random sample.
func (k *Kernel) coalitions(nFeatures int) [][]bool {
	budget := k.nSamples
	if budget == 0 {
		budget = 2*nFeatures + 2048
	}
	if budget < 2*nFeatures {
		// Too few samples leave the regression underdetermined.
		budget = 2 * nFeatures
	}

	if nFeatures <= 20 {
		total := (1 << uint(nFeatures)) - 2
		if total <= budget {
			masks := make([][]bool, 0, total)
			for bits := 1; bits < (1<<uint(nFeatures))-1; bits++ {
				mask := make([]bool, nFeatures)
				for j := 0; j < nFeatures; j++ {
					mask[j] = bits&(1<<uint(j)) != 0
				}
				masks = append(masks, mask)
			}
			return masks
		}
	}

	masks := make([][]bool, budget)
	for m := range masks {
		size := 1 + k.rng.Intn(nFeatures-1)
		mask := make([]bool, nFeatures)
		for _, j := range k.rng.Perm(nFeatures)[:size] {
			mask[j] = true
		}
		masks[m] = mask
	}
	return masks
}

// shapleyKernelWeight is the Shapley kernel weight for a coalition of the
// given size: (M-1) / (C(M,s) * s * (M-s)).
func shapleyKernelWeight(nFeatures, size int) float64 {
	logBinom := lgamma(float64(nFeatures+1)) - lgamma(float64(size+1)) - lgamma(float64(nFeatures-size+1))
	return float64(nFeatures-1) / (math.Exp(logBinom) * float64(size) * float64(nFeatures-size))
}

func lgamma(x float64) float64 {
	v, _ := math.Lgamma(x)
	return v
}
