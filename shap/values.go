package shap

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Strategy computes attribution values for the rows of X.
type Strategy interface {
	// ShapValues computes SHAP values for each row of X.
	ShapValues(X mat.Matrix) (*Values, error)
}

// Values holds computed SHAP values for later inspection and plotting.
//
// Contrib holds one (samples x features) matrix per model output; regression
// models have a single output, multi-class models one per class. BaseValues
// holds the expected model output per output, estimated on the background
// set. Values is treated as immutable once constructed.
type Values struct {
	Contrib      []*mat.Dense
	BaseValues   []float64
	FeatureNames []string
}

// NumOutputs returns the number of model outputs attribution was computed for.
func (v *Values) NumOutputs() int {
	return len(v.Contrib)
}

// Output returns the contribution matrix for output i.
func (v *Values) Output(i int) *mat.Dense {
	return v.Contrib[i]
}

// NumFeatures returns the number of attributed features.
func (v *Values) NumFeatures() int {
	if len(v.Contrib) == 0 {
		return 0
	}
	_, cols := v.Contrib[0].Dims()
	return cols
}

// MeanAbs returns the mean absolute SHAP value per feature, aggregated over
// all samples and outputs. This is the quantity the summary plot ranks
// features by.
func (v *Values) MeanAbs() []float64 {
	nFeatures := v.NumFeatures()
	if nFeatures == 0 {
		return nil
	}

	result := make([]float64, nFeatures)
	total := 0
	for _, contrib := range v.Contrib {
		rows, _ := contrib.Dims()
		for i := 0; i < rows; i++ {
			for j := 0; j < nFeatures; j++ {
				result[j] += math.Abs(contrib.At(i, j))
			}
		}
		total += rows
	}
	if total == 0 {
		return result
	}
	for j := range result {
		result[j] /= float64(total)
	}
	return result
}
