// Package explain provides thin explainer adapters over the attribution
// strategies in package shap, exposing a uniform Fit/Explain/SummaryPlot
// surface across five variants: kernel, gradient, deep, tree and linear.
//
// Explainers are constructed with a model and an explanation dataset and are
// considered fit immediately; Explain computes attribution values for the
// stored inputs and SummaryPlot renders a feature-importance summary of the
// most recent explanation.
package explain

import (
	"gonum.org/v1/gonum/mat"

	"github.com/robsdavis/Explainability/shap"
)

// Type identifiers returned by Explainer.Type, used by the registry and by
// catalog code that groups components by kind.
const TypeExplainer = "explainer"

// Explainer is the common capability shared by all explainer variants.
type Explainer interface {
	// Name returns the registry identifier of the variant.
	Name() string

	// PrettyName returns a human-readable variant name.
	PrettyName() string

	// Type returns the component type, always TypeExplainer for this package.
	Type() string

	// Fit is a no-op kept for interface compatibility with trainable
	// estimators; SHAP explainers are fit at construction.
	Fit() error

	// Explain computes attribution values for the stored explanation
	// inputs, overwriting any previously stored result.
	Explain() (*FeatureExplanation, error)

	// SummaryPlot renders a feature-importance summary of the most recent
	// explanation (or explicitly supplied values) to a PNG file.
	SummaryPlot(options ...SummaryPlotOption) error
}

// FeatureExplanation holds computed attribution values for later inspection
// and plotting. It is immutable after construction.
type FeatureExplanation struct {
	values *shap.Values
}

// NewFeatureExplanation wraps raw attribution values.
func NewFeatureExplanation(values *shap.Values) *FeatureExplanation {
	return &FeatureExplanation{values: values}
}

// Values returns the underlying attribution values.
func (fe *FeatureExplanation) Values() *shap.Values {
	return fe.values
}

// NumOutputs returns the number of model outputs attribution was computed
// for: 1 for regression, the class count for multi-class models.
func (fe *FeatureExplanation) NumOutputs() int {
	return fe.values.NumOutputs()
}

// Contrib returns the (samples x features) contribution matrix for output i.
func (fe *FeatureExplanation) Contrib(i int) *mat.Dense {
	return fe.values.Output(i)
}

// BaseValue returns the expected model output for output i.
func (fe *FeatureExplanation) BaseValue(i int) float64 {
	return fe.values.BaseValues[i]
}

// FeatureNames returns optional feature names carried by the strategy, or nil.
func (fe *FeatureExplanation) FeatureNames() []string {
	return fe.values.FeatureNames
}
