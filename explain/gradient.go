package explain

import (
	"gonum.org/v1/gonum/mat"

	"github.com/robsdavis/Explainability/core"
	"github.com/robsdavis/Explainability/shap"
)

// GradientExplainerName is the registry identifier of the gradient variant.
const GradientExplainerName = "shap_gradient_explainer"

// GradientExplainer is a light-weight wrapper for the expected-gradients
// attribution strategy. The model must expose input gradients through
// core.GradientModel.
type GradientExplainer struct {
	baseExplainer
}

// NewGradientExplainer creates a gradient explainer for model over XExplain.
func NewGradientExplainer(model core.GradientModel, XExplain mat.Matrix, options ...shap.GradientOption) (*GradientExplainer, error) {
	inputs, err := copyInputs("NewGradientExplainer", XExplain)
	if err != nil {
		return nil, err
	}

	strategy, err := shap.NewGradient(model, inputs, options...)
	if err != nil {
		return nil, err
	}

	return &GradientExplainer{
		baseExplainer: newBaseExplainer(GradientExplainerName, inputs, strategy),
	}, nil
}

// Name returns the registry identifier.
func (e *GradientExplainer) Name() string { return GradientExplainerName }

// PrettyName returns the human-readable variant name.
func (e *GradientExplainer) PrettyName() string { return "SHAP Gradient Explainer" }

// Explain computes attribution values for the stored inputs.
func (e *GradientExplainer) Explain() (*FeatureExplanation, error) {
	return e.explain()
}

var _ Explainer = (*GradientExplainer)(nil)
