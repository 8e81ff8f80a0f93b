package explain

import (
	"gonum.org/v1/gonum/mat"

	"github.com/robsdavis/Explainability/core"
	"github.com/robsdavis/Explainability/shap"
)

// LinearExplainerName is the registry identifier of the linear variant.
const LinearExplainerName = "shap_linear_explainer"

// LinearExplainer is a light-weight wrapper for the exact linear attribution
// strategy. The model only needs to expose coefficients and an intercept.
type LinearExplainer struct {
	baseExplainer
}

// NewLinearExplainer creates a linear explainer for model over XExplain.
func NewLinearExplainer(model core.LinearModel, XExplain mat.Matrix) (*LinearExplainer, error) {
	inputs, err := copyInputs("NewLinearExplainer", XExplain)
	if err != nil {
		return nil, err
	}

	strategy, err := shap.NewLinear(model, inputs)
	if err != nil {
		return nil, err
	}

	return &LinearExplainer{
		baseExplainer: newBaseExplainer(LinearExplainerName, inputs, strategy),
	}, nil
}

// Name returns the registry identifier.
func (e *LinearExplainer) Name() string { return LinearExplainerName }

// PrettyName returns the human-readable variant name.
func (e *LinearExplainer) PrettyName() string { return "SHAP Linear Explainer" }

// Explain computes attribution values for the stored inputs.
func (e *LinearExplainer) Explain() (*FeatureExplanation, error) {
	return e.explain()
}

var _ Explainer = (*LinearExplainer)(nil)
