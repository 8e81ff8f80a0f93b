package explain

import (
	"gonum.org/v1/gonum/mat"

	"github.com/robsdavis/Explainability/shap"
)

// TreeExplainerName is the registry identifier of the tree variant.
const TreeExplainerName = "shap_tree_explainer"

// TreeExplainer is a light-weight wrapper for the tree-ensemble attribution
// strategy.
type TreeExplainer struct {
	baseExplainer
}

// NewTreeExplainer creates a tree explainer for the ensemble over XExplain.
func NewTreeExplainer(ensemble *shap.Ensemble, XExplain mat.Matrix) (*TreeExplainer, error) {
	inputs, err := copyInputs("NewTreeExplainer", XExplain)
	if err != nil {
		return nil, err
	}

	strategy, err := shap.NewTree(ensemble)
	if err != nil {
		return nil, err
	}

	return &TreeExplainer{
		baseExplainer: newBaseExplainer(TreeExplainerName, inputs, strategy),
	}, nil
}

// Name returns the registry identifier.
func (e *TreeExplainer) Name() string { return TreeExplainerName }

// PrettyName returns the human-readable variant name.
func (e *TreeExplainer) PrettyName() string { return "SHAP Tree Explainer" }

// Explain computes attribution values for the stored inputs.
func (e *TreeExplainer) Explain() (*FeatureExplanation, error) {
	return e.explain()
}

var _ Explainer = (*TreeExplainer)(nil)
