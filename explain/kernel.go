package explain

import (
	"gonum.org/v1/gonum/mat"

	"github.com/robsdavis/Explainability/core"
	"github.com/robsdavis/Explainability/shap"
)

// KernelExplainerName is the registry identifier of the kernel variant.
const KernelExplainerName = "shap_kernel_explainer"

// KernelExplainer is a light-weight wrapper for the model-agnostic kernel
// attribution strategy. The explanation input set doubles as the background
// set, matching the kernel strategy's expectations for tabular data.
type KernelExplainer struct {
	baseExplainer
}

// NewKernelExplainer creates a kernel explainer for model over XExplain.
func NewKernelExplainer(model core.Predictor, XExplain mat.Matrix, options ...shap.KernelOption) (*KernelExplainer, error) {
	inputs, err := copyInputs("NewKernelExplainer", XExplain)
	if err != nil {
		return nil, err
	}

	strategy, err := shap.NewKernel(model, inputs, options...)
	if err != nil {
		return nil, err
	}

	return &KernelExplainer{
		baseExplainer: newBaseExplainer(KernelExplainerName, inputs, strategy),
	}, nil
}

// Name returns the registry identifier.
func (e *KernelExplainer) Name() string { return KernelExplainerName }

// PrettyName returns the human-readable variant name.
func (e *KernelExplainer) PrettyName() string { return "SHAP Kernel Explainer" }

// Explain computes attribution values for the stored inputs.
func (e *KernelExplainer) Explain() (*FeatureExplanation, error) {
	return e.explain()
}

var _ Explainer = (*KernelExplainer)(nil)
