package explain

import (
	"sort"
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/robsdavis/Explainability/core"
	"github.com/robsdavis/Explainability/pkg/errors"
	"github.com/robsdavis/Explainability/shap"
)

// Factory builds an explainer from an opaque model and explanation data.
// y is only consumed by variants that batch their inputs; the others ignore
// it and accept nil.
type Factory func(model any, X, y mat.Matrix) (Explainer, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

// Register associates name with factory, replacing any previous entry.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = factory
}

// Names returns the registered explainer names in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewFromName builds the named explainer. The model must satisfy the
// capability the variant requires; a mismatch yields a CapabilityError
// rather than a panic deep inside the strategy.
func NewFromName(name string, model any, X, y mat.Matrix) (Explainer, error) {
	registryMu.RLock()
	factory, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, errors.NewValueError("NewFromName", "unknown explainer name: "+name)
	}
	return factory(model, X, y)
}

func init() {
	Register(KernelExplainerName, func(model any, X, _ mat.Matrix) (Explainer, error) {
		m, ok := model.(core.Predictor)
		if !ok {
			return nil, errors.NewCapabilityError(KernelExplainerName, "Predict")
		}
		return NewKernelExplainer(m, X)
	})
	Register(GradientExplainerName, func(model any, X, _ mat.Matrix) (Explainer, error) {
		m, ok := model.(core.GradientModel)
		if !ok {
			return nil, errors.NewCapabilityError(GradientExplainerName, "Gradient")
		}
		return NewGradientExplainer(m, X)
	})
	Register(DeepExplainerName, func(model any, X, y mat.Matrix) (Explainer, error) {
		m, ok := model.(core.GradientModel)
		if !ok {
			return nil, errors.NewCapabilityError(DeepExplainerName, "Gradient")
		}
		return NewDeepExplainer(m, X, y)
	})
	Register(TreeExplainerName, func(model any, X, _ mat.Matrix) (Explainer, error) {
		m, ok := model.(*shap.Ensemble)
		if !ok {
			return nil, errors.NewCapabilityError(TreeExplainerName, "tree ensemble")
		}
		return NewTreeExplainer(m, X)
	})
	Register(LinearExplainerName, func(model any, X, _ mat.Matrix) (Explainer, error) {
		m, ok := model.(core.LinearModel)
		if !ok {
			return nil, errors.NewCapabilityError(LinearExplainerName, "Coef/Intercept")
		}
		return NewLinearExplainer(m, X)
	})
}
