// Package explainability provides SHAP feature-attribution explainers for Go,
// exposing a uniform Fit/Explain/SummaryPlot surface across several explainer
// variants.
//
// The library follows a scikit-learn-like design: explainers are constructed
// with a model and an explanation dataset, Explain computes attribution
// values, and SummaryPlot renders a feature-importance summary.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/robsdavis/Explainability/explain"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    X := mat.NewDense(4, 2, []float64{1, 2, 3, 4, 5, 6, 7, 8})
//
//	    exp, err := explain.NewKernelExplainer(model, X)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    explanation, err := exp.Explain()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    fmt.Println(mat.Formatted(explanation.Contrib(0)))
//	}
//
// # Packages
//
// The library is organized into several packages:
//
//   - explain: the explainer variants (Kernel, Gradient, Deep, Tree, Linear)
//     and the name-based registry
//   - shap: attribution strategies computing the SHAP values themselves
//   - dataset: tabular dataset and batch loader used by the deep variant
//   - core: model capability interfaces consumed by the strategies
//   - pkg/errors: structured error and warning types
//   - pkg/log: structured logging utilities
//
// # Explainer Variants
//
// Five variants are provided, differing in which attribution strategy they
// dispatch to and which model capability they require:
//
//	explainer          model requirement
//	KernelExplainer    core.Predictor
//	GradientExplainer  core.GradientModel
//	DeepExplainer      core.GradientModel
//	TreeExplainer      *shap.Ensemble
//	LinearExplainer    core.LinearModel
//
// SHAP explainers require no training step: instances are considered fit as
// soon as construction succeeds, and Fit is a logged no-op kept for interface
// compatibility with trainable estimators.
package explainability
