// Package shap implements the attribution strategies behind the explainer
// variants in package explain.
//
// Each strategy computes SHAP values: per-feature (and per-output, for
// multi-class models) scores indicating each feature's contribution to a
// model's prediction for a given input, relative to a base value estimated
// from a background/reference set.
//
// Strategies:
//
//   - Kernel: model-agnostic Kernel SHAP via coalition sampling and a
//     Shapley-kernel weighted least squares solve
//   - Gradient: expected gradients with sampled baselines
//   - Deep: deterministic interpolation-path attribution against a fixed
//     reference batch
//   - Tree: path-based attribution over a tree Ensemble
//   - Linear: exact attribution from linear model coefficients
//
// All strategies operate on gonum matrices, never mutate their inputs, and
// return a *Values container.
package shap
