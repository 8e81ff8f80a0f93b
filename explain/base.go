package explain

import (
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/robsdavis/Explainability/core"
	"github.com/robsdavis/Explainability/pkg/errors"
	"github.com/robsdavis/Explainability/pkg/log"
	"github.com/robsdavis/Explainability/shap"
)

// copyInputs validates and copies an explanation input set so later caller
// mutation cannot change what the explainer operates on.
func copyInputs(op string, X mat.Matrix) (*mat.Dense, error) {
	rows, cols := X.Dims()
	if rows == 0 || cols == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, op)
	}
	return mat.DenseCopyOf(X), nil
}

// baseExplainer carries the behavior shared by all variants: fitted-at-
// construction state, the stored explanation inputs, the last computed
// result, and the plotting helper. Variants embed it and add their own
// identification strings and strategy.
type baseExplainer struct {
	core.BaseEstimator

	name          string
	explainInputs *mat.Dense
	strategy      shap.Strategy

	shapValues  *shap.Values
	explanation *FeatureExplanation
}

// newBaseExplainer records the inputs and strategy and marks the explainer
// fit: SHAP explainers have no training phase.
func newBaseExplainer(name string, inputs *mat.Dense, strategy shap.Strategy) baseExplainer {
	b := baseExplainer{
		name:          name,
		explainInputs: inputs,
		strategy:      strategy,
	}
	b.SetFitted()
	return b
}

// Type returns the component type.
func (b *baseExplainer) Type() string {
	return TypeExplainer
}

// Fit always succeeds and performs no work.
func (b *baseExplainer) Fit() error {
	log.GetLoggerWithName("explain").Info(
		"SHAP explainers do not need to be fit. Please simply call Explain().",
		log.ExplainerKey, b.name,
		log.OperationKey, "fit",
	)
	return nil
}

// explain dispatches into the strategy and overwrites the stored result.
func (b *baseExplainer) explain() (*FeatureExplanation, error) {
	start := time.Now()
	values, err := b.strategy.ShapValues(b.explainInputs)
	if err != nil {
		return nil, err
	}

	b.shapValues = values
	b.explanation = NewFeatureExplanation(values)

	rows, cols := b.explainInputs.Dims()
	log.GetLoggerWithName("explain").Debug(
		"explanation computed",
		log.ExplainerKey, b.name,
		log.OperationKey, "explain",
		log.SamplesKey, rows,
		log.FeaturesKey, cols,
		log.OutputsKey, values.NumOutputs(),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return b.explanation, nil
}

// LastExplanation returns the most recent Explain result, or nil before the
// first call.
func (b *baseExplainer) LastExplanation() *FeatureExplanation {
	return b.explanation
}

// ExplainInputs returns the explanation input set the strategy operates on.
// For the deep variant this is the materialized reference batch.
func (b *baseExplainer) ExplainInputs() *mat.Dense {
	return b.explainInputs
}

// SummaryPlot renders the feature-importance summary. With no explicit
// explanation option the most recent Explain result is used; errors from the
// plotting layer, including the absence of any attribution values,
// propagate unchanged.
func (b *baseExplainer) SummaryPlot(options ...SummaryPlotOption) error {
	cfg := summaryPlotConfig{savePath: DefaultPlotPath}
	for _, opt := range options {
		opt(&cfg)
	}

	values := b.shapValues
	if cfg.explanation != nil {
		values = cfg.explanation.Values()
	}

	return summaryPlot(values, b.explainInputs, cfg.savePath)
}
