package explain

import (
	"gonum.org/v1/gonum/mat"

	"github.com/robsdavis/Explainability/core"
	"github.com/robsdavis/Explainability/dataset"
	"github.com/robsdavis/Explainability/pkg/errors"
	"github.com/robsdavis/Explainability/shap"
)

// DeepExplainerName is the registry identifier of the deep variant.
const DeepExplainerName = "shap_deep_explainer"

// DeepExplainer is a light-weight wrapper for the interpolation-path
// attribution strategy for differentiable models.
//
// The deep strategy expects a single contiguous input block rather than a
// raw tabular structure, so construction wraps (XExplain, yExplain) in a
// dataset and draws exactly one shuffled batch sized to the full label
// count. Shuffling affects only row order, not the values.
type DeepExplainer struct {
	baseExplainer
}

// deepConfig collects DeepExplainer options.
type deepConfig struct {
	seed  int64
	steps int
}

// DeepExplainerOption is a function that configures a DeepExplainer.
type DeepExplainerOption func(*deepConfig)

// WithDeepShuffleSeed seeds the batch shuffle for reproducible row order.
func WithDeepShuffleSeed(seed int64) DeepExplainerOption {
	return func(cfg *deepConfig) {
		cfg.seed = seed
	}
}

// WithDeepPathSteps sets the number of interpolation steps used by the
// underlying strategy.
func WithDeepPathSteps(steps int) DeepExplainerOption {
	return func(cfg *deepConfig) {
		cfg.steps = steps
	}
}

// NewDeepExplainer creates a deep explainer for model over (XExplain, yExplain).
// Labels are required: the batch is sized to the label count.
func NewDeepExplainer(model core.GradientModel, XExplain, yExplain mat.Matrix, options ...DeepExplainerOption) (*DeepExplainer, error) {
	if yExplain == nil {
		return nil, errors.NewValidationError("yExplain", "labels must not be nil", nil)
	}

	cfg := deepConfig{seed: 1, steps: 0}
	for _, opt := range options {
		opt(&cfg)
	}

	ds, err := dataset.NewTabularDataset(XExplain, yExplain)
	if err != nil {
		return nil, errors.Wrap(err, "NewDeepExplainer")
	}

	yRows, _ := yExplain.Dims()
	loader, err := dataset.NewLoader(ds, yRows,
		dataset.WithShuffle(true),
		dataset.WithSeed(cfg.seed),
	)
	if err != nil {
		return nil, errors.Wrap(err, "NewDeepExplainer")
	}

	batch, _, ok := loader.Next()
	if !ok {
		return nil, errors.Wrap(errors.ErrEmptyData, "NewDeepExplainer: batch")
	}

	var strategyOptions []shap.DeepOption
	if cfg.steps > 0 {
		strategyOptions = append(strategyOptions, shap.WithDeepSteps(cfg.steps))
	}
	strategy, err := shap.NewDeep(model, batch, strategyOptions...)
	if err != nil {
		return nil, err
	}

	return &DeepExplainer{
		baseExplainer: newBaseExplainer(DeepExplainerName, batch, strategy),
	}, nil
}

// Name returns the registry identifier.
func (e *DeepExplainer) Name() string { return DeepExplainerName }

// PrettyName returns the human-readable variant name.
func (e *DeepExplainer) PrettyName() string { return "SHAP Deep Explainer" }

// Explain computes attribution values for the materialized batch.
func (e *DeepExplainer) Explain() (*FeatureExplanation, error) {
	return e.explain()
}

var _ Explainer = (*DeepExplainer)(nil)
