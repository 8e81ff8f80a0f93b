package explain

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/robsdavis/Explainability/pkg/errors"
	"github.com/robsdavis/Explainability/pkg/log"
	"github.com/robsdavis/Explainability/shap"
)

// DefaultPlotPath is where SummaryPlot writes when no save path is given.
const DefaultPlotPath = "temp_shap_plot.png"

// summaryPlotConfig collects SummaryPlot options.
type summaryPlotConfig struct {
	explanation *FeatureExplanation
	savePath    string
}

// SummaryPlotOption is a function that configures SummaryPlot.
type SummaryPlotOption func(*summaryPlotConfig)

// WithExplanation plots the given explanation instead of the most recent
// Explain result.
func WithExplanation(explanation *FeatureExplanation) SummaryPlotOption {
	return func(cfg *summaryPlotConfig) {
		cfg.explanation = explanation
	}
}

// WithSavePath sets the output file path. The image format follows the file
// extension; the default is a PNG.
func WithSavePath(path string) SummaryPlotOption {
	return func(cfg *summaryPlotConfig) {
		cfg.savePath = path
	}
}

// summaryPlot ranks features by mean absolute attribution and renders a bar
// chart to savePath.
func summaryPlot(values *shap.Values, inputs *mat.Dense, savePath string) error {
	if values == nil {
		return errors.NewValueError("SummaryPlot", "no attribution values to plot; call Explain() first")
	}

	importance := values.MeanAbs()
	if len(importance) == 0 {
		return errors.Wrap(errors.ErrEmptyData, "SummaryPlot")
	}

	names := values.FeatureNames
	if names == nil {
		_, cols := inputs.Dims()
		names = make([]string, cols)
		for j := range names {
			names[j] = fmt.Sprintf("feature_%d", j)
		}
	}
	if len(names) != len(importance) {
		return errors.NewDimensionError("SummaryPlot", len(importance), len(names), 1)
	}

	// Rank features by importance, most important first.
	order := make([]int, len(importance))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return importance[order[a]] > importance[order[b]]
	})

	ranked := make(plotter.Values, len(order))
	labels := make([]string, len(order))
	for i, idx := range order {
		ranked[i] = importance[idx]
		labels[i] = names[idx]
	}

	p := plot.New()
	p.Title.Text = "SHAP feature importance"
	p.Y.Label.Text = "mean(|SHAP value|)"

	bars, err := plotter.NewBarChart(ranked, vg.Points(20))
	if err != nil {
		return errors.Wrap(err, "SummaryPlot: bar chart")
	}
	p.Add(bars)
	p.NominalX(labels...)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, savePath); err != nil {
		return errors.Wrap(err, "SummaryPlot: save")
	}

	log.GetLoggerWithName("explain").Info(
		"summary plot written",
		log.OperationKey, "summary_plot",
		log.PlotPathKey, savePath,
	)
	return nil
}
