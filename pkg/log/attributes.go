// Package log defines standard attribute keys for explainability operations.
//
// This file contains predefined attribute keys that provide consistency
// across all logging operations in the library. Using these standard keys
// enables better log analysis, monitoring, and debugging of explanation
// workflows.
//
// The keys follow a hierarchical naming convention (e.g., "explainer.name",
// "data.samples") to enable structured log analysis and filtering.

package log

// Explainer and Operation Context
// These attributes identify the explainer variant, instance, and operation
// being performed.
const (
	// ExplainerKey identifies the explainer variant by its registry name.
	// Examples: "shap_kernel_explainer", "shap_tree_explainer"
	ExplainerKey = "explainer.name"

	// OperationKey specifies the explainability operation being performed.
	// Standard values: "fit", "explain", "summary_plot"
	OperationKey = "xai.operation"

	// ComponentKey identifies which component or package is performing the operation.
	// Examples: "explain", "shap", "dataset"
	ComponentKey = "xai.component"
)

// Data Shape and Characteristics
// These attributes describe the structure of the explanation inputs and the
// computed attribution values.
const (
	// SamplesKey indicates the number of samples (rows) in the explanation input set.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of features (columns) in the explanation input set.
	FeaturesKey = "data.features"

	// OutputsKey indicates the number of model outputs attribution was computed for.
	// Usually 1 for regression, >1 for multi-class models.
	OutputsKey = "data.outputs"

	// BatchSizeKey indicates the batch size drawn by the dataset loader.
	BatchSizeKey = "data.batch_size"
)

// Artifacts
const (
	// PlotPathKey is the filesystem path a summary plot was written to.
	PlotPathKey = "plot.path"
)

// Performance Metrics
const (
	// DurationMsKey indicates the elapsed wall-clock time in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// SampleCountKey indicates how many samples an operation covered
	// (e.g. the dataset length behind a loader).
	SampleCountKey = "perf.sample_count"
)
