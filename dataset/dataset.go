// Package dataset provides a tabular dataset abstraction and a batch loader.
//
// The loader exists for explainer variants whose strategies expect a single
// contiguous input block rather than a raw tabular structure: the deep
// explainer draws exactly one full-size shuffled batch through it at
// construction time. Shuffling affects only the order rows are presented,
// not the values themselves.
package dataset

import (
	"gonum.org/v1/gonum/mat"

	xaierrors "github.com/robsdavis/Explainability/pkg/errors"
)

// TabularDataset pairs a feature matrix with a label matrix.
// Rows are samples; label columns may exceed one for multi-target data.
type TabularDataset struct {
	x *mat.Dense
	y *mat.Dense
}

// NewTabularDataset creates a dataset from features X and labels y.
// Both inputs are copied so later mutation of the originals cannot change
// what an explainer was constructed with.
func NewTabularDataset(X, y mat.Matrix) (*TabularDataset, error) {
	if X == nil {
		return nil, xaierrors.NewValidationError("X", "features must not be nil", nil)
	}
	if y == nil {
		return nil, xaierrors.NewValidationError("y", "labels must not be nil", nil)
	}
	rows, cols := X.Dims()
	if rows == 0 || cols == 0 {
		return nil, xaierrors.Wrap(xaierrors.ErrEmptyData, "dataset.NewTabularDataset")
	}
	yRows, yCols := y.Dims()
	if yRows != rows {
		return nil, xaierrors.NewDimensionError("dataset.NewTabularDataset", rows, yRows, 0)
	}
	if yCols == 0 {
		return nil, xaierrors.Wrap(xaierrors.ErrEmptyData, "dataset.NewTabularDataset: labels")
	}

	return &TabularDataset{
		x: mat.DenseCopyOf(X),
		y: mat.DenseCopyOf(y),
	}, nil
}

// Len returns the number of samples.
func (d *TabularDataset) Len() int {
	rows, _ := d.x.Dims()
	return rows
}

// NumFeatures returns the number of feature columns.
func (d *TabularDataset) NumFeatures() int {
	_, cols := d.x.Dims()
	return cols
}

// Row copies the features and labels of sample i into new slices.
func (d *TabularDataset) Row(i int) (x, y []float64) {
	return mat.Row(nil, i, d.x), mat.Row(nil, i, d.y)
}
