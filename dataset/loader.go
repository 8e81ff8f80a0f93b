package dataset

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"

	xaierrors "github.com/robsdavis/Explainability/pkg/errors"
	"github.com/robsdavis/Explainability/pkg/log"
)

// Loader iterates a TabularDataset in batches, optionally shuffling the row
// order on every epoch.
type Loader struct {
	ds        *TabularDataset
	batchSize int
	shuffle   bool
	rng       *rand.Rand
	order     []int
	pos       int
}

// LoaderOption is a function that configures a Loader.
type LoaderOption func(*Loader)

// WithShuffle sets whether row order is randomized each epoch.
func WithShuffle(shuffle bool) LoaderOption {
	return func(l *Loader) {
		l.shuffle = shuffle
	}
}

// WithSeed seeds the shuffle order for reproducible iteration.
func WithSeed(seed int64) LoaderOption {
	return func(l *Loader) {
		l.rng = rand.New(rand.NewSource(seed))
	}
}

// NewLoader creates a Loader over ds with the given batch size.
func NewLoader(ds *TabularDataset, batchSize int, options ...LoaderOption) (*Loader, error) {
	if ds == nil {
		return nil, xaierrors.NewValidationError("ds", "dataset must not be nil", nil)
	}
	if batchSize <= 0 || batchSize > ds.Len() {
		return nil, xaierrors.NewValidationError("batchSize", "must be in [1, dataset length]", batchSize)
	}

	l := &Loader{
		ds:        ds,
		batchSize: batchSize,
		rng:       rand.New(rand.NewSource(1)),
	}
	for _, opt := range options {
		opt(l)
	}

	l.Reset()

	log.GetLoggerWithName("dataset").Debug(
		"loader ready",
		log.BatchSizeKey, l.batchSize,
		log.SampleCountKey, ds.Len(),
	)
	return l, nil
}

// Reset rewinds the loader to the start of a new epoch, reshuffling the row
// order when shuffling is enabled.
func (l *Loader) Reset() {
	n := l.ds.Len()
	if l.order == nil {
		l.order = make([]int, n)
	}
	for i := range l.order {
		l.order[i] = i
	}
	if l.shuffle {
		l.rng.Shuffle(n, func(i, j int) {
			l.order[i], l.order[j] = l.order[j], l.order[i]
		})
	}
	l.pos = 0
}

// Next returns the next batch of features and labels. The final batch of an
// epoch may be smaller than the configured batch size. ok is false when the
// epoch is exhausted.
func (l *Loader) Next() (X, y *mat.Dense, ok bool) {
	n := l.ds.Len()
	if l.pos >= n {
		return nil, nil, false
	}

	end := l.pos + l.batchSize
	if end > n {
		end = n
	}

	size := end - l.pos
	nFeatures := l.ds.NumFeatures()
	_, yCols := l.ds.y.Dims()

	X = mat.NewDense(size, nFeatures, nil)
	y = mat.NewDense(size, yCols, nil)
	for i := 0; i < size; i++ {
		row := l.order[l.pos+i]
		xRow, yRow := l.ds.Row(row)
		X.SetRow(i, xRow)
		y.SetRow(i, yRow)
	}

	l.pos = end
	return X, y, true
}

// BatchSize returns the configured batch size.
func (l *Loader) BatchSize() int {
	return l.batchSize
}
