package shap

import (
	"gonum.org/v1/gonum/mat"

	"github.com/robsdavis/Explainability/pkg/errors"
)

// NodeType distinguishes split nodes from leaves.
type NodeType int

const (
	// SplitNode is an internal decision node.
	SplitNode NodeType = iota
	// LeafNode is a terminal node carrying a value.
	LeafNode
)

// Node is a single node of a decision tree.
type Node struct {
	Type         NodeType
	SplitFeature int     // Feature index tested at a split node
	Threshold    float64 // Numerical split threshold (go left when <=)
	Categories   []int   // Categorical split membership (go left when member)
	LeftChild    int     // Index into Tree.Nodes, -1 if none
	RightChild   int     // Index into Tree.Nodes, -1 if none
	LeafValue    float64 // Prediction value at a leaf
	Gain         float64 // Split gain recorded during training
	Count        int     // Training samples that reached this node
}

// DecisionTree is a single tree stored as a flat node slice, root at index 0.
type DecisionTree struct {
	Nodes []Node
}

// Ensemble is an additive tree model: prediction is the init score plus the
// learning-rate-scaled sum of the leaf values each tree routes a sample to.
// It is the model surface the tree explainer consumes; gradient-boosted and
// random-forest models map onto it directly.
type Ensemble struct {
	Trees        []DecisionTree
	InitScore    float64
	LearningRate float64
	NumFeatures  int
	FeatureNames []string
}

// Predict implements core.Predictor for the ensemble, so tree models can also
// be handed to the model-agnostic kernel strategy.
func (e *Ensemble) Predict(X mat.Matrix) (mat.Matrix, error) {
	rows, cols := X.Dims()
	if cols != e.NumFeatures {
		return nil, errors.NewDimensionError("Ensemble.Predict", e.NumFeatures, cols, 1)
	}

	predictions := mat.NewDense(rows, 1, nil)
	for i := 0; i < rows; i++ {
		sample := mat.Row(nil, i, X)
		pred := e.InitScore
		for _, tree := range e.Trees {
			leaf := tree.leafFor(sample)
			if leaf >= 0 {
				pred += tree.Nodes[leaf].LeafValue * e.LearningRate
			}
		}
		predictions.Set(i, 0, pred)
	}
	return predictions, nil
}

// leafFor returns the index of the leaf the sample is routed to, or -1 for an
// empty or malformed tree.
func (t *DecisionTree) leafFor(sample []float64) int {
	path := t.decisionPath(sample)
	if len(path) == 0 {
		return -1
	}
	last := path[len(path)-1]
	if t.Nodes[last].Type != LeafNode {
		return -1
	}
	return last
}

// decisionPath returns the node indices from root to leaf for the sample.
func (t *DecisionTree) decisionPath(sample []float64) []int {
	path := make([]int, 0)
	if len(t.Nodes) == 0 {
		return path
	}

	current := 0
	for current >= 0 && current < len(t.Nodes) {
		node := &t.Nodes[current]
		path = append(path, current)

		if node.Type == LeafNode {
			break
		}
		if node.SplitFeature < 0 || node.SplitFeature >= len(sample) {
			break
		}

		if len(node.Categories) > 0 {
			// Categorical split
			value := int(sample[node.SplitFeature])
			if containsInt(node.Categories, value) {
				current = node.LeftChild
			} else {
				current = node.RightChild
			}
		} else {
			// Numerical split
			if sample[node.SplitFeature] <= node.Threshold {
				current = node.LeftChild
			} else {
				current = node.RightChild
			}
		}
	}

	return path
}

// averageLeafValue recursively computes the count-weighted mean leaf value of
// the subtree rooted at node index idx.
func (t *DecisionTree) averageLeafValue(idx int) float64 {
	if idx < 0 || idx >= len(t.Nodes) {
		return 0.0
	}
	node := &t.Nodes[idx]
	if node.Type == LeafNode {
		return node.LeafValue
	}

	leftValue, rightValue := 0.0, 0.0
	leftCount, rightCount := 0.0, 0.0

	if node.LeftChild >= 0 && node.LeftChild < len(t.Nodes) {
		leftValue = t.averageLeafValue(node.LeftChild)
		leftCount = float64(t.Nodes[node.LeftChild].Count)
	}
	if node.RightChild >= 0 && node.RightChild < len(t.Nodes) {
		rightValue = t.averageLeafValue(node.RightChild)
		rightCount = float64(t.Nodes[node.RightChild].Count)
	}

	total := leftCount + rightCount
	if total == 0 {
		return 0.0
	}
	return (leftValue*leftCount + rightValue*rightCount) / total
}

// Tree computes path-based SHAP values for an Ensemble.
//
// Attribution walks each sample's decision path and credits the gain of every
// split node to the feature it tests, split evenly along the path and scaled
// by the ensemble learning rate. The base value is the init score plus the
// count-weighted mean leaf value of every tree.
type Tree struct {
	ensemble *Ensemble
}

// NewTree creates a Tree strategy for the given ensemble.
func NewTree(ensemble *Ensemble) (*Tree, error) {
	if ensemble == nil {
		return nil, errors.NewValidationError("ensemble", "ensemble must not be nil", nil)
	}
	if len(ensemble.Trees) == 0 {
		return nil, errors.NewValidationError("ensemble", "ensemble has no trees", len(ensemble.Trees))
	}
	if ensemble.NumFeatures <= 0 {
		return nil, errors.NewValidationError("ensemble", "ensemble reports no features", ensemble.NumFeatures)
	}
	return &Tree{ensemble: ensemble}, nil
}

// BaseValue returns the expected model output.
func (ts *Tree) BaseValue() float64 {
	base := ts.ensemble.InitScore
	for i := range ts.ensemble.Trees {
		tree := &ts.ensemble.Trees[i]
		if len(tree.Nodes) > 0 {
			base += tree.averageLeafValue(0) * ts.ensemble.LearningRate
		}
	}
	return base
}

// ShapValues computes attributions for each row of X.
func (ts *Tree) ShapValues(X mat.Matrix) (v *Values, err error) {
	defer errors.Recover(&err, "Tree.ShapValues")

	rows, cols := X.Dims()
	if rows == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "Tree.ShapValues")
	}
	if cols != ts.ensemble.NumFeatures {
		return nil, errors.NewDimensionError("Tree.ShapValues", ts.ensemble.NumFeatures, cols, 1)
	}

	contrib := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		sample := mat.Row(nil, i, X)
		contrib.SetRow(i, ts.sampleShap(sample))
	}

	if err := errors.CheckMatrix("Tree.ShapValues", contrib, rows, cols); err != nil {
		return nil, err
	}

	return &Values{
		Contrib:      []*mat.Dense{contrib},
		BaseValues:   []float64{ts.BaseValue()},
		FeatureNames: ts.ensemble.FeatureNames,
	}, nil
}

// sampleShap accumulates per-feature contributions over all trees for one sample.
func (ts *Tree) sampleShap(sample []float64) []float64 {
	nFeatures := len(sample)
	shapValues := make([]float64, nFeatures)

	for i := range ts.ensemble.Trees {
		tree := &ts.ensemble.Trees[i]
		if len(tree.Nodes) == 0 {
			continue
		}

		path := tree.decisionPath(sample)
		for _, nodeIdx := range path {
			node := &tree.Nodes[nodeIdx]
			if node.Type == LeafNode {
				continue
			}
			if node.SplitFeature >= 0 && node.SplitFeature < nFeatures {
				// Credit the split gain to the tested feature, split
				// evenly along the decision path.
				shapValues[node.SplitFeature] += node.Gain / float64(len(path)) * ts.ensemble.LearningRate
			}
		}
	}

	return shapValues
}

func containsInt(slice []int, val int) bool {
	for _, v := range slice {
		if v == val {
			return true
		}
	}
	return false
}
