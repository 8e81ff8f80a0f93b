package shap

import (
	"gonum.org/v1/gonum/mat"
)

// linearTestModel is a hand-wired linear model implementing the capability
// interfaces the strategies consume (Predictor, GradientModel, LinearModel).
type linearTestModel struct {
	coef      []float64
	intercept float64
}

func (m *linearTestModel) Predict(X mat.Matrix) (mat.Matrix, error) {
	rows, cols := X.Dims()
	out := mat.NewDense(rows, 1, nil)
	for i := 0; i < rows; i++ {
		pred := m.intercept
		for j := 0; j < cols; j++ {
			pred += m.coef[j] * X.At(i, j)
		}
		out.Set(i, 0, pred)
	}
	return out, nil
}

func (m *linearTestModel) Gradient(x []float64) ([]float64, error) {
	grad := make([]float64, len(m.coef))
	copy(grad, m.coef)
	return grad, nil
}

func (m *linearTestModel) Coef() []float64 {
	coef := make([]float64, len(m.coef))
	copy(coef, m.coef)
	return coef
}

func (m *linearTestModel) Intercept() float64 {
	return m.intercept
}

// productTestModel is a nonlinear model, f(x) = x_0 * x_1.
type productTestModel struct{}

func (m *productTestModel) Predict(X mat.Matrix) (mat.Matrix, error) {
	rows, _ := X.Dims()
	out := mat.NewDense(rows, 1, nil)
	for i := 0; i < rows; i++ {
		out.Set(i, 0, X.At(i, 0)*X.At(i, 1))
	}
	return out, nil
}

// twoOutputTestModel exposes two linear outputs through PredictProba.
type twoOutputTestModel struct {
	w0, w1 []float64
}

func (m *twoOutputTestModel) Predict(X mat.Matrix) (mat.Matrix, error) {
	rows, cols := X.Dims()
	out := mat.NewDense(rows, 1, nil)
	for i := 0; i < rows; i++ {
		pred := 0.0
		for j := 0; j < cols; j++ {
			pred += m.w0[j] * X.At(i, j)
		}
		out.Set(i, 0, pred)
	}
	return out, nil
}

func (m *twoOutputTestModel) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	rows, cols := X.Dims()
	out := mat.NewDense(rows, 2, nil)
	for i := 0; i < rows; i++ {
		s0, s1 := 0.0, 0.0
		for j := 0; j < cols; j++ {
			s0 += m.w0[j] * X.At(i, j)
			s1 += m.w1[j] * X.At(i, j)
		}
		out.Set(i, 0, s0)
		out.Set(i, 1, s1)
	}
	return out, nil
}

// colMeans returns the column means of X.
func colMeans(X *mat.Dense) []float64 {
	rows, cols := X.Dims()
	means := make([]float64, cols)
	for j := 0; j < cols; j++ {
		sum := 0.0
		for i := 0; i < rows; i++ {
			sum += X.At(i, j)
		}
		means[j] = sum / float64(rows)
	}
	return means
}
