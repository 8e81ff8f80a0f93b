package core

import "gonum.org/v1/gonum/mat"

// Predictor は予測可能なモデルのインターフェース
type Predictor interface {
	// Predict は入力データに対する予測を行う
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// ProbaPredictor はクラスごとの予測確率を返すモデルのインターフェース。
// 多クラスモデルの場合、列ごとに1クラスの確率を返す。
type ProbaPredictor interface {
	Predictor

	// PredictProba はクラスごとの予測確率を返す（行: サンプル、列: クラス）
	PredictProba(X mat.Matrix) (mat.Matrix, error)
}

// GradientModel は入力に対する勾配を計算できるモデルのインターフェース。
// 勾配ベースの explainer（gradient, deep）が必要とする。
type GradientModel interface {
	Predictor

	// Gradient は単一サンプル x における出力の入力勾配 ∂f/∂x を返す
	Gradient(x []float64) ([]float64, error)
}

// LinearModel は学習済みの線形モデルのインターフェース。
// 線形 explainer は係数と切片のみを必要とする。
type LinearModel interface {
	// Coef は学習された重み係数を返す
	Coef() []float64

	// Intercept は学習された切片を返す
	Intercept() float64
}

// EstimatorState はestimatorの学習状態を表す
type EstimatorState int

const (
	// NotFitted は未学習の状態
	NotFitted EstimatorState = iota
	// Fitted は学習済みの状態
	Fitted
)

// BaseEstimator は全てのestimatorの基底となる構造体。
// SHAP explainerは構築時点でFittedとなる（学習フェーズを持たない）。
type BaseEstimator struct {
	state EstimatorState
}

// IsFitted は学習済みかどうかを返す
func (e *BaseEstimator) IsFitted() bool {
	return e.state == Fitted
}

// SetFitted は学習済み状態に設定する
func (e *BaseEstimator) SetFitted() {
	e.state = Fitted
}

// Reset は初期状態にリセットする
func (e *BaseEstimator) Reset() {
	e.state = NotFitted
}
