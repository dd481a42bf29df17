package model

import "gonum.org/v1/gonum/mat"

// Fitter は目的変数 y（n×1）に対して学習する推定器
type Fitter interface {
	Fit(X, y mat.Matrix) error
}

// Predictor returns one prediction per row of X as an n×1 matrix.
type Predictor interface {
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Scorer は学習済みモデルの決定係数 R² を返す
type Scorer interface {
	Score(X, y mat.Matrix) (float64, error)
}

// Transformer は列ごとの統計量を学習して行列を写像する前処理器。
// InverseTransform(Transform(X)) は浮動小数点誤差の範囲で X に戻る。
type Transformer interface {
	Fit(X mat.Matrix) error
	Transform(X mat.Matrix) (mat.Matrix, error)
	FitTransform(X mat.Matrix) (mat.Matrix, error)
	InverseTransform(X mat.Matrix) (mat.Matrix, error)
}

// LinearModel is a fitted ŷ = intercept + Σ weightᵢ·xᵢ.
type LinearModel interface {
	Fitter
	Predictor
	Scorer
	Weights() []float64
	Intercept() float64
}

// WeightExporter round-trips the coefficients through ModelWeights.
type WeightExporter interface {
	ExportWeights() (*ModelWeights, error)
	ImportWeights(weights *ModelWeights) error
}
