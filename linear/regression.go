package linear

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/scistat/core/model"
	"github.com/YuminosukeSato/scistat/metrics"
	"github.com/YuminosukeSato/scistat/pkg/errors"
	"github.com/YuminosukeSato/scistat/pkg/log"
)

// LinearRegression は gonum の行列を受け取る重回帰の推定器
//
// 学習は FitMultiple と同じ計画行列・ランク検査・QR分解を使う。
type LinearRegression struct {
	model.BaseEstimator // BaseEstimatorを埋め込み

	opts      []Option
	logger    log.Logger
	fitted    *Model
	nFeatures int
	rank      int
}

// NewLinearRegression は新しい線形回帰モデルを作成する
func NewLinearRegression(opts ...Option) *LinearRegression {
	return &LinearRegression{opts: opts}
}

// Fit はモデルを訓練データで学習させる。y は n×1 の列ベクトル。
func (lr *LinearRegression) Fit(X, y mat.Matrix) (err error) {
	const op = "LinearRegression.Fit"
	defer errors.Recover(&err, op)

	cfg, err := newConfig(lr.opts)
	if err != nil {
		return err
	}
	lr.logger = cfg.logger.With(log.ModelNameKey, "LinearRegression")

	// 入力の検証
	r, c := X.Dims()
	ry, cy := y.Dims()
	if r == 0 || c == 0 {
		return errors.NewEmptyInputError(op)
	}
	if ry != r {
		return errors.NewDimensionError(op, r, ry, 0)
	}
	if cy != 1 {
		return errors.NewValidationError("y", "must be a column vector", cy)
	}
	if err := errors.CheckMatrix(op, X); err != nil {
		return err
	}
	if err := errors.CheckMatrix(op, y); err != nil {
		return err
	}

	yVec := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		yVec.SetVec(i, y.At(i, 0))
	}

	m, rank, err := fitDesign(op, X, yVec, cfg)
	if err != nil {
		lr.logger.Debug("fit failed", err, log.OperationKey, log.OperationFit, log.SamplesKey, r)
		return err
	}

	lr.fitted = m
	lr.nFeatures = c
	lr.rank = rank
	lr.SetFitted(r)

	lr.logger.Debug("fit completed",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, r,
		log.FeaturesKey, c,
		log.RankKey, rank,
	)
	return nil
}

// Predict は各行の予測値を n×1 の行列で返す
func (lr *LinearRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	if err := lr.RequireFitted("LinearRegression", "Predict"); err != nil {
		return nil, err
	}

	r, c := X.Dims()
	if c != lr.nFeatures {
		return nil, errors.NewDimensionError("LinearRegression.Predict", lr.nFeatures, c, 1)
	}

	// 予測: y = X * weights + intercept
	var out mat.VecDense
	out.MulVec(X, mat.NewVecDense(c, lr.Weights()))

	predictions := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		predictions.Set(i, 0, out.AtVec(i)+lr.fitted.Intercept)
	}

	lr.logger.Debug("predicted", log.OperationKey, log.OperationPredict, log.SamplesKey, r)
	return predictions, nil
}

// Score はモデルの決定係数（R²）を計算する
func (lr *LinearRegression) Score(X, y mat.Matrix) (float64, error) {
	if err := lr.RequireFitted("LinearRegression", "Score"); err != nil {
		return 0, err
	}

	yPred, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}

	r, _ := y.Dims()
	pr, _ := yPred.Dims()
	if r != pr {
		return 0, errors.NewDimensionError("LinearRegression.Score", pr, r, 0)
	}

	yTrue := mat.Col(nil, 0, y)
	predicted := mat.Col(nil, 0, yPred)

	score, err := metrics.R2Score(yTrue, predicted)
	if err != nil {
		return 0, err
	}
	lr.logger.Debug("scored", log.OperationKey, log.OperationScore, log.R2ScoreKey, score)
	return score, nil
}

// Model は学習済みの回帰式を返す
func (lr *LinearRegression) Model() (*Model, error) {
	if err := lr.RequireFitted("LinearRegression", "Model"); err != nil {
		return nil, err
	}
	return &Model{
		Slopes:    append([]float64(nil), lr.fitted.Slopes...),
		Intercept: lr.fitted.Intercept,
	}, nil
}

// Weights は学習された重み（係数）を返す
func (lr *LinearRegression) Weights() []float64 {
	if !lr.IsFitted() {
		return nil
	}
	return append([]float64(nil), lr.fitted.Slopes...)
}

// Intercept は学習された切片を返す
func (lr *LinearRegression) Intercept() float64 {
	if !lr.IsFitted() {
		return 0
	}
	return lr.fitted.Intercept
}

// Rank は学習時の計画行列の数値ランクを返す
func (lr *LinearRegression) Rank() int {
	return lr.rank
}

// ExportWeights は学習済みの係数をエクスポートする
func (lr *LinearRegression) ExportWeights() (*model.ModelWeights, error) {
	if err := lr.RequireFitted("LinearRegression", "ExportWeights"); err != nil {
		return nil, err
	}
	weights, err := lr.fitted.ExportWeights()
	if err != nil {
		return nil, err
	}
	weights.Metadata["rank"] = lr.rank
	return weights, nil
}

// ImportWeights は係数を読み込み、学習済み状態にする
func (lr *LinearRegression) ImportWeights(weights *model.ModelWeights) error {
	var m Model
	if err := m.ImportWeights(weights); err != nil {
		return err
	}

	if lr.logger == nil {
		cfg, err := newConfig(lr.opts)
		if err != nil {
			return err
		}
		lr.logger = cfg.logger.With(log.ModelNameKey, "LinearRegression")
	}
	lr.fitted = &m
	lr.nFeatures = m.NFeatures()
	lr.rank = m.NFeatures() + 1
	lr.SetFitted(0)
	return nil
}

var (
	_ model.LinearModel    = (*LinearRegression)(nil)
	_ model.WeightExporter = (*LinearRegression)(nil)
	_ model.WeightExporter = (*Model)(nil)
)
