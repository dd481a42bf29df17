package linear

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/scistat/core/model"
	"github.com/YuminosukeSato/scistat/core/parallel"
	"github.com/YuminosukeSato/scistat/pkg/errors"
	"github.com/YuminosukeSato/scistat/pkg/log"
	"github.com/YuminosukeSato/scistat/stats"
)

// ModelType は ModelWeights に書き出すモデル種別
const ModelType = "LinearModel"

// Model は y = Intercept + Σ Slopes[i]·x[i] で表される学習済みの回帰式
type Model struct {
	Slopes    []float64
	Intercept float64
}

// NFeatures は説明変数の数を返す
func (m *Model) NFeatures() int {
	return len(m.Slopes)
}

// FitSimple は最小二乗法で単回帰直線を求める
//
//	slope = Σ(x−x̄)(y−ȳ) / Σ(x−x̄)²,  intercept = ȳ − slope·x̄
//
// 失敗はすべて *errors.DegenerateInputError。空入力や長さ不一致は
// EmptyInputError / DimensionError を原因として保持する。
func FitSimple(xs, ys []float64) (*Model, error) {
	const op = "FitSimple"

	if len(xs) == 0 || len(ys) == 0 {
		return nil, errors.NewDegenerateInputError(op, "no observations", errors.NewEmptyInputError(op))
	}
	if len(xs) != len(ys) {
		return nil, errors.NewDegenerateInputError(op, "xs and ys differ in length",
			errors.NewDimensionError(op, len(xs), len(ys), 0))
	}

	// 母分散・母共分散（ddof=0）の比。n=1 でも分散0として扱える
	sxx, err := stats.Variance(xs, 0)
	if err != nil {
		return nil, errors.NewDegenerateInputError(op, "x variance is undefined", err)
	}
	// 0.1 を並べた場合など、丸め誤差で分散が0にならないことがあるので値そのものを比べる
	if sxx == 0 || floats.Min(xs) == floats.Max(xs) {
		return nil, errors.NewDegenerateInputError(op, "all x values are equal", nil)
	}
	sxy, err := stats.Covariance(xs, ys, 0)
	if err != nil {
		return nil, errors.NewDegenerateInputError(op, "covariance is undefined", err)
	}

	slope := sxy / sxx
	meanX, _ := stats.Mean(xs)
	meanY, _ := stats.Mean(ys)
	intercept := meanY - slope*meanX

	if err := errors.CheckNumericalStability(op, []float64{slope, intercept}); err != nil {
		return nil, errors.NewDegenerateInputError(op, "coefficients are not finite", err)
	}

	log.GetLoggerWithName("linear").Debug("simple regression fitted",
		log.OperationKey, log.OperationFitSimple,
		log.SamplesKey, len(xs),
		log.InterceptKey, intercept,
		log.SlopesKey, []float64{slope},
	)
	return &Model{Slopes: []float64{slope}, Intercept: intercept}, nil
}

// FitMultiple は切片付きの重回帰を最小二乗で解く。X の各行が1観測。
//
// 計画行列 [1 | X] のランクを特異値分解で確かめ、ハウスホルダーQR分解で解く。
// 観測数が係数の数より少ない場合やランク落ちの場合は DegenerateInputError。
func FitMultiple(X [][]float64, y []float64, opts ...Option) (*Model, error) {
	const op = "FitMultiple"

	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	n := len(X)
	if n == 0 || len(y) == 0 || len(X[0]) == 0 {
		return nil, errors.NewEmptyInputError(op)
	}
	k := len(X[0])
	for _, row := range X {
		if len(row) != k {
			return nil, errors.NewDimensionError(op, k, len(row), 1)
		}
	}
	if len(y) != n {
		return nil, errors.NewDimensionError(op, n, len(y), 0)
	}

	data := make([]float64, 0, n*k)
	for _, row := range X {
		data = append(data, row...)
	}
	design := mat.NewDense(n, k, data)
	target := mat.NewVecDense(n, append([]float64(nil), y...))
	if err := errors.CheckMatrix(op, design); err != nil {
		return nil, err
	}
	if err := errors.CheckMatrix(op, target); err != nil {
		return nil, err
	}

	m, rank, err := fitDesign(op, design, target, cfg)
	if err != nil {
		cfg.logger.Debug("multiple regression failed", err, log.OperationKey, log.OperationFitMultiple, log.SamplesKey, n)
		return nil, err
	}

	cfg.logger.Debug("multiple regression fitted",
		log.OperationKey, log.OperationFitMultiple,
		log.SamplesKey, n,
		log.FeaturesKey, k,
		log.RankKey, rank,
		log.InterceptKey, m.Intercept,
		log.SlopesKey, m.Slopes,
	)
	return m, nil
}

// fitDesign は [1 | X] β = y の最小二乗解を返す。rank は計画行列の数値ランク。
func fitDesign(op string, X mat.Matrix, y *mat.VecDense, cfg *config) (m *Model, rank int, err error) {
	n, k := X.Dims()
	p := k + 1

	if n < p {
		return nil, 0, errors.NewDegenerateInputError(op,
			fmt.Sprintf("%d observations cannot determine %d coefficients", n, p),
			errors.NewInsufficientDataError(op, p, n))
	}

	// 切片項のために X に 1 の列を追加
	design := mat.NewDense(n, p, nil)
	parallel.ParallelizeWithThreshold(n, cfg.parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			design.Set(i, 0, 1)
			for j := 0; j < k; j++ {
				design.Set(i, j+1, X.At(i, j))
			}
		}
	})

	rank, err = numericalRank(op, design, cfg.rankTol)
	if err != nil {
		return nil, 0, err
	}
	if rank < p {
		return nil, rank, errors.NewDegenerateInputError(op,
			fmt.Sprintf("design matrix has rank %d, need %d", rank, p),
			errors.ErrSingularMatrix)
	}

	var beta mat.VecDense
	err = errors.SafeExecute(op, func() error {
		var qr mat.QR
		qr.Factorize(design)
		return qr.SolveVecTo(&beta, false, y)
	})
	if err != nil {
		return nil, rank, errors.NewDegenerateInputError(op, "least squares solve failed", err)
	}

	coef := make([]float64, p)
	for i := range coef {
		coef[i] = beta.AtVec(i)
	}
	if err := errors.CheckNumericalStability(op, coef); err != nil {
		return nil, rank, err
	}

	return &Model{Intercept: coef[0], Slopes: coef[1:]}, rank, nil
}

// numericalRank は tol より大きい特異値の数を返す。tol が0なら
// σmax·max(n,p)·ε を使う。
func numericalRank(op string, a *mat.Dense, tol float64) (int, error) {
	var svd mat.SVD
	var ok bool
	// LAPACK は NaN を含む行列で panic する
	if err := errors.SafeExecute(op, func() error {
		ok = svd.Factorize(a, mat.SVDNone)
		return nil
	}); err != nil {
		return 0, errors.NewDegenerateInputError(op, "singular value decomposition failed", err)
	}
	if !ok {
		return 0, errors.NewDegenerateInputError(op, "singular value decomposition did not converge", errors.ErrSingularMatrix)
	}
	values := svd.Values(nil)

	if tol == 0 {
		n, p := a.Dims()
		eps := math.Nextafter(1, 2) - 1
		tol = floats.Max(values) * float64(max(n, p)) * eps
	}

	rank := 0
	for _, v := range values {
		if v > tol {
			rank++
		}
	}
	return rank, nil
}

// Predict は Intercept + Slopes·features を返す
func (m *Model) Predict(features []float64) (float64, error) {
	if len(features) != len(m.Slopes) {
		return 0, errors.NewDimensionError("Predict", len(m.Slopes), len(features), 1)
	}
	return m.Intercept + floats.Dot(m.Slopes, features), nil
}

// PredictBatch は各行の予測値を入力順に返す
func (m *Model) PredictBatch(rows [][]float64) ([]float64, error) {
	if len(rows) == 0 {
		return nil, errors.NewEmptyInputError("PredictBatch")
	}
	for _, row := range rows {
		if len(row) != len(m.Slopes) {
			return nil, errors.NewDimensionError("PredictBatch", len(m.Slopes), len(row), 1)
		}
	}

	predictions := make([]float64, len(rows))
	parallel.ParallelizeWithThreshold(len(rows), parallel.DefaultThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			predictions[i] = m.Intercept + floats.Dot(m.Slopes, rows[i])
		}
	})
	return predictions, nil
}

// ExportWeights は係数をシリアライズ可能な形式で返す
func (m *Model) ExportWeights() (*model.ModelWeights, error) {
	if len(m.Slopes) == 0 {
		return nil, errors.NewValidationError("slopes", "model has no coefficients", 0)
	}
	return &model.ModelWeights{
		ModelType:    ModelType,
		Version:      model.WeightsFormatVersion,
		Coefficients: append([]float64(nil), m.Slopes...),
		Intercept:    m.Intercept,
		Metadata: map[string]interface{}{
			"n_features": len(m.Slopes),
		},
		IsFitted: true,
	}, nil
}

// ImportWeights は ExportWeights の出力から係数を復元する
func (m *Model) ImportWeights(weights *model.ModelWeights) error {
	if weights == nil {
		return errors.NewValidationError("weights", "must not be nil", nil)
	}
	if err := weights.Validate(); err != nil {
		return err
	}
	if weights.ModelType != ModelType {
		return errors.NewValidationError("model_type", "expected "+ModelType, weights.ModelType)
	}
	if !weights.IsFitted {
		return errors.NewValidationError("is_fitted", "weights come from an unfitted model", false)
	}
	if err := errors.CheckNumericalStability("ImportWeights", append([]float64{weights.Intercept}, weights.Coefficients...)); err != nil {
		return err
	}

	m.Slopes = append([]float64(nil), weights.Coefficients...)
	m.Intercept = weights.Intercept
	return nil
}

// String は回帰式を "y = 43.5 + 6.5·x1" の形で返す
func (m *Model) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "y = %g", m.Intercept)
	for i, s := range m.Slopes {
		sign := "+"
		if s < 0 {
			sign = "-"
		}
		fmt.Fprintf(&b, " %s %g·x%d", sign, math.Abs(s), i+1)
	}
	return b.String()
}
