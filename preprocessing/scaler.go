// Package preprocessing は列ごとの統計量に基づく特徴量スケーラーを提供する
package preprocessing

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/scistat/core/model"
	"github.com/YuminosukeSato/scistat/core/parallel"
	"github.com/YuminosukeSato/scistat/pkg/errors"
	"github.com/YuminosukeSato/scistat/pkg/log"
	"github.com/YuminosukeSato/scistat/stats"
)

// StandardScaler はデータを列ごとに平均0、標準偏差1に変換する
//
// 各列の平均・標準偏差は stats.Mean / stats.StdDev で計算する。
type StandardScaler struct {
	model.BaseEstimator

	// Mean は各特徴量の平均値（WithMean が false なら 0）
	Mean []float64

	// Scale は各特徴量の標準偏差。ばらつきのない列は 1
	Scale []float64

	// NFeatures は特徴量の数
	NFeatures int

	// WithMean は平均を引くかどうか (デフォルト: true)
	WithMean bool

	// WithStd は標準偏差で割るかどうか (デフォルト: true)
	WithStd bool

	// DDOF は標準偏差の自由度補正 (デフォルト: 0)
	DDOF int
}

// NewStandardScaler は新しいStandardScalerを作成する
//
// 使用例:
//
//	scaler := preprocessing.NewStandardScaler(true, true)
//	err := scaler.Fit(X)
//	XScaled, err := scaler.Transform(X)
func NewStandardScaler(withMean, withStd bool) *StandardScaler {
	return &StandardScaler{
		WithMean: withMean,
		WithStd:  withStd,
	}
}

// NewStandardScalerDefault はデフォルト設定でStandardScalerを作成する
func NewStandardScalerDefault() *StandardScaler {
	return NewStandardScaler(true, true)
}

// Fit は訓練データから列ごとの平均・標準偏差を計算する
func (s *StandardScaler) Fit(X mat.Matrix) error {
	const op = "StandardScaler.Fit"

	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewEmptyInputError(op)
	}
	if err := errors.CheckMatrix(op, X); err != nil {
		return err
	}

	means := make([]float64, c)
	scales := make([]float64, c)
	for j := 0; j < c; j++ {
		col := mat.Col(nil, j, X)

		scales[j] = 1
		if s.WithMean {
			m, err := stats.Mean(col)
			if err != nil {
				return errors.Wrapf(err, "%s: column %d", op, j)
			}
			means[j] = m
		}
		if s.WithStd {
			sd, err := stats.StdDev(col, s.DDOF)
			if err != nil {
				return errors.Wrapf(err, "%s: column %d", op, j)
			}
			// 標準偏差が0の列は1のまま（ゼロ除算を避ける）
			if sd != 0 {
				scales[j] = sd
			}
		}
	}

	s.Mean, s.Scale, s.NFeatures = means, scales, c
	s.SetFitted(r)

	log.GetLoggerWithName("preprocessing").Debug("scaler fitted",
		log.ModelNameKey, "StandardScaler",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, r,
		log.FeaturesKey, c,
		log.DDOFKey, s.DDOF,
	)
	return nil
}

// Transform は (x − Mean) / Scale を返す
func (s *StandardScaler) Transform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.RequireFitted("StandardScaler", "Transform"); err != nil {
		return nil, err
	}
	if err := checkFeatures("StandardScaler.Transform", X, s.NFeatures); err != nil {
		return nil, err
	}
	return apply(X, func(j int, v float64) float64 {
		return (v - s.Mean[j]) / s.Scale[j]
	}), nil
}

// FitTransform は訓練データで学習し、同じデータを変換する
func (s *StandardScaler) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// InverseTransform は標準化されたデータを元のスケールに戻す
func (s *StandardScaler) InverseTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.RequireFitted("StandardScaler", "InverseTransform"); err != nil {
		return nil, err
	}
	if err := checkFeatures("StandardScaler.InverseTransform", X, s.NFeatures); err != nil {
		return nil, err
	}
	return apply(X, func(j int, v float64) float64 {
		return v*s.Scale[j] + s.Mean[j]
	}), nil
}

// GetParams はスケーラーのパラメータを取得する
func (s *StandardScaler) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"with_mean": s.WithMean,
		"with_std":  s.WithStd,
		"ddof":      s.DDOF,
	}
}

// String はスケーラーの文字列表現を返す
func (s *StandardScaler) String() string {
	if !s.IsFitted() {
		return fmt.Sprintf("StandardScaler(with_mean=%t, with_std=%t, ddof=%d)", s.WithMean, s.WithStd, s.DDOF)
	}
	return fmt.Sprintf("StandardScaler(with_mean=%t, with_std=%t, ddof=%d, n_features=%d)",
		s.WithMean, s.WithStd, s.DDOF, s.NFeatures)
}

// MinMaxScaler はデータを列ごとに指定した範囲（デフォルト[0,1]）に線形変換する
type MinMaxScaler struct {
	model.BaseEstimator

	// DataMin は学習データの最小値
	DataMin []float64

	// DataMax は学習データの最大値
	DataMax []float64

	// Scale は各特徴量の範囲 (max − min)。定数列は 1
	Scale []float64

	// NFeatures は特徴量の数
	NFeatures int

	// FeatureRange はスケーリング後の範囲 [min, max]
	FeatureRange [2]float64
}

// NewMinMaxScaler は新しいMinMaxScalerを作成する
func NewMinMaxScaler(featureRange [2]float64) *MinMaxScaler {
	return &MinMaxScaler{
		FeatureRange: featureRange,
	}
}

// NewMinMaxScalerDefault はデフォルト設定([0,1]範囲)でMinMaxScalerを作成する
func NewMinMaxScalerDefault() *MinMaxScaler {
	return NewMinMaxScaler([2]float64{0.0, 1.0})
}

// Fit は訓練データから列ごとの最小値・最大値を計算する
func (m *MinMaxScaler) Fit(X mat.Matrix) error {
	const op = "MinMaxScaler.Fit"

	if !(m.FeatureRange[0] < m.FeatureRange[1]) {
		return errors.NewValidationError("feature_range", "minimum must be smaller than maximum", m.FeatureRange)
	}

	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewEmptyInputError(op)
	}
	if err := errors.CheckMatrix(op, X); err != nil {
		return err
	}

	dataMin := make([]float64, c)
	dataMax := make([]float64, c)
	scales := make([]float64, c)
	for j := 0; j < c; j++ {
		col := mat.Col(nil, j, X)

		lo, err := stats.Min(col)
		if err != nil {
			return errors.Wrapf(err, "%s: column %d", op, j)
		}
		hi, err := stats.Max(col)
		if err != nil {
			return errors.Wrapf(err, "%s: column %d", op, j)
		}

		dataMin[j], dataMax[j] = lo, hi
		// 定数列はスケール1
		scales[j] = 1
		if hi != lo {
			scales[j] = hi - lo
		}
	}

	m.DataMin, m.DataMax, m.Scale, m.NFeatures = dataMin, dataMax, scales, c
	m.SetFitted(r)
	return nil
}

// Transform は (x − DataMin) / Scale を FeatureRange に写す
func (m *MinMaxScaler) Transform(X mat.Matrix) (mat.Matrix, error) {
	if err := m.RequireFitted("MinMaxScaler", "Transform"); err != nil {
		return nil, err
	}
	if err := checkFeatures("MinMaxScaler.Transform", X, m.NFeatures); err != nil {
		return nil, err
	}
	width := m.FeatureRange[1] - m.FeatureRange[0]
	return apply(X, func(j int, v float64) float64 {
		return (v-m.DataMin[j])/m.Scale[j]*width + m.FeatureRange[0]
	}), nil
}

// FitTransform は訓練データで学習し、同じデータを変換する
func (m *MinMaxScaler) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := m.Fit(X); err != nil {
		return nil, err
	}
	return m.Transform(X)
}

// InverseTransform はスケーリングされたデータを元の範囲に戻す
func (m *MinMaxScaler) InverseTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := m.RequireFitted("MinMaxScaler", "InverseTransform"); err != nil {
		return nil, err
	}
	if err := checkFeatures("MinMaxScaler.InverseTransform", X, m.NFeatures); err != nil {
		return nil, err
	}
	width := m.FeatureRange[1] - m.FeatureRange[0]
	return apply(X, func(j int, v float64) float64 {
		return (v-m.FeatureRange[0])/width*m.Scale[j] + m.DataMin[j]
	}), nil
}

// GetParams はスケーラーのパラメータを取得する
func (m *MinMaxScaler) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"feature_range": m.FeatureRange,
	}
}

// String はスケーラーの文字列表現を返す
func (m *MinMaxScaler) String() string {
	if !m.IsFitted() {
		return fmt.Sprintf("MinMaxScaler(feature_range=[%.1f, %.1f])",
			m.FeatureRange[0], m.FeatureRange[1])
	}
	return fmt.Sprintf("MinMaxScaler(feature_range=[%.1f, %.1f], n_features=%d)",
		m.FeatureRange[0], m.FeatureRange[1], m.NFeatures)
}

func checkFeatures(op string, X mat.Matrix, want int) error {
	if _, c := X.Dims(); c != want {
		return errors.NewDimensionError(op, want, c, 1)
	}
	return nil
}

// apply は各要素に fn(列番号, 値) を適用した新しい行列を返す。行単位で並列化する。
func apply(X mat.Matrix, fn func(j int, v float64) float64) *mat.Dense {
	r, c := X.Dims()
	result := mat.NewDense(r, c, nil)
	parallel.ParallelizeWithThreshold(r, parallel.DefaultThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			for j := 0; j < c; j++ {
				result.Set(i, j, fn(j, X.At(i, j)))
			}
		}
	})
	return result
}

var (
	_ model.Transformer = (*StandardScaler)(nil)
	_ model.Transformer = (*MinMaxScaler)(nil)
)
