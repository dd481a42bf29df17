// Package metrics は回帰モデルの評価指標を提供する
package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/scistat/pkg/errors"
)

// validatePair は空入力と長さ不一致を検査する
func validatePair(op string, yTrue, yPred []float64) error {
	if len(yTrue) == 0 || len(yPred) == 0 {
		return errors.NewEmptyInputError(op)
	}
	if len(yPred) != len(yTrue) {
		return errors.NewDimensionError(op, len(yTrue), len(yPred), 0)
	}
	return nil
}

// MSE は平均二乗誤差（Mean Squared Error）を計算する
func MSE(yTrue, yPred []float64) (float64, error) {
	if err := validatePair("MSE", yTrue, yPred); err != nil {
		return 0, err
	}

	// MSE = (1/n) * Σ(yTrue - yPred)²
	var sum float64
	for i := range yTrue {
		diff := yTrue[i] - yPred[i]
		sum += diff * diff
	}
	return sum / float64(len(yTrue)), nil
}

// MSEMatrix は n×1 行列形式の入力に対してMSEを計算する
func MSEMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	rTrue, cTrue := yTrue.Dims()
	rPred, cPred := yPred.Dims()

	if rTrue == 0 || cTrue == 0 {
		return 0, errors.NewEmptyInputError("MSEMatrix")
	}
	if rTrue != rPred || cTrue != cPred {
		return 0, errors.NewDimensionError("MSEMatrix", rTrue, rPred, 0)
	}
	if cTrue != 1 {
		return 0, errors.NewValidationError("yTrue", "must be a column vector (n×1 matrix)", cTrue)
	}

	return MSE(mat.Col(nil, 0, yTrue), mat.Col(nil, 0, yPred))
}

// RMSE は平方根平均二乗誤差（Root Mean Squared Error）を計算する
func RMSE(yTrue, yPred []float64) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE は平均絶対誤差（Mean Absolute Error）を計算する
func MAE(yTrue, yPred []float64) (float64, error) {
	if err := validatePair("MAE", yTrue, yPred); err != nil {
		return 0, err
	}
	return floats.Distance(yTrue, yPred, 1) / float64(len(yTrue)), nil
}

// R2Score は決定係数 R² = 1 − RSS/TSS を計算する。
// yTrue がすべて同じ値（TSS = 0）の場合は DivisionByZeroError。
func R2Score(yTrue, yPred []float64) (float64, error) {
	if err := validatePair("R2Score", yTrue, yPred); err != nil {
		return 0, err
	}

	yMean := stat.Mean(yTrue, nil)

	var tss, rss float64
	for i := range yTrue {
		tss += (yTrue[i] - yMean) * (yTrue[i] - yMean)
		rss += (yTrue[i] - yPred[i]) * (yTrue[i] - yPred[i])
	}

	if tss == 0 {
		return 0, errors.NewDivisionByZeroError("R2Score", "total sum of squares")
	}
	return 1 - rss/tss, nil
}

// MAPE は平均絶対パーセンテージ誤差を計算する。
// yTrue が0の要素は除外し、すべて0なら DivisionByZeroError。
func MAPE(yTrue, yPred []float64) (float64, error) {
	if err := validatePair("MAPE", yTrue, yPred); err != nil {
		return 0, err
	}

	// MAPE = (100/n) * Σ|yTrue - yPred|/|yTrue|
	var sum float64
	validCount := 0
	for i, v := range yTrue {
		if v != 0 { // ゼロ除算を避ける
			sum += math.Abs(v-yPred[i]) / math.Abs(v)
			validCount++
		}
	}

	if validCount == 0 {
		return 0, errors.NewDivisionByZeroError("MAPE", "yTrue")
	}
	return (sum / float64(validCount)) * 100, nil
}

// ExplainedVarianceScore は 1 − Var(yTrue − yPred) / Var(yTrue) を計算する
func ExplainedVarianceScore(yTrue, yPred []float64) (float64, error) {
	if err := validatePair("ExplainedVarianceScore", yTrue, yPred); err != nil {
		return 0, err
	}

	residuals := make([]float64, len(yTrue))
	floats.SubTo(residuals, yTrue, yPred)

	_, varYTrue := stat.PopMeanVariance(yTrue, nil)
	_, varDiff := stat.PopMeanVariance(residuals, nil)

	if varYTrue == 0 {
		return 0, errors.NewDivisionByZeroError("ExplainedVarianceScore", "variance of yTrue")
	}
	return 1 - varDiff/varYTrue, nil
}
