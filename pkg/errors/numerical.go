package errors

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// maxReported は1回のエラーで報告する不安定値の上限です。
const maxReported = 10

// CheckNumericalStability returns a NumericalInstabilityError listing the
// NaN and ±Inf entries of values, or nil when every value is finite.
func CheckNumericalStability(operation string, values []float64) error {
	bad := nonFinite(values)
	if len(bad) == 0 {
		return nil
	}
	return NewNumericalInstabilityError(operation, bad)
}

// CheckMatrix は行列 m に NaN や ±Inf が含まれていないかを検査します。
// *mat.Dense と *mat.VecDense は内部配列を直接走査します。
func CheckMatrix(operation string, m mat.Matrix) error {
	var bad []float64
	switch v := m.(type) {
	case mat.RawMatrixer:
		raw := v.RawMatrix()
		for i := 0; i < raw.Rows && len(bad) < maxReported; i++ {
			bad = append(bad, nonFinite(raw.Data[i*raw.Stride:i*raw.Stride+raw.Cols])...)
		}
	case mat.RawVectorer:
		raw := v.RawVector()
		for i := 0; i < raw.N && len(bad) < maxReported; i++ {
			if x := raw.Data[i*raw.Inc]; !isFinite(x) {
				bad = append(bad, x)
			}
		}
	default:
		r, c := m.Dims()
		for i := 0; i < r && len(bad) < maxReported; i++ {
			for j := 0; j < c; j++ {
				if x := m.At(i, j); !isFinite(x) {
					bad = append(bad, x)
				}
			}
		}
	}
	if len(bad) == 0 {
		return nil
	}
	if len(bad) > maxReported {
		bad = bad[:maxReported]
	}
	return NewNumericalInstabilityError(operation, bad)
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func nonFinite(values []float64) []float64 {
	var bad []float64
	for _, v := range values {
		if !isFinite(v) {
			bad = append(bad, v)
		}
	}
	return bad
}
