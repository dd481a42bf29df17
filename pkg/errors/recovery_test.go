package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// mulMismatched multiplies a 2x3 by a 2x2 matrix, which gonum rejects with
// panic(mat.ErrShape).
func mulMismatched() (err error) {
	defer Recover(&err, "FitMultiple")
	var dst mat.Dense
	dst.Mul(mat.NewDense(2, 3, nil), mat.NewDense(2, 2, nil))
	return nil
}

func TestRecoverGonumShapePanic(t *testing.T) {
	err := mulMismatched()
	require.Error(t, err)

	var panicErr *PanicError
	require.True(t, As(err, &panicErr))
	assert.Equal(t, "FitMultiple", panicErr.Operation)
	assert.Equal(t, mat.ErrShape, panicErr.Value)
	assert.NotEmpty(t, panicErr.StackTrace)
	assert.True(t, panicErr.IsShapeViolation())

	// 形状違反は次元エラーとして判定できる
	assert.True(t, Is(err, ErrDimensionMismatch))
	assert.Equal(t, "scistat: FitMultiple: recovered panic: mat: dimension mismatch", err.Error())
}

func TestRecoverNonShapePanic(t *testing.T) {
	fit := func() (err error) {
		defer Recover(&err, "PredictBatch")
		var rows [][]float64
		_ = rows[3]
		return nil
	}

	err := fit()
	var panicErr *PanicError
	require.True(t, As(err, &panicErr))
	assert.False(t, panicErr.IsShapeViolation())
	assert.False(t, Is(err, ErrDimensionMismatch))
	assert.Contains(t, err.Error(), "index out of range")
}

func TestRecoverWithoutPanic(t *testing.T) {
	fit := func() (err error) {
		defer Recover(&err, "FitSimple")
		return nil
	}
	assert.NoError(t, fit())
}

func TestRecoverKeepsEarlierError(t *testing.T) {
	cause := NewEmptyInputError("FitMultiple")
	fit := func() (err error) {
		defer Recover(&err, "FitMultiple")
		err = cause
		panic(mat.ErrSquare)
	}

	err := fit()
	require.Error(t, err)
	assert.True(t, Is(err, ErrEmptyData))
	assert.Contains(t, err.Error(), "FitMultiple: recovered panic: mat: expect square matrix")
}

func TestSafeExecute(t *testing.T) {
	assert.NoError(t, SafeExecute("QR solve", func() error { return nil }))

	cause := fmt.Errorf("solve failed")
	assert.Same(t, cause, SafeExecute("QR solve", func() error { return cause }))

	err := SafeExecute("QR solve", func() error {
		var qr mat.QR
		qr.Factorize(mat.NewDense(3, 2, []float64{1, 0, 0, 1, 1, 1}))
		var beta mat.VecDense
		return qr.SolveVecTo(&beta, false, mat.NewVecDense(2, nil))
	})
	assert.True(t, Is(err, ErrDimensionMismatch), "got %v", err)
}

func TestPanicErrorString(t *testing.T) {
	panicErr := NewPanicError("Summary", "boom")
	assert.Contains(t, panicErr.String(), "scistat: Summary: recovered panic: boom")
	assert.Contains(t, panicErr.String(), "goroutine")
	assert.Nil(t, panicErr.Unwrap())
}
