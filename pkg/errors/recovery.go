package errors

import (
	"fmt"
	"runtime/debug"

	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/mat"
)

// PanicError は数値計算中に回収されたpanicを表します。
//
// gonum/mat は形状違反をエラーではなく panic(mat.Error) で通知するため、
// 回帰の行列計算はこの型を介して通常のエラーに戻されます。
type PanicError struct {
	Operation  string
	Value      interface{}
	StackTrace string
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("scistat: %s: recovered panic: %v", e.Operation, e.Value)
}

// Unwrap returns the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// Is は gonum の形状エラーを ErrDimensionMismatch として扱います。
func (e *PanicError) Is(target error) bool {
	return target == ErrDimensionMismatch && e.IsShapeViolation()
}

// IsShapeViolation reports whether the panic came from a gonum/mat
// dimension check.
func (e *PanicError) IsShapeViolation() bool {
	switch e.Value {
	case mat.ErrShape, mat.ErrSquare, mat.ErrVectorAccess, mat.ErrRowAccess, mat.ErrColAccess:
		return true
	}
	return false
}

// String includes the stack captured at recovery.
func (e *PanicError) String() string {
	return fmt.Sprintf("%s\n%s", e.Error(), e.StackTrace)
}

// NewPanicError captures the current stack for a recovered value.
func NewPanicError(operation string, value interface{}) *PanicError {
	return &PanicError{
		Operation:  operation,
		Value:      value,
		StackTrace: string(debug.Stack()),
	}
}

// Recover は名前付き戻り値 err へのポインタとともに defer します。
// panicが起きた場合、*err が nil なら PanicError を設定し、
// そうでなければ既存のエラーに panic の情報を付けて包みます。
//
//	func (lr *LinearRegression) Fit(X, y mat.Matrix) (err error) {
//	    defer errors.Recover(&err, "LinearRegression.Fit")
//	    ...
//	}
func Recover(err *error, operation string) {
	r := recover()
	if r == nil {
		return
	}
	if *err != nil {
		*err = errors.Wrapf(*err, "%s: recovered panic: %v", operation, r)
		return
	}
	*err = NewPanicError(operation, r)
}

// SafeExecute runs fn, turning a panic into a *PanicError.
//
//	err := errors.SafeExecute("FitMultiple", func() error {
//	    return qr.SolveVecTo(beta, false, y)
//	})
func SafeExecute(operation string, fn func() error) (err error) {
	defer Recover(&err, operation)
	return fn()
}
