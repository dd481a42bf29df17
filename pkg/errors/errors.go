// Package errors はscistat全体のエラーハンドリングと警告システムを提供します。
// 統計量の計算で発生する失敗は種類ごとに型付けされ、cockroachdb/errors によるスタックトレースを持ちます。
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	グローバル警告ハンドリング
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		// デフォルトのハンドラは標準エラー出力にログを出す
		log.Printf("scistat-Warning: %v\n", w)
	}
	// zerologロガー（循環importを避けるため遅延初期化）
	zerologWarnFunc func(warning error)
)

// SetWarningHandler はライブラリ全体の警告ハンドラを設定します。
//
// 例:
//
//	errors.SetWarningHandler(func(w error) {
//	    // 警告を無視する
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc はzerolog警告関数を設定します（循環importを避けるため）。
// nil を渡すと従来のハンドラに戻ります。
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn は警告を発生させます。
// zerologが設定されている場合は構造化ログとして出力し、そうでなければ従来のハンドラを使用します。
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}

	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	警告型
//
// ===========================================================================

// SmallSampleWarning は統計量の計算自体は可能だが、標本が小さすぎて
// 結果の解釈に注意が必要な場合の警告です（例: n < 3 の歪度）。
type SmallSampleWarning struct {
	Statistic   string
	Samples     int
	Recommended int
}

func (w *SmallSampleWarning) Error() string {
	return fmt.Sprintf("%s computed from %d samples; at least %d are recommended for a meaningful value",
		w.Statistic, w.Samples, w.Recommended)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *SmallSampleWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("statistic", w.Statistic).
		Int("samples", w.Samples).
		Int("recommended", w.Recommended).
		Str("type", "SmallSampleWarning")
}

// NewSmallSampleWarning は新しいSmallSampleWarningを作成します。
func NewSmallSampleWarning(statistic string, samples, recommended int) *SmallSampleWarning {
	return &SmallSampleWarning{Statistic: statistic, Samples: samples, Recommended: recommended}
}

// ===========================================================================
//
//	構造化されたエラー型
//
// ===========================================================================

// EmptyInputError は標本・行列が要素を一つも持たない場合のエラーです。
type EmptyInputError struct {
	Op string
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("scistat: %s: empty input", e.Op)
}

// Is は ErrEmptyData との比較を可能にします。
func (e *EmptyInputError) Is(target error) bool {
	return target == ErrEmptyData
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *EmptyInputError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("type", "EmptyInputError")
}

// NewEmptyInputError は新しいEmptyInputErrorを作成し、スタックトレースを付与します。
func NewEmptyInputError(op string) error {
	return errors.WithStack(&EmptyInputError{Op: op})
}

// InsufficientDataError は要求された統計量に対して標本数が足りない場合のエラーです。
// 例えば ddof >= n の分散など。
type InsufficientDataError struct {
	Op       string
	Required int
	Got      int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("scistat: %s: insufficient data: need at least %d observations, got %d", e.Op, e.Required, e.Got)
}

// Is は ErrInsufficientData との比較を可能にします。
func (e *InsufficientDataError) Is(target error) bool {
	return target == ErrInsufficientData
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *InsufficientDataError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("required", e.Required).
		Int("got", e.Got).
		Str("type", "InsufficientDataError")
}

// NewInsufficientDataError は新しいInsufficientDataErrorを作成し、スタックトレースを付与します。
func NewInsufficientDataError(op string, required, got int) error {
	return errors.WithStack(&InsufficientDataError{Op: op, Required: required, Got: got})
}

// DivisionByZeroError は除算が必要な文脈で分母（平均、標準偏差など）がちょうど0になった場合のエラーです。
type DivisionByZeroError struct {
	Op          string
	Denominator string // 0になった量の名前（"mean", "standard deviation" など）
}

func (e *DivisionByZeroError) Error() string {
	return fmt.Sprintf("scistat: %s: division by zero (%s is 0)", e.Op, e.Denominator)
}

// Is は ErrDivisionByZero との比較を可能にします。
func (e *DivisionByZeroError) Is(target error) bool {
	return target == ErrDivisionByZero
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *DivisionByZeroError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("denominator", e.Denominator).
		Str("type", "DivisionByZeroError")
}

// NewDivisionByZeroError は新しいDivisionByZeroErrorを作成し、スタックトレースを付与します。
func NewDivisionByZeroError(op, denominator string) error {
	return errors.WithStack(&DivisionByZeroError{Op: op, Denominator: denominator})
}

// DegenerateInputError は回帰の計画行列が特異・ランク落ちしている場合、
// または単回帰で説明変数が全て等しい場合のエラーです。
type DegenerateInputError struct {
	Op     string
	Reason string
	Err    error // 原因となったエラー（オプション）
}

func (e *DegenerateInputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("scistat: %s: degenerate input: %s: %v", e.Op, e.Reason, e.Err)
	}
	return fmt.Sprintf("scistat: %s: degenerate input: %s", e.Op, e.Reason)
}

func (e *DegenerateInputError) Unwrap() error {
	return e.Err
}

// Is は ErrDegenerate との比較を可能にします。
func (e *DegenerateInputError) Is(target error) bool {
	return target == ErrDegenerate
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *DegenerateInputError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("reason", e.Reason).
		Str("type", "DegenerateInputError")
	if e.Err != nil {
		event.Str("cause", e.Err.Error())
	}
}

// NewDegenerateInputError は新しいDegenerateInputErrorを作成し、スタックトレースを付与します。
func NewDegenerateInputError(op, reason string, cause error) error {
	return errors.WithStack(&DegenerateInputError{Op: op, Reason: reason, Err: cause})
}

// DimensionError は対になる系列・行列・特徴量ベクトルの長さが一致しない場合のエラーです。
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns/features
}

func (e *DimensionError) Error() string {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("scistat: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// Is は ErrDimensionMismatch との比較を可能にします。
func (e *DimensionError) Is(target error) bool {
	return target == ErrDimensionMismatch
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", axisName).
		Str("type", "DimensionError")
}

// NewDimensionError は新しいDimensionErrorを作成し、スタックトレースを付与します。
func NewDimensionError(op string, expected, got, axis int) error {
	return errors.WithStack(&DimensionError{Op: op, Expected: expected, Got: got, Axis: axis})
}

// AmbiguousModeError は最頻値が一意に定まらない場合の結果です。
// 全ての値の出現回数が1の場合、または最大の出現回数を複数の値が共有する場合に返されます。
type AmbiguousModeError struct {
	Candidates []float64 // 最大頻度を共有する値（昇順）
	Frequency  int       // その頻度
}

func (e *AmbiguousModeError) Error() string {
	if e.Frequency <= 1 {
		return "scistat: Mode: no unique mode: every value occurs once"
	}
	return fmt.Sprintf("scistat: Mode: no unique mode: %d values share the highest frequency %d", len(e.Candidates), e.Frequency)
}

// Is は ErrNoUniqueMode との比較を可能にします。
func (e *AmbiguousModeError) Is(target error) bool {
	return target == ErrNoUniqueMode
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *AmbiguousModeError) MarshalZerologObject(event *zerolog.Event) {
	event.Floats64("candidates", e.Candidates).
		Int("frequency", e.Frequency).
		Str("type", "AmbiguousModeError")
}

// NewAmbiguousModeError は新しいAmbiguousModeErrorを作成し、スタックトレースを付与します。
func NewAmbiguousModeError(candidates []float64, frequency int) error {
	return errors.WithStack(&AmbiguousModeError{Candidates: candidates, Frequency: frequency})
}

// NotFittedError はモデルが未学習の状態で `Predict` や `Transform` を呼び出した場合のエラーです。
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("scistat: %s: this model is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError は新しいNotFittedErrorを作成し、スタックトレースを付与します。
func NewNotFittedError(modelName, method string) error {
	return errors.WithStack(&NotFittedError{ModelName: modelName, Method: method})
}

// ValidationError は入力パラメータの検証に失敗した場合のエラーです。
// 例えば範囲外のパーセンタイルや負の ddof など。
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("scistat: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError は新しいValidationErrorを作成し、スタックトレースを付与します。
func NewValidationError(param, reason string, value interface{}) error {
	return errors.WithStack(&ValidationError{ParamName: param, Reason: reason, Value: value})
}

// NumericalInstabilityError は数値計算の結果に NaN や Inf が現れた場合のエラーです。
type NumericalInstabilityError struct {
	Operation string
	Values    []float64
}

func (e *NumericalInstabilityError) Error() string {
	valStr := ""
	for i, v := range e.Values {
		if i > 0 {
			valStr += ", "
		}
		if i >= 5 {
			valStr += "..."
			break
		}
		valStr += fmt.Sprintf("%.6g", v)
	}
	return fmt.Sprintf("scistat: numerical instability detected in %s. Values: [%s]", e.Operation, valStr)
}

// NewNumericalInstabilityError は新しいNumericalInstabilityErrorを作成します。
func NewNumericalInstabilityError(operation string, values []float64) error {
	return errors.WithStack(&NumericalInstabilityError{Operation: operation, Values: values})
}

// ===========================================================================
//
//	cockroachdb/errors ラッパー関数
//
// ===========================================================================

// Is はエラーが特定のターゲットエラーかどうかを判定します。
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As はエラーが特定の型にキャスト可能かどうかを判定します。
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap は既存のエラーをメッセージ付きでラップします。
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf は既存のエラーをフォーマット文字列でラップします。
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New は新しいエラーを作成します。
func New(message string) error {
	return errors.New(message)
}

// Newf は新しいフォーマット済みエラーを作成します。
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack はエラーにスタックトレースを付与します。
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	共通エラー変数
//
// ===========================================================================

var (
	// ErrEmptyData は空のデータが渡された場合のエラーです。
	ErrEmptyData = New("empty data")

	// ErrInsufficientData は標本数が不足している場合のエラーです。
	ErrInsufficientData = New("insufficient data")

	// ErrDivisionByZero は分母が0になった場合のエラーです。
	ErrDivisionByZero = New("division by zero")

	// ErrDegenerate は回帰の入力が退化している場合のエラーです。
	ErrDegenerate = New("degenerate input")

	// ErrSingularMatrix は特異行列の場合のエラーです。
	ErrSingularMatrix = New("singular matrix")

	// ErrDimensionMismatch は次元が一致しない場合のエラーです。
	ErrDimensionMismatch = New("dimension mismatch")

	// ErrNoUniqueMode は最頻値が一意でない場合の結果です。
	ErrNoUniqueMode = New("no unique mode")
)
