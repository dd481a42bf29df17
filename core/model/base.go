package model

import "github.com/YuminosukeSato/scistat/pkg/errors"

// EstimatorState は推定器が学習済みかどうかを表す
type EstimatorState int

const (
	NotFitted EstimatorState = iota
	Fitted
)

func (s EstimatorState) String() string {
	if s == Fitted {
		return "fitted"
	}
	return "not_fitted"
}

// BaseEstimator は回帰モデルとスケーラに埋め込む学習状態。
// ゼロ値は未学習。
type BaseEstimator struct {
	state    EstimatorState
	nSamples int
}

// IsFitted reports whether Fit (or ImportWeights) has succeeded.
func (e *BaseEstimator) IsFitted() bool {
	return e.state == Fitted
}

// SetFitted marks the estimator as fitted on nSamples rows. Restored
// weights carry no sample count and pass 0.
func (e *BaseEstimator) SetFitted(nSamples int) {
	e.state = Fitted
	e.nSamples = nSamples
}

// RequireFitted returns a NotFittedError naming modelName and method
// until the estimator has been fitted.
func (e *BaseEstimator) RequireFitted(modelName, method string) error {
	if e.state != Fitted {
		return errors.NewNotFittedError(modelName, method)
	}
	return nil
}

// NSamplesSeen は直近の Fit に使われた標本数
func (e *BaseEstimator) NSamplesSeen() int {
	return e.nSamples
}

// Reset は未学習状態に戻す
func (e *BaseEstimator) Reset() {
	e.state = NotFitted
	e.nSamples = 0
}

func (e *BaseEstimator) State() EstimatorState {
	return e.state
}
