package stats

import (
	"math"

	"github.com/YuminosukeSato/scistat/pkg/errors"
)

func requirePaired(op string, xs, ys []float64) error {
	if len(xs) == 0 || len(ys) == 0 {
		return errors.NewEmptyInputError(op)
	}
	if len(xs) != len(ys) {
		return errors.NewDimensionError(op, len(xs), len(ys), 0)
	}
	return nil
}

// crossDeviations returns Σdx·dy, Σdx² and Σdy² around the respective means.
func crossDeviations(xs, ys []float64) (sxy, sxx, syy float64) {
	mx := meanOf(xs)
	my := meanOf(ys)
	for i := range xs {
		dx := xs[i] - mx
		dy := ys[i] - my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	return sxy, sxx, syy
}

// Covariance returns Σ(x−x̄)(y−ȳ) / (n − ddof).
func Covariance(xs, ys []float64, ddof int) (float64, error) {
	if err := requirePaired("Covariance", xs, ys); err != nil {
		return 0, err
	}
	if err := requireDDOF("Covariance", len(xs), ddof); err != nil {
		return 0, err
	}
	sxy, _, _ := crossDeviations(xs, ys)
	return sxy / float64(len(xs)-ddof), nil
}

// PearsonCorrelation returns Σ(x−x̄)(y−ȳ) / √(Σ(x−x̄)² · Σ(y−ȳ)²).
// A constant xs or ys is a DivisionByZeroError.
func PearsonCorrelation(xs, ys []float64) (float64, error) {
	if err := requirePaired("PearsonCorrelation", xs, ys); err != nil {
		return 0, err
	}
	sxy, sxx, syy := crossDeviations(xs, ys)
	if sxx == 0 || syy == 0 {
		return 0, errors.NewDivisionByZeroError("PearsonCorrelation", "standard deviation")
	}
	return sxy / math.Sqrt(sxx*syy), nil
}
