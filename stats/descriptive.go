package stats

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/scistat/pkg/errors"
)

func requireNonEmpty(op string, sample []float64) error {
	if len(sample) == 0 {
		return errors.NewEmptyInputError(op)
	}
	return nil
}

func requireDDOF(op string, n, ddof int) error {
	if ddof < 0 {
		return errors.NewValidationError("ddof", "must be non-negative", ddof)
	}
	if n-ddof <= 0 {
		return errors.NewInsufficientDataError(op, ddof+1, n)
	}
	return nil
}

// isConstant reports whether every value equals the first. A NaN anywhere
// makes the sample non-constant.
func isConstant(sample []float64) bool {
	for _, v := range sample {
		if v != sample[0] {
			return false
		}
	}
	return true
}

// meanOf は算術平均。定数標本ではその値自体を返し、
// 丸め誤差による見かけの分散（0.1 を3つ並べた場合など）を生じさせない
func meanOf(sample []float64) float64 {
	if isConstant(sample) {
		return sample[0]
	}
	return stat.Mean(sample, nil)
}

func sortedCopy(sample []float64) []float64 {
	sorted := slices.Clone(sample)
	slices.Sort(sorted)
	return sorted
}

// Mean returns the arithmetic mean sum/n.
func Mean(sample []float64) (float64, error) {
	if err := requireNonEmpty("Mean", sample); err != nil {
		return 0, err
	}
	return meanOf(sample), nil
}

// Median returns the middle value of the sorted sample, or the average of
// the two middle values when n is even.
func Median(sample []float64) (float64, error) {
	if err := requireNonEmpty("Median", sample); err != nil {
		return 0, err
	}
	return medianSorted(sortedCopy(sample)), nil
}

func medianSorted(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	// percentileSorted と同じ式で、大きな値でもオーバーフローしない
	lo, hi := sorted[n/2-1], sorted[n/2]
	return lo + 0.5*(hi-lo)
}

// Mode returns the single most frequent value.
//
// When every value occurs once, or several values share the highest
// frequency, Mode returns an *errors.AmbiguousModeError (matching
// errors.ErrNoUniqueMode) listing the tied values in ascending order.
func Mode(sample []float64) (float64, error) {
	if err := requireNonEmpty("Mode", sample); err != nil {
		return 0, err
	}

	counts := make(map[float64]int, len(sample))
	best := 0
	for _, v := range sample {
		counts[v]++
		best = max(best, counts[v])
	}

	var candidates []float64
	for v, c := range counts {
		if c == best {
			candidates = append(candidates, v)
		}
	}
	slices.Sort(candidates)

	if best == 1 || len(candidates) > 1 {
		return 0, errors.NewAmbiguousModeError(candidates, best)
	}
	return candidates[0], nil
}

// Min returns the smallest value.
func Min(sample []float64) (float64, error) {
	if err := requireNonEmpty("Min", sample); err != nil {
		return 0, err
	}
	return floats.Min(sample), nil
}

// Max returns the largest value.
func Max(sample []float64) (float64, error) {
	if err := requireNonEmpty("Max", sample); err != nil {
		return 0, err
	}
	return floats.Max(sample), nil
}

// Range returns max − min.
func Range(sample []float64) (float64, error) {
	if err := requireNonEmpty("Range", sample); err != nil {
		return 0, err
	}
	return floats.Max(sample) - floats.Min(sample), nil
}

// centralMoment returns Σ(x−mean)^k / n.
func centralMoment(sample []float64, mean float64, k int) float64 {
	var sum float64
	for _, x := range sample {
		d := x - mean
		p := d
		for i := 1; i < k; i++ {
			p *= d
		}
		sum += p
	}
	return sum / float64(len(sample))
}

func sumSquaredDeviations(sample []float64, mean float64) float64 {
	var ss float64
	for _, x := range sample {
		d := x - mean
		ss += d * d
	}
	return ss
}

// Variance returns Σ(x−mean)² / (n − ddof).
func Variance(sample []float64, ddof int) (float64, error) {
	if err := requireNonEmpty("Variance", sample); err != nil {
		return 0, err
	}
	if err := requireDDOF("Variance", len(sample), ddof); err != nil {
		return 0, err
	}
	mean := meanOf(sample)
	return sumSquaredDeviations(sample, mean) / float64(len(sample)-ddof), nil
}

// StdDev returns the square root of Variance. A NaN produced by the
// arithmetic is returned as is.
func StdDev(sample []float64, ddof int) (float64, error) {
	variance, err := Variance(sample, ddof)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(variance), nil
}

// CoefficientOfVariation returns StdDev / mean × 100.
// A zero mean is a DivisionByZeroError.
func CoefficientOfVariation(sample []float64, ddof int) (float64, error) {
	sd, err := StdDev(sample, ddof)
	if err != nil {
		return 0, err
	}
	mean := meanOf(sample)
	if mean == 0 {
		return 0, errors.NewDivisionByZeroError("CoefficientOfVariation", "mean")
	}
	return sd / mean * 100, nil
}

// populationMoments returns the mean, the second central moment and the
// population standard deviation, failing when the latter is zero.
func populationMoments(op string, sample []float64, recommended int) (mean, sd float64, err error) {
	if err := requireNonEmpty(op, sample); err != nil {
		return 0, 0, err
	}
	n := len(sample)
	if n < 2 {
		return 0, 0, errors.NewInsufficientDataError(op, 2, n)
	}
	if n < recommended {
		errors.Warn(errors.NewSmallSampleWarning(op, n, recommended))
	}

	if isConstant(sample) {
		return 0, 0, errors.NewDivisionByZeroError(op, "population standard deviation")
	}
	mean = meanOf(sample)
	sd = math.Sqrt(centralMoment(sample, mean, 2))
	if sd == 0 {
		return 0, 0, errors.NewDivisionByZeroError(op, "population standard deviation")
	}
	return mean, sd, nil
}

// Skewness returns the third standardized moment
// (1/n · Σ(x−mean)³) / σ³ with the population σ.
func Skewness(sample []float64) (float64, error) {
	mean, sd, err := populationMoments("Skewness", sample, 3)
	if err != nil {
		return 0, err
	}
	return centralMoment(sample, mean, 3) / (sd * sd * sd), nil
}

// Kurtosis returns the excess kurtosis
// (1/n · Σ(x−mean)⁴) / σ⁴ − 3 with the population σ, so a normal
// distribution scores 0.
func Kurtosis(sample []float64) (float64, error) {
	mean, sd, err := populationMoments("Kurtosis", sample, 4)
	if err != nil {
		return 0, err
	}
	sd2 := sd * sd
	return centralMoment(sample, mean, 4)/(sd2*sd2) - 3, nil
}
