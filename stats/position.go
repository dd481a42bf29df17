package stats

import (
	"math"
	"slices"

	"github.com/YuminosukeSato/scistat/core/parallel"
	"github.com/YuminosukeSato/scistat/pkg/errors"
)

// ZScores returns (x − mean) / StdDev(ddof) for every value, in input order.
func ZScores(sample []float64, ddof int) ([]float64, error) {
	sd, err := StdDev(sample, ddof)
	if err != nil {
		return nil, err
	}
	if sd == 0 {
		return nil, errors.NewDivisionByZeroError("ZScores", "standard deviation")
	}

	mean := meanOf(sample)
	scores := make([]float64, len(sample))
	parallel.ParallelizeWithThreshold(len(sample), parallel.DefaultThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			scores[i] = (sample[i] - mean) / sd
		}
	})
	return scores, nil
}

// PercentileRank returns the percentage of values strictly less than x:
// 100 · count(v < x) / n. Values equal to x are not counted.
func PercentileRank(sample []float64, x float64) (float64, error) {
	if err := requireNonEmpty("PercentileRank", sample); err != nil {
		return 0, err
	}
	below := 0
	for _, v := range sample {
		if v < x {
			below++
		}
	}
	return 100 * float64(below) / float64(len(sample)), nil
}

// PercentileRanks returns PercentileRank(sample, v) for every v in sample,
// in input order. A NaN counts toward n but is never below any value, and
// its own rank is 0.
func PercentileRanks(sample []float64) ([]float64, error) {
	if err := requireNonEmpty("PercentileRanks", sample); err != nil {
		return nil, err
	}
	sorted := sortedCopy(sample)
	// slices.Sort は NaN を先頭に置くので比較対象から外す
	nans := 0
	for nans < len(sorted) && math.IsNaN(sorted[nans]) {
		nans++
	}
	sorted = sorted[nans:]

	n := float64(len(sample))
	ranks := make([]float64, len(sample))
	for i, v := range sample {
		if math.IsNaN(v) {
			continue
		}
		// index of the first element >= v is the count of elements < v
		below, _ := slices.BinarySearch(sorted, v)
		ranks[i] = 100 * float64(below) / n
	}
	return ranks, nil
}

// Percentile returns the p-th percentile, p in [0, 100], by linear
// interpolation on the sorted sample at rank r = p/100 · (n−1):
//
//	sorted[⌊r⌋] + (r − ⌊r⌋) · (sorted[⌈r⌉] − sorted[⌊r⌋])
func Percentile(sample []float64, p float64) (float64, error) {
	if err := requireNonEmpty("Percentile", sample); err != nil {
		return 0, err
	}
	if err := validatePercent(p); err != nil {
		return 0, err
	}
	return percentileSorted(sortedCopy(sample), p), nil
}

func validatePercent(p float64) error {
	if !(p >= 0 && p <= 100) {
		return errors.NewValidationError("p", "must be within [0, 100]", p)
	}
	return nil
}

func percentileSorted(sorted []float64, p float64) float64 {
	r := p / 100 * float64(len(sorted)-1)
	lo := math.Floor(r)
	hi := math.Ceil(r)
	low := sorted[int(lo)]
	return low + (r-lo)*(sorted[int(hi)]-low)
}

// Quartiles returns the 25th, 50th and 75th percentiles.
func Quartiles(sample []float64) (q1, q2, q3 float64, err error) {
	if err := requireNonEmpty("Quartiles", sample); err != nil {
		return 0, 0, 0, err
	}
	sorted := sortedCopy(sample)
	return percentileSorted(sorted, 25), percentileSorted(sorted, 50), percentileSorted(sorted, 75), nil
}

// InterquartileRange returns Q3 − Q1.
func InterquartileRange(sample []float64) (float64, error) {
	q1, _, q3, err := Quartiles(sample)
	if err != nil {
		return 0, err
	}
	return q3 - q1, nil
}

// TukeyFences returns Q1 − k·IQR and Q3 + k·IQR.
func TukeyFences(sample []float64, k float64) (lower, upper float64, err error) {
	if err := validateFence(k); err != nil {
		return 0, 0, err
	}
	q1, _, q3, err := Quartiles(sample)
	if err != nil {
		return 0, 0, err
	}
	iqr := q3 - q1
	return q1 - k*iqr, q3 + k*iqr, nil
}

// Outliers returns the values outside Tukey's fences with k = 1.5, in
// input order. The result is empty, not nil, when there are none.
func Outliers(sample []float64) ([]float64, error) {
	return OutliersWithFence(sample, DefaultFenceMultiplier)
}

// OutliersWithFence is Outliers with a custom multiplier k.
func OutliersWithFence(sample []float64, k float64) ([]float64, error) {
	lower, upper, err := TukeyFences(sample, k)
	if err != nil {
		return nil, err
	}
	return outsideFences(sample, lower, upper), nil
}

func outsideFences(sample []float64, lower, upper float64) []float64 {
	outliers := make([]float64, 0)
	for _, v := range sample {
		if v < lower || v > upper {
			outliers = append(outliers, v)
		}
	}
	return outliers
}
