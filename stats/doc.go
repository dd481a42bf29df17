// Package stats computes descriptive statistics over a finite numeric sample.
//
// A sample is a plain []float64. No function in this package mutates its
// input; operations that need order work on a sorted copy.
//
// Dispersion measures take an explicit ddof (delta degrees of freedom):
// 1 for the unbiased sample estimator, 0 for the population value.
// Skewness and excess kurtosis always use population moments.
//
// Two position conventions coexist on purpose:
//
//   - PercentileRank counts values strictly below x (ties excluded):
//     100 * count(v < x) / n.
//   - Percentile interpolates linearly between closest ranks on the sorted
//     sample, r = p/100 * (n-1). Quartiles, IQR and the Tukey fences build
//     on it.
//
// Failures are typed errors from pkg/errors (EmptyInputError,
// InsufficientDataError, DivisionByZeroError, ValidationError). Mode reports
// a missing unique mode as *errors.AmbiguousModeError rather than picking a
// value.
//
// Example:
//
//	summary, err := stats.Describe([]float64{4, 10, 29, 33, 42, 67})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(summary.Mean, summary.IQR, summary.Outliers)
package stats
