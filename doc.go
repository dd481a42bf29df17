// Package scistat provides descriptive statistics and closed-form linear
// regression for Go, built on gonum.
//
// scistat covers the classic summary measures of a numeric sample (central
// tendency, dispersion, shape and position) together with least-squares
// regression fitted in one step, without iterative training.
//
// # Features
//
//   - Descriptive statistics: mean, median, mode, range, variance, standard
//     deviation, coefficient of variation, skewness, excess kurtosis
//   - Measures of position: z-scores, percentile ranks, percentiles,
//     quartiles, IQR and Tukey outliers
//   - Correlation: covariance and Pearson's r
//   - Regression: simple and multiple linear regression with rank checks
//   - Typed errors with stack traces and structured logging
//
// # Installation
//
//	go get github.com/YuminosukeSato/scistat
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/scistat/linear"
//	    "github.com/YuminosukeSato/scistat/stats"
//	)
//
//	func main() {
//	    summary, err := stats.Describe([]float64{4, 10, 29, 33, 42, 67})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Print(summary)
//
//	    model, err := linear.FitSimple([]float64{2, 4, 6, 8, 10}, []float64{40, 60, 80, 100, 120})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    marks, _ := model.Predict([]float64{12})
//	    fmt.Println(marks) // 140
//	}
//
// # Packages
//
//   - stats: descriptive statistics, measures of position, correlation, Describe
//   - linear: FitSimple, FitMultiple, Model and the LinearRegression estimator
//   - metrics: regression metrics (MSE, RMSE, MAE, R², MAPE, explained variance)
//   - preprocessing: StandardScaler and MinMaxScaler
//   - core/model: estimator interfaces and weight serialization
//   - core/parallel: parallel processing utilities
//   - pkg/errors: error types and warnings
//   - pkg/log: structured logging
//
// # Performance
//
// Row-wise loops (design matrix assembly, z-scores, scaling, batch
// prediction) are split across CPU cores above 1000 rows.
//
// # License
//
// scistat is released under the MIT License.
package scistat
