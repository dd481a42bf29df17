package linear

import (
	"math"

	"github.com/YuminosukeSato/scistat/core/parallel"
	"github.com/YuminosukeSato/scistat/pkg/errors"
	"github.com/YuminosukeSato/scistat/pkg/log"
)

type config struct {
	parallelThreshold int
	rankTol           float64 // 0 は自動（σmax·max(n,p)·ε）
	logger            log.Logger
}

// Option configures FitMultiple and LinearRegression.
type Option func(*config)

// WithParallelThreshold sets the row count above which the design matrix
// is assembled in parallel.
func WithParallelThreshold(rows int) Option {
	return func(c *config) {
		c.parallelThreshold = rows
	}
}

// WithRankTolerance overrides the singular value cutoff used by the rank
// check. Zero restores the automatic tolerance.
func WithRankTolerance(tol float64) Option {
	return func(c *config) {
		c.rankTol = tol
	}
}

// WithLogger sets the logger used for fit and predict records.
func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

func newConfig(opts []Option) (*config, error) {
	c := &config{parallelThreshold: parallel.DefaultThreshold}
	for _, opt := range opts {
		opt(c)
	}

	if c.parallelThreshold < 1 {
		return nil, errors.NewValidationError("parallel_threshold", "must be positive", c.parallelThreshold)
	}
	if math.IsNaN(c.rankTol) || math.IsInf(c.rankTol, 0) || c.rankTol < 0 {
		return nil, errors.NewValidationError("rank_tolerance", "must be a finite non-negative number", c.rankTol)
	}
	if c.logger == nil {
		c.logger = log.GetLoggerWithName("linear")
	}
	return c, nil
}
