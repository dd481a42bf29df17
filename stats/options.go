package stats

import (
	"math"

	"github.com/YuminosukeSato/scistat/pkg/errors"
	"github.com/YuminosukeSato/scistat/pkg/log"
)

const (
	// DefaultDDOF selects the unbiased sample estimator.
	DefaultDDOF = 1

	// DefaultFenceMultiplier is Tukey's 1.5 × IQR.
	DefaultFenceMultiplier = 1.5
)

type config struct {
	ddof   int
	fence  float64
	logger log.Logger
}

// Option configures Describe.
type Option func(*config)

// WithDDOF sets the delta degrees of freedom used for variance, standard
// deviation, coefficient of variation and z-scores.
func WithDDOF(ddof int) Option {
	return func(c *config) {
		c.ddof = ddof
	}
}

// WithFenceMultiplier sets k in the fences Q1 − k·IQR and Q3 + k·IQR.
func WithFenceMultiplier(k float64) Option {
	return func(c *config) {
		c.fence = k
	}
}

// WithLogger sets the logger used for debug records.
func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

func newConfig(opts []Option) (*config, error) {
	c := &config{
		ddof:  DefaultDDOF,
		fence: DefaultFenceMultiplier,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.ddof < 0 {
		return nil, errors.NewValidationError("ddof", "must be non-negative", c.ddof)
	}
	if err := validateFence(c.fence); err != nil {
		return nil, err
	}
	if c.logger == nil {
		c.logger = log.GetLoggerWithName("stats")
	}
	return c, nil
}

func validateFence(k float64) error {
	if math.IsNaN(k) || math.IsInf(k, 0) || k < 0 {
		return errors.NewValidationError("fence_multiplier", "must be a finite non-negative number", k)
	}
	return nil
}
