package stats

import (
	"fmt"
	"strings"

	"github.com/YuminosukeSato/scistat/pkg/errors"
	"github.com/YuminosukeSato/scistat/pkg/log"
)

// Summary bundles the descriptive measures of one sample.
type Summary struct {
	N      int
	Min    float64
	Max    float64
	Range  float64
	Mean   float64
	Median float64

	// Mode is meaningful only when HasUniqueMode is true.
	Mode          float64
	HasUniqueMode bool

	DDOF     int
	Variance float64
	StdDev   float64
	CV       float64 // percent

	Skewness float64
	Kurtosis float64 // excess

	Q1  float64
	Q2  float64
	Q3  float64
	IQR float64

	FenceMultiplier float64
	LowerFence      float64
	UpperFence      float64
	Outliers        []float64 // input order
}

// Describe computes every measure of Summary in one pass over a sorted copy.
//
// Any failing measure fails the whole call; there are no partial summaries.
// The one exception is the mode: a missing unique mode only clears
// HasUniqueMode. With the default ddof of 1 the sample needs n >= 2.
func Describe(sample []float64, opts ...Option) (*Summary, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	s, err := describe(sample, cfg)
	if err != nil {
		cfg.logger.Debug("describe failed", err, log.OperationKey, log.OperationDescribe, log.SamplesKey, len(sample))
		return nil, err
	}

	cfg.logger.Debug("summary computed",
		log.OperationKey, log.OperationDescribe,
		log.SamplesKey, s.N,
		log.DDOFKey, s.DDOF,
		log.OutliersKey, len(s.Outliers),
	)
	return s, nil
}

func describe(sample []float64, cfg *config) (*Summary, error) {
	if err := requireNonEmpty("Describe", sample); err != nil {
		return nil, err
	}

	sorted := sortedCopy(sample)
	n := len(sorted)
	s := &Summary{
		N:               n,
		Min:             sorted[0],
		Max:             sorted[n-1],
		Range:           sorted[n-1] - sorted[0],
		Mean:            meanOf(sample),
		Median:          medianSorted(sorted),
		DDOF:            cfg.ddof,
		FenceMultiplier: cfg.fence,
	}

	mode, err := Mode(sample)
	switch {
	case err == nil:
		s.Mode, s.HasUniqueMode = mode, true
	case !errors.Is(err, errors.ErrNoUniqueMode):
		return nil, err
	}

	if s.Variance, err = Variance(sample, cfg.ddof); err != nil {
		return nil, err
	}
	if s.StdDev, err = StdDev(sample, cfg.ddof); err != nil {
		return nil, err
	}
	if s.CV, err = CoefficientOfVariation(sample, cfg.ddof); err != nil {
		return nil, err
	}
	if s.Skewness, err = Skewness(sample); err != nil {
		return nil, err
	}
	if s.Kurtosis, err = Kurtosis(sample); err != nil {
		return nil, err
	}

	s.Q1 = percentileSorted(sorted, 25)
	s.Q2 = percentileSorted(sorted, 50)
	s.Q3 = percentileSorted(sorted, 75)
	s.IQR = s.Q3 - s.Q1
	s.LowerFence = s.Q1 - cfg.fence*s.IQR
	s.UpperFence = s.Q3 + cfg.fence*s.IQR
	s.Outliers = outsideFences(sample, s.LowerFence, s.UpperFence)

	return s, nil
}

// String renders the summary as aligned "name: value" lines.
func (s *Summary) String() string {
	var b strings.Builder
	line := func(name string, value any) {
		fmt.Fprintf(&b, "%-24s %v\n", name+":", value)
	}

	line("Count", s.N)
	line("Mean", s.Mean)
	line("Median", s.Median)
	if s.HasUniqueMode {
		line("Mode", s.Mode)
	} else {
		line("Mode", "no unique mode")
	}
	line("Range", s.Range)
	line(fmt.Sprintf("Variance (ddof=%d)", s.DDOF), s.Variance)
	line(fmt.Sprintf("Std deviation (ddof=%d)", s.DDOF), s.StdDev)
	line("Coefficient of variation", fmt.Sprintf("%g%%", s.CV))
	line("Skewness", s.Skewness)
	line("Kurtosis (excess)", s.Kurtosis)
	line("Q1", s.Q1)
	line("Q2", s.Q2)
	line("Q3", s.Q3)
	line("IQR", s.IQR)
	line("Fences", fmt.Sprintf("[%g, %g]", s.LowerFence, s.UpperFence))
	line("Outliers", s.Outliers)
	return b.String()
}
