package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/scistat/pkg/errors"
	"github.com/YuminosukeSato/scistat/pkg/log"
)

func TestDescribe(t *testing.T) {
	logger, _ := log.NewTestLogger(log.LevelDebug)

	s, err := Describe(scores, WithLogger(logger))
	require.NoError(t, err)

	assert.Equal(t, 6, s.N)
	assert.Equal(t, 4.0, s.Min)
	assert.Equal(t, 67.0, s.Max)
	assert.Equal(t, 63.0, s.Range)
	assert.InDelta(t, 30.833333333333332, s.Mean, tolerance)
	assert.InDelta(t, 31, s.Median, tolerance)
	assert.False(t, s.HasUniqueMode)
	assert.Equal(t, 1, s.DDOF)
	assert.InDelta(t, 518.9666666666667, s.Variance, tolerance)
	assert.InDelta(t, 22.7808399025731, s.StdDev, tolerance)
	assert.InDelta(t, 73.88380508942628, s.CV, tolerance)
	assert.InDelta(t, 0.3769396829703719, s.Skewness, tolerance)
	assert.InDelta(t, -0.8316224690288134, s.Kurtosis, tolerance)
	assert.InDelta(t, 14.75, s.Q1, tolerance)
	assert.InDelta(t, 31, s.Q2, tolerance)
	assert.InDelta(t, 39.75, s.Q3, tolerance)
	assert.InDelta(t, 25, s.IQR, tolerance)
	assert.InDelta(t, -22.75, s.LowerFence, tolerance)
	assert.InDelta(t, 77.25, s.UpperFence, tolerance)
	assert.Empty(t, s.Outliers)

	assert.True(t, logger.ContainsMessage("summary computed"))
	assert.True(t, logger.ContainsField(log.SamplesKey, 6.0))
}

func TestDescribeOptions(t *testing.T) {
	s, err := Describe([]float64{1, 2, 2, 3, 50}, WithDDOF(0), WithFenceMultiplier(3))
	require.NoError(t, err)

	assert.True(t, s.HasUniqueMode)
	assert.Equal(t, 2.0, s.Mode)
	assert.Equal(t, 0, s.DDOF)
	assert.Equal(t, 3.0, s.FenceMultiplier)

	population, err := Variance([]float64{1, 2, 2, 3, 50}, 0)
	require.NoError(t, err)
	assert.InDelta(t, population, s.Variance, tolerance)
	assert.Equal(t, []float64{50}, s.Outliers)
}

func TestDescribeFailsWhole(t *testing.T) {
	logger, _ := log.NewTestLogger(log.LevelDebug)

	tests := []struct {
		name    string
		sample  []float64
		wantErr error
	}{
		{name: "empty", sample: nil, wantErr: errors.ErrEmptyData},
		{name: "single value with sample variance", sample: []float64{3}, wantErr: errors.ErrInsufficientData},
		{name: "zero mean", sample: []float64{-1, 0, 1}, wantErr: errors.ErrDivisionByZero},
		{name: "constant sample", sample: []float64{7, 7, 7, 7}, wantErr: errors.ErrDivisionByZero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Describe(tt.sample, WithLogger(logger))
			assert.Nil(t, s)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
	assert.True(t, logger.ContainsMessage("describe failed"))
	assert.True(t, logger.ContainsErrorCode(log.ErrorDivisionByZero))
	assert.True(t, logger.ContainsErrorCode(log.ErrorInsufficientData))
}

func TestDescribeValidatesOptions(t *testing.T) {
	_, err := Describe(scores, WithDDOF(-1))
	var valErr *errors.ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "ddof", valErr.ParamName)

	_, err = Describe(scores, WithFenceMultiplier(-0.5))
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "fence_multiplier", valErr.ParamName)
}

func TestSummaryString(t *testing.T) {
	s, err := Describe(scores)
	require.NoError(t, err)

	out := s.String()
	assert.Contains(t, out, "Count:")
	assert.Contains(t, out, "no unique mode")
	assert.Contains(t, out, "Variance (ddof=1):")
	assert.Contains(t, out, "Outliers:")
}
