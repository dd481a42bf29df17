package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/scistat/pkg/errors"
)

// scores is the sample used throughout the original statistics walkthrough.
var scores = []float64{4, 10, 29, 33, 42, 67}

const tolerance = 1e-9

func TestMean(t *testing.T) {
	got, err := Mean(scores)
	require.NoError(t, err)
	assert.InDelta(t, 185.0/6.0, got, tolerance)

	_, err = Mean(nil)
	assert.True(t, errors.Is(err, errors.ErrEmptyData))
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name   string
		sample []float64
		want   float64
	}{
		{"even count averages the middle pair", scores, 31},
		{"odd count takes the middle", []float64{14, 18, 15, 16, 22, 19, 24}, 18},
		{"single value", []float64{7}, 7},
		{"unsorted with negatives", []float64{3, -1, 2, -5}, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Median(tt.sample)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, tolerance)
		})
	}

	_, err := Median([]float64{})
	var emptyErr *errors.EmptyInputError
	assert.True(t, errors.As(err, &emptyErr))
}

func TestMedianNearFloat64Limit(t *testing.T) {
	sample := []float64{1.5e308, 1e308}
	med, err := Median(sample)
	require.NoError(t, err)
	assert.False(t, math.IsInf(med, 0))
	assert.GreaterOrEqual(t, med, 1e308)
	assert.LessOrEqual(t, med, 1.5e308)

	p50, err := Percentile(sample, 50)
	require.NoError(t, err)
	assert.Equal(t, p50, med)
}

func TestMedianDoesNotMutateInput(t *testing.T) {
	sample := []float64{5, 1, 4, 2, 3}
	_, err := Median(sample)
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 1, 4, 2, 3}, sample)
}

func TestMode(t *testing.T) {
	got, err := Mode([]float64{14, 18, 15, 18, 22})
	require.NoError(t, err)
	assert.Equal(t, 18.0, got)

	tests := []struct {
		name       string
		sample     []float64
		candidates []float64
		frequency  int
	}{
		{"two-way tie", []float64{1, 1, 2, 2, 3}, []float64{1, 2}, 2},
		{"all distinct", scores, scores, 1},
		{"single observation", []float64{9}, []float64{9}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Mode(tt.sample)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrNoUniqueMode))

			var modeErr *errors.AmbiguousModeError
			require.True(t, errors.As(err, &modeErr))
			assert.Equal(t, tt.candidates, modeErr.Candidates)
			assert.Equal(t, tt.frequency, modeErr.Frequency)
		})
	}
}

func TestRangeMinMax(t *testing.T) {
	r, err := Range(scores)
	require.NoError(t, err)
	assert.Equal(t, 63.0, r)

	lo, err := Min(scores)
	require.NoError(t, err)
	assert.Equal(t, 4.0, lo)

	hi, err := Max(scores)
	require.NoError(t, err)
	assert.Equal(t, 67.0, hi)

	for _, fn := range []func([]float64) (float64, error){Range, Min, Max} {
		_, err := fn(nil)
		assert.True(t, errors.Is(err, errors.ErrEmptyData))
	}
}

func TestVariance(t *testing.T) {
	tests := []struct {
		name    string
		sample  []float64
		ddof    int
		want    float64
		wantErr error
	}{
		{name: "sample variance", sample: scores, ddof: 1, want: 518.9666666666667},
		{name: "population variance", sample: scores, ddof: 0, want: 432.47222222222223},
		{name: "single value population", sample: []float64{3}, ddof: 0, want: 0},
		{name: "single value sample", sample: []float64{3}, ddof: 1, wantErr: errors.ErrInsufficientData},
		{name: "ddof equal to n", sample: []float64{1, 2}, ddof: 2, wantErr: errors.ErrInsufficientData},
		{name: "empty", sample: nil, ddof: 1, wantErr: errors.ErrEmptyData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Variance(tt.sample, tt.ddof)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, tolerance)
		})
	}

	_, err := Variance(scores, -1)
	var valErr *errors.ValidationError
	assert.True(t, errors.As(err, &valErr))
}

func TestStdDev(t *testing.T) {
	got, err := StdDev(scores, 1)
	require.NoError(t, err)
	assert.InDelta(t, 22.7808399025731, got, tolerance)

	var insufficient *errors.InsufficientDataError
	_, err = StdDev([]float64{1}, 1)
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, 2, insufficient.Required)
	assert.Equal(t, 1, insufficient.Got)
}

func TestConstantSampleHasExactMeanAndZeroSpread(t *testing.T) {
	sample := []float64{0.1, 0.1, 0.1}

	mean, err := Mean(sample)
	require.NoError(t, err)
	assert.Equal(t, 0.1, mean)

	for _, ddof := range []int{0, 1} {
		v, err := Variance(sample, ddof)
		require.NoError(t, err)
		assert.Zero(t, v)
	}
}

func TestStdDevPropagatesNaN(t *testing.T) {
	got, err := StdDev([]float64{1, math.NaN(), 3}, 1)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(got))
}

func TestCoefficientOfVariation(t *testing.T) {
	got, err := CoefficientOfVariation(scores, 1)
	require.NoError(t, err)
	assert.InDelta(t, 73.88380508942628, got, tolerance)

	_, err = CoefficientOfVariation([]float64{-2, -1, 0, 1, 2}, 1)
	var divErr *errors.DivisionByZeroError
	require.True(t, errors.As(err, &divErr))
	assert.Equal(t, "mean", divErr.Denominator)
}

func TestSkewnessAndKurtosis(t *testing.T) {
	skew, err := Skewness(scores)
	require.NoError(t, err)
	assert.InDelta(t, 0.3769396829703719, skew, tolerance)

	kurt, err := Kurtosis(scores)
	require.NoError(t, err)
	assert.InDelta(t, -0.8316224690288134, kurt, tolerance)

	// 対称な標本の歪度は0
	skew, err = Skewness([]float64{1, 2, 3, 4, 5})
	require.NoError(t, err)
	assert.InDelta(t, 0, skew, tolerance)

	// 一様な5点の超過尖度は -1.3
	kurt, err = Kurtosis([]float64{1, 2, 3, 4, 5})
	require.NoError(t, err)
	assert.InDelta(t, -1.3, kurt, tolerance)
}

func TestSkewnessAndKurtosisFailures(t *testing.T) {
	for name, fn := range map[string]func([]float64) (float64, error){
		"Skewness": Skewness,
		"Kurtosis": Kurtosis,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := fn(nil)
			assert.True(t, errors.Is(err, errors.ErrEmptyData))

			_, err = fn([]float64{1})
			assert.True(t, errors.Is(err, errors.ErrInsufficientData))

			for _, constant := range [][]float64{{4, 4, 4}, {0.1, 0.1, 0.1}, {0.7, 0.7, 0.7, 0.7, 0.7}} {
				_, err = fn(constant)
				assert.True(t, errors.Is(err, errors.ErrDivisionByZero), "sample %v", constant)
			}
		})
	}
}

func TestSmallSampleWarning(t *testing.T) {
	var warnings []error
	errors.SetZerologWarnFunc(func(w error) { warnings = append(warnings, w) })
	defer errors.SetZerologWarnFunc(nil)

	_, err := Skewness([]float64{1, 3})
	require.NoError(t, err)
	_, err = Kurtosis([]float64{1, 3, 8, 9})
	require.NoError(t, err)

	require.Len(t, warnings, 1)
	var w *errors.SmallSampleWarning
	require.True(t, errors.As(warnings[0], &w))
	assert.Equal(t, "Skewness", w.Statistic)
}
