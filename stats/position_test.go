package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/scistat/pkg/errors"
)

func TestZScores(t *testing.T) {
	got, err := ZScores(scores, 1)
	require.NoError(t, err)

	want := []float64{
		-1.1778904310855767,
		-0.914511204258988,
		-0.0804769859747909,
		0.0951091652429348,
		0.49017800548281765,
		1.5875914505936035,
	}
	require.Len(t, got, len(want))
	for i := range want {
		assert.InDelta(t, want[i], got[i], tolerance, "index %d", i)
	}

	for _, constant := range [][]float64{{2, 2, 2}, {0.1, 0.1, 0.1}, {1e-7, 1e-7, 1e-7, 1e-7}} {
		_, err = ZScores(constant, 1)
		assert.True(t, errors.Is(err, errors.ErrDivisionByZero), "sample %v", constant)
	}

	_, err = ZScores([]float64{2}, 1)
	assert.True(t, errors.Is(err, errors.ErrInsufficientData))
}

func TestZScoresLargeSampleKeepsOrder(t *testing.T) {
	// 並列化の閾値を超える標本
	sample := make([]float64, 5000)
	for i := range sample {
		sample[i] = float64(i % 100)
	}

	got, err := ZScores(sample, 0)
	require.NoError(t, err)

	mean, _ := Mean(sample)
	sd, _ := StdDev(sample, 0)
	for _, i := range []int{0, 1, 99, 2500, 4999} {
		assert.InDelta(t, (sample[i]-mean)/sd, got[i], tolerance)
	}
}

func TestPercentileRank(t *testing.T) {
	tests := []struct {
		x    float64
		want float64
	}{
		{4, 0},
		{29, 100.0 * 2 / 6},
		{30, 50},
		{67, 100.0 * 5 / 6},
		{100, 100},
	}
	for _, tt := range tests {
		got, err := PercentileRank(scores, tt.x)
		require.NoError(t, err)
		assert.InDelta(t, tt.want, got, tolerance, "x=%v", tt.x)
	}

	// 同値は数えない
	got, err := PercentileRank([]float64{1, 2, 2, 2, 3}, 2)
	require.NoError(t, err)
	assert.InDelta(t, 20, got, tolerance)

	_, err = PercentileRank(nil, 1)
	assert.True(t, errors.Is(err, errors.ErrEmptyData))
}

func TestPercentileRanks(t *testing.T) {
	got, err := PercentileRanks([]float64{33, 4, 67, 10, 42, 29})
	require.NoError(t, err)

	want := []float64{50, 0, 100.0 * 5 / 6, 100.0 / 6, 100.0 * 4 / 6, 100.0 * 2 / 6}
	require.Len(t, got, len(want))
	for i := range want {
		assert.InDelta(t, want[i], got[i], tolerance)
	}

	got, err = PercentileRanks([]float64{5, 5, 1})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{100.0 / 3, 100.0 / 3, 0}, got, tolerance)
}

func TestPercentileRanksAgreeWithPercentileRankOnNaN(t *testing.T) {
	sample := []float64{3, math.NaN(), 1, 2}
	got, err := PercentileRanks(sample)
	require.NoError(t, err)

	for i, v := range sample {
		one, err := PercentileRank(sample, v)
		require.NoError(t, err)
		assert.Equal(t, one, got[i], "index %d", i)
	}
	assert.Equal(t, []float64{50, 0, 0, 25}, got)
}

func TestPercentile(t *testing.T) {
	tests := []struct {
		p    float64
		want float64
	}{
		{0, 4},
		{25, 14.75},
		{50, 31},
		{75, 39.75},
		{90, 54.5},
		{100, 67},
	}
	for _, tt := range tests {
		got, err := Percentile(scores, tt.p)
		require.NoError(t, err)
		assert.InDelta(t, tt.want, got, tolerance, "p=%v", tt.p)
	}

	got, err := Percentile([]float64{42}, 37)
	require.NoError(t, err)
	assert.Equal(t, 42.0, got)
}

func TestPercentileRejectsOutOfRange(t *testing.T) {
	for _, p := range []float64{-0.1, 100.5} {
		_, err := Percentile(scores, p)
		var valErr *errors.ValidationError
		require.True(t, errors.As(err, &valErr), "p=%v", p)
		assert.Equal(t, "p", valErr.ParamName)
	}

	_, err := Percentile(nil, 50)
	assert.True(t, errors.Is(err, errors.ErrEmptyData))
}

func TestQuartilesAndIQR(t *testing.T) {
	q1, q2, q3, err := Quartiles(scores)
	require.NoError(t, err)
	assert.InDelta(t, 14.75, q1, tolerance)
	assert.InDelta(t, 31, q2, tolerance)
	assert.InDelta(t, 39.75, q3, tolerance)

	iqr, err := InterquartileRange(scores)
	require.NoError(t, err)
	assert.InDelta(t, 25, iqr, tolerance)

	_, _, _, err = Quartiles(nil)
	assert.True(t, errors.Is(err, errors.ErrEmptyData))
}

func TestTukeyFences(t *testing.T) {
	lower, upper, err := TukeyFences(scores, 1.5)
	require.NoError(t, err)
	assert.InDelta(t, -22.75, lower, tolerance)
	assert.InDelta(t, 77.25, upper, tolerance)

	_, _, err = TukeyFences(scores, -1)
	var valErr *errors.ValidationError
	assert.True(t, errors.As(err, &valErr))
}

func TestOutliers(t *testing.T) {
	got, err := Outliers(scores)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	sample := []float64{10, 12, 11, 13, 12, 11, 95, -40}
	got, err = Outliers(sample)
	require.NoError(t, err)
	assert.Equal(t, []float64{95, -40}, got)

	// k=0 なら四分位範囲の外側はすべて外れ値
	got, err = OutliersWithFence(scores, 0)
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 10, 42, 67}, got)

	_, err = Outliers(nil)
	assert.True(t, errors.Is(err, errors.ErrEmptyData))
}
