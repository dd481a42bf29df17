package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/scistat/pkg/errors"
)

func TestPearsonCorrelation(t *testing.T) {
	tests := []struct {
		name string
		xs   []float64
		ys   []float64
		want float64
	}{
		{
			name: "study hours and scores",
			xs:   []float64{1, 3, 5, 7, 8, 9, 10, 15},
			ys:   []float64{10, 20, 30, 40, 50, 60, 70, 80},
			want: 0.974894414261588,
		},
		{
			name: "advertising and sales",
			xs:   []float64{10, 20, 30, 40, 50},
			ys:   []float64{12, 25, 35, 40, 60},
			want: 0.982185512432897,
		},
		{
			name: "perfect negative",
			xs:   []float64{1, 2, 3},
			ys:   []float64{6, 4, 2},
			want: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PearsonCorrelation(tt.xs, tt.ys)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, tolerance)

			// 対称性
			back, err := PearsonCorrelation(tt.ys, tt.xs)
			require.NoError(t, err)
			assert.InDelta(t, got, back, tolerance)
		})
	}
}

func TestPearsonCorrelationFailures(t *testing.T) {
	_, err := PearsonCorrelation(nil, []float64{1})
	assert.True(t, errors.Is(err, errors.ErrEmptyData))

	_, err = PearsonCorrelation([]float64{1, 2, 3}, []float64{1, 2})
	var dimErr *errors.DimensionError
	require.True(t, errors.As(err, &dimErr))
	assert.Equal(t, 3, dimErr.Expected)
	assert.Equal(t, 2, dimErr.Got)

	_, err = PearsonCorrelation([]float64{5, 5, 5}, []float64{1, 2, 3})
	assert.True(t, errors.Is(err, errors.ErrDivisionByZero))
}

func TestCovariance(t *testing.T) {
	xs := []float64{1, 3, 5, 7, 8, 9, 10, 15}
	ys := []float64{10, 20, 30, 40, 50, 60, 70, 80}

	got, err := Covariance(xs, ys, 1)
	require.NoError(t, err)
	assert.InDelta(t, 104.28571428571429, got, tolerance)

	// 自己共分散は分散に一致する
	cov, err := Covariance(scores, scores, 1)
	require.NoError(t, err)
	variance, err := Variance(scores, 1)
	require.NoError(t, err)
	assert.InDelta(t, variance, cov, tolerance)

	_, err = Covariance([]float64{1}, []float64{2}, 1)
	assert.True(t, errors.Is(err, errors.ErrInsufficientData))
}
