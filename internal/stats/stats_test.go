package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 60000, Mean([]float64{50000, 70000}), 0.001)
	assert.InDelta(t, 2, Mean([]float64{1, 2, 3}), 0.001)
	assert.True(t, math.IsNaN(Mean(nil)))
}

func TestMedian(t *testing.T) {
	t.Parallel()

	t.Run("odd sample", func(t *testing.T) {
		t.Parallel()
		assert.InDelta(t, 2, Median([]float64{3, 1, 2}), 0.001)
		assert.InDelta(t, 2, Median([]float64{1, 2, 3}), 0.001, "middle element, not the empirical-CDF quantile")
	})

	t.Run("even sample interpolates", func(t *testing.T) {
		t.Parallel()
		assert.InDelta(t, 2.5, Median([]float64{4, 1, 3, 2}), 0.001)
		assert.InDelta(t, 60000, Median([]float64{50000, 70000}), 0.001, "midpoint of the two middle values")
	})

	t.Run("single value", func(t *testing.T) {
		t.Parallel()
		assert.InDelta(t, 42, Median([]float64{42}), 0.001)
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		assert.True(t, math.IsNaN(Median(nil)))
	})

	t.Run("input left unsorted", func(t *testing.T) {
		t.Parallel()
		xs := []float64{3, 1, 2}
		Median(xs)
		assert.Equal(t, []float64{3, 1, 2}, xs)
	})
}

func TestStdDev(t *testing.T) {
	t.Parallel()

	// Sample deviation: {2,4,4,4,5,5,7,9} has variance 32/7.
	got := StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	assert.InDelta(t, math.Sqrt(32.0/7.0), got, 0.0001)

	assert.True(t, math.IsNaN(StdDev([]float64{5})), "single observation has no deviation")
	assert.True(t, math.IsNaN(StdDev(nil)))
}

func TestRound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		v      float64
		places int
		want   float64
	}{
		{"two places down", 1.234, 2, 1.23},
		{"two places up", 1.235, 2, 1.24},
		{"half away from zero", 0.125, 2, 0.13},
		{"negative half away", -0.125, 2, -0.13},
		{"zero places", 93123.6, 0, 93124},
		{"one place", 12.34, 1, 12.3},
		{"already exact", 60000, 2, 60000},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, Round(tt.v, tt.places), 1e-9)
		})
	}

	assert.True(t, math.IsNaN(Round(math.NaN(), 2)))
	assert.InDelta(t, 60000, Round2(60000.004), 1e-9)
}
