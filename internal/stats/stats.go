// Package stats provides the summary statistics used by the aggregate
// tables: per-row means, interpolated medians, and sample deviations
// over samples that may be empty.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Mean returns the unweighted mean of xs, or NaN for an empty sample.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	return stat.Mean(xs, nil)
}

// Median returns the midpoint median of xs, or NaN for an empty
// sample: the middle element for odd sizes, the mean of the two middle
// elements for even sizes. xs is not modified.
func Median(xs []float64) float64 {
	n := len(xs)
	if n == 0 {
		return math.NaN()
	}
	sorted := make([]float64, n)
	copy(sorted, xs)
	sort.Float64s(sorted)

	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// StdDev returns the sample standard deviation of xs. Samples with
// fewer than two observations have no deviation and return NaN.
func StdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return math.NaN()
	}
	return stat.StdDev(xs, nil)
}

// Round rounds v half away from zero to the given number of decimal
// places. NaN passes through.
func Round(v float64, places int) float64 {
	if math.IsNaN(v) {
		return v
	}
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}

// Round2 rounds to two decimal places, the precision of every table
// aggregate.
func Round2(v float64) float64 { return Round(v, 2) }
