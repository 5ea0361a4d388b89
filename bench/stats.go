package bench

import (
	"math"
	"sort"
)

// Stats summarizes a sample of run results.
type Stats struct {
	N      int
	Min    float64
	Max    float64
	Mean   float64
	Median float64
	// Std is the sample standard deviation (n−1); 0 for fewer than two values.
	Std float64
}

// StableSum adds xs with Kahan–Babuška (Neumaier) compensation, so long runs
// of large tour costs do not lose their low-order digits.
//
// Complexity: O(n).
func StableSum(xs []float64) float64 {
	var (
		sum, comp, t float64
	)
	for _, x := range xs {
		t = sum + x
		if math.Abs(sum) >= math.Abs(x) {
			comp += (sum - t) + x
		} else {
			comp += (x - t) + sum
		}
		sum = t
	}

	return sum + comp
}

// Summarize computes Stats over xs. An empty sample yields the zero Stats.
//
// Complexity: O(n log n) for the median.
func Summarize(xs []float64) Stats {
	n := len(xs)
	if n == 0 {
		return Stats{}
	}

	sorted := make([]float64, n)
	copy(sorted, xs)
	sort.Float64s(sorted)

	s := Stats{N: n, Min: sorted[0], Max: sorted[n-1]}
	s.Mean = StableSum(sorted) / float64(n)
	if n%2 == 1 {
		s.Median = sorted[n/2]
	} else {
		s.Median = (sorted[n/2-1] + sorted[n/2]) / 2
	}
	if n < 2 {
		return s
	}

	dev := make([]float64, n)
	for i, x := range sorted {
		d := x - s.Mean
		dev[i] = d * d
	}
	s.Std = math.Sqrt(StableSum(dev) / float64(n-1))

	return s
}

// SummarizeInt is Summarize over integer costs.
func SummarizeInt(xs []int64) Stats {
	fs := make([]float64, len(xs))
	for i, x := range xs {
		fs[i] = float64(x)
	}

	return Summarize(fs)
}
