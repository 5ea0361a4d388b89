package distance

import "github.com/katalvlaran/permsearch/tour"

// TourCost validates p against m and returns its cyclic cost
//
//	d(p[0],p[1]) + d(p[1],p[2]) + … + d(p[n-1],p[0]).
//
// Contract:
//   - p must be a permutation of {0..m.N()-1}; otherwise tour.ErrNotPermutation.
//   - a single city tour costs 0.
func TourCost(m Model, p []int) (int64, error) {
	if m == nil {
		return 0, ErrEmptyInstance
	}
	if err := tour.ValidatePermutation(p, m.N()); err != nil {
		return 0, err
	}

	return CycleCost(m, p), nil
}

// CycleCost sums the cyclic edges of p without validating it. It is the
// unchecked core of TourCost, used where p is known to be a permutation.
func CycleCost(m Model, p []int) int64 {
	var (
		n   = len(p)
		sum int64
		i   int
	)
	if n < 2 {
		return 0
	}
	for i = 0; i < n-1; i++ {
		sum += m.Dist(p[i], p[i+1])
	}
	sum += m.Dist(p[n-1], p[0])

	return sum
}
