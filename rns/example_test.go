package rns_test

import (
	"fmt"

	"github.com/katalvlaran/permsearch/distance"
	"github.com/katalvlaran/permsearch/objective"
	"github.com/katalvlaran/permsearch/rns"
)

// ExampleSelect picks from the deltas of one scan.
func ExampleSelect() {
	deltas := []int64{3, -4, -1}
	i, ok := rns.Select(rns.BestImprovement, deltas)
	fmt.Println(i, deltas[i], ok)

	i, ok = rns.Select(rns.FirstImprovement, []int64{3, -1, -4})
	fmt.Println(i, ok)
	// Output:
	// 1 -4 true
	// 1 true
}

// ExampleSearcher_Run descends with best-improvement 2-opt until no move
// improves. On points in convex position that is the hull tour.
func ExampleSearcher_Run() {
	m, _ := distance.NewEuclidean([][2]float64{
		{1000, 0}, {707.1068, 707.1068}, {0, 1000}, {-707.1068, 707.1068},
		{-1000, 0}, {-707.1068, -707.1068}, {0, -1000}, {707.1068, -707.1068},
	}, distance.RoundNearest)
	f, _ := objective.New(m, objective.WithSeed(3))

	s, _ := rns.New(rns.DefaultConfig())
	res, _ := s.Run(f)
	fmt.Println(res.Stop, res.Final.Cost)
	// Output:
	// local_optimum 6120
}
