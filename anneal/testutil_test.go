// Package anneal_test exercises the acceptance rule, the schedule and full
// annealing runs against the reference oracle.
package anneal_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/permsearch/distance"
	"github.com/katalvlaran/permsearch/objective"
)

const (
	// seedDet is the deterministic run seed.
	seedDet = int64(11)

	// nSmall is the default instance size for run tests.
	nSmall = 12
)

// scatter places n cities uniformly at random in a 1000×1000 square.
func scatter(t testing.TB, n int) distance.Model {
	t.Helper()
	pts := make([][2]float64, n)
	r := rand.New(rand.NewSource(1))
	for i := range pts {
		pts[i] = [2]float64{1000 * r.Float64(), 1000 * r.Float64()}
	}
	m, err := distance.NewEuclidean(pts, distance.RoundNearest)
	require.NoError(t, err)

	return m
}

// oracle builds a reference Function with the given options and the run seed.
func oracle(t testing.TB, m distance.Model, opts ...objective.Option) *objective.Function {
	t.Helper()
	f, err := objective.New(m, append([]objective.Option{objective.WithSeed(seedDet)}, opts...)...)
	require.NoError(t, err)

	return f
}
