// Package rns_test covers policies, neighborhoods and full searches.
package rns_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/permsearch/distance"
	"github.com/katalvlaran/permsearch/move"
	"github.com/katalvlaran/permsearch/objective"
)

const (
	// seedDet is the deterministic run seed.
	seedDet = int64(5)

	// nSmall is the default instance size for run tests.
	nSmall = 14
)

// randomMatrix returns an n×n instance with weights in [1..100].
func randomMatrix(t testing.TB, n int, sym bool) distance.Model {
	t.Helper()
	r := rand.New(rand.NewSource(int64(n)))
	rows := make([][]int64, n)
	for i := range rows {
		rows[i] = make([]int64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			rows[i][j] = int64(1 + r.Intn(100))
			rows[j][i] = rows[i][j]
			if !sym {
				rows[j][i] = int64(1 + r.Intn(100))
			}
		}
	}
	m, err := distance.NewMatrix(rows)
	require.NoError(t, err)

	return m
}

func oracle(t testing.TB, m distance.Model, opts ...objective.Option) *objective.Function {
	t.Helper()
	f, err := objective.New(m, append([]objective.Option{objective.WithSeed(seedDet)}, opts...)...)
	require.NoError(t, err)

	return f
}

// collect drains a neighborhood into a slice.
func collect(nb interface {
	Moves(int, bool, *rand.Rand, func(move.Move) bool)
}, n int, ordered bool, r *rand.Rand) []move.Move {
	var out []move.Move
	nb.Moves(n, ordered, r, func(mv move.Move) bool {
		out = append(out, mv)
		return true
	})

	return out
}

// isLocalOptimum reports whether no move of op improves p under m.
func isLocalOptimum(t testing.TB, m distance.Model, opName string, p []int) bool {
	t.Helper()
	op, err := move.New(opName)
	require.NoError(t, err)
	require.NoError(t, op.BeginRun(m))
	defer op.EndRun()

	for i := range p {
		for j := range p {
			if i != j && op.Delta(p, move.Move{Pos1: i, Pos2: j}) < 0 {
				return false
			}
		}
	}

	return true
}
