// Package move_test shares small fixtures across the operator tests.
package move_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/permsearch/distance"
)

const (
	// seedDet is the deterministic seed for random instances.
	seedDet = int64(7)

	// maxW bounds random arc weights.
	maxW = 100
)

// randomMatrix builds an n×n instance with weights in [1..maxW]. When sym is
// false the two directions of every pair are drawn independently.
func randomMatrix(t testing.TB, n int, sym bool, seed int64) *distance.Matrix {
	t.Helper()
	r := rand.New(rand.NewSource(seed))
	rows := make([][]int64, n)
	var i, j int
	for i = 0; i < n; i++ {
		rows[i] = make([]int64, n)
	}
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			rows[i][j] = int64(1 + r.Intn(maxW))
			if sym {
				rows[j][i] = rows[i][j]
			} else {
				rows[j][i] = int64(1 + r.Intn(maxW))
			}
		}
	}
	m, err := distance.NewMatrix(rows)
	require.NoError(t, err)

	return m
}

// allMoves enumerates every move with distinct positions for length n.
func allMoves(n int) [][2]int {
	out := make([][2]int, 0, n*(n-1))
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if i != j {
				out = append(out, [2]int{i, j})
			}
		}
	}

	return out
}

// isPermutation reports whether p holds each of 0..n-1 exactly once.
func isPermutation(p []int) bool {
	seen := make([]bool, len(p))
	for _, v := range p {
		if v < 0 || v >= len(p) || seen[v] {
			return false
		}
		seen[v] = true
	}

	return true
}
