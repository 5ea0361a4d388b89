package rns_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/permsearch/distance"
	"github.com/katalvlaran/permsearch/move"
	"github.com/katalvlaran/permsearch/objective"
	"github.com/katalvlaran/permsearch/rng"
	"github.com/katalvlaran/permsearch/rns"
)

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, rns.DefaultConfig().Validate())

	cases := []struct {
		name string
		mut  func(*rns.Config)
	}{
		{"unknown policy", func(c *rns.Config) { c.Policy = rns.Policy(7) }},
		{"probability above one", func(c *rns.Config) { c.FirstImprovementProbability = 1.5 }},
		{"negative idle", func(c *rns.Config) { c.MaxIdleIterations = -1 }},
		{"unknown neighborhood", func(c *rns.Config) { c.Neighborhood = "ring" }},
		{"empty sample", func(c *rns.Config) { c.Neighborhood = rns.NeighborhoodSample; c.SampleSize = 0 }},
		{"unknown operator", func(c *rns.Config) { c.Operator = "3opt" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := rns.DefaultConfig()
			tc.mut(&cfg)
			_, err := rns.New(cfg)
			assert.ErrorIs(t, err, rns.ErrConfig)
		})
	}
}

func TestRun_ExhaustiveReachesLocalOptimum(t *testing.T) {
	policies := []rns.Policy{rns.BestImprovement, rns.FirstImprovement, rns.DecideRandomlyPerIteration}
	for _, name := range move.Names() {
		for _, pol := range policies {
			for _, sym := range []bool{true, false} {
				name, pol, sym := name, pol, sym
				t.Run(fmt.Sprintf("%s/%s/sym=%v", name, pol, sym), func(t *testing.T) {
					cfg := rns.DefaultConfig()
					cfg.Operator = name
					cfg.Policy = pol
					s, err := rns.New(cfg)
					require.NoError(t, err)

					m := randomMatrix(t, nSmall, sym)
					f := oracle(t, m)
					res, err := s.Run(f)
					require.NoError(t, err)

					assert.Equal(t, objective.StopLocalOptimum, res.Stop)
					assert.True(t, isLocalOptimum(t, m, name, res.Final.Perm))
					full, err := distance.TourCost(m, res.Final.Perm)
					require.NoError(t, err)
					assert.Equal(t, full, res.Final.Cost)
					assert.Equal(t, res.Improvements+1, f.FEs())
					assert.Equal(t, res.Improvements+1, res.Iterations, "the last iteration proves the optimum")

					_, best, _ := f.Best()
					assert.Equal(t, res.Final.Cost, best, "descent never worsens")
				})
			}
		}
	}
}

func TestRun_CostsStrictlyDecrease(t *testing.T) {
	var costs []int64
	s, err := rns.New(rns.DefaultConfig())
	require.NoError(t, err)
	f := oracle(t, randomMatrix(t, nSmall, true), objective.WithTrace(func(_ int64, _ []int, c int64) {
		costs = append(costs, c)
	}))
	_, err = s.Run(f)
	require.NoError(t, err)

	require.Greater(t, len(costs), 1)
	for i := 1; i < len(costs); i++ {
		assert.Less(t, costs[i], costs[i-1])
	}
}

func TestRun_RespectsBudget(t *testing.T) {
	cfg := rns.DefaultConfig()
	cfg.Neighborhood = rns.NeighborhoodPair
	s, err := rns.New(cfg)
	require.NoError(t, err)

	f := oracle(t, randomMatrix(t, 40, true), objective.WithMaxFEs(5))
	res, err := s.Run(f)
	require.NoError(t, err)
	assert.Equal(t, objective.StopBudgetExhausted, res.Stop)
	assert.Equal(t, int64(5), f.FEs())
}

func TestRun_Stalls(t *testing.T) {
	cfg := rns.DefaultConfig()
	cfg.Neighborhood = rns.NeighborhoodSample
	cfg.SampleSize = 4
	cfg.MaxIdleIterations = 30
	s, err := rns.New(cfg)
	require.NoError(t, err)

	res, err := s.Run(oracle(t, randomMatrix(t, nSmall, true)))
	require.NoError(t, err)
	assert.Equal(t, objective.StopStalled, res.Stop)
	assert.GreaterOrEqual(t, res.Iterations, int64(30))
	assert.GreaterOrEqual(t, res.Deltas, 4*res.Iterations-3, "only the final improving scans may short-circuit")
}

func TestRun_FirstScansLessThanBest(t *testing.T) {
	run := func(p rns.Policy) *rns.Result {
		cfg := rns.DefaultConfig()
		cfg.Policy = p
		cfg.Shuffle = false
		s, err := rns.New(cfg)
		require.NoError(t, err)
		res, err := s.Run(oracle(t, randomMatrix(t, 30, true), objective.WithMaxFEs(3)))
		require.NoError(t, err)
		return res
	}

	first, best := run(rns.FirstImprovement), run(rns.BestImprovement)
	assert.Equal(t, first.Iterations, best.Iterations)
	assert.Less(t, first.Deltas, best.Deltas)
}

func TestRun_Reproducible(t *testing.T) {
	cfg := rns.DefaultConfig()
	cfg.Policy = rns.DecideRandomlyPerIteration
	cfg.Operator = move.NameSwap
	s, err := rns.New(cfg)
	require.NoError(t, err)

	m := randomMatrix(t, nSmall, false)
	a, err := s.Run(oracle(t, m))
	require.NoError(t, err)
	b, err := s.Run(oracle(t, m))
	require.NoError(t, err)

	assert.Equal(t, a.Final.Perm, b.Final.Perm)
	assert.Equal(t, a.Deltas, b.Deltas)
}

func TestRun_WithNeighborhood(t *testing.T) {
	s, err := rns.New(rns.DefaultConfig(), rns.WithNeighborhood(rns.RandomSample{K: 2}))
	require.NoError(t, err)

	res, err := s.Run(oracle(t, randomMatrix(t, nSmall, true), objective.WithMaxFEs(4)))
	require.NoError(t, err)
	assert.Equal(t, objective.StopBudgetExhausted, res.Stop)
}

func TestRun_SingleCity(t *testing.T) {
	s, err := rns.New(rns.DefaultConfig())
	require.NoError(t, err)
	one, err := distance.NewMatrix([][]int64{{0}})
	require.NoError(t, err)

	res, err := s.Run(oracle(t, one))
	require.NoError(t, err)
	assert.Equal(t, objective.StopLocalOptimum, res.Stop)
	assert.Zero(t, res.Iterations)
}

// fixedMoves proposes the same moves in the same order every iteration.
type fixedMoves []move.Move

func (f fixedMoves) Name() string   { return "fixed" }
func (f fixedMoves) Complete() bool { return false }
func (f fixedMoves) Moves(_ int, _ bool, _ *rand.Rand, yield func(move.Move) bool) {
	for _, mv := range f {
		if !yield(mv) {
			return
		}
	}
}

// graded builds an 8-city symmetric instance on which reversing the segments
// below, starting from the run's seeded start tour, changes the cost by:
//
//	{1,2}: +3   {3,5}: -4   {5,6}: -1   {1,4}: -4
//
// Weights are laid out by tour position and mapped onto cities through start.
func graded(t *testing.T, start []int) distance.Model {
	t.Helper()
	const n = 8
	w := make([][]int64, n)
	for a := range w {
		w[a] = make([]int64, n)
		for b := range w[a] {
			switch {
			case a == b:
			case (a+1)%n == b || (b+1)%n == a:
				w[a][b] = 10
			default:
				w[a][b] = 12
			}
		}
	}
	set := func(a, b int, v int64) { w[a][b], w[b][a] = v, v }
	set(0, 2, 13)
	set(1, 3, 10)
	set(2, 5, 8)
	set(3, 6, 8)
	set(4, 6, 9)
	set(5, 7, 10)
	set(0, 4, 8)
	set(1, 5, 8)

	rows := make([][]int64, n)
	for i := range rows {
		rows[i] = make([]int64, n)
	}
	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			rows[start[a]][start[b]] = w[a][b]
		}
	}
	m, err := distance.NewMatrix(rows)
	require.NoError(t, err)
	require.True(t, m.Symmetric())

	return m
}

func TestRun_AppliesSelectedMove(t *testing.T) {
	var (
		up    = move.Move{Pos1: 1, Pos2: 2}
		down4 = move.Move{Pos1: 3, Pos2: 5}
		down1 = move.Move{Pos1: 5, Pos2: 6}
		tie4  = move.Move{Pos1: 4, Pos2: 1}
	)
	cases := []struct {
		name   string
		policy rns.Policy
		moves  fixedMoves
		want   move.Move
		delta  int64
		deltas int64
	}{
		{"best of +3 -4 -1", rns.BestImprovement, fixedMoves{up, down4, down1}, down4, -4, 3},
		{"best tie keeps first", rns.BestImprovement, fixedMoves{up, down4, down1, tie4}, down4, -4, 4},
		{"best tie other order", rns.BestImprovement, fixedMoves{tie4, down1, down4}, tie4, -4, 3},
		{"first stops at first improvement", rns.FirstImprovement, fixedMoves{up, down1, down4}, down1, -1, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start, err := rng.Permutation(8, rng.FromSeed(seedDet))
			require.NoError(t, err)
			m := graded(t, start)
			startCost, err := distance.TourCost(m, start)
			require.NoError(t, err)
			require.Equal(t, int64(80), startCost)

			cfg := rns.DefaultConfig()
			cfg.Operator = move.NameReverse
			cfg.Policy = tc.policy
			s, err := rns.New(cfg, rns.WithNeighborhood(tc.moves))
			require.NoError(t, err)

			// One Evaluate plus one applied move exhausts the budget.
			res, err := s.Run(oracle(t, m, objective.WithMaxFEs(2)))
			require.NoError(t, err)

			op, err := move.New(move.NameReverse)
			require.NoError(t, err)
			want := append([]int(nil), start...)
			op.Apply(want, tc.want)

			assert.Equal(t, objective.StopBudgetExhausted, res.Stop)
			assert.Equal(t, int64(1), res.Improvements)
			assert.Equal(t, tc.deltas, res.Deltas)
			assert.Equal(t, startCost+tc.delta, res.Final.Cost)
			assert.Equal(t, want, res.Final.Perm)
		})
	}
}
