package anneal_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/permsearch/anneal"
)

func TestAccept_Scenarios(t *testing.T) {
	cases := []struct {
		name                        string
		delta                       int64
		temp, crit, constProb, draw float64
		want                        bool
	}{
		{"improvement always accepted", -2, 100, 2, 0.07, 0.999, true},
		{"metropolis rejects", 5, 10, 2, 0.07, 0.9, false},
		{"metropolis accepts", 5, 10, 2, 0.07, 0.5, true},
		{"zero delta falls through and passes", 0, 10, 2, 0.07, 0.999, true},
		{"constant channel opens below critical", 1000, 1.5, 2, 0.07, 0.05, true},
		{"constant channel needs draw below p", 1000, 1.5, 2, 0.07, 0.08, false},
		{"constant channel closed above critical", 1000, 3, 2, 0.07, 0.05, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, anneal.Accept(tc.delta, tc.temp, tc.crit, tc.constProb, tc.draw))
		})
	}
}

func TestMetropolisProbability(t *testing.T) {
	assert.Equal(t, 1.0, anneal.MetropolisProbability(-7, 3))
	assert.Equal(t, 1.0, anneal.MetropolisProbability(0, 3))
	assert.InDelta(t, math.Exp(-0.5), anneal.MetropolisProbability(5, 10), 1e-15)
}

// Acceptance probability never grows with delta and never shrinks with
// temperature.
func TestMetropolisProbability_Monotone(t *testing.T) {
	var (
		d    int64
		prev float64
		temp float64
	)
	prev = 1
	for d = 0; d <= 50; d++ {
		p := anneal.MetropolisProbability(d, 10)
		assert.LessOrEqual(t, p, prev)
		prev = p
	}

	prev = 0
	for temp = 1; temp <= 1000; temp *= 2 {
		p := anneal.MetropolisProbability(20, temp)
		assert.GreaterOrEqual(t, p, prev)
		prev = p
	}
}

func TestGeometric(t *testing.T) {
	g := anneal.Geometric{Rate: 0.5}
	assert.Equal(t, 50.0, g.Next(100))
	assert.Equal(t, 7, g.Steps(100), "100→50→25→12.5→6.25→3.125→1.5625→0.78")
	assert.Zero(t, g.Steps(1))

	var (
		temp = 10000.0
		s    = anneal.Geometric{Rate: anneal.DefaultCoolingRate}
	)
	for i := 0; i < 100; i++ {
		next := s.Next(temp)
		assert.Less(t, next, temp)
		assert.Greater(t, next, 0.0)
		temp = next
	}
}
