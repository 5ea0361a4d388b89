package bench_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/permsearch/bench"
)

func TestStableSum_Compensates(t *testing.T) {
	xs := []float64{1e16, 1, -1e16}
	assert.Equal(t, 1.0, bench.StableSum(xs))

	naive := 0.0
	for _, x := range xs {
		naive += x
	}
	assert.NotEqual(t, 1.0, naive, "plain summation loses the 1")
}

func TestSummarize(t *testing.T) {
	s := bench.SummarizeInt([]int64{4, 2, 9, 5})
	assert.Equal(t, 4, s.N)
	assert.Equal(t, 2.0, s.Min)
	assert.Equal(t, 9.0, s.Max)
	assert.Equal(t, 5.0, s.Mean)
	assert.Equal(t, 4.5, s.Median)
	assert.InDelta(t, math.Sqrt(26.0/3), s.Std, 1e-12)

	one := bench.Summarize([]float64{7})
	assert.Equal(t, 7.0, one.Median)
	assert.Zero(t, one.Std)

	assert.Equal(t, bench.Stats{}, bench.Summarize(nil))
}
