// Package rng - the random helpers every engine draws through.
//
// Nothing in this module touches the global math/rand source. A run owns one
// *rand.Rand (handed out by objective.Oracle.Random) and every helper here
// takes it explicitly, so a seed fixes the whole trajectory. A *rand.Rand is
// not safe for concurrent use; runs are sequential and never share one.
package rng

import (
	"errors"
	"fmt"
	"math/rand"
)

var (
	// ErrBadSize is returned for a negative permutation size.
	ErrBadSize = errors.New("rng: size out of range")

	// ErrSeedCollision is returned by Seeds when two runs would share a stream.
	ErrSeedCollision = errors.New("rng: seed range reuses a stream")
)

// DefaultSeed replaces a zero seed.
const DefaultSeed int64 = 1

// FromSeed returns a source seeded with seed, or with DefaultSeed when seed
// is 0.
func FromSeed(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(Effective(seed)))
}

// Effective returns the seed FromSeed actually uses.
func Effective(seed int64) int64 {
	if seed == 0 {
		return DefaultSeed
	}

	return seed
}

// Seeds returns the effective seeds of runs consecutive runs starting at
// base. A range holding both 0 and DefaultSeed would run one stream twice
// and yields ErrSeedCollision.
//
// Complexity: O(runs).
func Seeds(base int64, runs int) ([]int64, error) {
	if runs < 0 {
		return nil, ErrBadSize
	}
	last := base + int64(runs) - 1
	if runs > 0 && base <= 0 && last >= DefaultSeed {
		return nil, fmt.Errorf("%w: [%d..%d] holds 0 and %d", ErrSeedCollision, base, last, DefaultSeed)
	}

	out := make([]int64, runs)
	for i := range out {
		out[i] = Effective(base + int64(i))
	}

	return out, nil
}

// Shuffle permutes a in place (Fisher–Yates, from the back). A nil r falls
// back to FromSeed(0).
//
// Complexity: O(n).
func Shuffle(a []int, r *rand.Rand) {
	var n int
	n = len(a)
	if n <= 1 {
		return
	}
	if r == nil {
		r = FromSeed(0)
	}

	var i, j int
	for i = n - 1; i > 0; i-- {
		j = r.Intn(i + 1)
		a[i], a[j] = a[j], a[i]
	}
}

// Canonical fills p with the identity permutation 0..len(p)-1.
//
// Complexity: O(n).
func Canonical(p []int) {
	var i int
	for i = range p {
		p[i] = i
	}
}

// Permutation returns a uniformly random permutation of 0..n-1: the canonical
// permutation shuffled with r. For n<0 it returns ErrBadSize.
//
// Complexity: O(n) time, O(n) space.
func Permutation(n int, r *rand.Rand) ([]int, error) {
	if n < 0 {
		return nil, ErrBadSize
	}
	p := make([]int, n)
	Canonical(p)
	Shuffle(p, r)

	return p, nil
}

// DistinctPair draws two distinct positions uniformly from [0,n).
// The second position is resampled until it differs from the first, which
// keeps the number of draws per call observable and reproducible.
// Callers must guarantee n >= 2; smaller n would never terminate.
//
// Complexity: expected O(n/(n-1)) draws.
func DistinctPair(r *rand.Rand, n int) (int, int) {
	var p1, p2 int
	p1 = r.Intn(n)
	for {
		p2 = r.Intn(n)
		if p2 != p1 {
			return p1, p2
		}
	}
}

// Bernoulli reports true with probability prob. It always consumes exactly
// one Float64, whatever prob is.
func Bernoulli(r *rand.Rand, prob float64) bool {
	return r.Float64() < prob
}
