// Package objective - the evaluation and termination oracle consumed by the
// search engines.
//
// Engines never count evaluations or remember the best tour themselves. They
// score the start tour once with Evaluate, report every accepted state with
// RegisterFE, and poll ShouldTerminate once per iteration. Function is the
// reference implementation: an FE budget, a wall-clock limit, context
// cancellation, best-so-far tracking and optional prometheus metrics.
package objective

import (
	"errors"
	"math/rand"

	"github.com/katalvlaran/permsearch/distance"
)

var (
	// ErrNilModel is returned by New when no distance model is given.
	ErrNilModel = errors.New("objective: nil distance model")

	// ErrBadBudget indicates a negative FE budget or time limit.
	ErrBadBudget = errors.New("objective: negative budget")
)

// Oracle is the narrow interface between a search engine and the world.
type Oracle interface {
	distance.Model

	// Evaluate scores p from scratch and counts one FE.
	Evaluate(p []int) (int64, error)

	// ShouldTerminate reports whether the run must stop. It is cheap and
	// never blocks.
	ShouldTerminate() bool

	// RegisterFE reports an accepted (permutation, cost) pair. p is only
	// read during the call.
	RegisterFE(p []int, cost int64)

	// Random returns the run's seeded source. Engines draw every random
	// number from it.
	Random() *rand.Rand
}
