// Package move - incremental move operators over permutation tours.
//
// An Operator computes the exact cost change ("delta") of a move without
// building the moved permutation, and separately applies the move in place.
// Engines depend only on the Operator interface and select concrete kinds by
// name through New.
//
// Contract (checked exhaustively in tests):
//
//	Delta(p, mv) == cost(Apply(copy(p), mv)) − cost(p)
//
// for every permutation p and every move with Pos1 != Pos2 in [0..n-1].
//
// Edge numbering used throughout: edge k joins positions k and (k+1) mod n,
// so a position i touches edges i−1 and i (cyclically).
package move

import (
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/permsearch/distance"
)

var (
	// ErrUnknownOperator is returned by New for an unregistered name.
	ErrUnknownOperator = errors.New("move: unknown operator")

	// ErrContractViolation is returned by Check when Delta disagrees with a
	// full re-evaluation. It always indicates a defect, never bad input.
	ErrContractViolation = errors.New("move: delta disagrees with full evaluation")

	// ErrSamePosition is returned by Check for a move with Pos1 == Pos2.
	ErrSamePosition = errors.New("move: positions must differ")

	// ErrPositionRange is returned by Check for a position outside [0..n-1].
	ErrPositionRange = errors.New("move: position out of range")

	// ErrNilModel is returned by BeginRun when no distance model is given.
	ErrNilModel = errors.New("move: nil distance model")
)

// Move is a pair of distinct positions into the permutation. It is a value
// type built fresh for every proposal and never retained.
type Move struct {
	Pos1 int
	Pos2 int
}

// Valid reports whether mv is a legal move for a permutation of length n.
func (mv Move) Valid(n int) bool {
	return mv.Pos1 != mv.Pos2 &&
		mv.Pos1 >= 0 && mv.Pos1 < n &&
		mv.Pos2 >= 0 && mv.Pos2 < n
}

// Operator is the strategy interface shared by every move kind.
type Operator interface {
	// Name returns the registry name ("swap", "insert", "reverse").
	Name() string

	// Ordered reports whether Move{a,b} and Move{b,a} are different moves.
	// Exhaustive neighborhoods enumerate ordered pairs only when true.
	Ordered() bool

	// BeginRun binds the operator to a distance model and builds per-run
	// caches. It must be called before Delta.
	BeginRun(m distance.Model) error

	// Delta returns the exact cost change of applying mv to p. Pure.
	Delta(p []int, mv Move) int64

	// Apply mutates p in place. It never touches the candidate cost: the
	// caller adds the delta it already computed.
	Apply(p []int, mv Move)

	// EndRun drops every per-run cache.
	EndRun()
}

// PrefetchLimit is the largest n for which BeginRun copies the model into a
// flat n×n buffer (8·n² bytes). Larger instances query the model directly.
const PrefetchLimit = 1024

// binding holds the per-run view of the distance model shared by all operators.
type binding struct {
	m         distance.Model
	n         int
	w         []int64 // row-major prefetch; nil when n > PrefetchLimit
	symmetric bool
}

// bind prefetches weights into w[i*n+j] to remove interface dispatch from the
// hot path, the same way the 2-opt engine linearizes its matrix.
//
// Complexity: O(n²) when prefetching, O(1) otherwise.
func (b *binding) bind(m distance.Model) error {
	if m == nil {
		return ErrNilModel
	}
	b.m = m
	b.n = m.N()
	b.symmetric = m.Symmetric()
	b.w = nil
	if b.n > PrefetchLimit {
		return nil
	}

	var (
		i, j int
		n    = b.n
	)
	b.w = make([]int64, n*n)
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			b.w[i*n+j] = m.Dist(i, j)
		}
	}

	return nil
}

// d is the hot-path accessor.
func (b *binding) d(i, j int) int64 {
	if b.w != nil {
		return b.w[i*b.n+j]
	}

	return b.m.Dist(i, j)
}

func (b *binding) release() {
	b.m = nil
	b.w = nil
	b.n = 0
	b.symmetric = false
}

// New returns a fresh operator for the given registry name. Each call yields
// an independent instance, so runs never share caches.
func New(name string) (Operator, error) {
	switch name {
	case NameSwap:
		return &Swap{}, nil
	case NameInsert:
		return &Insert{}, nil
	case NameReverse:
		return &Reverse{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperator, name)
	}
}

// Names lists the registered operator names in sorted order.
func Names() []string {
	out := []string{NameSwap, NameInsert, NameReverse}
	sort.Strings(out)

	return out
}

// Check recomputes the full cost of p before and after mv and compares the
// difference with op.Delta. The operator must already be bound to m.
// p is not modified.
//
// Complexity: O(n).
func Check(op Operator, m distance.Model, p []int, mv Move) error {
	if mv.Pos1 == mv.Pos2 {
		return ErrSamePosition
	}
	if !mv.Valid(len(p)) {
		return ErrPositionRange
	}
	before, err := distance.TourCost(m, p)
	if err != nil {
		return err
	}
	q := make([]int, len(p))
	copy(q, p)
	op.Apply(q, mv)
	after, err := distance.TourCost(m, q)
	if err != nil {
		return err
	}

	got := op.Delta(p, mv)
	if want := after - before; got != want {
		return fmt.Errorf("%w: %s %v on %v: delta=%d, full=%d",
			ErrContractViolation, op.Name(), mv, p, got, want)
	}

	return nil
}

// wrap maps any position to [0..n-1].
func wrap(k, n int) int {
	k %= n
	if k < 0 {
		k += n
	}

	return k
}
