// Package tour - the candidate under optimization and permutation utilities.
//
// A tour is an *open* permutation p of {0..n-1}; the closing edge
// p[n-1]→p[0] is implicit. Every engine in the module mutates exactly one
// Candidate in place for the whole run.
//
// Provided helpers:
//   - Candidate: permutation + its exactly known cost.
//   - ValidatePermutation: verify a bijection on {0..n-1}.
//   - Clone / CopyInto: independent copies without aliasing.
//   - RotateToStart: cyclic shift so the permutation starts at a given city.
//   - EqualModuloRotation: equality of two cyclic tours (same direction).
//   - DebugString: compact printable representation for tests/debug.
//
// Design:
//   - No logging, no panics on user input; only sentinel errors.
//   - O(n) time for every helper; in-place mutations avoid extra allocations.
package tour

import (
	"errors"
	"strconv"
	"strings"

	"github.com/katalvlaran/permsearch/rng"
)

var (
	// ErrNotPermutation is returned when a slice is not a bijection on {0..n-1}
	// (wrong length, out-of-range element or duplicate).
	ErrNotPermutation = errors.New("tour: not a permutation")

	// ErrEmpty is returned when an operation needs at least one city.
	ErrEmpty = errors.New("tour: empty permutation")
)

// Candidate is the mutable permutation under optimization plus its cost.
//
// Invariant: outside of a single in-flight move, Cost equals the objective of
// Perm exactly. Engines keep it by adding the precomputed delta to Cost and
// applying the move to Perm in the same step.
type Candidate struct {
	// Perm is the visiting order; a bijection on {0..len(Perm)-1}.
	Perm []int

	// Cost is the objective value of Perm.
	Cost int64
}

// NewCandidate allocates a candidate of length n holding the identity
// permutation and a zero cost. Callers seed Cost via a full evaluation.
//
// Complexity: O(n).
func NewCandidate(n int) *Candidate {
	c := &Candidate{Perm: make([]int, n)}
	rng.Canonical(c.Perm)

	return c
}

// Validate checks that Perm is a permutation of {0..N-1}.
func (c *Candidate) Validate() error {
	return ValidatePermutation(c.Perm, len(c.Perm))
}

// ValidatePermutation checks that perm is a permutation of {0..n-1} of length n.
// It does not allocate besides a single O(n) marker slice.
//
// Complexity: O(n) time, O(n) space.
func ValidatePermutation(perm []int, n int) error {
	if n <= 0 {
		return ErrEmpty
	}
	if len(perm) != n {
		return ErrNotPermutation
	}
	seen := make([]bool, n)

	var (
		i int
		v int
	)
	for i = 0; i < n; i++ {
		v = perm[i]
		if v < 0 || v >= n {
			return ErrNotPermutation
		}
		if seen[v] {
			return ErrNotPermutation
		}
		seen[v] = true
	}

	return nil
}

// Clone returns an independent copy of p (nil stays nil).
//
// Complexity: O(n) time, O(n) space.
func Clone(p []int) []int {
	if p == nil {
		return nil
	}
	out := make([]int, len(p))
	copy(out, p)

	return out
}

// CopyInto copies src into dst, reusing dst's backing array when it is large
// enough. It returns the (possibly reallocated) destination.
//
// Complexity: O(n).
func CopyInto(dst, src []int) []int {
	if cap(dst) < len(src) {
		dst = make([]int, len(src))
	}
	dst = dst[:len(src)]
	copy(dst, src)

	return dst
}

// RotateToStart returns a fresh copy of p shifted so that out[0] == start.
// The cyclic order (and therefore the cost) is unchanged.
//
// Complexity: O(n) time, O(n) space.
func RotateToStart(p []int, start int) ([]int, error) {
	var n = len(p)
	if n == 0 {
		return nil, ErrEmpty
	}

	var (
		i     int
		pivot = -1
	)
	for i = 0; i < n; i++ {
		if p[i] == start {
			pivot = i
			break
		}
	}
	if pivot == -1 {
		return nil, ErrNotPermutation
	}

	out := make([]int, n)
	for i = 0; i < n; i++ {
		out[i] = p[(pivot+i)%n]
	}

	return out, nil
}

// EqualModuloRotation reports whether a and b describe the same cyclic tour
// in the same direction.
//
// Complexity: O(n) time.
func EqualModuloRotation(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	var n = len(a)
	if n == 0 {
		return true
	}

	var (
		j int
		p = -1
	)
	for j = 0; j < n; j++ {
		if b[j] == a[0] {
			p = j
			break
		}
	}
	if p == -1 {
		return false
	}

	var i int
	for i = 0; i < n; i++ {
		if a[i] != b[(p+i)%n] {
			return false
		}
	}

	return true
}

// DebugString returns a compact printable form, e.g. "[0 3 1 2 → 0]" where
// the arrow marks the implicit closing edge.
//
// Complexity: O(n) time, O(n) space.
func DebugString(p []int) string {
	if len(p) == 0 {
		return "[]"
	}
	var (
		sb strings.Builder
		i  int
	)
	sb.WriteByte('[')
	for i = range p {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.Itoa(p[i]))
	}
	sb.WriteString(" → ")
	sb.WriteString(strconv.Itoa(p[0]))
	sb.WriteByte(']')

	return sb.String()
}
