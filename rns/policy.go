// Package rns - randomized neighborhood search over permutation tours.
//
// Each iteration the Searcher scans a Neighborhood of moves around the current
// tour, computes every delta through the shared move.Operator, and lets a
// Policy pick which improving move (if any) to apply. Only improving moves
// are ever applied; there is no temperature.
//
// Policies:
//
//	BestImprovement             - most negative delta, ties to the first seen
//	FirstImprovement            - first negative delta, scan stops there
//	DecideRandomlyPerIteration  - First with probability FirstImprovementProbability,
//	                              otherwise Best, drawn afresh every iteration
//
// A run ends at a local optimum (a Complete neighborhood without an
// improving move), after MaxIdleIterations fruitless iterations, or when the
// oracle stops it.
package rns

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/katalvlaran/permsearch/rng"
)

// Policy selects among the improving moves of one neighborhood scan.
type Policy int

const (
	// BestImprovement applies the most negative delta.
	BestImprovement Policy = iota
	// FirstImprovement applies the first negative delta found.
	FirstImprovement
	// DecideRandomlyPerIteration resolves to First or Best every iteration.
	DecideRandomlyPerIteration
)

// String returns the configuration name of p.
func (p Policy) String() string {
	switch p {
	case BestImprovement:
		return "best"
	case FirstImprovement:
		return "first"
	case DecideRandomlyPerIteration:
		return "random"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy accepts "best", "first" and "random" (case-insensitive).
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "best", "best_improvement":
		return BestImprovement, nil
	case "first", "first_improvement":
		return FirstImprovement, nil
	case "random", "decide_randomly_per_iteration":
		return DecideRandomlyPerIteration, nil
	default:
		return 0, fmt.Errorf("%w: unknown policy %q", ErrConfig, s)
	}
}

// UnmarshalText lets YAML and mapstructure decode a Policy from its name.
func (p *Policy) UnmarshalText(text []byte) error {
	v, err := ParsePolicy(string(text))
	if err != nil {
		return err
	}
	*p = v

	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (p Policy) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// Resolve returns the concrete policy for one iteration. Only
// DecideRandomlyPerIteration consumes a draw from r.
func Resolve(p Policy, r *rand.Rand, firstProb float64) Policy {
	if p != DecideRandomlyPerIteration {
		return p
	}
	if rng.Bernoulli(r, firstProb) {
		return FirstImprovement
	}

	return BestImprovement
}

// Selector applies a concrete policy to a scan one delta at a time, so the
// searcher can stop enumerating as soon as FirstImprovement has its move.
// The zero value is a BestImprovement selector with nothing chosen.
type Selector struct {
	policy Policy
	seen   int
	idx    int
	delta  int64
	found  bool
}

// Reset starts a new scan under p.
func (s *Selector) Reset(p Policy) {
	*s = Selector{policy: p, idx: -1}
}

// Offer considers the next delta in scan order. picked reports whether it is
// now the chosen move; more reports whether the scan should go on.
// An unresolved DecideRandomlyPerIteration picks nothing and stops the scan.
func (s *Selector) Offer(delta int64) (picked, more bool) {
	pos := s.seen
	s.seen++
	switch s.policy {
	case BestImprovement, FirstImprovement:
	default:
		return false, false
	}
	if delta >= 0 {
		return false, true
	}
	if !s.found || delta < s.delta {
		s.idx, s.delta, s.found = pos, delta, true
		picked = true
	}

	return picked, s.policy != FirstImprovement
}

// Chosen returns the scan position and delta of the selected move, and false
// when no offered delta was negative.
func (s *Selector) Chosen() (int, int64, bool) {
	if !s.found {
		return -1, 0, false
	}

	return s.idx, s.delta, true
}

// Select returns the index of the move a concrete policy picks from deltas,
// listed in enumeration order, and false when no delta is negative. Ties go
// to the earliest delta. DecideRandomlyPerIteration must go through Resolve
// first; passed here unresolved it selects nothing.
//
// Complexity: O(len(deltas)).
func Select(p Policy, deltas []int64) (int, bool) {
	var sel Selector
	sel.Reset(p)
	for _, d := range deltas {
		if _, more := sel.Offer(d); !more {
			break
		}
	}
	i, _, ok := sel.Chosen()

	return i, ok
}
