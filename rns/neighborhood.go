package rns

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/permsearch/move"
	"github.com/katalvlaran/permsearch/rng"
)

// Neighborhood names accepted by NewNeighborhood.
const (
	NeighborhoodPair       = "pair"
	NeighborhoodSample     = "sample"
	NeighborhoodExhaustive = "exhaustive"
)

// Neighborhood streams the candidate moves of one iteration.
type Neighborhood interface {
	Name() string

	// Complete reports whether Moves enumerates every move, so that a scan
	// without improvement proves a local optimum.
	Complete() bool

	// Moves calls yield for each move until yield returns false. n >= 2.
	// ordered tells whether (a,b) and (b,a) are distinct moves.
	Moves(n int, ordered bool, r *rand.Rand, yield func(move.Move) bool)
}

// RandomPair proposes a single uniformly random move.
type RandomPair struct{}

// Name implements Neighborhood.
func (RandomPair) Name() string { return NeighborhoodPair }

// Complete implements Neighborhood.
func (RandomPair) Complete() bool { return false }

// Moves implements Neighborhood.
func (RandomPair) Moves(n int, _ bool, r *rand.Rand, yield func(move.Move) bool) {
	p1, p2 := rng.DistinctPair(r, n)
	yield(move.Move{Pos1: p1, Pos2: p2})
}

// RandomSample proposes K independent random moves (duplicates possible).
type RandomSample struct {
	K int
}

// Name implements Neighborhood.
func (RandomSample) Name() string { return NeighborhoodSample }

// Complete implements Neighborhood.
func (RandomSample) Complete() bool { return false }

// Moves implements Neighborhood. Each sample is drawn just before its yield,
// so a short-circuiting caller consumes fewer draws.
func (s RandomSample) Moves(n int, _ bool, r *rand.Rand, yield func(move.Move) bool) {
	var k, p1, p2 int
	for k = 0; k < s.K; k++ {
		p1, p2 = rng.DistinctPair(r, n)
		if !yield(move.Move{Pos1: p1, Pos2: p2}) {
			return
		}
	}
}

// Exhaustive enumerates every move: pairs i<j, or every i!=j when the
// operator is ordered. With Shuffle the outer index starts at a random
// offset and wraps, so first-improvement scans do not always favor the
// front of the tour.
type Exhaustive struct {
	Shuffle bool
}

// Name implements Neighborhood.
func (Exhaustive) Name() string { return NeighborhoodExhaustive }

// Complete implements Neighborhood.
func (Exhaustive) Complete() bool { return true }

// Moves implements Neighborhood.
//
// Complexity: O(n²) moves.
func (e Exhaustive) Moves(n int, ordered bool, r *rand.Rand, yield func(move.Move) bool) {
	var (
		off  int
		a    int
		i, j int
		from int
	)
	if e.Shuffle {
		off = r.Intn(n)
	}
	for a = 0; a < n; a++ {
		i = off + a
		if i >= n {
			i -= n
		}
		from = i + 1
		if ordered {
			from = 0
		}
		for j = from; j < n; j++ {
			if j == i {
				continue
			}
			if !yield(move.Move{Pos1: i, Pos2: j}) {
				return
			}
		}
	}
}

// NewNeighborhood builds a neighborhood by name. k is the sample size for
// "sample"; shuffle applies to "exhaustive".
func NewNeighborhood(name string, k int, shuffle bool) (Neighborhood, error) {
	switch name {
	case NeighborhoodPair:
		return RandomPair{}, nil
	case NeighborhoodSample:
		if k < 1 {
			return nil, fmt.Errorf("%w: sample size %d < 1", ErrConfig, k)
		}
		return RandomSample{K: k}, nil
	case NeighborhoodExhaustive:
		return Exhaustive{Shuffle: shuffle}, nil
	default:
		return nil, fmt.Errorf("%w: unknown neighborhood %q", ErrConfig, name)
	}
}
