// Package distance - distance models consumed by move operators and oracles.
//
// A Model answers "what does edge i→j cost" in O(1) for city indices in
// [0..N-1]. Two concrete models are provided:
//
//   - Matrix    - explicit dense n×n integer matrix (symmetric or asymmetric).
//   - Euclidean - 2D coordinates with TSPLIB rounding (EUC_2D nint or CEIL_2D).
//
// All costs are int64 so that incremental deltas are exact: the sum of a
// delta sequence equals the full re-evaluation bit for bit.
package distance

import (
	"errors"
	"math"
)

// Sentinel errors. Loaders wrap them with fmt.Errorf("...: %w") for context;
// callers match with errors.Is.
var (
	// ErrEmptyInstance is returned for an instance without cities.
	ErrEmptyInstance = errors.New("distance: empty instance")

	// ErrNonSquare signals a matrix whose rows do not all have length n.
	ErrNonSquare = errors.New("distance: matrix is not square")

	// ErrNonZeroDiagonal signals d(i,i) != 0.
	ErrNonZeroDiagonal = errors.New("distance: diagonal not zero")

	// ErrNegativeDistance signals an off-diagonal entry below zero.
	ErrNegativeDistance = errors.New("distance: negative distance")

	// ErrBadCoordinates signals NaN/Inf coordinates or a row that is not a 2D point.
	ErrBadCoordinates = errors.New("distance: invalid coordinates")

	// ErrUnknownKind is returned by the loader for an unsupported instance kind.
	ErrUnknownKind = errors.New("distance: unknown instance kind")
)

// Model is the narrow view of an instance used by the search core.
type Model interface {
	// N returns the number of cities.
	N() int

	// Dist returns the cost of the directed edge i→j.
	// Indices must lie in [0..N-1]; out-of-range indices panic like a slice access.
	Dist(i, j int) int64

	// Symmetric reports whether Dist(i,j)==Dist(j,i) for all pairs.
	Symmetric() bool
}

// Matrix is an explicit dense distance matrix stored row-major in a flat slice.
type Matrix struct {
	n         int
	w         []int64
	symmetric bool
}

var _ Model = (*Matrix)(nil)

// NewMatrix validates rows and builds a Matrix.
//
// Validation stages:
//  1. n ≥ 1 and every row has length n (ErrEmptyInstance / ErrNonSquare).
//  2. d(i,i) == 0 (ErrNonZeroDiagonal).
//  3. d(i,j) ≥ 0 off the diagonal (ErrNegativeDistance).
//
// Symmetry is detected, not required.
//
// Complexity: O(n²).
func NewMatrix(rows [][]int64) (*Matrix, error) {
	var n = len(rows)
	if n == 0 {
		return nil, ErrEmptyInstance
	}

	var (
		i, j int
		v    int64
		w    = make([]int64, n*n)
	)
	for i = 0; i < n; i++ {
		if len(rows[i]) != n {
			return nil, ErrNonSquare
		}
		for j = 0; j < n; j++ {
			v = rows[i][j]
			if i == j {
				if v != 0 {
					return nil, ErrNonZeroDiagonal
				}
				continue
			}
			if v < 0 {
				return nil, ErrNegativeDistance
			}
			w[i*n+j] = v
		}
	}

	sym := true
	for i = 0; i < n && sym; i++ {
		for j = i + 1; j < n; j++ {
			if w[i*n+j] != w[j*n+i] {
				sym = false
				break
			}
		}
	}

	return &Matrix{n: n, w: w, symmetric: sym}, nil
}

// N returns the number of cities.
func (m *Matrix) N() int { return m.n }

// Dist returns d(i,j).
func (m *Matrix) Dist(i, j int) int64 { return m.w[i*m.n+j] }

// Symmetric reports whether the matrix equals its transpose.
func (m *Matrix) Symmetric() bool { return m.symmetric }

// Rounding selects how Euclidean distances are turned into integers.
type Rounding int

const (
	// RoundNearest is TSPLIB EUC_2D: nint(sqrt(dx²+dy²)).
	RoundNearest Rounding = iota

	// RoundUp is TSPLIB CEIL_2D: ceil(sqrt(dx²+dy²)).
	RoundUp
)

// Euclidean is a coordinate-based symmetric model; distances are computed on
// demand, so memory stays O(n).
type Euclidean struct {
	x, y     []float64
	rounding Rounding
}

var _ Model = (*Euclidean)(nil)

// NewEuclidean builds a coordinate model. Every point must be finite.
//
// Complexity: O(n).
func NewEuclidean(pts [][2]float64, rounding Rounding) (*Euclidean, error) {
	var n = len(pts)
	if n == 0 {
		return nil, ErrEmptyInstance
	}
	if rounding != RoundNearest && rounding != RoundUp {
		return nil, ErrUnknownKind
	}

	e := &Euclidean{x: make([]float64, n), y: make([]float64, n), rounding: rounding}

	var i int
	for i = 0; i < n; i++ {
		if !finite(pts[i][0]) || !finite(pts[i][1]) {
			return nil, ErrBadCoordinates
		}
		e.x[i] = pts[i][0]
		e.y[i] = pts[i][1]
	}

	return e, nil
}

// N returns the number of cities.
func (e *Euclidean) N() int { return len(e.x) }

// Dist returns the rounded Euclidean distance between cities i and j.
func (e *Euclidean) Dist(i, j int) int64 {
	if i == j {
		return 0
	}
	d := math.Hypot(e.x[i]-e.x[j], e.y[i]-e.y[j])
	if e.rounding == RoundUp {
		return int64(math.Ceil(d))
	}

	return int64(d + 0.5)
}

// Symmetric is always true for coordinate models.
func (e *Euclidean) Symmetric() bool { return true }

// Materialize copies any model into a dense Matrix. Useful when a model is
// expensive to query and the instance is small enough to prefetch.
//
// Complexity: O(n²) time and space.
func Materialize(m Model) (*Matrix, error) {
	var n = m.N()
	if n == 0 {
		return nil, ErrEmptyInstance
	}
	rows := make([][]int64, n)

	var i, j int
	for i = 0; i < n; i++ {
		rows[i] = make([]int64, n)
		for j = 0; j < n; j++ {
			rows[i][j] = m.Dist(i, j)
		}
	}

	return NewMatrix(rows)
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
