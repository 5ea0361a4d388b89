package move

import "github.com/katalvlaran/permsearch/distance"

// NameSwap is the registry name of the Swap operator.
const NameSwap = "swap"

// Swap exchanges the cities at Pos1 and Pos2.
//
// Delta touches only the edges incident to both positions: {i−1, i, j−1, j}
// (mod n). When the positions are adjacent, or the tour is tiny, some of those
// edge indices coincide; they are deduplicated so no edge is counted twice.
//
// Complexity: Delta O(1), Apply O(1).
type Swap struct {
	b binding
}

var _ Operator = (*Swap)(nil)

// Name implements Operator.
func (s *Swap) Name() string { return NameSwap }

// Ordered implements Operator; swapping (a,b) equals swapping (b,a).
func (s *Swap) Ordered() bool { return false }

// BeginRun implements Operator.
func (s *Swap) BeginRun(m distance.Model) error { return s.b.bind(m) }

// EndRun implements Operator.
func (s *Swap) EndRun() { s.b.release() }

// Delta implements Operator.
func (s *Swap) Delta(p []int, mv Move) int64 {
	var (
		n      = len(p)
		i      = mv.Pos1
		j      = mv.Pos2
		edges  [4]int
		cnt    int
		k, k1  int
		t, u   int
		dup    bool
		delta  int64
		cand   = [4]int{i - 1, i, j - 1, j}
		before int64
		after  int64
	)

	// Collect distinct affected edge indices.
	for t = 0; t < 4; t++ {
		k = wrap(cand[t], n)
		dup = false
		for u = 0; u < cnt; u++ {
			if edges[u] == k {
				dup = true
				break
			}
		}
		if !dup {
			edges[cnt] = k
			cnt++
		}
	}

	for t = 0; t < cnt; t++ {
		k = edges[t]
		k1 = k + 1
		if k1 == n {
			k1 = 0
		}
		before = s.b.d(p[k], p[k1])
		after = s.b.d(swappedAt(p, i, j, k), swappedAt(p, i, j, k1))
		delta += after - before
	}

	return delta
}

// Apply implements Operator.
func (s *Swap) Apply(p []int, mv Move) {
	p[mv.Pos1], p[mv.Pos2] = p[mv.Pos2], p[mv.Pos1]
}

// swappedAt returns the city at position k of p after swapping i and j,
// without materializing the swapped slice.
func swappedAt(p []int, i, j, k int) int {
	switch k {
	case i:
		return p[j]
	case j:
		return p[i]
	default:
		return p[k]
	}
}
