package move

import "github.com/katalvlaran/permsearch/distance"

// NameInsert is the registry name of the Insert operator.
const NameInsert = "insert"

// Insert removes the city at Pos1 and re-inserts it so that it ends up at
// Pos2; the cities in between shift by one.
//
// With i=Pos1, j=Pos2 and b=p[i]:
//
//	i<j: removes (a→b),(b→c),(x→y) and adds (a→c),(x→b),(b→y)
//	     where a=p[i−1], c=p[i+1], x=p[j], y=p[j+1]
//	i>j: removes (a→x),(u→b),(b→v) and adds (a→b),(b→x),(u→v)
//	     where a=p[j−1], x=p[j], u=p[i−1], v=p[i+1]
//
// Indices wrap cyclically. Moving the first city to the end (or back) is a
// rotation of the cyclic tour, so its delta is 0.
//
// Complexity: Delta O(1), Apply O(|i−j|).
type Insert struct {
	b binding
}

var _ Operator = (*Insert)(nil)

// Name implements Operator.
func (s *Insert) Name() string { return NameInsert }

// Ordered implements Operator; moving i→j differs from j→i.
func (s *Insert) Ordered() bool { return true }

// BeginRun implements Operator.
func (s *Insert) BeginRun(m distance.Model) error { return s.b.bind(m) }

// EndRun implements Operator.
func (s *Insert) EndRun() { s.b.release() }

// Delta implements Operator.
func (s *Insert) Delta(p []int, mv Move) int64 {
	var (
		n = len(p)
		i = mv.Pos1
		j = mv.Pos2
	)
	if n <= 2 || isRotation(i, j, n) {
		return 0
	}

	var a, b, c, x, y, u, v int
	b = p[i]
	if i < j {
		a = p[wrap(i-1, n)]
		c = p[i+1]
		x = p[j]
		y = p[wrap(j+1, n)]

		return s.b.d(a, c) + s.b.d(x, b) + s.b.d(b, y) -
			s.b.d(a, b) - s.b.d(b, c) - s.b.d(x, y)
	}

	a = p[wrap(j-1, n)]
	x = p[j]
	u = p[i-1]
	v = p[wrap(i+1, n)]

	return s.b.d(a, b) + s.b.d(b, x) + s.b.d(u, v) -
		s.b.d(a, x) - s.b.d(u, b) - s.b.d(b, v)
}

// Apply implements Operator.
func (s *Insert) Apply(p []int, mv Move) {
	var (
		i   = mv.Pos1
		j   = mv.Pos2
		val = p[i]
	)
	if i < j {
		copy(p[i:j], p[i+1:j+1])
	} else {
		copy(p[j+1:i+1], p[j:i])
	}
	p[j] = val
}

// isRotation reports whether moving position i to position j only rotates the
// cyclic tour.
func isRotation(i, j, n int) bool {
	return (i == 0 && j == n-1) || (i == n-1 && j == 0)
}
