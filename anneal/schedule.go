package anneal

// Schedule maps the current temperature to the next one. Implementations
// must be non-increasing: Next(t) <= t.
type Schedule interface {
	Next(t float64) float64
}

// Geometric multiplies the temperature by Rate each step, 0 < Rate < 1.
type Geometric struct {
	Rate float64
}

// Next implements Schedule.
func (g Geometric) Next(t float64) float64 { return t * g.Rate }

// Steps returns how many Geometric steps take t0 to FrozenTemperature or
// below, i.e. the iteration bound of an unbudgeted run. It returns 0 when
// t0 <= FrozenTemperature.
func (g Geometric) Steps(t0 float64) int {
	var (
		t     = t0
		steps int
	)
	for t > FrozenTemperature {
		t = g.Next(t)
		steps++
	}

	return steps
}
