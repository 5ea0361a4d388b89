// Package anneal - simulated annealing over permutation tours.
//
// Acceptance is the Metropolis criterion combined with a constant-probability
// channel that stays open once the system has nearly frozen:
//
//	accept ⇔ Δ < 0
//	       ∨ exp(−Δ/T) > u
//	       ∨ (T < T_crit ∧ p_const > u)
//
// with a single uniform draw u ∈ [0,1) shared by both checks. Temperature
// follows a Schedule (geometric by default) and is updated every iteration,
// accepted or not.
//
// Costs and deltas are exact integers; only the temperature is floating point.
package anneal

import "math"

// FrozenTemperature is the lower bound at which a run counts as cooled.
const FrozenTemperature = 1.0

// MetropolisProbability returns the probability of accepting a move with the
// given delta at temperature t: 1 for delta < 0, exp(−delta/t) otherwise.
// Callers guarantee t > 0.
func MetropolisProbability(delta int64, t float64) float64 {
	if delta < 0 {
		return 1
	}

	return math.Exp(-float64(delta) / t)
}

// Accept decides one move. draw is the iteration's single uniform sample in
// [0,1); it is used for both the Metropolis and the constant-probability
// check. A zero delta is not an improvement and goes through the
// probabilistic checks.
func Accept(delta int64, temperature, critical, constProb, draw float64) bool {
	if delta < 0 {
		return true
	}
	if MetropolisProbability(delta, temperature) > draw {
		return true
	}

	return temperature < critical && constProb > draw
}
