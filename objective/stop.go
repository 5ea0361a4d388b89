package objective

// StopReason records why a run ended. Every reason is a normal outcome, never
// an error.
type StopReason int

const (
	// StopNone marks a run that has not finished.
	StopNone StopReason = iota
	// StopCooled means the annealing temperature fell to the frozen bound.
	StopCooled
	// StopBudgetExhausted means the oracle asked the run to stop.
	StopBudgetExhausted
	// StopLocalOptimum means a complete neighborhood held no improving move.
	StopLocalOptimum
	// StopStalled means too many consecutive iterations brought no improvement.
	StopStalled
)

// String returns the lower-case label used in logs, tables and metrics.
func (s StopReason) String() string {
	switch s {
	case StopCooled:
		return "cooled"
	case StopBudgetExhausted:
		return "budget_exhausted"
	case StopLocalOptimum:
		return "local_optimum"
	case StopStalled:
		return "stalled"
	default:
		return "none"
	}
}
