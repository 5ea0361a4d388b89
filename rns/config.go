package rns

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/permsearch/move"
)

// Defaults.
const (
	DefaultPolicy                      = BestImprovement
	DefaultFirstImprovementProbability = 0.5
	DefaultNeighborhood                = NeighborhoodExhaustive
	DefaultSampleSize                  = 64
	DefaultOperator                    = move.NameReverse
)

// ErrConfig wraps every configuration violation.
var ErrConfig = errors.New("rns: invalid configuration")

// Config holds the search parameters. Start from DefaultConfig.
type Config struct {
	Policy Policy `mapstructure:"policy" yaml:"policy"`

	// FirstImprovementProbability is the chance DecideRandomlyPerIteration
	// resolves to FirstImprovement. Ignored by the other policies.
	FirstImprovementProbability float64 `mapstructure:"first_improvement_probability" yaml:"first_improvement_probability"`

	Neighborhood string `mapstructure:"neighborhood" yaml:"neighborhood"`
	SampleSize   int    `mapstructure:"sample_size" yaml:"sample_size"`
	Shuffle      bool   `mapstructure:"shuffle" yaml:"shuffle"`

	// MaxIdleIterations stops the run after this many consecutive iterations
	// without an applied move. 0 disables the limit.
	MaxIdleIterations int64 `mapstructure:"max_idle_iterations" yaml:"max_idle_iterations"`

	Operator string `mapstructure:"operator" yaml:"operator"`
}

// DefaultConfig returns a best-improvement 2-opt descent over the full
// neighborhood.
func DefaultConfig() Config {
	return Config{
		Policy:                      DefaultPolicy,
		FirstImprovementProbability: DefaultFirstImprovementProbability,
		Neighborhood:                DefaultNeighborhood,
		SampleSize:                  DefaultSampleSize,
		Shuffle:                     true,
		Operator:                    DefaultOperator,
	}
}

// Validate checks every field before a run starts.
func (c Config) Validate() error {
	switch c.Policy {
	case BestImprovement, FirstImprovement, DecideRandomlyPerIteration:
	default:
		return fmt.Errorf("%w: unknown policy %d", ErrConfig, int(c.Policy))
	}
	if !(c.FirstImprovementProbability >= 0 && c.FirstImprovementProbability <= 1) {
		return fmt.Errorf("%w: first-improvement probability %g not in [0, 1]",
			ErrConfig, c.FirstImprovementProbability)
	}
	if c.MaxIdleIterations < 0 {
		return fmt.Errorf("%w: max idle iterations %d < 0", ErrConfig, c.MaxIdleIterations)
	}
	if _, err := NewNeighborhood(c.Neighborhood, c.SampleSize, c.Shuffle); err != nil {
		return err
	}
	if _, err := move.New(c.Operator); err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}

	return nil
}
