package anneal

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/permsearch/move"
)

// Defaults.
const (
	DefaultInitialTemperature  = 10000.0
	DefaultCoolingRate         = 0.997
	DefaultCriticalTemperature = 2.0
	DefaultConstantProbability = 0.07
	DefaultOperator            = move.NameSwap

	// MaxInitialTemperature bounds InitialTemperature.
	MaxInitialTemperature = 1e10
	// MaxConstantProbability bounds ConstantProbability.
	MaxConstantProbability = 0.1
	// CriticalRatio is the smallest allowed CriticalTemperature as a fraction
	// of InitialTemperature (1/CriticalRatio).
	CriticalRatio = 10000.0
)

// ErrConfig wraps every configuration violation reported by Validate.
var ErrConfig = errors.New("anneal: invalid configuration")

// Config holds the annealing parameters. Zero values are not defaults; start
// from DefaultConfig.
type Config struct {
	InitialTemperature  float64 `mapstructure:"initial_temperature" yaml:"initial_temperature"`
	CoolingRate         float64 `mapstructure:"cooling_rate" yaml:"cooling_rate"`
	CriticalTemperature float64 `mapstructure:"critical_temperature" yaml:"critical_temperature"`
	ConstantProbability float64 `mapstructure:"constant_probability" yaml:"constant_probability"`
	Operator            string  `mapstructure:"operator" yaml:"operator"`
}

// DefaultConfig returns the recommended parameters.
func DefaultConfig() Config {
	return Config{
		InitialTemperature:  DefaultInitialTemperature,
		CoolingRate:         DefaultCoolingRate,
		CriticalTemperature: DefaultCriticalTemperature,
		ConstantProbability: DefaultConstantProbability,
		Operator:            DefaultOperator,
	}
}

// Validate checks every range before a run starts. NaN fails every check.
func (c Config) Validate() error {
	if !(c.InitialTemperature >= 0 && c.InitialTemperature <= MaxInitialTemperature) {
		return fmt.Errorf("%w: initial temperature %g not in [0, %g]",
			ErrConfig, c.InitialTemperature, MaxInitialTemperature)
	}
	if !(c.CoolingRate > 0 && c.CoolingRate < 1) {
		return fmt.Errorf("%w: cooling rate %g not in (0, 1)", ErrConfig, c.CoolingRate)
	}
	lo := c.InitialTemperature / CriticalRatio
	if !(c.CriticalTemperature >= lo && c.CriticalTemperature <= c.InitialTemperature) {
		return fmt.Errorf("%w: critical temperature %g not in [%g, %g]",
			ErrConfig, c.CriticalTemperature, lo, c.InitialTemperature)
	}
	if !(c.ConstantProbability >= 0 && c.ConstantProbability <= MaxConstantProbability) {
		return fmt.Errorf("%w: constant probability %g not in [0, %g]",
			ErrConfig, c.ConstantProbability, MaxConstantProbability)
	}
	if _, err := move.New(c.Operator); err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}

	return nil
}
