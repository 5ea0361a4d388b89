// Package config - YAML run files for the permsearch CLI.
//
// A run file names an instance, an algorithm and the budgets, plus optional
// "anneal" and "rns" sections. The YAML is first decoded into a generic map
// and then typed with mapstructure on top of the defaults, so a file only
// lists what it changes. Durations accept Go syntax ("1m30s"), policies
// their names ("best", "first", "random").
//
//	instance: berlin52.yaml
//	algorithm: anneal
//	seed: 7
//	runs: 10
//	max_fes: 200000
//	time_limit: 30s
//	anneal:
//	  cooling_rate: 0.999
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/permsearch/anneal"
	"github.com/katalvlaran/permsearch/rng"
	"github.com/katalvlaran/permsearch/rns"
)

// Algorithm names.
const (
	AlgorithmAnneal = "anneal"
	AlgorithmRNS    = "rns"
)

// Defaults.
const (
	DefaultSeed   int64 = 1
	DefaultRuns         = 1
	DefaultMaxFEs int64 = 1_000_000
)

// ErrInvalid wraps every run-file violation.
var ErrInvalid = errors.New("config: invalid run")

// Run is one fully-typed run description.
type Run struct {
	Instance  string        `mapstructure:"instance"`
	Algorithm string        `mapstructure:"algorithm"`
	Seed      int64         `mapstructure:"seed"`
	Runs      int           `mapstructure:"runs"`
	MaxFEs    int64         `mapstructure:"max_fes"`
	TimeLimit time.Duration `mapstructure:"time_limit"`
	Anneal    anneal.Config `mapstructure:"anneal"`
	RNS       rns.Config    `mapstructure:"rns"`
}

// Default returns a single annealing run with the engine defaults.
func Default() Run {
	return Run{
		Algorithm: AlgorithmAnneal,
		Seed:      DefaultSeed,
		Runs:      DefaultRuns,
		MaxFEs:    DefaultMaxFEs,
		Anneal:    anneal.DefaultConfig(),
		RNS:       rns.DefaultConfig(),
	}
}

// Load reads and validates a run file. A relative instance path is resolved
// against the directory of the run file.
func Load(path string) (Run, error) {
	cfg, err := Read(path)
	if err != nil {
		return Run{}, err
	}
	if err = cfg.Validate(); err != nil {
		return Run{}, fmt.Errorf("config: %s: %w", path, err)
	}

	return cfg, nil
}

// Read is Load without validation, for callers that still apply overrides
// (command-line flags) before validating.
func Read(path string) (Run, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Run{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := decode(data)
	if err != nil {
		return Run{}, fmt.Errorf("config: %s: %w", path, err)
	}
	if cfg.Instance != "" && !filepath.IsAbs(cfg.Instance) {
		cfg.Instance = filepath.Join(filepath.Dir(path), cfg.Instance)
	}

	return cfg, nil
}

// Parse decodes YAML on top of Default and validates the result.
func Parse(data []byte) (Run, error) {
	cfg, err := decode(data)
	if err != nil {
		return Run{}, err
	}
	if err = cfg.Validate(); err != nil {
		return Run{}, err
	}

	return cfg, nil
}

func decode(data []byte) (Run, error) {
	raw := map[string]interface{}{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Run{}, fmt.Errorf("parse yaml: %w", err)
	}

	cfg := Default()
	if err := Decode(raw, &cfg); err != nil {
		return Run{}, err
	}

	return cfg, nil
}

// Decode types a generic map into out. Unknown keys are errors.
func Decode(raw map[string]interface{}, out interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.TextUnmarshallerHookFunc(),
		),
		ErrorUnused: true,
		Result:      out,
	})
	if err != nil {
		return err
	}
	if err = dec.Decode(raw); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return nil
}

// Validate checks the run and the configuration of its algorithm.
func (r Run) Validate() error {
	if r.Instance == "" {
		return fmt.Errorf("%w: no instance", ErrInvalid)
	}
	if r.Runs < 1 {
		return fmt.Errorf("%w: runs %d < 1", ErrInvalid, r.Runs)
	}
	if _, err := rng.Seeds(r.Seed, r.Runs); err != nil {
		return fmt.Errorf("%w: seed %d with %d runs: %w", ErrInvalid, r.Seed, r.Runs, err)
	}
	if r.MaxFEs < 0 {
		return fmt.Errorf("%w: max_fes %d < 0", ErrInvalid, r.MaxFEs)
	}
	if r.TimeLimit < 0 {
		return fmt.Errorf("%w: time_limit %s < 0", ErrInvalid, r.TimeLimit)
	}

	switch r.Algorithm {
	case AlgorithmAnneal:
		return r.Anneal.Validate()
	case AlgorithmRNS:
		return r.RNS.Validate()
	default:
		return fmt.Errorf("%w: unknown algorithm %q", ErrInvalid, r.Algorithm)
	}
}
