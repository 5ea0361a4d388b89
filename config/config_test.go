package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/permsearch/anneal"
	"github.com/katalvlaran/permsearch/config"
	"github.com/katalvlaran/permsearch/rns"
)

func TestParse_OverridesDefaults(t *testing.T) {
	cfg, err := config.Parse([]byte(`
instance: /data/eil51.yaml
algorithm: rns
seed: 9
runs: 4
time_limit: 1m30s
rns:
  policy: random
  first_improvement_probability: 0.25
  neighborhood: sample
  sample_size: 16
anneal:
  cooling_rate: 0.99
`))
	require.NoError(t, err)

	assert.Equal(t, "/data/eil51.yaml", cfg.Instance)
	assert.Equal(t, config.AlgorithmRNS, cfg.Algorithm)
	assert.Equal(t, int64(9), cfg.Seed)
	assert.Equal(t, 4, cfg.Runs)
	assert.Equal(t, config.DefaultMaxFEs, cfg.MaxFEs, "unset keys keep defaults")
	assert.Equal(t, 90*time.Second, cfg.TimeLimit)

	assert.Equal(t, rns.DecideRandomlyPerIteration, cfg.RNS.Policy)
	assert.Equal(t, 0.25, cfg.RNS.FirstImprovementProbability)
	assert.Equal(t, rns.NeighborhoodSample, cfg.RNS.Neighborhood)
	assert.Equal(t, 16, cfg.RNS.SampleSize)
	assert.Equal(t, rns.DefaultOperator, cfg.RNS.Operator)

	assert.Equal(t, 0.99, cfg.Anneal.CoolingRate)
	assert.Equal(t, anneal.DefaultInitialTemperature, cfg.Anneal.InitialTemperature)
}

func TestParse_IntegerTemperature(t *testing.T) {
	cfg, err := config.Parse([]byte("instance: x.yaml\nanneal:\n  initial_temperature: 500\n  critical_temperature: 1\n"))
	require.NoError(t, err)
	assert.Equal(t, 500.0, cfg.Anneal.InitialTemperature)
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want error
	}{
		{"no instance", "algorithm: anneal\n", config.ErrInvalid},
		{"unknown key", "instance: a.yaml\ncolour: blue\n", config.ErrInvalid},
		{"bad algorithm", "instance: a.yaml\nalgorithm: tabu\n", config.ErrInvalid},
		{"zero runs", "instance: a.yaml\nruns: 0\n", config.ErrInvalid},
		{"seed range reuses a stream", "instance: a.yaml\nseed: 0\nruns: 2\n", config.ErrInvalid},
		{"bad duration", "instance: a.yaml\ntime_limit: soon\n", config.ErrInvalid},
		{"anneal range", "instance: a.yaml\nanneal:\n  cooling_rate: 1.5\n", anneal.ErrConfig},
		{"rns policy", "instance: a.yaml\nalgorithm: rns\nrns:\n  policy: greedy\n", config.ErrInvalid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.Parse([]byte(tc.yaml))
			assert.ErrorIs(t, err, tc.want)
		})
	}

	_, err := config.Parse([]byte("instance: [unclosed"))
	assert.Error(t, err)
}

func TestLoad_ResolvesInstanceRelativeToFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("instance: inst/berlin.yaml\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "inst", "berlin.yaml"), cfg.Instance)

	_, err = config.Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestRead_SkipsValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("runs: 3\n"), 0o644))

	cfg, err := config.Read(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Runs)
	assert.Empty(t, cfg.Instance)

	_, err = config.Load(path)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestDefault_Validates(t *testing.T) {
	cfg := config.Default()
	cfg.Instance = "x.yaml"
	require.NoError(t, cfg.Validate())

	cfg.Algorithm = config.AlgorithmRNS
	require.NoError(t, cfg.Validate())
}
