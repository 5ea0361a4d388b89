package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/katalvlaran/permsearch/anneal"
	"github.com/katalvlaran/permsearch/bench"
	"github.com/katalvlaran/permsearch/config"
	"github.com/katalvlaran/permsearch/distance"
	"github.com/katalvlaran/permsearch/move"
	"github.com/katalvlaran/permsearch/objective"
	"github.com/katalvlaran/permsearch/rns"
)

var annealCmd = &cobra.Command{
	Use:   "anneal",
	Short: "Run simulated annealing",
	Long: `Anneals a random start tour with Metropolis acceptance, a constant-probability
channel below the critical temperature and geometric cooling.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSolve(cmd, config.AlgorithmAnneal)
	},
}

var rnsCmd = &cobra.Command{
	Use:   "rns",
	Short: "Run randomized neighborhood search",
	Long:  `Descends from a random start tour, applying improving moves chosen by a best, first or per-iteration random policy.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSolve(cmd, config.AlgorithmRNS)
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the experiment described by a YAML run file",
	Long:  `Reads --config, applies any flags given on top of it, and runs the algorithm it names.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if path, _ := cmd.Flags().GetString("config"); path == "" {
			return errors.New("run: --config is required")
		}
		return runSolve(cmd, "")
	},
}

func init() {
	for _, c := range []*cobra.Command{annealCmd, rnsCmd, runCmd} {
		addCommonFlags(c.Flags())
		rootCmd.AddCommand(c)
	}

	operators := strings.Join(move.Names(), ", ")
	f := annealCmd.Flags()
	f.String("operator", anneal.DefaultOperator, "Move operator: "+operators)
	f.Float64("initial-temp", anneal.DefaultInitialTemperature, "Initial temperature")
	f.Float64("cooling-rate", anneal.DefaultCoolingRate, "Geometric cooling rate in (0,1)")
	f.Float64("critical-temp", anneal.DefaultCriticalTemperature, "Temperature below which the constant channel opens")
	f.Float64("const-prob", anneal.DefaultConstantProbability, "Constant acceptance probability in [0,0.1]")

	f = rnsCmd.Flags()
	f.String("operator", rns.DefaultOperator, "Move operator: "+operators)
	f.String("policy", rns.DefaultPolicy.String(), "Improvement selection: best, first, random")
	f.Float64("first-prob", rns.DefaultFirstImprovementProbability, "Probability that the random policy picks first-improvement")
	f.String("neighborhood", rns.DefaultNeighborhood, "Neighborhood: pair, sample, exhaustive")
	f.Int("sample-size", rns.DefaultSampleSize, "Moves per iteration for the sample neighborhood")
	f.Bool("no-shuffle", false, "Scan the exhaustive neighborhood from position 0")
	f.Int64("max-idle", 0, "Stop after this many iterations without improvement (0 = never)")
}

func addCommonFlags(f *pflag.FlagSet) {
	f.String("config", "", "YAML run file; flags override its values")
	f.StringP("instance", "i", "", "Instance file (YAML)")
	f.Int64("seed", config.DefaultSeed, "Seed of the first run; run i uses seed+i")
	f.Int("runs", config.DefaultRuns, "Number of sequential runs")
	f.Int64("max-fes", config.DefaultMaxFEs, "FE budget per run (0 = unlimited)")
	f.Duration("time-limit", 0, "Wall-clock limit per run (0 = none)")
	f.String("csv", "", "Also write per-run records to this CSV file")
	f.Bool("print-tour", false, "Print the best tour found")
	f.String("metrics-addr", "", "Serve prometheus metrics on this address (e.g. :2112)")
}

// loadRun builds the run description: defaults, then --config, then flags.
func loadRun(cmd *cobra.Command, algorithm string) (config.Run, error) {
	var (
		cfg = config.Default()
		err error
		f   = cmd.Flags()
	)
	if path, _ := f.GetString("config"); path != "" {
		if cfg, err = config.Read(path); err != nil {
			return config.Run{}, err
		}
	}
	if algorithm != "" {
		cfg.Algorithm = algorithm
	}

	if f.Changed("instance") {
		cfg.Instance, _ = f.GetString("instance")
	}
	if f.Changed("seed") {
		cfg.Seed, _ = f.GetInt64("seed")
	}
	if f.Changed("runs") {
		cfg.Runs, _ = f.GetInt("runs")
	}
	if f.Changed("max-fes") {
		cfg.MaxFEs, _ = f.GetInt64("max-fes")
	}
	if f.Changed("time-limit") {
		cfg.TimeLimit, _ = f.GetDuration("time-limit")
	}

	switch cfg.Algorithm {
	case config.AlgorithmAnneal:
		applyAnnealFlags(f, &cfg.Anneal)
	case config.AlgorithmRNS:
		if err = applyRNSFlags(f, &cfg.RNS); err != nil {
			return config.Run{}, err
		}
	}

	return cfg, cfg.Validate()
}

// changed reports whether a flag exists on this command and was set.
func changed(f *pflag.FlagSet, name string) bool {
	return f.Lookup(name) != nil && f.Changed(name)
}

func applyAnnealFlags(f *pflag.FlagSet, c *anneal.Config) {
	if changed(f, "operator") {
		c.Operator, _ = f.GetString("operator")
	}
	if changed(f, "initial-temp") {
		c.InitialTemperature, _ = f.GetFloat64("initial-temp")
	}
	if changed(f, "cooling-rate") {
		c.CoolingRate, _ = f.GetFloat64("cooling-rate")
	}
	if changed(f, "critical-temp") {
		c.CriticalTemperature, _ = f.GetFloat64("critical-temp")
	}
	if changed(f, "const-prob") {
		c.ConstantProbability, _ = f.GetFloat64("const-prob")
	}
}

func applyRNSFlags(f *pflag.FlagSet, c *rns.Config) error {
	if changed(f, "operator") {
		c.Operator, _ = f.GetString("operator")
	}
	if changed(f, "policy") {
		name, _ := f.GetString("policy")
		p, err := rns.ParsePolicy(name)
		if err != nil {
			return err
		}
		c.Policy = p
	}
	if changed(f, "first-prob") {
		c.FirstImprovementProbability, _ = f.GetFloat64("first-prob")
	}
	if changed(f, "neighborhood") {
		c.Neighborhood, _ = f.GetString("neighborhood")
	}
	if changed(f, "sample-size") {
		c.SampleSize, _ = f.GetInt("sample-size")
	}
	if changed(f, "no-shuffle") {
		noShuffle, _ := f.GetBool("no-shuffle")
		c.Shuffle = !noShuffle
	}
	if changed(f, "max-idle") {
		c.MaxIdleIterations, _ = f.GetInt64("max-idle")
	}

	return nil
}

// newSolve builds the configured engine.
func newSolve(cfg config.Run, logger *slog.Logger) (bench.Solve, error) {
	switch cfg.Algorithm {
	case config.AlgorithmAnneal:
		a, err := anneal.New(cfg.Anneal, anneal.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		return bench.Anneal(a), nil
	case config.AlgorithmRNS:
		s, err := rns.New(cfg.RNS, rns.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		return bench.RNS(s), nil
	default:
		return nil, fmt.Errorf("%w: unknown algorithm %q", config.ErrInvalid, cfg.Algorithm)
	}
}

func runSolve(cmd *cobra.Command, algorithm string) error {
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}
	cfg, err := loadRun(cmd, algorithm)
	if err != nil {
		return err
	}

	inst, err := distance.Load(cfg.Instance)
	if err != nil {
		return err
	}
	model, err := inst.Model()
	if err != nil {
		return err
	}
	if model.N() <= move.PrefetchLimit {
		// One dense copy serves the oracle's full evaluations as well.
		if model, err = distance.Materialize(model); err != nil {
			return err
		}
	}
	solve, err := newSolve(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := bench.Runner{
		Algorithm: cfg.Algorithm,
		Model:     model,
		BaseSeed:  cfg.Seed,
		Runs:      cfg.Runs,
		MaxFEs:    cfg.MaxFEs,
		TimeLimit: cfg.TimeLimit,
		Logger:    logger,
	}
	if addr, _ := cmd.Flags().GetString("metrics-addr"); addr != "" {
		reg := prometheus.NewRegistry()
		if runner.Metrics, err = objective.NewMetrics(reg); err != nil {
			return err
		}
		shutdown, err := serveMetrics(addr, reg, logger)
		if err != nil {
			return err
		}
		defer shutdown()
	}

	logger.Info("experiment start",
		"instance", inst.Name, "n", model.N(), "algorithm", cfg.Algorithm,
		"runs", cfg.Runs, "seed", cfg.Seed)
	rep, err := runner.Run(ctx, solve)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printRecords(out, rep)
	printSummary(out, rep)
	if printTour, _ := cmd.Flags().GetBool("print-tour"); printTour {
		if err = printBestTour(out, rep); err != nil {
			return err
		}
	}
	if path, _ := cmd.Flags().GetString("csv"); path != "" {
		if err = writeCSVFile(path, rep); err != nil {
			return err
		}
	}

	return nil
}

// serveMetrics exposes reg on addr until the returned shutdown is called.
func serveMetrics(addr string, reg *prometheus.Registry, logger *slog.Logger) (func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("metrics: listen %s: %w", addr, err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		logger.Info("metrics server listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "error", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}
