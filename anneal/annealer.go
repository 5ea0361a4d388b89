package anneal

import (
	"fmt"
	"log/slog"

	"github.com/katalvlaran/permsearch/internal/logging"
	"github.com/katalvlaran/permsearch/move"
	"github.com/katalvlaran/permsearch/objective"
	"github.com/katalvlaran/permsearch/rng"
	"github.com/katalvlaran/permsearch/tour"
)

// Result summarizes one run.
type Result struct {
	// Final is the candidate the run ended on. The best tour seen is kept by
	// the oracle, not here.
	Final       *tour.Candidate
	Iterations  int64
	Accepted    int64
	Temperature float64
	Stop        objective.StopReason
}

// Annealer runs simulated annealing with a fixed, validated configuration.
// It holds no per-run state, so one Annealer may run many times in sequence.
type Annealer struct {
	cfg      Config
	schedule Schedule
	logger   *slog.Logger
}

// Option configures an Annealer.
type Option func(*Annealer)

// WithLogger logs run start and finish at Debug.
func WithLogger(l *slog.Logger) Option { return func(a *Annealer) { a.logger = l } }

// WithSchedule replaces the geometric schedule derived from CoolingRate.
func WithSchedule(s Schedule) Option { return func(a *Annealer) { a.schedule = s } }

// New validates cfg and returns an Annealer. Configuration errors wrap ErrConfig.
func New(cfg Config, opts ...Option) (*Annealer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a := &Annealer{cfg: cfg}
	for _, opt := range opts {
		opt(a)
	}
	if a.schedule == nil {
		a.schedule = Geometric{Rate: cfg.CoolingRate}
	}
	a.logger = logging.OrNop(a.logger)

	return a, nil
}

// Config returns the validated configuration.
func (a *Annealer) Config() Config { return a.cfg }

// Run anneals one random start tour until the temperature freezes or the
// oracle stops the run.
//
// Every random number comes from o.Random(), in this order per iteration:
// two positions (the second resampled until distinct), then one acceptance
// draw. The start tour is the canonical permutation shuffled by the same
// source.
//
// Tours with fewer than two cities have no moves; they are evaluated once
// and returned with StopLocalOptimum.
//
// Complexity: O(n) setup (O(n²) with operator prefetch), O(1) per iteration
// for swap/insert and symmetric reverse.
func (a *Annealer) Run(o objective.Oracle) (*Result, error) {
	op, err := move.New(a.cfg.Operator)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	var (
		r   = o.Random()
		n   = o.N()
		cur = &tour.Candidate{}
	)
	if cur.Perm, err = rng.Permutation(n, r); err != nil {
		return nil, err
	}
	if cur.Cost, err = o.Evaluate(cur.Perm); err != nil {
		return nil, err
	}

	res := &Result{Final: cur, Temperature: a.cfg.InitialTemperature}
	if n < 2 {
		res.Stop = objective.StopLocalOptimum
		return res, nil
	}

	if err = op.BeginRun(o); err != nil {
		return nil, err
	}
	defer op.EndRun()

	a.logger.Debug("anneal start",
		"n", n, "operator", op.Name(), "t0", a.cfg.InitialTemperature, "cost", cur.Cost)

	var (
		mv    move.Move
		delta int64
		draw  float64
		temp  = a.cfg.InitialTemperature
		crit  = a.cfg.CriticalTemperature
		pc    = a.cfg.ConstantProbability
	)
	for temp > FrozenTemperature && !o.ShouldTerminate() {
		mv.Pos1, mv.Pos2 = rng.DistinctPair(r, n)
		delta = op.Delta(cur.Perm, mv)
		draw = r.Float64()
		if Accept(delta, temp, crit, pc, draw) {
			cur.Cost += delta
			op.Apply(cur.Perm, mv)
			o.RegisterFE(cur.Perm, cur.Cost)
			res.Accepted++
		}
		temp = a.schedule.Next(temp)
		res.Iterations++
	}

	res.Temperature = temp
	if temp <= FrozenTemperature {
		res.Stop = objective.StopCooled
	} else {
		res.Stop = objective.StopBudgetExhausted
	}
	a.logger.Debug("anneal finish",
		"stop", res.Stop, "iterations", res.Iterations, "accepted", res.Accepted,
		"temperature", temp, "cost", cur.Cost)

	return res, nil
}
