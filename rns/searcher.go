package rns

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
	Final        *tour.Candidate
	Iterations   int64
	Improvements int64
	// Deltas counts every delta computed, a cheaper unit than an FE.
	Deltas int64
	Stop   objective.StopReason
}

// Searcher runs randomized neighborhood search with a fixed configuration.
// It holds no per-run state.
type Searcher struct {
	cfg    Config
	nb     Neighborhood
	logger *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithLogger logs run start and finish at Debug.
func WithLogger(l *slog.Logger) Option { return func(s *Searcher) { s.logger = l } }

// WithNeighborhood replaces the neighborhood built from the configuration.
func WithNeighborhood(nb Neighborhood) Option { return func(s *Searcher) { s.nb = nb } }

// New validates cfg and returns a Searcher. Errors wrap ErrConfig.
func New(cfg Config, opts ...Option) (*Searcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Searcher{cfg: cfg}
	for _, opt := range opts {
		opt(s)
	}
	if s.nb == nil {
		nb, err := NewNeighborhood(cfg.Neighborhood, cfg.SampleSize, cfg.Shuffle)
		if err != nil {
			return nil, err
		}
		s.nb = nb
	}
	s.logger = logging.OrNop(s.logger)

	return s, nil
}

// Config returns the validated configuration.
func (s *Searcher) Config() Config { return s.cfg }

// Run searches from a random start tour until a stop condition holds.
//
// The oracle is consulted before every iteration, including fruitless ones.
// Random draws per iteration: the policy draw (DecideRandomlyPerIteration
// only), then whatever the neighborhood consumes.
//
// Complexity: O(|neighborhood|) deltas per iteration.
func (s *Searcher) Run(o objective.Oracle) (*Result, error) {
	op, err := move.New(s.cfg.Operator)
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

	res := &Result{Final: cur}
	if n < 2 {
		res.Stop = objective.StopLocalOptimum
		return res, nil
	}

	if err = op.BeginRun(o); err != nil {
		return nil, err
	}
	defer op.EndRun()

	s.logger.Debug("rns start",
		"n", n, "operator", op.Name(), "policy", s.cfg.Policy,
		"neighborhood", s.nb.Name(), "cost", cur.Cost)

	var (
		ordered = op.Ordered()
		idle    int64
		sel     Selector
		chosen  move.Move
		bestD   int64
		found   bool
	)
	visit := func(mv move.Move) bool {
		res.Deltas++
		picked, more := sel.Offer(op.Delta(cur.Perm, mv))
		if picked {
			chosen = mv
		}

		return more
	}

	for {
		if o.ShouldTerminate() {
			res.Stop = objective.StopBudgetExhausted
			break
		}
		sel.Reset(Resolve(s.cfg.Policy, r, s.cfg.FirstImprovementProbability))
		s.nb.Moves(n, ordered, r, visit)
		res.Iterations++
		_, bestD, found = sel.Chosen()

		if found {
			cur.Cost += bestD
			op.Apply(cur.Perm, chosen)
			o.RegisterFE(cur.Perm, cur.Cost)
			res.Improvements++
			idle = 0
			continue
		}
		if s.nb.Complete() {
			res.Stop = objective.StopLocalOptimum
			break
		}
		idle++
		if s.cfg.MaxIdleIterations > 0 && idle >= s.cfg.MaxIdleIterations {
			res.Stop = objective.StopStalled
			break
		}
	}

	s.logger.Debug("rns finish",
		"stop", res.Stop, "iterations", res.Iterations,
		"improvements", res.Improvements, "cost", cur.Cost)

	return res, nil
}
