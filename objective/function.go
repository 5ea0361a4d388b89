package objective

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/katalvlaran/permsearch/distance"
	"github.com/katalvlaran/permsearch/internal/logging"
	"github.com/katalvlaran/permsearch/rng"
	"github.com/katalvlaran/permsearch/tour"
)

// TraceFunc observes every FE in order: its 1-based index, the permutation
// (read-only, valid only during the call) and its cost.
type TraceFunc func(fe int64, p []int, cost int64)

// Function is the reference Oracle over a distance model. A Function serves
// exactly one run; it is not safe for concurrent use.
type Function struct {
	distance.Model

	rnd       *rand.Rand
	maxFEs    int64
	timeLimit time.Duration
	ctx       context.Context
	logger    *slog.Logger
	metrics   *Metrics
	trace     TraceFunc
	now       func() time.Time

	start    time.Time
	fes      int64
	best     []int
	bestCost int64
	hasBest  bool
}

var _ Oracle = (*Function)(nil)

// Option configures a Function.
type Option func(*Function)

// WithMaxFEs stops the run after n FEs; 0 means unlimited.
func WithMaxFEs(n int64) Option { return func(f *Function) { f.maxFEs = n } }

// WithTimeLimit stops the run once d has elapsed since New; 0 means unlimited.
func WithTimeLimit(d time.Duration) Option { return func(f *Function) { f.timeLimit = d } }

// WithContext stops the run when ctx is done.
func WithContext(ctx context.Context) Option { return func(f *Function) { f.ctx = ctx } }

// WithSeed seeds the run's random source (0 maps to rng.DefaultSeed).
func WithSeed(seed int64) Option { return func(f *Function) { f.rnd = rng.FromSeed(seed) } }

// WithRandom installs an existing random source.
func WithRandom(r *rand.Rand) Option { return func(f *Function) { f.rnd = r } }

// WithLogger logs new best costs at Debug.
func WithLogger(l *slog.Logger) Option { return func(f *Function) { f.logger = l } }

// WithMetrics records FEs and improvements into m.
func WithMetrics(m *Metrics) Option { return func(f *Function) { f.metrics = m } }

// WithTrace installs an FE observer.
func WithTrace(fn TraceFunc) Option { return func(f *Function) { f.trace = fn } }

// WithClock replaces time.Now; tests use it to drive the time limit.
func WithClock(now func() time.Time) Option { return func(f *Function) { f.now = now } }

// New builds a Function over m. The time limit is measured from this call.
func New(m distance.Model, opts ...Option) (*Function, error) {
	if m == nil {
		return nil, ErrNilModel
	}
	f := &Function{Model: m, now: time.Now}
	for _, opt := range opts {
		opt(f)
	}
	if f.maxFEs < 0 {
		return nil, fmt.Errorf("%w: max FEs %d", ErrBadBudget, f.maxFEs)
	}
	if f.timeLimit < 0 {
		return nil, fmt.Errorf("%w: time limit %s", ErrBadBudget, f.timeLimit)
	}
	if f.rnd == nil {
		f.rnd = rng.FromSeed(rng.DefaultSeed)
	}
	if f.ctx == nil {
		f.ctx = context.Background()
	}
	f.logger = logging.OrNop(f.logger)
	f.start = f.now()

	return f, nil
}

// Evaluate implements Oracle.
//
// Complexity: O(n).
func (f *Function) Evaluate(p []int) (int64, error) {
	cost, err := distance.TourCost(f.Model, p)
	if err != nil {
		return 0, err
	}
	f.record(p, cost)

	return cost, nil
}

// RegisterFE implements Oracle.
func (f *Function) RegisterFE(p []int, cost int64) { f.record(p, cost) }

// ShouldTerminate implements Oracle.
func (f *Function) ShouldTerminate() bool {
	if f.maxFEs > 0 && f.fes >= f.maxFEs {
		return true
	}
	if f.timeLimit > 0 && f.now().Sub(f.start) >= f.timeLimit {
		return true
	}

	return f.ctx.Err() != nil
}

// Random implements Oracle.
func (f *Function) Random() *rand.Rand { return f.rnd }

// FEs returns the number of FEs consumed so far.
func (f *Function) FEs() int64 { return f.fes }

// Elapsed returns the wall-clock time since New.
func (f *Function) Elapsed() time.Duration { return f.now().Sub(f.start) }

// Best returns a copy of the best permutation seen and its cost.
// The flag is false before the first FE.
func (f *Function) Best() ([]int, int64, bool) {
	if !f.hasBest {
		return nil, 0, false
	}

	return tour.Clone(f.best), f.bestCost, true
}

func (f *Function) record(p []int, cost int64) {
	f.fes++
	if f.metrics != nil {
		f.metrics.Evaluations.Inc()
	}
	if f.trace != nil {
		f.trace(f.fes, p, cost)
	}
	if f.hasBest && cost >= f.bestCost {
		return
	}

	f.best = tour.CopyInto(f.best, p)
	f.bestCost = cost
	if f.hasBest && f.metrics != nil {
		f.metrics.Improvements.Inc()
	}
	f.hasBest = true
	f.logger.Debug("new best", "fe", f.fes, "cost", cost)
}
