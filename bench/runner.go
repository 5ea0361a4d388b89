// Package bench - sequential multi-seed experiments.
//
// A Runner repeats one algorithm on one instance with seeds BaseSeed,
// BaseSeed+1, ... Each run gets a fresh objective.Function, so FE budgets,
// best-so-far and random streams never leak between runs. Runs are strictly
// sequential.
package bench

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/katalvlaran/permsearch/anneal"
	"github.com/katalvlaran/permsearch/distance"
	"github.com/katalvlaran/permsearch/internal/logging"
	"github.com/katalvlaran/permsearch/objective"
	"github.com/katalvlaran/permsearch/rng"
	"github.com/katalvlaran/permsearch/rns"
	"github.com/katalvlaran/permsearch/tour"
)

// ErrNoRuns is returned when a Runner is asked for fewer than one run.
var ErrNoRuns = errors.New("bench: runs must be >= 1")

// Outcome is what a Solve reports back about one run.
type Outcome struct {
	Final      int64
	Iterations int64
	Stop       objective.StopReason
}

// Solve performs one run against the oracle.
type Solve func(o objective.Oracle) (Outcome, error)

// Anneal adapts an Annealer to Solve.
func Anneal(a *anneal.Annealer) Solve {
	return func(o objective.Oracle) (Outcome, error) {
		res, err := a.Run(o)
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{Final: res.Final.Cost, Iterations: res.Iterations, Stop: res.Stop}, nil
	}
}

// RNS adapts a Searcher to Solve.
func RNS(s *rns.Searcher) Solve {
	return func(o objective.Oracle) (Outcome, error) {
		res, err := s.Run(o)
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{Final: res.Final.Cost, Iterations: res.Iterations, Stop: res.Stop}, nil
	}
}

// Record is the result of one run.
type Record struct {
	Run        int
	Seed       int64 // effective seed; see rng.Seeds
	Best       int64
	Final      int64
	FEs        int64
	Iterations int64
	Stop       objective.StopReason
	Elapsed    time.Duration
	Tour       []int
}

// Report aggregates the records of one experiment.
type Report struct {
	Algorithm string
	Records   []Record
	Cost      Stats
	Time      Stats // milliseconds
	// BestRun indexes Records; ties go to the earlier run.
	BestRun int
	// Distinct counts the different best tours found, up to rotation.
	Distinct int
}

// Runner holds the experiment settings.
type Runner struct {
	Algorithm string
	Model     distance.Model
	BaseSeed  int64
	Runs      int
	MaxFEs    int64
	TimeLimit time.Duration // per run; 0 = none
	Metrics   *objective.Metrics
	Logger    *slog.Logger
}

// Run executes the runs in order, run i seeded with BaseSeed+i (0 maps to
// rng.DefaultSeed). A seed range that would repeat a stream is rejected.
// Cancelling ctx ends the current run through its oracle; Run then returns
// ctx's error before starting the next.
func (r Runner) Run(ctx context.Context, solve Solve) (*Report, error) {
	if r.Runs < 1 {
		return nil, ErrNoRuns
	}
	seeds, err := rng.Seeds(r.BaseSeed, r.Runs)
	if err != nil {
		return nil, fmt.Errorf("bench: %w", err)
	}
	logger := logging.OrNop(r.Logger)
	rep := &Report{Algorithm: r.Algorithm, Records: make([]Record, 0, r.Runs)}

	for i, seed := range seeds {
		if err = ctx.Err(); err != nil {
			return nil, fmt.Errorf("bench: run %d: %w", i, err)
		}
		opts := []objective.Option{
			objective.WithSeed(seed),
			objective.WithMaxFEs(r.MaxFEs),
			objective.WithTimeLimit(r.TimeLimit),
			objective.WithContext(ctx),
			objective.WithLogger(logger),
		}
		if r.Metrics != nil {
			opts = append(opts, objective.WithMetrics(r.Metrics))
		}
		f, err := objective.New(r.Model, opts...)
		if err != nil {
			return nil, err
		}

		out, err := solve(f)
		if err != nil {
			return nil, fmt.Errorf("bench: run %d (seed %d): %w", i, seed, err)
		}
		tourBest, best, _ := f.Best()
		rec := Record{
			Run:        i,
			Seed:       seed,
			Best:       best,
			Final:      out.Final,
			FEs:        f.FEs(),
			Iterations: out.Iterations,
			Stop:       out.Stop,
			Elapsed:    f.Elapsed(),
			Tour:       tourBest,
		}
		rep.Records = append(rep.Records, rec)
		if r.Metrics != nil {
			r.Metrics.ObserveRun(r.Algorithm, out.Stop.String(), best)
		}
		logger.Info("run finished",
			"algorithm", r.Algorithm, "run", i, "seed", seed, "best", best,
			"fes", rec.FEs, "stop", out.Stop, "elapsed", rec.Elapsed)
	}

	costs := make([]int64, len(rep.Records))
	times := make([]float64, len(rep.Records))
	for i, rec := range rep.Records {
		costs[i] = rec.Best
		times[i] = float64(rec.Elapsed.Microseconds()) / 1000
		if rec.Best < rep.Records[rep.BestRun].Best {
			rep.BestRun = i
		}
	}
	rep.Cost = SummarizeInt(costs)
	rep.Time = Summarize(times)
	rep.Distinct = distinctTours(rep.Records)

	return rep, nil
}

// distinctTours counts best tours that differ as cyclic sequences.
//
// Complexity: O(runs² · n).
func distinctTours(recs []Record) int {
	var seen [][]int
	for _, rec := range recs {
		dup := false
		for _, s := range seen {
			if tour.EqualModuloRotation(s, rec.Tour) {
				dup = true
				break
			}
		}
		if !dup {
			seen = append(seen, rec.Tour)
		}
	}

	return len(seen)
}

// WriteCSV writes one row per record.
func WriteCSV(w io.Writer, rep *Report) error {
	cw := csv.NewWriter(w)
	header := []string{"algorithm", "run", "seed", "best", "final", "fes", "iterations", "stop", "elapsed_ms"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, rec := range rep.Records {
		row := []string{
			rep.Algorithm,
			strconv.Itoa(rec.Run),
			strconv.FormatInt(rec.Seed, 10),
			strconv.FormatInt(rec.Best, 10),
			strconv.FormatInt(rec.Final, 10),
			strconv.FormatInt(rec.FEs, 10),
			strconv.FormatInt(rec.Iterations, 10),
			rec.Stop.String(),
			strconv.FormatFloat(float64(rec.Elapsed.Microseconds())/1000, 'f', 3, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}
