package objective

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the search counters exported to prometheus. One Metrics is
// shared by every run of a process.
type Metrics struct {
	Evaluations  prometheus.Counter
	Improvements prometheus.Counter
	BestCost     prometheus.Gauge
	Runs         *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Evaluations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "permsearch_evaluations_total",
			Help: "Total number of objective function evaluations",
		}),
		Improvements: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "permsearch_improvements_total",
			Help: "Total number of best-so-far improvements",
		}),
		BestCost: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "permsearch_best_cost",
			Help: "Best tour cost of the most recently finished run",
		}),
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "permsearch_runs_total",
				Help: "Finished runs by algorithm and stop reason",
			},
			[]string{"algorithm", "stop"},
		),
	}
	for _, c := range []prometheus.Collector{m.Evaluations, m.Improvements, m.BestCost, m.Runs} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("objective: register metrics: %w", err)
		}
	}

	return m, nil
}

// ObserveRun records a finished run.
func (m *Metrics) ObserveRun(algorithm, stop string, best int64) {
	m.Runs.WithLabelValues(algorithm, stop).Inc()
	m.BestCost.Set(float64(best))
}
