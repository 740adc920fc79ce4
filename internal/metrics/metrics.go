// Package metrics exposes a running solver's search statistics as
// Prometheus gauges/counters, for the optional --metrics-addr surface.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/arlojansen/cdcl/internal/sat"
)

// Collector implements prometheus.Collector over a *sat.Solver's public
// counters. It is read-only: the solver is scraped at collection time,
// never mutated.
type Collector struct {
	solver *sat.Solver

	conflicts  *prometheus.Desc
	restarts   *prometheus.Desc
	iterations *prometheus.Desc
	learnts    *prometheus.Desc
	constrs    *prometheus.Desc
}

// NewCollector returns a Collector scraping s's statistics on demand.
func NewCollector(s *sat.Solver) *Collector {
	return &Collector{
		solver:     s,
		conflicts:  prometheus.NewDesc("cdcl_conflicts_total", "Total number of conflicts encountered.", nil, nil),
		restarts:   prometheus.NewDesc("cdcl_restarts_total", "Total number of search restarts.", nil, nil),
		iterations: prometheus.NewDesc("cdcl_iterations_total", "Total number of search-loop iterations.", nil, nil),
		learnts:    prometheus.NewDesc("cdcl_learnt_clauses", "Current number of learnt clauses retained.", nil, nil),
		constrs:    prometheus.NewDesc("cdcl_constraints", "Number of original (non-learnt) clauses.", nil, nil),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.conflicts
	ch <- c.restarts
	ch <- c.iterations
	ch <- c.learnts
	ch <- c.constrs
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.conflicts, prometheus.CounterValue, float64(c.solver.TotalConflicts))
	ch <- prometheus.MustNewConstMetric(c.restarts, prometheus.CounterValue, float64(c.solver.TotalRestarts))
	ch <- prometheus.MustNewConstMetric(c.iterations, prometheus.CounterValue, float64(c.solver.TotalIterations))
	ch <- prometheus.MustNewConstMetric(c.learnts, prometheus.GaugeValue, float64(c.solver.NumLearnts()))
	ch <- prometheus.MustNewConstMetric(c.constrs, prometheus.GaugeValue, float64(c.solver.NumConstraints()))
}

// Serve starts a blocking HTTP server exposing c on /metrics at addr. The
// caller is expected to run it in its own goroutine; it returns only on
// error or listener shutdown.
func Serve(addr string, c *Collector) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(c)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return http.ListenAndServe(addr, mux)
}
