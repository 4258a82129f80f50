// Package metrics collects engine-level counters. A nil *Collector is
// valid and records nothing, so callers never need to branch on
// whether metrics are enabled.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Collector holds the engine's Prometheus instruments.
type Collector struct {
	scriptEvaluations    prometheus.Counter
	scriptFailures       prometheus.Counter
	conditionEvaluations prometheus.Counter
	validationRuns       prometheus.Counter
	validationFailures   prometheus.Counter
	rowGenerations       prometheus.Counter
}

// New registers the engine counters on reg and returns the collector.
func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		scriptEvaluations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "formweave",
			Name:      "script_evaluations_total",
			Help:      "Number of sandbox script evaluations.",
		}),
		scriptFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "formweave",
			Name:      "script_failures_total",
			Help:      "Number of sandbox script evaluations that failed.",
		}),
		conditionEvaluations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "formweave",
			Name:      "condition_evaluations_total",
			Help:      "Number of no-code condition set evaluations.",
		}),
		validationRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "formweave",
			Name:      "validation_runs_total",
			Help:      "Number of submission validation walks.",
		}),
		validationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "formweave",
			Name:      "validation_failures_total",
			Help:      "Number of validation walks ending in a failure.",
		}),
		rowGenerations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "formweave",
			Name:      "row_generations_total",
			Help:      "Number of row generation walks.",
		}),
	}
	reg.MustRegister(
		c.scriptEvaluations,
		c.scriptFailures,
		c.conditionEvaluations,
		c.validationRuns,
		c.validationFailures,
		c.rowGenerations,
	)
	return c
}

func (c *Collector) ScriptEvaluation() {
	if c != nil {
		c.scriptEvaluations.Inc()
	}
}

func (c *Collector) ScriptFailure() {
	if c != nil {
		c.scriptFailures.Inc()
	}
}

func (c *Collector) ConditionEvaluation() {
	if c != nil {
		c.conditionEvaluations.Inc()
	}
}

func (c *Collector) ValidationRun() {
	if c != nil {
		c.validationRuns.Inc()
	}
}

func (c *Collector) ValidationFailure() {
	if c != nil {
		c.validationFailures.Inc()
	}
}

func (c *Collector) RowGeneration() {
	if c != nil {
		c.rowGenerations.Inc()
	}
}
