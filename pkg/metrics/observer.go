package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/pvframework"
)

// Observer records validation activity as Prometheus metrics.
//
// Metrics (with the default namespace and subsystem):
//   - pv_validation_invocations_total{validator, outcome}
//   - pv_validation_invocation_duration_seconds{validator}
//   - pv_validation_runs_total{result}
//   - pv_validation_run_duration_seconds
//   - pv_validation_findings_total{kind, mode}
type Observer struct {
	registry *prometheus.Registry

	invocations        *prometheus.CounterVec
	invocationDuration *prometheus.HistogramVec
	runs               *prometheus.CounterVec
	runDuration        prometheus.Histogram
	findings           *prometheus.CounterVec
}

var _ pvframework.Observer = (*Observer)(nil)

// New creates an Observer and registers its collectors with registry.
// A nil registry is replaced by a fresh one.
func New(cfg Config, registry *prometheus.Registry) *Observer {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	o := &Observer{
		registry: registry,
		invocations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "invocations_total",
				Help:      "Total number of validator invocations by outcome",
			},
			[]string{"validator", "outcome"},
		),
		invocationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "invocation_duration_seconds",
				Help:      "Duration of validator invocations in seconds",
				// most validators are pure functions
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10), // 10µs to ~2.6s
			},
			[]string{"validator"},
		),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "runs_total",
				Help:      "Total number of validation runs by result",
			},
			[]string{"result"},
		),
		runDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "run_duration_seconds",
				Help:      "Duration of validation runs in seconds",
				Buckets:   prometheus.DefBuckets,
			},
		),
		findings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "findings_total",
				Help:      "Total number of recorded findings by kind and mode",
			},
			[]string{"kind", "mode"},
		),
	}

	registry.MustRegister(o.invocations, o.invocationDuration, o.runs, o.runDuration, o.findings)
	if cfg.GoCollectors {
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	return o
}

// ObserveInvocation implements pvframework.Observer.
func (o *Observer) ObserveInvocation(validator string, outcome pvframework.Outcome, d time.Duration) {
	o.invocations.WithLabelValues(validator, string(outcome)).Inc()
	o.invocationDuration.WithLabelValues(validator).Observe(d.Seconds())
}

// ObserveRun implements pvframework.Observer.
func (o *Observer) ObserveRun(r *pvframework.Result) {
	result := "succeeded"
	if !r.Succeeded() {
		result = "failed"
	}
	o.runs.WithLabelValues(result).Inc()
	o.runDuration.Observe(r.Duration().Seconds())

	for _, e := range r.Errors() {
		o.findings.WithLabelValues(e.Kind.String(), e.Mode.String()).Inc()
	}
}

// Registry returns the registry the collectors are registered with.
func (o *Observer) Registry() *prometheus.Registry { return o.registry }

// Handler serves the registry in the Prometheus exposition format.
func (o *Observer) Handler() http.Handler {
	return promhttp.HandlerFor(o.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}
