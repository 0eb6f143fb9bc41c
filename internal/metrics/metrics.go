// Package metrics exposes Prometheus collectors for the ledger and its RPC surface.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Cascade steps.
const (
	StepRecompute  = "recompute"
	StepStatusFlip = "status_flip"
	StepReconcile  = "reconcile"
)

// Outcomes.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Metrics holds the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	cascades  *prometheus.CounterVec
	recompute prometheus.Histogram
	rpcs      *prometheus.CounterVec
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		cascades: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "feeledger",
			Name:      "cascade_total",
			Help:      "Secondary writes triggered by fee and payment mutations, by step and outcome.",
		}, []string{"step", "outcome"}),
		recompute: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "feeledger",
			Name:      "recompute_duration_seconds",
			Help:      "Time spent recomputing one client's aggregates.",
			Buckets:   prometheus.DefBuckets,
		}),
		rpcs: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "feeledger",
			Name:      "rpc_requests_total",
			Help:      "RPC requests by procedure and result code.",
		}, []string{"procedure", "code"}),
	}
}

// Cascade counts one secondary write.
func (m *Metrics) Cascade(step string, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	m.cascades.WithLabelValues(step, outcome).Inc()
}

// CascadeCounter returns the counter for step and outcome, for inspection in tests.
func (m *Metrics) CascadeCounter(step, outcome string) prometheus.Counter {
	return m.cascades.WithLabelValues(step, outcome)
}

// ObserveRecompute records the duration of a recompute that started at start.
func (m *Metrics) ObserveRecompute(start time.Time) {
	if m == nil {
		return
	}
	m.recompute.Observe(time.Since(start).Seconds())
}

// RPC counts one request.
func (m *Metrics) RPC(procedure, code string) {
	if m == nil {
		return
	}
	m.rpcs.WithLabelValues(procedure, code).Inc()
}

// RPCCounter returns the counter for procedure and code, for inspection in tests.
func (m *Metrics) RPCCounter(procedure, code string) prometheus.Counter {
	return m.rpcs.WithLabelValues(procedure, code)
}

// Handler serves the metrics gathered by g in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
