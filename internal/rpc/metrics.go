package rpc

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics tracks Prometheus metrics for the RPC engine.
//
// All metrics use the govirt_rpc_ prefix. Metrics are designed for
// observability into call latency and dispatch health without affecting
// the hot path when no Prometheus registerer is wired up.
type Metrics struct {
	// CallsTotal counts calls by procedure and final status.
	CallsTotal *prometheus.CounterVec

	// CallDuration tracks round-trip latency distribution by procedure.
	CallDuration *prometheus.HistogramVec

	// PendingCalls tracks the current size of the pending-call table.
	PendingCalls prometheus.Gauge

	// UnmatchedRepliesTotal counts replies whose serial had no waiter,
	// e.g. because the caller's context was already cancelled.
	UnmatchedRepliesTotal prometheus.Counter
}

// NewMetrics creates RPC engine metrics with the govirt_rpc_ prefix.
//
// Parameters:
//   - reg: Prometheus registerer (typically prometheus.DefaultRegisterer)
//
// Returns a configured Metrics struct with all metrics registered.
// Panics if registration fails (expected during initialization only).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		CallsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "govirt_rpc_calls_total",
				Help: "Total RPC calls by procedure and status",
			},
			[]string{"procedure", "status"},
		),
		CallDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "govirt_rpc_call_duration_seconds",
				Help:    "RPC call round-trip duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"procedure"},
		),
		PendingCalls: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "govirt_rpc_pending_calls",
				Help: "Current number of calls awaiting a reply",
			},
		),
		UnmatchedRepliesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "govirt_rpc_unmatched_replies_total",
				Help: "Total replies received for a serial with no registered waiter",
			},
		),
	}

	reg.MustRegister(m.CallsTotal, m.CallDuration, m.PendingCalls, m.UnmatchedRepliesTotal)
	return m
}

// ObserveCall records one completed call's outcome and latency.
func (m *Metrics) ObserveCall(procedure uint32, status string, started time.Time) {
	if m == nil {
		return
	}
	label := procedureLabel(procedure)
	m.CallsTotal.WithLabelValues(label, status).Inc()
	m.CallDuration.WithLabelValues(label).Observe(time.Since(started).Seconds())
}

func procedureLabel(procedure uint32) string {
	return strconv.FormatUint(uint64(procedure), 10)
}
