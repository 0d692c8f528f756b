// Package metrics exposes Prometheus collectors for board persistence and validation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "msgboard"

// Result label values.
const (
	ResultOK      = "ok"
	ResultMissing = "missing"
	ResultError   = "error"
	ResultCorrupt = "corrupt"
)

// Metrics groups the collectors used across the board.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	reads      *prometheus.CounterVec
	writes     *prometheus.CounterVec
	coalesced  prometheus.Counter
	validation *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
// Passing nil skips registration, which is handy in tests.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		reads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "storage_reads_total",
			Help:      "Key-value reads by collection kind and result.",
		}, []string{"kind", "result"}),
		writes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "storage_writes_total",
			Help:      "Key-value writes by collection kind and result.",
		}, []string{"kind", "result"}),
		coalesced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "storage_writes_coalesced_total",
			Help:      "Pending writes replaced by a newer value for the same key before being issued.",
		}),
		validation: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_failures_total",
			Help:      "Rejected mutations by reason.",
		}, []string{"reason"}),
	}
	if reg != nil {
		reg.MustRegister(m.reads, m.writes, m.coalesced, m.validation)
	}
	return m
}

// Read records the outcome of a key-value read.
func (m *Metrics) Read(kind, result string) {
	if m == nil {
		return
	}
	m.reads.WithLabelValues(kind, result).Inc()
}

// Write records the outcome of a key-value write.
func (m *Metrics) Write(kind, result string) {
	if m == nil {
		return
	}
	m.writes.WithLabelValues(kind, result).Inc()
}

// Coalesced records a pending write that was superseded.
func (m *Metrics) Coalesced() {
	if m == nil {
		return
	}
	m.coalesced.Inc()
}

// ValidationFailure records a rejected mutation.
func (m *Metrics) ValidationFailure(reason string) {
	if m == nil {
		return
	}
	m.validation.WithLabelValues(reason).Inc()
}
