// Package monitor tracks search backend health. The monitor gates no traffic
// itself; every backend call site records its outcome here, and the counters
// feed logs and metrics. It is the seam where a circuit breaker would slot in.
package monitor

import (
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Monitor tracks consecutive failures against one logical backend identity.
// Safe for concurrent use.
type Monitor struct {
	name     string
	logger   *zap.Logger
	failures *prometheus.CounterVec

	consecutiveFailures atomic.Int64
	lastFailureNanos    atomic.Int64
}

// New creates a monitor for the named backend. failures may be nil to skip
// metric emission.
func New(name string, failures *prometheus.CounterVec, logger *zap.Logger) *Monitor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{name: name, logger: logger, failures: failures}
}

// Fail records a failed backend attempt with a human-readable context
// message. Never panics; safe to call on any error path.
func (m *Monitor) Fail(contextMsg string, err error) {
	count := m.consecutiveFailures.Add(1)
	m.lastFailureNanos.Store(time.Now().UnixNano())

	if m.failures != nil {
		m.failures.WithLabelValues(m.name).Inc()
	}

	m.logger.Error("backend failure",
		zap.String("backend", m.name),
		zap.String("context", contextMsg),
		zap.Int64("consecutive_failures", count),
		zap.Error(err),
	)
}

// Success records a successful backend attempt, resetting the consecutive
// failure count.
func (m *Monitor) Success() {
	if prev := m.consecutiveFailures.Swap(0); prev > 0 {
		m.logger.Info("backend recovered",
			zap.String("backend", m.name),
			zap.Int64("failures_before_recovery", prev),
		)
	}
}

// ConsecutiveFailures returns the current consecutive failure count.
func (m *Monitor) ConsecutiveFailures() int64 {
	return m.consecutiveFailures.Load()
}

// LastFailure returns the time of the most recent failure, zero if none.
func (m *Monitor) LastFailure() time.Time {
	nanos := m.lastFailureNanos.Load()
	if nanos == 0 {
		return time.Time{}
	}
	return time.Unix(0, nanos)
}
