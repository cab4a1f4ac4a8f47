package input

import (
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/keychord/internal/input/keymap"
)

// Metrics tracks keystroke processing.
type Metrics struct {
	keystrokes    atomic.Uint64
	dropped       atomic.Uint64
	hookConsumed  atomic.Uint64
	matches       atomic.Uint64
	noMatches     atomic.Uint64
	awaits        atomic.Uint64
	ambiguities   atomic.Uint64
	cancellations atomic.Uint64
	timeouts      atomic.Uint64
	reloads       atomic.Uint64

	mu                sync.Mutex
	latencies         []time.Duration
	maxLatencySamples int
	latencyIdx        int

	peakLatency atomic.Int64

	startTime time.Time
	enabled   atomic.Bool
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{
		latencies:         make([]time.Duration, 1000),
		maxLatencySamples: 1000,
		startTime:         time.Now(),
	}
	m.enabled.Store(true)
	return m
}

// SetEnabled enables or disables metrics collection.
func (m *Metrics) SetEnabled(enabled bool) {
	m.enabled.Store(enabled)
}

// IsEnabled returns whether metrics collection is enabled.
func (m *Metrics) IsEnabled() bool {
	return m.enabled.Load()
}

// RecordKeystroke counts a resolved keystroke and the time it took.
func (m *Metrics) RecordKeystroke(o Outcome, latency time.Duration) {
	if !m.enabled.Load() {
		return
	}

	m.keystrokes.Add(1)
	m.RecordCancel(o.Cancelled)

	if o.Cancelled != CancelKey {
		switch o.Resolution.Kind {
		case keymap.Matched:
			m.matches.Add(1)
			if o.Resolution.Ambiguous {
				m.ambiguities.Add(1)
			}
		case keymap.AwaitMore:
			m.awaits.Add(1)
		case keymap.NoMatch:
			if o.Consumed {
				m.hookConsumed.Add(1)
			} else {
				m.noMatches.Add(1)
			}
		}
	}

	latencyNs := latency.Nanoseconds()
	for {
		current := m.peakLatency.Load()
		if latencyNs <= current {
			break
		}
		if m.peakLatency.CompareAndSwap(current, latencyNs) {
			break
		}
	}

	m.mu.Lock()
	m.latencies[m.latencyIdx] = latency
	m.latencyIdx = (m.latencyIdx + 1) % m.maxLatencySamples
	m.mu.Unlock()
}

// RecordCancel counts an abandoned chord.
func (m *Metrics) RecordCancel(reason CancelReason) {
	if !m.enabled.Load() || reason == CancelNone {
		return
	}
	if reason == CancelTimeout {
		m.timeouts.Add(1)
		return
	}
	m.cancellations.Add(1)
}

// RecordDropped counts a raw event the normalizer rejected.
func (m *Metrics) RecordDropped() {
	if !m.enabled.Load() {
		return
	}
	m.dropped.Add(1)
}

// RecordReload counts a keymap table swap.
func (m *Metrics) RecordReload() {
	if !m.enabled.Load() {
		return
	}
	m.reloads.Add(1)
}

// MetricsSnapshot holds a point-in-time view of metrics.
type MetricsSnapshot struct {
	Keystrokes    uint64
	Dropped       uint64
	HookConsumed  uint64
	Matches       uint64
	NoMatches     uint64
	Awaits        uint64
	Ambiguities   uint64
	Cancellations uint64
	Timeouts      uint64
	Reloads       uint64

	AvgLatency  time.Duration
	MaxLatency  time.Duration
	P99Latency  time.Duration
	PeakLatency time.Duration

	Uptime time.Duration
}

// Snapshot returns a point-in-time view of all metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.Lock()
	latencies := slices.Clone(m.latencies)
	start := m.startTime
	m.mu.Unlock()

	snap := MetricsSnapshot{
		Keystrokes:    m.keystrokes.Load(),
		Dropped:       m.dropped.Load(),
		HookConsumed:  m.hookConsumed.Load(),
		Matches:       m.matches.Load(),
		NoMatches:     m.noMatches.Load(),
		Awaits:        m.awaits.Load(),
		Ambiguities:   m.ambiguities.Load(),
		Cancellations: m.cancellations.Load(),
		Timeouts:      m.timeouts.Load(),
		Reloads:       m.reloads.Load(),
		PeakLatency:   time.Duration(m.peakLatency.Load()),
		Uptime:        time.Since(start),
	}
	snap.AvgLatency, snap.MaxLatency, snap.P99Latency = calculateLatencyStats(latencies)
	return snap
}

// calculateLatencyStats computes average, max, and p99 from a slice of latencies.
func calculateLatencyStats(latencies []time.Duration) (avg, maxLat, p99 time.Duration) {
	valid := make([]time.Duration, 0, len(latencies))
	for _, l := range latencies {
		if l > 0 {
			valid = append(valid, l)
		}
	}
	if len(valid) == 0 {
		return 0, 0, 0
	}

	var sum time.Duration
	for _, l := range valid {
		sum += l
	}
	avg = sum / time.Duration(len(valid))

	slices.Sort(valid)
	maxLat = valid[len(valid)-1]

	idx := int(float64(len(valid)) * 0.99)
	if idx >= len(valid) {
		idx = len(valid) - 1
	}
	p99 = valid[idx]

	return avg, maxLat, p99
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.keystrokes.Store(0)
	m.dropped.Store(0)
	m.hookConsumed.Store(0)
	m.matches.Store(0)
	m.noMatches.Store(0)
	m.awaits.Store(0)
	m.ambiguities.Store(0)
	m.cancellations.Store(0)
	m.timeouts.Store(0)
	m.reloads.Store(0)
	m.peakLatency.Store(0)

	m.mu.Lock()
	m.latencies = make([]time.Duration, m.maxLatencySamples)
	m.latencyIdx = 0
	m.startTime = time.Now()
	m.mu.Unlock()
}

// HealthStatus represents the current health status of input processing.
type HealthStatus struct {
	Healthy          bool
	PeakLatency      time.Duration
	LatencyThreshold time.Duration
	Message          string
}

// HealthCheck reports unhealthy when the peak keystroke latency exceeds
// latencyThreshold.
func (m *Metrics) HealthCheck(latencyThreshold time.Duration) HealthStatus {
	status := HealthStatus{
		Healthy:          true,
		PeakLatency:      time.Duration(m.peakLatency.Load()),
		LatencyThreshold: latencyThreshold,
		Message:          "healthy",
	}
	if status.PeakLatency > latencyThreshold {
		status.Healthy = false
		status.Message = "latency threshold exceeded"
	}
	return status
}
