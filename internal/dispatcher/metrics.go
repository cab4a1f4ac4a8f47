package dispatcher

import (
	"sort"
	"sync"
	"time"

	"github.com/dshills/keychord/internal/input/keymap"
)

// Metrics collects dispatch statistics.
type Metrics struct {
	mu sync.RWMutex

	commandMetrics map[keymap.CommandID]*CommandMetrics

	totalDispatches uint64
	totalMessages   uint64
	totalMisses     uint64
}

// CommandMetrics holds metrics for a specific command.
type CommandMetrics struct {
	Command       keymap.CommandID
	DispatchCount uint64
	LastDispatch  time.Time
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		commandMetrics: make(map[keymap.CommandID]*CommandMetrics),
	}
}

// RecordDispatch records a successful dispatch producing n messages.
func (m *Metrics) RecordDispatch(cmd keymap.CommandID, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalDispatches++
	m.totalMessages += uint64(n)

	cm := m.commandMetrics[cmd]
	if cm == nil {
		cm = &CommandMetrics{Command: cmd}
		m.commandMetrics[cmd] = cm
	}
	cm.DispatchCount++
	cm.LastDispatch = time.Now()
}

// RecordMiss records a dispatch of an unregistered command.
func (m *Metrics) RecordMiss(keymap.CommandID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totalMisses++
}

// TotalDispatches returns the number of successful dispatches.
func (m *Metrics) TotalDispatches() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalDispatches
}

// TotalMessages returns the number of messages produced.
func (m *Metrics) TotalMessages() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalMessages
}

// TotalMisses returns the number of dispatches of unknown commands.
func (m *Metrics) TotalMisses() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalMisses
}

// CommandStats returns a copy of the metrics for cmd, or nil.
func (m *Metrics) CommandStats(cmd keymap.CommandID) *CommandMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cm := m.commandMetrics[cmd]
	if cm == nil {
		return nil
	}
	cp := *cm
	return &cp
}

// TopCommands returns the n most dispatched commands.
func (m *Metrics) TopCommands(n int) []*CommandMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*CommandMetrics, 0, len(m.commandMetrics))
	for _, cm := range m.commandMetrics {
		cp := *cm
		out = append(out, &cp)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].DispatchCount != out[j].DispatchCount {
			return out[i].DispatchCount > out[j].DispatchCount
		}
		return out[i].Command < out[j].Command
	})

	if n > len(out) {
		n = len(out)
	}
	return out[:n]
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.commandMetrics = make(map[keymap.CommandID]*CommandMetrics)
	m.totalDispatches = 0
	m.totalMessages = 0
	m.totalMisses = 0
}
