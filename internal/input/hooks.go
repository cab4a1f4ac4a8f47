package input

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/dshills/keychord/internal/input/key"
	"github.com/dshills/keychord/internal/input/keymap"
)

// Hook allows interception of keystroke handling.
type Hook interface {
	// PreKey is called after normalization and before resolution.
	// Return true to consume the keystroke; the chord state is untouched.
	PreKey(k key.Keystroke, ctx keymap.Context) bool

	// PostKey is called with the outcome of every handled keystroke.
	PostKey(o Outcome)
}

// HookPriority defines the execution order for hooks.
// Lower values execute first.
type HookPriority int

const (
	HookPriorityHighest HookPriority = -1000
	HookPriorityHigh    HookPriority = -100
	HookPriorityNormal  HookPriority = 0
	HookPriorityLow     HookPriority = 100
	HookPriorityLowest  HookPriority = 1000
)

// HookID uniquely identifies a registered hook.
type HookID uint64

// HookRegistration holds metadata about a registered hook.
type HookRegistration struct {
	ID       HookID
	Name     string
	Priority HookPriority
	Hook     Hook
}

// HookManager runs hooks in priority order; hooks of equal priority run in
// registration order.
type HookManager struct {
	mu      sync.RWMutex
	hooks   []HookRegistration
	nextID  HookID
	sorted  bool
	enabled bool
}

// NewHookManager creates a new hook manager.
func NewHookManager() *HookManager {
	return &HookManager{
		enabled: true,
		sorted:  true,
	}
}

// Register adds a hook with default priority.
func (m *HookManager) Register(hook Hook) HookID {
	return m.RegisterWithOptions(hook, "", HookPriorityNormal)
}

// RegisterWithOptions adds a hook with a name and priority.
func (m *HookManager) RegisterWithOptions(hook Hook, name string, priority HookPriority) HookID {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	m.hooks = append(m.hooks, HookRegistration{
		ID:       m.nextID,
		Name:     name,
		Priority: priority,
		Hook:     hook,
	})
	m.sorted = false
	return m.nextID
}

// Unregister removes a hook by ID.
func (m *HookManager) Unregister(id HookID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.hooks {
		if m.hooks[i].ID == id {
			m.hooks = append(m.hooks[:i], m.hooks[i+1:]...)
			return true
		}
	}
	return false
}

// UnregisterByName removes the first hook registered under name.
func (m *HookManager) UnregisterByName(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.hooks {
		if name != "" && m.hooks[i].Name == name {
			m.hooks = append(m.hooks[:i], m.hooks[i+1:]...)
			return true
		}
	}
	return false
}

// SetEnabled enables or disables all hooks.
func (m *HookManager) SetEnabled(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enabled = enabled
}

// Count returns the number of registered hooks.
func (m *HookManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.hooks)
}

// snapshot returns the enabled hooks in run order.
func (m *HookManager) snapshot() []Hook {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.enabled || len(m.hooks) == 0 {
		return nil
	}
	if !m.sorted {
		sort.SliceStable(m.hooks, func(i, j int) bool {
			return m.hooks[i].Priority < m.hooks[j].Priority
		})
		m.sorted = true
	}

	hooks := make([]Hook, len(m.hooks))
	for i := range m.hooks {
		hooks[i] = m.hooks[i].Hook
	}
	return hooks
}

// RunPreKey runs PreKey hooks in order and reports whether one consumed k.
func (m *HookManager) RunPreKey(k key.Keystroke, ctx keymap.Context) bool {
	for _, hook := range m.snapshot() {
		if hook.PreKey(k, ctx) {
			return true
		}
	}
	return false
}

// RunPostKey runs PostKey hooks in order.
func (m *HookManager) RunPostKey(o Outcome) {
	for _, hook := range m.snapshot() {
		hook.PostKey(o)
	}
}

// FuncHook builds a Hook from optional functions.
type FuncHook struct {
	Pre  func(k key.Keystroke, ctx keymap.Context) bool
	Post func(o Outcome)
}

// PreKey calls Pre if set.
func (h FuncHook) PreKey(k key.Keystroke, ctx keymap.Context) bool {
	if h.Pre != nil {
		return h.Pre(k, ctx)
	}
	return false
}

// PostKey calls Post if set.
func (h FuncHook) PostKey(o Outcome) {
	if h.Post != nil {
		h.Post(o)
	}
}

// LoggingHook logs every outcome at debug level.
type LoggingHook struct {
	Logger *slog.Logger
}

// PreKey never consumes.
func (LoggingHook) PreKey(key.Keystroke, keymap.Context) bool {
	return false
}

// PostKey logs o.
func (h LoggingHook) PostKey(o Outcome) {
	if h.Logger == nil {
		return
	}
	h.Logger.Debug("keystroke",
		"key", o.Keystroke.String(),
		"result", o.Resolution.Kind.String(),
		"command", string(o.Resolution.Command),
		"cancelled", o.Cancelled.String(),
		"consumed", o.Consumed)
}
