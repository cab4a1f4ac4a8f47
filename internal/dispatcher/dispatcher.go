package dispatcher

import (
	"fmt"
	"sync"

	"github.com/dshills/keychord/internal/input/keymap"
)

// PostDispatchHook observes every successful dispatch.
type PostDispatchHook func(cmd keymap.CommandID, msgs []Message)

// Dispatcher turns matched resolutions into the ordered messages of their
// command. It performs no editor mutation itself.
type Dispatcher struct {
	mu       sync.RWMutex
	registry *Registry
	config   Config
	metrics  *Metrics
	hooks    []PostDispatchHook
}

// New creates a dispatcher over registry.
func New(registry *Registry, config Config) *Dispatcher {
	if registry == nil {
		registry = NewRegistry()
	}
	d := &Dispatcher{
		registry: registry,
		config:   config,
	}
	if config.EnableMetrics {
		d.metrics = NewMetrics()
	}
	return d
}

// NewWithDefaults creates a dispatcher over the built-in commands.
func NewWithDefaults() *Dispatcher {
	return New(DefaultRegistry(), DefaultConfig())
}

// Registry returns the command registry.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Metrics returns dispatch statistics, or nil when disabled.
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// AddHook registers a hook run after each successful dispatch.
func (d *Dispatcher) AddHook(h PostDispatchHook) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.hooks = append(d.hooks, h)
}

// Dispatch returns the messages for a Matched resolution. Any other kind
// returns ErrNotMatched so the host keeps ownership of unresolved keys.
func (d *Dispatcher) Dispatch(res keymap.Resolution) ([]Message, error) {
	if res.Kind != keymap.Matched {
		return nil, fmt.Errorf("%w: %s", ErrNotMatched, res.Kind)
	}
	return d.DispatchCommand(res.Command)
}

// DispatchCommand returns the messages for cmd, e.g. when a command
// palette runs a command without a key.
func (d *Dispatcher) DispatchCommand(cmd keymap.CommandID) ([]Message, error) {
	msgs, ok := d.registry.Messages(cmd)
	if !ok {
		if d.metrics != nil {
			d.metrics.RecordMiss(cmd)
		}
		return nil, fmt.Errorf("%w %q", ErrNoMessages, cmd)
	}

	if d.metrics != nil {
		d.metrics.RecordDispatch(cmd, len(msgs))
	}

	d.mu.RLock()
	hooks := d.hooks
	d.mu.RUnlock()
	for _, h := range hooks {
		h(cmd, msgs)
	}
	return msgs, nil
}
