package dispatcher

import (
	"fmt"
	"slices"
	"sync"

	"github.com/dshills/keychord/internal/input/keymap"
)

// Registry maps command ids to the ordered messages they produce.
type Registry struct {
	mu       sync.RWMutex
	commands map[keymap.CommandID][]Message
}

// NewRegistry creates an empty command registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[keymap.CommandID][]Message),
	}
}

// Register maps id to msgs, replacing any previous registration.
// A command needs at least one message.
func (r *Registry) Register(id keymap.CommandID, msgs ...Message) error {
	if id == "" || id == keymap.Unbound {
		return fmt.Errorf("%w: %q", ErrInvalidCommand, id)
	}
	if len(msgs) == 0 {
		return fmt.Errorf("%w: %q has no messages", ErrInvalidCommand, id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands[id] = slices.Clone(msgs)
	return nil
}

// MustRegister is Register for static tables; it panics on error.
func (r *Registry) MustRegister(id keymap.CommandID, msgs ...Message) {
	if err := r.Register(id, msgs...); err != nil {
		panic(err)
	}
}

// Unregister removes a command.
func (r *Registry) Unregister(id keymap.CommandID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.commands, id)
}

// Messages returns a copy of the messages for id.
func (r *Registry) Messages(id keymap.CommandID) ([]Message, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	msgs, ok := r.commands[id]
	if !ok {
		return nil, false
	}
	return slices.Clone(msgs), true
}

// Known reports whether id is registered. It lets a Registry validate
// command ids while loading keymaps.
func (r *Registry) Known(id keymap.CommandID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.commands[id]
	return ok
}

// List returns all registered command ids, sorted.
func (r *Registry) List() []keymap.CommandID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]keymap.CommandID, 0, len(r.commands))
	for id := range r.commands {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Count returns the number of registered commands.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.commands)
}
