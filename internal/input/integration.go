package input

import (
	"context"
	"time"

	"github.com/dshills/keychord/internal/input/key"
)

// DefaultTickInterval is how often Run checks the chord deadline.
const DefaultTickInterval = 50 * time.Millisecond

// Run feeds raw events to the handler until ctx is done or events is
// closed, calling emit with every outcome. A ticker expires pending chords
// while no keys arrive. A zero interval means DefaultTickInterval.
//
// Run returns nil when events is closed, ctx.Err() when ctx is done and
// ErrClosed when the handler is closed.
func (h *Handler) Run(ctx context.Context, events <-chan key.RawEvent, interval time.Duration, emit func(Outcome)) error {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if h.IsClosed() {
			return ErrClosed
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if out, ok := h.HandleKey(ev); ok {
				emit(out)
			}
		case <-ticker.C:
			if out, ok := h.Tick(); ok {
				emit(out)
			}
		}
	}
}
