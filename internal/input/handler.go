package input

import (
	"errors"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/keychord/internal/dispatcher"
	"github.com/dshills/keychord/internal/input/key"
	"github.com/dshills/keychord/internal/input/keymap"
)

// Config configures the input handler.
type Config struct {
	// ChordTimeout is how long to wait for the next key of a chord.
	// Default: 1000ms
	ChordTimeout time.Duration

	// Policy decides between a complete binding and a longer chord.
	Policy keymap.ChordPolicy

	// Platform is the running platform. PlatformAny means the table's.
	Platform key.Platform

	// SuppressRepeat drops auto-repeat events.
	SuppressRepeat bool

	// CaseImpliesShift adds Shift to upper-case letters (terminals).
	CaseImpliesShift bool

	// CancelKeys abandon a pending chord without being resolved.
	// They resolve normally when no chord is pending.
	CancelKeys []key.Keystroke

	// EnableMetrics enables keystroke statistics.
	EnableMetrics bool

	// Clock stamps chord deadlines. Nil means the system clock.
	Clock keymap.Clock

	// Logger receives diagnostics. Nil discards them.
	Logger *slog.Logger
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		ChordTimeout:  keymap.DefaultChordTimeout,
		Policy:        keymap.ChordWait,
		CancelKeys:    []key.Keystroke{key.Named(key.KeyEscape, key.ModNone)},
		EnableMetrics: true,
	}
}

// ErrClosed is returned by operations on a closed handler.
var ErrClosed = errors.New("input handler closed")

// Handler is the host-side glue of the engine. It owns the chord state of
// one input stream, normalizes raw events, resolves them against the
// current table and dispatches matched commands.
type Handler struct {
	mu sync.Mutex

	config     Config
	normalizer *key.Normalizer
	resolver   *keymap.Resolver
	dispatcher *dispatcher.Dispatcher
	context    ContextProvider
	clock      keymap.Clock
	logger     *slog.Logger

	state keymap.ChordState

	// pending holds a table installed by Reload, swapped in before the
	// next keystroke or tick.
	pending atomic.Pointer[keymap.Table]

	hooks   *HookManager
	metrics *Metrics
	closed  bool
}

// NewHandler creates a handler over table. A nil context provider means
// an empty context; a nil dispatcher means the built-in commands.
func NewHandler(table *keymap.Table, d *dispatcher.Dispatcher, provider ContextProvider, config Config) *Handler {
	if config.Clock == nil {
		config.Clock = keymap.SystemClock{}
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if d == nil {
		d = dispatcher.NewWithDefaults()
	}
	if provider == nil {
		provider = ContextFunc(func() keymap.Context { return keymap.Context{} })
	}

	resolver := keymap.NewResolver(table, keymap.ResolverConfig{
		Timeout:  config.ChordTimeout,
		Platform: config.Platform,
		Policy:   config.Policy,
		Clock:    config.Clock,
		Logger:   logger,
	})
	config.Platform = resolver.Config().Platform
	config.ChordTimeout = resolver.Config().Timeout

	h := &Handler{
		config: config,
		normalizer: key.NewNormalizer(key.NormalizerConfig{
			Platform:         config.Platform,
			SuppressRepeat:   config.SuppressRepeat,
			CaseImpliesShift: config.CaseImpliesShift,
		}),
		resolver:   resolver,
		dispatcher: d,
		context:    provider,
		clock:      config.Clock,
		logger:     logger,
		hooks:      NewHookManager(),
	}
	if config.EnableMetrics {
		h.metrics = NewMetrics()
	}
	return h
}

// HandleKey normalizes and handles a raw key event. It returns false when
// the event produced no keystroke (modifier press, suppressed repeat) or
// the handler is closed.
func (h *Handler) HandleKey(ev key.RawEvent) (Outcome, bool) {
	k, ok := h.normalizer.Normalize(ev)
	if !ok {
		if h.metrics != nil {
			h.metrics.RecordDropped()
		}
		return Outcome{}, false
	}
	return h.HandleKeystroke(k)
}

// HandleKeystroke handles an already normalized keystroke.
//
// An expired chord is abandoned first, so the keystroke starts a fresh
// sequence. A cancel key pressed mid-chord abandons the chord and is
// consumed without being resolved.
func (h *Handler) HandleKeystroke(k key.Keystroke) (Outcome, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return Outcome{}, false
	}

	start := time.Now()
	out := Outcome{Keystroke: k}

	out.Cancelled = h.prepare()

	if !h.state.IsIdle() && h.isCancelKey(k) {
		h.state = keymap.Abandon(h.state)
		out.Cancelled = CancelKey
		out.Consumed = true
		h.finish(out, start)
		return out, true
	}

	ctx := h.context.KeymapContext()
	if h.hooks.RunPreKey(k, ctx) {
		out.Consumed = true
		h.finish(out, start)
		return out, true
	}

	res, next := h.resolver.Resolve(k, ctx, h.state)
	h.state = next
	out.Resolution = res

	switch res.Kind {
	case keymap.Matched:
		out.Consumed = true
		msgs, err := h.dispatcher.Dispatch(res)
		if err != nil {
			h.logger.Warn("dispatch failed", "cat", "input", "command", string(res.Command), "error", err)
		}
		out.Messages = msgs
	case keymap.AwaitMore:
		out.Consumed = true
	}

	h.finish(out, start)
	return out, true
}

// prepare swaps in a reloaded table and expires a stale chord. It returns
// why a pending chord was dropped, if one was.
func (h *Handler) prepare() CancelReason {
	reason := CancelNone
	if t := h.pending.Swap(nil); t != nil {
		h.resolver = h.resolver.WithTable(t)
		if h.metrics != nil {
			h.metrics.RecordReload()
		}
		if !h.state.IsIdle() {
			h.state = keymap.Abandon(h.state)
			reason = CancelReload
		}
	}

	if expired, next := h.resolver.CheckTimeout(h.state, h.clock.Now()); expired {
		h.state = next
		reason = CancelTimeout
	}
	return reason
}

func (h *Handler) finish(out Outcome, start time.Time) {
	if h.metrics != nil {
		h.metrics.RecordKeystroke(out, time.Since(start))
	}
	h.hooks.RunPostKey(out)
}

func (h *Handler) isCancelKey(k key.Keystroke) bool {
	return slices.Contains(h.config.CancelKeys, k)
}

// Tick expires a pending chord whose deadline has passed. Hosts call it
// from their timer or event loop; it returns an outcome only when
// something was cancelled.
func (h *Handler) Tick() (Outcome, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return Outcome{}, false
	}
	reason := h.prepare()
	if reason == CancelNone {
		return Outcome{}, false
	}
	if h.metrics != nil {
		h.metrics.RecordCancel(reason)
	}
	return Outcome{Cancelled: reason}, true
}

// Cancel abandons a pending chord, e.g. on a pointer click or focus loss.
// It reports whether a chord was pending.
func (h *Handler) Cancel(reason CancelReason) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.state.IsIdle() {
		return false
	}
	h.state = keymap.Abandon(h.state)
	if h.metrics != nil {
		h.metrics.RecordCancel(reason)
	}
	h.logger.Debug("chord cancelled", "cat", "input", "reason", reason.String())
	return true
}

// Reload installs t as the binding table. The swap takes effect before
// the next keystroke or tick; a chord pending at that point is abandoned.
// Reload does not block on key handling, so a file watcher may call it
// from its own goroutine.
func (h *Handler) Reload(t *keymap.Table) {
	if t == nil {
		return
	}
	h.pending.Store(t)
}

// Table returns the table keystrokes currently resolve against, including
// one installed by Reload but not yet swapped in.
func (h *Handler) Table() *keymap.Table {
	if t := h.pending.Load(); t != nil {
		return t
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.resolver.Table()
}

// State returns the current chord state.
func (h *Handler) State() keymap.ChordState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// PendingKeys renders the pending chord prefix for a status line, or ""
// when idle.
func (h *Handler) PendingKeys() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.resolver.DescribePending(h.state)
}

// Config returns the effective configuration.
func (h *Handler) Config() Config {
	return h.config
}

// Hooks returns the hook manager.
func (h *Handler) Hooks() *HookManager {
	return h.hooks
}

// Metrics returns keystroke statistics, or nil when disabled.
func (h *Handler) Metrics() *Metrics {
	return h.metrics
}

// Dispatcher returns the command dispatcher.
func (h *Handler) Dispatcher() *dispatcher.Dispatcher {
	return h.dispatcher
}

// Close stops the handler. Further keystrokes are ignored.
func (h *Handler) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	h.state = keymap.Idle()
}

// IsClosed returns whether the handler is closed.
func (h *Handler) IsClosed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closed
}
