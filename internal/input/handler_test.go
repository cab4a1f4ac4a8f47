package input

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/keychord/internal/dispatcher"
	"github.com/dshills/keychord/internal/input/key"
	"github.com/dshills/keychord/internal/input/keymap"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func loadTable(t *testing.T, user []keymap.Record) *keymap.Table {
	t.Helper()
	table, err := keymap.Load(keymap.BuiltinRecords(), user, keymap.LoadOptions{
		Platform: key.PlatformLinux,
		Commands: dispatcher.DefaultRegistry(),
	})
	require.NoError(t, err)
	return table
}

func newTestHandler(t *testing.T, ctx *MutableContext) (*Handler, *keymap.ManualClock) {
	t.Helper()
	clock := keymap.NewManualClock(epoch)
	config := DefaultConfig()
	config.Platform = key.PlatformLinux
	config.Clock = clock
	if ctx == nil {
		ctx = NewMutableContext(keymap.Context{EditorFocused: true})
	}
	return NewHandler(loadTable(t, nil), nil, ctx, config), clock
}

func rawCtrl(r rune) key.RawEvent {
	return key.RawEvent{Key: key.KeyRune, Rune: r, Modifiers: key.RawCtrlLeft}
}

func TestHandlerDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, 1000*time.Millisecond, config.ChordTimeout)
	assert.Equal(t, keymap.ChordWait, config.Policy)
	assert.Equal(t, []key.Keystroke{key.Named(key.KeyEscape, key.ModNone)}, config.CancelKeys)
	assert.True(t, config.EnableMetrics)
}

func TestHandlerSingleKeyMatch(t *testing.T) {
	h, _ := newTestHandler(t, nil)

	out, ok := h.HandleKey(rawCtrl('s'))
	require.True(t, ok)
	assert.True(t, out.Consumed)
	assert.Equal(t, keymap.Matched, out.Resolution.Kind)
	assert.Equal(t, keymap.CommandID("SaveFile"), out.Resolution.Command)
	require.Len(t, out.Messages, 1)
	assert.Equal(t, "app.SaveFile", out.Messages[0].String())
	assert.True(t, h.State().IsIdle())
}

func TestHandlerTextFallsThrough(t *testing.T) {
	h, _ := newTestHandler(t, nil)

	out, ok := h.HandleKey(key.RawEvent{Key: key.KeyRune, Rune: 'x'})
	require.True(t, ok)
	assert.False(t, out.Consumed)
	assert.Equal(t, keymap.NoMatch, out.Resolution.Kind)
	assert.Empty(t, out.Messages)
}

func TestHandlerModifierOnlyDropped(t *testing.T) {
	h, _ := newTestHandler(t, nil)

	_, ok := h.HandleKey(key.RawEvent{Modifiers: key.RawShiftLeft})
	assert.False(t, ok)
	assert.Equal(t, uint64(1), h.Metrics().Snapshot().Dropped)
}

func TestHandlerChord(t *testing.T) {
	h, clock := newTestHandler(t, nil)

	out, _ := h.HandleKey(rawCtrl('k'))
	assert.Equal(t, keymap.AwaitMore, out.Resolution.Kind)
	assert.True(t, out.Consumed)
	assert.Equal(t, "Ctrl+K", h.PendingKeys())

	clock.Advance(500 * time.Millisecond)
	out, _ = h.HandleKey(rawCtrl('r'))
	assert.Equal(t, keymap.Matched, out.Resolution.Kind)
	assert.Equal(t, keymap.CommandID("RevealInSidebar"), out.Resolution.Command)
	assert.Equal(t, "", h.PendingKeys())
}

func TestHandlerChordTimeoutBeforeKey(t *testing.T) {
	h, clock := newTestHandler(t, nil)

	h.HandleKey(rawCtrl('k'))
	clock.Advance(1500 * time.Millisecond)

	out, _ := h.HandleKey(rawCtrl('r'))
	assert.True(t, out.TimedOut())
	assert.Equal(t, keymap.NoMatch, out.Resolution.Kind)
	assert.False(t, out.Consumed)
	assert.True(t, h.State().IsIdle())
}

func TestHandlerTick(t *testing.T) {
	h, clock := newTestHandler(t, nil)

	_, ok := h.Tick()
	assert.False(t, ok, "idle tick reports nothing")

	h.HandleKey(rawCtrl('k'))
	clock.Advance(999 * time.Millisecond)
	_, ok = h.Tick()
	assert.False(t, ok, "deadline not reached")

	clock.Advance(2 * time.Millisecond)
	out, ok := h.Tick()
	require.True(t, ok)
	assert.True(t, out.TimedOut())
	assert.True(t, out.Keystroke.IsZero())
	assert.True(t, h.State().IsIdle())
	assert.Equal(t, uint64(1), h.Metrics().Snapshot().Timeouts)
}

func TestHandlerCancelKeyMidChord(t *testing.T) {
	h, _ := newTestHandler(t, nil)

	h.HandleKey(rawCtrl('k'))
	out, _ := h.HandleKey(key.RawEvent{Key: key.KeyEscape})

	assert.Equal(t, CancelKey, out.Cancelled)
	assert.True(t, out.Consumed)
	assert.Empty(t, out.Messages, "escape mid-chord must not dispatch")
	assert.True(t, h.State().IsIdle())
}

func TestHandlerEscapeWhenIdleResolves(t *testing.T) {
	ctx := NewMutableContext(keymap.Context{EditorFocused: true, HasSelection: true})
	h, _ := newTestHandler(t, ctx)

	out, _ := h.HandleKey(key.RawEvent{Key: key.KeyEscape})
	assert.Equal(t, CancelNone, out.Cancelled)
	assert.Equal(t, keymap.CommandID("ClearSelection"), out.Resolution.Command)

	ctx.Update(func(c *keymap.Context) {
		c.HasSelection = false
		c.ModalActive = true
	})
	out, _ = h.HandleKey(key.RawEvent{Key: key.KeyEscape})
	assert.Equal(t, keymap.CommandID("CloseModal"), out.Resolution.Command)
}

func TestHandlerContextSampledPerKeystroke(t *testing.T) {
	ctx := NewMutableContext(keymap.Context{EditorFocused: true})
	h, _ := newTestHandler(t, ctx)

	out, _ := h.HandleKey(key.RawEvent{Key: key.KeyTab})
	assert.Equal(t, keymap.CommandID("InsertTab"), out.Resolution.Command)

	ctx.Update(func(c *keymap.Context) { c.HasSelection = true })
	out, _ = h.HandleKey(key.RawEvent{Key: key.KeyTab})
	assert.Equal(t, keymap.CommandID("IndentLines"), out.Resolution.Command)
}

func TestHandlerCancel(t *testing.T) {
	h, _ := newTestHandler(t, nil)

	assert.False(t, h.Cancel(CancelFocus), "nothing pending")

	h.HandleKey(rawCtrl('k'))
	assert.True(t, h.Cancel(CancelFocus))
	assert.True(t, h.State().IsIdle())
	assert.Equal(t, uint64(1), h.Metrics().Snapshot().Cancellations)
}

func TestHandlerReloadAbandonsChord(t *testing.T) {
	h, _ := newTestHandler(t, nil)

	h.HandleKey(rawCtrl('k'))

	user := []keymap.Record{{Key: "ctrl+r", Command: "Redo"}}
	h.Reload(loadTable(t, user))

	out, _ := h.HandleKey(rawCtrl('r'))
	assert.Equal(t, CancelReload, out.Cancelled)
	assert.Equal(t, keymap.Matched, out.Resolution.Kind)
	assert.Equal(t, keymap.CommandID("Redo"), out.Resolution.Command,
		"ctrl+r resolves from scratch against the new table")
	assert.Equal(t, uint64(1), h.Metrics().Snapshot().Reloads)
}

func TestHandlerReloadWhileIdle(t *testing.T) {
	h, _ := newTestHandler(t, nil)

	next := loadTable(t, []keymap.Record{{Key: "ctrl+s", Command: "Unbound"}})
	h.Reload(next)
	assert.Same(t, next, h.Table())

	out, _ := h.HandleKey(rawCtrl('s'))
	assert.Equal(t, CancelNone, out.Cancelled)
	assert.Equal(t, keymap.NoMatch, out.Resolution.Kind)
}

func TestHandlerEagerPolicy(t *testing.T) {
	user := []keymap.Record{{Key: "ctrl+k", Command: "DeleteLine"}}
	config := DefaultConfig()
	config.Platform = key.PlatformLinux
	config.Policy = keymap.ChordEager
	config.Clock = keymap.NewManualClock(epoch)
	h := NewHandler(loadTable(t, user), nil, nil, config)

	out, _ := h.HandleKey(rawCtrl('k'))
	assert.Equal(t, keymap.Matched, out.Resolution.Kind)
	assert.Equal(t, keymap.CommandID("DeleteLine"), out.Resolution.Command)
}

func TestHandlerWaitPolicyPrefersChord(t *testing.T) {
	user := []keymap.Record{{Key: "ctrl+k", Command: "DeleteLine"}}
	config := DefaultConfig()
	config.Platform = key.PlatformLinux
	config.Clock = keymap.NewManualClock(epoch)
	h := NewHandler(loadTable(t, user), nil, nil, config)

	out, _ := h.HandleKey(rawCtrl('k'))
	assert.Equal(t, keymap.AwaitMore, out.Resolution.Kind)
}

func TestHandlerHookConsumes(t *testing.T) {
	h, _ := newTestHandler(t, nil)

	var post []Outcome
	h.Hooks().Register(FuncHook{
		Pre: func(k key.Keystroke, _ keymap.Context) bool {
			return k == key.Char('s', key.ModCtrl)
		},
		Post: func(o Outcome) { post = append(post, o) },
	})

	out, _ := h.HandleKey(rawCtrl('s'))
	assert.True(t, out.Consumed)
	assert.Equal(t, keymap.NoMatch, out.Resolution.Kind)
	assert.Empty(t, out.Messages)

	h.HandleKey(rawCtrl('z'))
	require.Len(t, post, 2)
	assert.Equal(t, keymap.CommandID("Undo"), post[1].Resolution.Command)
}

func TestHandlerClose(t *testing.T) {
	h, _ := newTestHandler(t, nil)
	h.Close()

	assert.True(t, h.IsClosed())
	_, ok := h.HandleKey(rawCtrl('s'))
	assert.False(t, ok)
	_, ok = h.Tick()
	assert.False(t, ok)
}

func TestHandlerDispatchFailureLogged(t *testing.T) {
	var buf bytes.Buffer
	config := DefaultConfig()
	config.Platform = key.PlatformLinux
	config.Logger = slog.New(slog.NewTextHandler(&buf, nil))

	h := NewHandler(loadTable(t, nil), dispatcher.New(dispatcher.NewRegistry(), dispatcher.DefaultConfig()), nil, config)

	out, _ := h.HandleKey(rawCtrl('s'))
	assert.Equal(t, keymap.Matched, out.Resolution.Kind)
	assert.Empty(t, out.Messages)
	assert.Contains(t, buf.String(), "dispatch failed")
}

func TestHandlerRun(t *testing.T) {
	h, _ := newTestHandler(t, nil)

	events := make(chan key.RawEvent, 3)
	events <- rawCtrl('s')
	events <- key.RawEvent{Modifiers: key.RawAltLeft}
	events <- rawCtrl('z')
	close(events)

	var got []keymap.CommandID
	err := h.Run(context.Background(), events, time.Hour, func(o Outcome) {
		got = append(got, o.Resolution.Command)
	})
	require.NoError(t, err)
	assert.Equal(t, []keymap.CommandID{"SaveFile", "Undo"}, got)
}

func TestHandlerRunContextCancelled(t *testing.T) {
	h, _ := newTestHandler(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := h.Run(ctx, make(chan key.RawEvent), time.Hour, func(Outcome) {})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHandlerRunClosed(t *testing.T) {
	h, _ := newTestHandler(t, nil)
	h.Close()

	err := h.Run(context.Background(), make(chan key.RawEvent), time.Hour, func(Outcome) {})
	assert.ErrorIs(t, err, ErrClosed)
}
