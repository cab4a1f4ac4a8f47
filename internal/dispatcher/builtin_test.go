package dispatcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/keychord/internal/input/key"
	"github.com/dshills/keychord/internal/input/keymap"
)

func TestBuiltinRecordsAreRegistered(t *testing.T) {
	r := DefaultRegistry()

	for _, rec := range keymap.BuiltinRecords() {
		if rec.IsUnbind() {
			continue
		}
		assert.Truef(t, r.Known(keymap.CommandID(rec.Command)),
			"builtin binding %q uses unregistered command %q", rec.Key, rec.Command)
	}
}

func TestBuiltinsLoadAgainstRegistry(t *testing.T) {
	r := DefaultRegistry()

	for _, p := range []key.Platform{key.PlatformMacOS, key.PlatformLinux, key.PlatformWindows} {
		table, err := keymap.Load(keymap.BuiltinRecords(), nil, keymap.LoadOptions{
			Platform: p,
			Commands: r,
		})
		require.NoError(t, err, "platform %s", p)
		assert.Positive(t, table.Len())
	}
}

func TestEscapeSmartClearMessages(t *testing.T) {
	msgs, ok := DefaultRegistry().Messages("EscapeSmartClear")
	require.True(t, ok)
	require.Len(t, msgs, 3)

	assert.Equal(t, "ui.CloseModal", msgs[0].String())
	assert.Equal(t, "editor.CollapseToSingleCursor", msgs[1].String())
	assert.Equal(t, "editor.ClearSelection", msgs[2].String())
}

func TestBuiltinCursorMovementArgs(t *testing.T) {
	r := DefaultRegistry()

	msgs, ok := r.Messages("MoveCursorLeft")
	require.True(t, ok)
	assert.Equal(t, MsgArg(TargetEditor, "MoveCursor", "left"), msgs[0])
}
