package input

import (
	"testing"

	"github.com/dshills/keychord/internal/dispatcher"
	"github.com/dshills/keychord/internal/input/key"
	"github.com/dshills/keychord/internal/input/keymap"
)

func TestCancelReasonString(t *testing.T) {
	if CancelKey.String() != "cancel-key" || CancelReason(99).String() != "unknown" {
		t.Errorf("unexpected names: %q %q", CancelKey.String(), CancelReason(99).String())
	}
}

func TestOutcomeString(t *testing.T) {
	tests := []struct {
		name string
		out  Outcome
		want string
	}{
		{
			name: "tick timeout",
			out:  Outcome{Cancelled: CancelTimeout},
			want: "cancelled(timeout)",
		},
		{
			name: "no match",
			out:  Outcome{Keystroke: key.Char('a', key.ModNone)},
			want: "a -> NoMatch",
		},
		{
			name: "cancel key",
			out:  Outcome{Keystroke: key.Named(key.KeyEscape, key.ModNone), Cancelled: CancelKey, Consumed: true},
			want: "escape -> cancelled(cancel-key)",
		},
		{
			name: "matched with messages",
			out: Outcome{
				Keystroke:  key.Char('k', key.ModCtrl),
				Resolution: keymap.Resolution{Kind: keymap.Matched, Command: "EscapeSmartClear"},
				Messages: []dispatcher.Message{
					dispatcher.Msg(dispatcher.TargetUI, "CloseModal"),
					dispatcher.Msg(dispatcher.TargetEditor, "ClearSelection"),
				},
			},
			want: "ctrl+k -> Matched(EscapeSmartClear) [ui.CloseModal, editor.ClearSelection]",
		},
		{
			name: "timeout then no match",
			out:  Outcome{Keystroke: key.Char('r', key.ModCtrl), Cancelled: CancelTimeout},
			want: "ctrl+r -> cancelled(timeout), NoMatch",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.out.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
