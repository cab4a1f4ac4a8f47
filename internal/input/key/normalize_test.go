package key

import (
	"testing"
)

func TestNormalizeCollapsesModifiers(t *testing.T) {
	n := NewNormalizer(NormalizerConfig{Platform: PlatformLinux})

	left, ok := n.Normalize(RawEvent{Key: KeyRune, Rune: 's', Modifiers: RawCtrlLeft})
	if !ok {
		t.Fatal("left ctrl event produced nothing")
	}
	right, ok := n.Normalize(RawEvent{Key: KeyRune, Rune: 's', Modifiers: RawCtrlRight})
	if !ok {
		t.Fatal("right ctrl event produced nothing")
	}
	both, _ := n.Normalize(RawEvent{Key: KeyRune, Rune: 's', Modifiers: RawCtrlLeft | RawCtrlRight})

	want := Char('s', ModCtrl)
	if left != want || right != want || both != want {
		t.Errorf("left/right variants not collapsed: %#v %#v %#v", left, right, both)
	}
}

func TestNormalizeCommandModifier(t *testing.T) {
	tests := []struct {
		platform Platform
		want     Modifier
	}{
		{PlatformMacOS, ModMeta},
		{PlatformLinux, ModCtrl},
		{PlatformWindows, ModCtrl},
	}

	for _, tt := range tests {
		n := NewNormalizer(NormalizerConfig{Platform: tt.platform})
		got, ok := n.Normalize(RawEvent{Key: KeyRune, Rune: 'd', Modifiers: RawCommand})
		if !ok {
			t.Fatalf("%v: no keystroke", tt.platform)
		}
		if got.Modifiers != tt.want {
			t.Errorf("%v: command mapped to %v, want %v", tt.platform, got.Modifiers, tt.want)
		}
		if got != MustParse("cmd+d", tt.platform) {
			t.Errorf("%v: normalized keystroke does not match parsed cmd+d", tt.platform)
		}
	}
}

func TestNormalizeLetterCase(t *testing.T) {
	desktop := NewNormalizer(NormalizerConfig{Platform: PlatformLinux})
	got, _ := desktop.Normalize(RawEvent{Key: KeyRune, Rune: 'S', Modifiers: RawShiftLeft | RawCtrlLeft})
	if got != Char('s', ModCtrl|ModShift) {
		t.Errorf("desktop shift+S = %#v", got)
	}

	// Caps lock: upper-case rune without shift.
	got, _ = desktop.Normalize(RawEvent{Key: KeyRune, Rune: 'A'})
	if got != Char('a', ModNone) {
		t.Errorf("caps-lock A = %#v", got)
	}

	terminal := NewNormalizer(NormalizerConfig{Platform: PlatformLinux, CaseImpliesShift: true})
	got, _ = terminal.Normalize(RawEvent{Key: KeyRune, Rune: 'A'})
	if got != Char('a', ModShift) {
		t.Errorf("terminal A = %#v, want shift+a", got)
	}
}

func TestNormalizeShiftedSymbols(t *testing.T) {
	n := NewNormalizer(NormalizerConfig{Platform: PlatformLinux})
	got, ok := n.Normalize(RawEvent{Key: KeyRune, Rune: '?', Modifiers: RawShiftLeft | RawCtrlLeft})
	if !ok {
		t.Fatal("no keystroke")
	}
	if got != MustParse("ctrl+?", PlatformLinux) {
		t.Errorf("ctrl+shift+? = %#v, want ctrl+?", got)
	}
}

func TestNormalizeDropsEvents(t *testing.T) {
	tests := []struct {
		name   string
		config NormalizerConfig
		ev     RawEvent
	}{
		{"pure modifier", NormalizerConfig{}, RawEvent{Modifiers: RawShiftLeft}},
		{"suppressed repeat", NormalizerConfig{SuppressRepeat: true}, RawEvent{Key: KeyRune, Rune: 'a', Repeat: true}},
		{"control character", NormalizerConfig{}, RawEvent{Key: KeyRune, Rune: 0x01}},
		{"unknown key", NormalizerConfig{}, RawEvent{Key: KeyNone, Physical: KeyF1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewNormalizer(tt.config)
			if k, ok := n.Normalize(tt.ev); ok {
				t.Errorf("expected no keystroke, got %#v", k)
			}
		})
	}
}

func TestNormalizeRepeatAllowed(t *testing.T) {
	n := NewNormalizer(NormalizerConfig{Platform: PlatformLinux})
	if _, ok := n.Normalize(RawEvent{Key: KeyDown, Repeat: true}); !ok {
		t.Error("repeat should pass through when not suppressed")
	}
}

func TestNormalizePhysicalKeypadFallback(t *testing.T) {
	n := NewNormalizer(NormalizerConfig{Platform: PlatformLinux})

	got, ok := n.Normalize(RawEvent{Key: KeyNone, Physical: KeyKPAdd})
	if !ok || got != Named(KeyKPAdd, ModNone) {
		t.Errorf("keypad fallback = %#v, %v", got, ok)
	}

	// The logical key wins when present.
	got, _ = n.Normalize(RawEvent{Key: KeyEnter, Physical: KeyKPEnter})
	if got.Key != KeyEnter {
		t.Errorf("logical key should win, got %v", got.Key)
	}
}

func TestNormalizeSpace(t *testing.T) {
	n := NewNormalizer(NormalizerConfig{Platform: PlatformLinux})
	got, _ := n.Normalize(RawEvent{Key: KeyRune, Rune: ' ', Modifiers: RawCtrlLeft})
	if got != MustParse("ctrl+space", PlatformLinux) {
		t.Errorf("ctrl+space = %#v", got)
	}
}
