package key

import (
	"runtime"
	"testing"
)

func TestParsePlatform(t *testing.T) {
	tests := []struct {
		name string
		want Platform
		ok   bool
	}{
		{"macos", PlatformMacOS, true},
		{"Darwin", PlatformMacOS, true},
		{"windows", PlatformWindows, true},
		{"linux", PlatformLinux, true},
		{"beos", PlatformAny, false},
		{"", PlatformAny, false},
	}

	for _, tt := range tests {
		got, ok := ParsePlatform(tt.name)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParsePlatform(%q) = %v, %v; want %v, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCurrentPlatform(t *testing.T) {
	p := CurrentPlatform()
	switch runtime.GOOS {
	case "darwin":
		if p != PlatformMacOS {
			t.Errorf("CurrentPlatform() = %v on darwin", p)
		}
	case "windows":
		if p != PlatformWindows {
			t.Errorf("CurrentPlatform() = %v on windows", p)
		}
	default:
		if p != PlatformLinux {
			t.Errorf("CurrentPlatform() = %v on %s", p, runtime.GOOS)
		}
	}
}

func TestPlatformAllows(t *testing.T) {
	if !PlatformAny.Allows(PlatformLinux) {
		t.Error("unrestricted binding should apply everywhere")
	}
	if !PlatformMacOS.Allows(PlatformMacOS) {
		t.Error("macos binding should apply on macos")
	}
	if PlatformMacOS.Allows(PlatformWindows) {
		t.Error("macos binding should not apply on windows")
	}
}
