package key

import (
	"runtime"
	"strings"
)

// Platform identifies an operating system family for platform-restricted
// bindings and platform-specific modifier semantics.
type Platform uint8

const (
	// PlatformAny means no restriction.
	PlatformAny Platform = iota
	PlatformMacOS
	PlatformWindows
	PlatformLinux
)

// String returns the configuration name of the platform.
func (p Platform) String() string {
	switch p {
	case PlatformMacOS:
		return "macos"
	case PlatformWindows:
		return "windows"
	case PlatformLinux:
		return "linux"
	default:
		return ""
	}
}

// ParsePlatform resolves a configuration platform name.
// "mac", "darwin" and "osx" are accepted for macOS.
func ParsePlatform(name string) (Platform, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "macos", "mac", "darwin", "osx":
		return PlatformMacOS, true
	case "windows", "win":
		return PlatformWindows, true
	case "linux":
		return PlatformLinux, true
	}
	return PlatformAny, false
}

// CurrentPlatform returns the platform the process is running on.
// Unix flavours other than macOS are treated as Linux.
func CurrentPlatform() Platform {
	switch runtime.GOOS {
	case "darwin", "ios":
		return PlatformMacOS
	case "windows":
		return PlatformWindows
	default:
		return PlatformLinux
	}
}

// CommandModifier returns the physical modifier behind the platform
// "command" key: Meta on macOS, Ctrl everywhere else.
func (p Platform) CommandModifier() Modifier {
	if p == PlatformMacOS {
		return ModMeta
	}
	return ModCtrl
}

// Allows reports whether a binding restricted to p applies on running.
func (p Platform) Allows(running Platform) bool {
	return p == PlatformAny || p == running
}
