package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/dshills/keychord/internal/input/key"
	"github.com/dshills/keychord/internal/input/keymap"
	"github.com/dshills/keychord/internal/log"
)

// EnvPrefix prefixes environment overrides, e.g. KEYCHORD_CHORD_TIMEOUT.
const EnvPrefix = "KEYCHORD"

// Settings are the engine settings.
type Settings struct {
	// ChordTimeout is how long a pending chord waits, e.g. "1500ms".
	ChordTimeout time.Duration `mapstructure:"chord_timeout"`

	// Platform overrides platform detection: "macos", "windows", "linux"
	// or "" for the running system.
	Platform string `mapstructure:"platform"`

	SuppressRepeat bool `mapstructure:"suppress_repeat"`

	// ChordPolicy is "wait" or "eager".
	ChordPolicy string `mapstructure:"chord_policy"`

	// UserKeymap is the path of the user keymap file, if any.
	UserKeymap string `mapstructure:"user_keymap"`

	// Watch reloads the user keymap when the file changes.
	Watch bool `mapstructure:"watch"`

	LogLevel string `mapstructure:"log_level"`

	// LogFormat is "text" or "json".
	LogFormat string `mapstructure:"log_format"`

	// CancelKeys abandon a pending chord, e.g. ["escape"].
	CancelKeys []string `mapstructure:"cancel_keys"`
}

// Defaults returns the default settings.
func Defaults() Settings {
	return Settings{
		ChordTimeout: keymap.DefaultChordTimeout,
		ChordPolicy:  keymap.ChordWait.String(),
		LogLevel:     "info",
		LogFormat:    string(log.FormatText),
		CancelKeys:   []string{"escape"},
	}
}

// SetDefaults registers the default settings with v.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("chord_timeout", d.ChordTimeout)
	v.SetDefault("platform", d.Platform)
	v.SetDefault("suppress_repeat", d.SuppressRepeat)
	v.SetDefault("chord_policy", d.ChordPolicy)
	v.SetDefault("user_keymap", d.UserKeymap)
	v.SetDefault("watch", d.Watch)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
	v.SetDefault("cancel_keys", d.CancelKeys)
}

// NewViper returns a viper instance with defaults and KEYCHORD_ environment
// overrides registered.
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads settings from the file at path into v, layered over the
// defaults and under environment overrides and any flags bound to v. An
// empty path skips the file.
func Load(v *viper.Viper, path string) (Settings, error) {
	if path != "" {
		if err := ReadFile(v, path); err != nil {
			return Settings{}, err
		}
	}
	return FromViper(v)
}

// ReadFile merges the settings file at path into v. A missing file
// returns ErrFileNotFound; a malformed one a *ParseError.
func ReadFile(v *viper.Viper, path string) error {
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || isNotExist(err) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return &ParseError{Path: path, Format: formatOf(path), Err: err}
	}
	return nil
}

// FromViper decodes and validates settings from v.
func FromViper(v *viper.Viper) (Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decoding settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks every setting.
func (s Settings) Validate() error {
	if s.ChordTimeout <= 0 {
		return &ValidationError{Setting: "chord_timeout", Value: s.ChordTimeout, Message: "must be positive"}
	}
	if s.Platform != "" {
		if _, ok := key.ParsePlatform(s.Platform); !ok {
			return &ValidationError{Setting: "platform", Value: s.Platform, Message: "unknown platform"}
		}
	}
	if _, ok := keymap.ParseChordPolicy(s.ChordPolicy); !ok {
		return &ValidationError{Setting: "chord_policy", Value: s.ChordPolicy, Message: `must be "wait" or "eager"`}
	}
	if _, err := log.ParseLevel(s.LogLevel); err != nil {
		return &ValidationError{Setting: "log_level", Value: s.LogLevel, Message: err.Error()}
	}
	if _, err := log.ParseFormat(s.LogFormat); err != nil {
		return &ValidationError{Setting: "log_format", Value: s.LogFormat, Message: err.Error()}
	}
	if _, err := s.CancelKeystrokes(); err != nil {
		return &ValidationError{Setting: "cancel_keys", Value: s.CancelKeys, Message: err.Error()}
	}
	return nil
}

// Logging returns the parsed log level and format. Invalid values mean
// info and text.
func (s Settings) Logging() (slog.Level, log.Format) {
	level, _ := log.ParseLevel(s.LogLevel)
	format, _ := log.ParseFormat(s.LogFormat)
	return level, format
}

// ResolvedPlatform returns the configured platform, or the running one.
func (s Settings) ResolvedPlatform() key.Platform {
	if p, ok := key.ParsePlatform(s.Platform); ok && p != key.PlatformAny {
		return p
	}
	return key.CurrentPlatform()
}

// Policy returns the chord policy. Invalid values mean ChordWait.
func (s Settings) Policy() keymap.ChordPolicy {
	p, _ := keymap.ParseChordPolicy(s.ChordPolicy)
	return p
}

// CancelKeystrokes parses CancelKeys for the resolved platform.
func (s Settings) CancelKeystrokes() ([]key.Keystroke, error) {
	out := make([]key.Keystroke, 0, len(s.CancelKeys))
	for _, spec := range s.CancelKeys {
		k, err := key.Parse(spec, s.ResolvedPlatform())
		if err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, nil
}
