package keymap

import (
	"errors"
	"fmt"
)

// Load errors
var (
	ErrInvalidPattern   = errors.New("keymap: invalid key pattern")
	ErrEmptyCommand     = errors.New("keymap: empty command")
	ErrUnknownCommand   = errors.New("keymap: unknown command")
	ErrUnknownCondition = errors.New("keymap: unknown condition")
	ErrUnknownPlatform  = errors.New("keymap: unknown platform")
	ErrDuplicateBinding = errors.New("keymap: duplicate binding")
	ErrMisplacedUnbind  = errors.New("keymap: Unbound is only valid in user records")
)

// ConfigError reports the first invalid record of a binding load.
// A load that returns a ConfigError produced no table at all.
type ConfigError struct {
	// Source is the layer the record came from.
	Source Source

	// Index is the record's position within its source.
	Index int

	// Key is the record's key pattern as written.
	Key string

	Err error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s keymap record %d (%q): %v", e.Source, e.Index, e.Key, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// IsConfigError reports whether err is or wraps a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
