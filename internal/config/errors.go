package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations.
var (
	// ErrFileNotFound indicates the configuration file doesn't exist.
	ErrFileNotFound = errors.New("config file not found")

	// ErrInvalidSetting indicates a setting holds an unusable value.
	ErrInvalidSetting = errors.New("invalid setting")
)

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	// Path is the file path that failed to parse.
	Path string
	// Format is the file format, e.g. "yaml".
	Format string
	// Line is the line number where the error occurred (if available).
	Line int
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s (%s) at line %d: %v", e.Path, e.Format, e.Line, e.Err)
	}
	return fmt.Sprintf("parse error in %s (%s): %v", e.Path, e.Format, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsParseError reports whether err is or wraps a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// ValidationError describes an invalid setting.
type ValidationError struct {
	// Setting is the setting name, e.g. "chord_policy".
	Setting string
	// Value is the invalid value.
	Value any
	// Message describes the problem.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v: %s", e.Setting, e.Value, e.Message)
}

// Unwrap returns ErrInvalidSetting so callers can match with errors.Is.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidSetting
}
