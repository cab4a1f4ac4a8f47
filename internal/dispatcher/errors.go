package dispatcher

import "errors"

// Dispatcher errors.
var (
	// ErrNotMatched indicates a resolution without a command was dispatched.
	// NoMatch and AwaitMore belong to the host, not the dispatcher.
	ErrNotMatched = errors.New("dispatcher: resolution is not a match")

	// ErrNoMessages indicates the command has no registered messages.
	ErrNoMessages = errors.New("dispatcher: no messages for command")

	// ErrInvalidCommand indicates a registration with an empty command id,
	// the reserved Unbound id, or no messages.
	ErrInvalidCommand = errors.New("dispatcher: invalid command")
)
