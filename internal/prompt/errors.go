package prompt

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C) or declined to
	// continue.
	ErrAborted = errors.New("prompt: aborted")
	// ErrNoSubmitter is returned when a wizard runs without a submit function.
	ErrNoSubmitter = errors.New("prompt: submit function is required")
)
