package prompt

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("prompt: aborted")
	// ErrNoModel is returned when Fill is called without a model.
	ErrNoModel = errors.New("prompt: model is required")
)
