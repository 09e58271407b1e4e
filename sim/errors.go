package sim

import "errors"

var (
	// ErrInvalidConfig is returned by Init when the configuration cannot
	// produce a finite run. It is wrapped with the offending field.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrNotInitialized is returned by Run when Init has not been called
	// since construction or since the previous Run.
	ErrNotInitialized = errors.New("simulator not initialized: call Init before Run")
)
