package loader

import "errors"

var (
	// ErrHelperFailed is returned when a helper exits unsuccessfully or is killed.
	ErrHelperFailed = errors.New("helper failed")
	// ErrEmptyCommand is returned when asked to start an empty argument list.
	ErrEmptyCommand = errors.New("empty command")
)
