package cascade

import "errors"

var (
	// ErrUnknownVariant is returned when a distribution variant name has no source table.
	ErrUnknownVariant = errors.New("unknown distribution variant")
	// ErrInvalidBoolean is returned when a legacy boolean setting cannot be parsed.
	ErrInvalidBoolean = errors.New("invalid boolean value")
)
