package dtype

import "errors"

// Sentinel errors. Callers match them with errors.Is; messages returned by
// this module wrap them with the offending values.
var (
	// ErrUnknownBackend is returned when a backend identifier is not one of
	// the fixed set of known backends.
	ErrUnknownBackend = errors.New("unknown backend")

	// ErrNoActiveBackend is returned when a dtype query needs a backend and
	// none was provided.
	ErrNoActiveBackend = errors.New("no active backend")

	// ErrUnsupportedDtype is returned when a dtype is outside the active
	// backend's valid set and the caller requires a supported one.
	ErrUnsupportedDtype = errors.New("unsupported dtype")

	// ErrInvalidDtype is returned when a value cannot be canonicalized.
	ErrInvalidDtype = errors.New("invalid dtype")
)
