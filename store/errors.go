package store

import "errors"

var (
	// ErrUnavailable means the backing medium could not be reached or
	// errored; the operation was not applied. Callers surface it, they
	// do not retry.
	ErrUnavailable = errors.New("store unavailable")

	// ErrIndexOutOfRange is returned by RemoveAt for an index outside
	// [0, length). The stored list is left unchanged.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrCorrupt means a stored value failed to parse as JSON.
	ErrCorrupt = errors.New("corrupt stored value")
)
