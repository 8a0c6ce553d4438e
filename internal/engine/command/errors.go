package command

import "errors"

// Errors returned by command construction and decoding.
var (
	// ErrSerialization indicates a payload could not be canonicalized.
	ErrSerialization = errors.New("payload serialization failed")

	// ErrUnknownKind indicates wire data named a command kind this
	// engine does not recognize.
	ErrUnknownKind = errors.New("unknown command kind")

	// ErrBadWire indicates wire data that is not a command batch.
	ErrBadWire = errors.New("malformed command batch")
)
