package engine

import "errors"

// Errors returned by engine operations.
var (
	// ErrReadOnly indicates a write was attempted on a read-only engine.
	ErrReadOnly = errors.New("engine is read-only")

	// ErrSnapshotNotFound indicates a snapshot ID not in the registry.
	ErrSnapshotNotFound = errors.New("snapshot not found")
)
