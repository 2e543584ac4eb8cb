package wuxing

import "errors"

// Sentinel errors surfaced by the engine.
var (
	// ErrInvalidInput marks a malformed chart input; reported before Step 0
	// runs, with no partial state emitted.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInternalInvariant marks a table-wiring bug, never a user error.
	ErrInternalInvariant = errors.New("internal invariant violation")
)
