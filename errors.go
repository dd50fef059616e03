package storee

import "errors"

// Sentinel errors for common failure modes.
var (
	// ErrValidation indicates a request or value failed validation.
	ErrValidation = errors.New("validation error")

	// ErrInvalidState indicates an operation on a session whose status
	// forbids it (e.g. continuing a completed interview).
	ErrInvalidState = errors.New("invalid session state")

	// ErrNotFound indicates a record does not exist or is owned by a
	// different user. The two cases are deliberately indistinguishable.
	ErrNotFound = errors.New("not found")

	// ErrGateway indicates the LLM gateway call failed or returned
	// unusable output.
	ErrGateway = errors.New("gateway error")
)
