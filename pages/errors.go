package pages

import "errors"

// Sentinel errors for the public API. Handlers map these onto HTTP status
// codes; callers test them with errors.Is.
var (
	// ErrNotFound means the identifier resolves to no company page,
	// neither in the store nor at the source.
	ErrNotFound = errors.New("pages: not found")

	// ErrBlocked means the source denied automated access (authwall,
	// login redirect, challenge, or an empty shell after load).
	ErrBlocked = errors.New("pages: blocked by source")

	// ErrTimeout means the acquisition exceeded its budget.
	ErrTimeout = errors.New("pages: acquisition timed out")

	// ErrInvalidInput means a request parameter failed validation before
	// any acquisition or store access happened.
	ErrInvalidInput = errors.New("pages: invalid input")
)
