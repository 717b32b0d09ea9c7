package domain

import "errors"

// Sentinel errors shared by the loader, the integrator and the renderer.
// Callers match them with errors.Is; packages wrap them with file and
// window context.
var (
	ErrEmptyTrace        = errors.New("trace has no samples")
	ErrMalformedRow      = errors.New("malformed data row")
	ErrNonMonotonicTrace = errors.New("trace time values are not increasing")
	ErrEndpointNotFound  = errors.New("peak window endpoint not found")
	ErrZeroWidthWindow   = errors.New("peak window has zero or negative width")
	ErrLengthMismatch    = errors.New("time and signal lengths differ")
)
