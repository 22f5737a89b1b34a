package reporting

import "errors"

// Client-input failures surfaced by reporting queries. Anything else coming out
// of this package wraps a record store failure and is a server-side fault.
var (
	// ErrInvalidRange marks malformed or inverted date selectors.
	ErrInvalidRange = errors.New("invalid date range")

	// ErrMissingParameter marks a required query parameter that was not supplied.
	ErrMissingParameter = errors.New("missing required parameter")

	// ErrNotFound is the designated empty result: the query was valid but zero
	// records matched. Distinct from a store failure.
	ErrNotFound = errors.New("no matching records")
)
