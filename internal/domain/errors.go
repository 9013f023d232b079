package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrLocationNotFound indicates a city search yielded no candidates
	ErrLocationNotFound = errors.New("location not found")

	// ErrProviderUnavailable indicates a provider could not be reached
	ErrProviderUnavailable = errors.New("provider is unreachable")

	// ErrBadTimings indicates a provider response could not be parsed
	ErrBadTimings = errors.New("malformed timings response")
)
