package soda

import "errors"

// Sentinel errors returned by the client. Callers match them with errors.Is
// to distinguish "the portal is down or throttling" from "the portal answered
// with something that is not the expected tabular payload".
var (
	// ErrRemoteUnavailable covers transport failures, timeouts, HTTP error
	// statuses (including 429 throttling after retries are exhausted), and
	// an open circuit breaker.
	ErrRemoteUnavailable = errors.New("soda: remote unavailable")

	// ErrMalformedResponse covers response bodies that cannot be decoded as
	// CSV with a header row and consistent column counts.
	ErrMalformedResponse = errors.New("soda: malformed response")
)
