package service

import "errors"

// Every failure in the core degrades to one of these values; callers match
// with errors.Is and translate to a user-visible message. None is fatal.
var (
	// ErrNotFound means a lookup yielded no usable result: empty product
	// list, non-success provider status, or a missing response field.
	ErrNotFound = errors.New("not found")

	// ErrThrottled means the rate limiter had no capacity at call time.
	// The request was never sent.
	ErrThrottled = errors.New("lookup throttled")

	// ErrUpstream means the transport failed or the response body could
	// not be parsed.
	ErrUpstream = errors.New("upstream failure")

	// ErrInvalidInput means a user-supplied value was rejected before any
	// state was touched.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoSession means the user has not completed profile setup yet.
	ErrNoSession = errors.New("profile not configured")
)
