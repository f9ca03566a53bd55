package platform

import "errors"

// Bring-up error kinds. Each step wraps its collaborator's error in one of
// these, except the generic step whose error is returned as is.
//
//	if errors.Is(err, platform.ErrStorage) {
//	    // counter store could not be opened
//	}
var (
	// ErrStorage is returned when the counter store cannot be initialised.
	ErrStorage = errors.New("platform: storage failure")

	// ErrResourceExhausted is returned when a resource cannot be allocated
	// or installed.
	ErrResourceExhausted = errors.New("platform: resource exhausted")

	// ErrUpstream is returned when a collaborator (network stack, clock,
	// entropy registrar) fails.
	ErrUpstream = errors.New("platform: upstream failure")

	// ErrIngressLost is reported by a health check when the driver frame
	// subscription is no longer tracked by the transport.
	ErrIngressLost = errors.New("platform: driver ingress not subscribed")

	// ErrAlreadyInitialised is returned by a second InitStack.
	ErrAlreadyInitialised = errors.New("platform: already initialised")
)
