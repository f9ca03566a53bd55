package mqtt

import "errors"

// Sentinel errors. Failures from paho are wrapped in one of these;
// check with errors.Is.
var (
	ErrNotConnected     = errors.New("mqtt: client not connected")
	ErrAlreadyStarted   = errors.New("mqtt: already started")
	ErrConnectionFailed = errors.New("mqtt: connection failed")

	ErrPublishFailed     = errors.New("mqtt: publish failed")
	ErrSubscribeFailed   = errors.New("mqtt: subscribe failed")
	ErrUnsubscribeFailed = errors.New("mqtt: unsubscribe failed")

	// ErrTimeout is joined with the operation's error when paho does not
	// answer in time.
	ErrTimeout = errors.New("mqtt: operation timed out")

	ErrInvalidQoS   = errors.New("mqtt: invalid QoS level (must be 0, 1, or 2)")
	ErrInvalidTopic = errors.New("mqtt: topic cannot be empty")
)
