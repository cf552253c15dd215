package notify

import "errors"

// Sentinel errors for delivery channel operations.
var (
	// ErrChannelDisabled indicates that Send() was called on a disabled channel.
	ErrChannelDisabled = errors.New("channel is disabled")

	// ErrInvalidNotification indicates a nil notification or one without a
	// formatted message. Returned before any network attempt is made.
	ErrInvalidNotification = errors.New("invalid notification")
)
