package notifycenter

import "errors"

var (
	// ErrEmptyName is returned when a registration names no notification.
	ErrEmptyName = errors.New("notifycenter: notification name is empty")

	// ErrNilHandler is returned when a registration carries no callback.
	ErrNilHandler = errors.New("notifycenter: handler is nil")

	// ErrTargetNotComparable is returned by AddObserver for targets that cannot
	// be compared with ==, because removal matches targets by identity.
	ErrTargetNotComparable = errors.New("notifycenter: observer target is not comparable")

	// ErrClosed is returned when registering on a closed hub.
	ErrClosed = errors.New("notifycenter: center is closed")

	// ErrInvalidEnvelope is returned when a transport frame cannot be decoded.
	ErrInvalidEnvelope = errors.New("notifycenter: invalid envelope")

	// ErrPublishFailed wraps transport publish failures returned by PostContext.
	ErrPublishFailed = errors.New("notifycenter: transport publish failed")
)
