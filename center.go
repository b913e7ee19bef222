package notifycenter

// Center is the set of operations shared by Hub and PrefixedCenter.
// Implementations must be safe for concurrent use.
type Center interface {
	// Observe registers handler for notifications named name and returns the
	// token that identifies the registration. A nil queue delivers inline on
	// the posting goroutine; otherwise every delivery is handed to queue.
	Observe(name string, queue Queue, handler Handler) (*Token, error)

	// AddObserver registers target to be notified through handler whenever
	// name is posted. Delivery is always inline. A nil target is ignored.
	AddObserver(target any, name string, handler Handler) error

	// RemoveObserver removes every registration of target, or the single
	// registration identified by a *Token, regardless of name.
	RemoveObserver(target any)

	// RemoveObserverForName removes registrations of target for name only.
	// An empty name removes them for every name.
	RemoveObserverForName(target any, name string)

	// Post notifies every observer registered for name.
	// Posting a name nobody observes is a no-op.
	Post(name string)

	// PostNotification posts n. Only n.Name is significant.
	PostNotification(n Notification)
}
