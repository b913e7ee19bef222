package notifycenter

// Notification is a payload-less signal identified by its name.
type Notification struct {
	Name string
}

// Handler is invoked for every posted notification an observer matches.
type Handler func(Notification)

// Token identifies a single block-style registration. Pass it to
// RemoveObserver to unregister.
type Token struct {
	id   string
	name string
}

// ID returns the unique registration identifier.
func (t *Token) ID() string { return t.id }

// Name returns the notification name the registration listens for.
func (t *Token) Name() string { return t.name }

func (t *Token) String() string { return t.name + "#" + t.id }
