package notifycenter

import "sync"

var (
	defaultHub     *Hub
	defaultHubOnce sync.Once
)

// Default returns the process-wide hub, creating it on first use.
// It has no transport and lives for the lifetime of the process.
func Default() *Hub {
	defaultHubOnce.Do(func() {
		defaultHub = New()
	})
	return defaultHub
}

// CenterWithPrefix returns a new PrefixedCenter over Default. Results are
// not cached; each call builds a fresh wrapper.
func CenterWithPrefix(prefix string) Center {
	return NewPrefixed(Default(), prefix)
}
