package notifycenter

// Queue is an execution context that observers can be delivered on.
// The center never waits for dispatched work to finish.
type Queue interface {
	Dispatch(fn func())
}

// QueueFunc adapts an ordinary function to the Queue interface.
type QueueFunc func(fn func())

// Dispatch calls f(fn).
func (f QueueFunc) Dispatch(fn func()) { f(fn) }

var (
	// Inline runs every delivery on the posting goroutine. It behaves like a
	// nil queue.
	Inline Queue = QueueFunc(func(fn func()) { fn() })

	// Goroutine runs every delivery on a fresh goroutine.
	Goroutine Queue = QueueFunc(func(fn func()) { go fn() })
)
