// Package workqueue provides a bounded goroutine pool that can serve as the
// asynchronous delivery queue of a notifycenter observer.
//
//	pool := workqueue.New(workqueue.WithWorkers(4))
//	defer pool.Close()
//
//	center.Observe("com.example.DidSync", pool, handler)
//
// Dispatch never blocks longer than the enqueue timeout. Work that cannot be
// accepted in time, or that arrives after Close, is dropped, logged and
// counted by Dropped. Panics inside tasks are recovered and logged.
package workqueue
