// Package notifycenter provides a name-addressed notification center modelled
// on the Darwin notify facility: notifications carry a name and nothing else,
// observers register for exact names, and posting fans out to every matching
// observer.
//
// The API follows NSNotificationCenter closely:
//
//   - Observe registers a callback and returns a *Token used to unregister.
//     Callbacks run inline on the posting goroutine, or on a Queue.
//   - AddObserver registers an arbitrary comparable target together with a
//     bound callback, delivered inline.
//   - RemoveObserver and RemoveObserverForName unregister by token or target,
//     optionally limited to one name.
//   - Post and PostNotification notify observers. Unknown names are no-ops.
//
// Both *Hub, the registry, and *PrefixedCenter, a facade that qualifies names
// with a fixed prefix, implement the Center interface.
//
// Basic usage:
//
//	center := notifycenter.Default()
//
//	token, err := center.Observe("com.example.DidSync", nil, func(n notifycenter.Notification) {
//		fmt.Println("received", n.Name)
//	})
//	if err != nil {
//		return err
//	}
//	defer center.RemoveObserver(token)
//
//	center.Post("com.example.DidSync")
//
// Darwin notification names are shared system-wide, so producers should use
// reverse-DNS names. CenterWithPrefix makes that convenient:
//
//	center := notifycenter.CenterWithPrefix("com.example")
//	center.Post("DidSync") // posts "com.example.DidSync"
//
// # Delivery
//
// Post takes a snapshot of the observers registered for the name and invokes
// them in registration order without holding any lock, so callbacks may
// register, unregister and post re-entrantly. An observer removed while a
// post is in progress is skipped if it has not been reached yet; deliveries
// already handed to a Queue still run. Observers added during a post are
// first invoked by the next post. A panicking callback is recovered and
// logged and the remaining observers still run.
//
// # Transports
//
// A Hub created with WithTransport also forwards every post to other
// processes and delivers notifications they post. Implementations live in
// pkg/redis (pub/sub) and pkg/pg (LISTEN/NOTIFY).
package notifycenter
