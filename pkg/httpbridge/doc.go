// Package httpbridge exposes a notifycenter.Center over HTTP with chi.
//
// Posting is a bodiless POST to /notifications/{name}. Clients follow a name
// with a Server-Sent Events stream at /notifications/{name}/events; every
// delivery becomes a "notification" event whose data is {"name": ...}. The
// stream's observer is removed as soon as the client goes away. A stream that
// falls more than the stream buffer behind drops notifications rather than
// stalling the poster.
//
//	hub := notifycenter.New()
//	srv := httpserver.New(httpserver.WithAddr(":8080"))
//	err := srv.Run(ctx, httpbridge.New(hub,
//		httpbridge.WithHealthcheck("redis", redis.Healthcheck(client)),
//	))
package httpbridge
