// Package httpserver runs the notification HTTP bridge with graceful
// shutdown.
//
// Server binds its listener before serving, so Addr and the start hooks see
// the real address even with ":0". Run blocks until its context is done or
// Shutdown is called. Shutdown first cancels the base context of every
// request, which ends open event streams, and then waits for in-flight
// requests up to the shutdown timeout.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, httpbridge.New(center)); err != nil {
//		return err
//	}
//
// Run failures are joined with ErrStart and Shutdown failures with
// ErrShutdown.
package httpserver
