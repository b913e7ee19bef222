// Package pg carries notifications between processes over PostgreSQL
// LISTEN/NOTIFY using the pgx/v5 driver.
//
// Connect opens a *pgxpool.Pool from a Config populated from environment
// variables, retrying until the database is reachable. Healthcheck wraps a
// ping for readiness probes.
//
// NewTransport implements notifycenter.Transport. Every hub shares a single
// channel (PG_NOTIFY_CHANNEL, "notifycenter" by default); the listener keeps
// one hijacked connection that is never returned to the pool and re-acquires
// a new one after RetryInterval when it is lost. Subscribe and Unsubscribe
// only filter which notification names reach Receive.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	hub := notifycenter.New(
//		notifycenter.WithTransport(pg.NewTransportFromConfig(ctx, pool, cfg)),
//	)
//	defer hub.Close()
//
// NOTIFY payloads are limited to 8000 bytes by the server; envelopes are far
// smaller than that.
package pg
