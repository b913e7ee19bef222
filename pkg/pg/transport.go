package pg

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/notifycenter"
	"github.com/dmitrymomot/notifycenter/pkg/logger"
)

// Transport carries notifications over PostgreSQL LISTEN/NOTIFY.
//
// All hubs share one channel; the notification name travels inside the
// envelope. Subscribe and Unsubscribe only change which names are forwarded
// to Receive, so they never touch the database.
type Transport struct {
	pool          *pgxpool.Pool
	channel       string
	retryInterval time.Duration
	out           chan notifycenter.Envelope
	logger        *slog.Logger

	mu    sync.RWMutex
	names map[string]struct{}

	ready     chan struct{}
	readyOnce sync.Once

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	closeOnce sync.Once
}

var _ notifycenter.Transport = (*Transport)(nil)

// TransportOption configures a Transport.
type TransportOption func(*Transport)

// WithChannel sets the LISTEN/NOTIFY channel; the default is "notifycenter".
func WithChannel(name string) TransportOption {
	return func(t *Transport) {
		if name != "" {
			t.channel = name
		}
	}
}

// WithReceiveBuffer sets the capacity of the Receive channel.
func WithReceiveBuffer(n int) TransportOption {
	return func(t *Transport) {
		if n > 0 {
			t.out = make(chan notifycenter.Envelope, n)
		}
	}
}

// WithRetryInterval sets the pause before re-acquiring a lost listener
// connection.
func WithRetryInterval(d time.Duration) TransportOption {
	return func(t *Transport) {
		if d > 0 {
			t.retryInterval = d
		}
	}
}

// WithTransportLogger sets the logger for listener failures and dropped
// frames.
func WithTransportLogger(l *slog.Logger) TransportOption {
	return func(t *Transport) {
		if l != nil {
			t.logger = l
		}
	}
}

// NewTransport starts a listener on a dedicated connection taken from pool.
// The pool stays owned by the caller.
func NewTransport(ctx context.Context, pool *pgxpool.Pool, opts ...TransportOption) *Transport {
	t := &Transport{
		pool:          pool,
		channel:       "notifycenter",
		retryInterval: 5 * time.Second,
		out:           make(chan notifycenter.Envelope, 100),
		logger:        slog.New(slog.DiscardHandler),
		names:         make(map[string]struct{}),
		ready:         make(chan struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.logger = t.logger.With(
		logger.Component("notifycenter"),
		logger.Transport("postgres"),
		logger.Channel(t.channel),
	)

	ctx, t.cancel = context.WithCancel(ctx)
	t.wg.Add(1)
	go t.listen(ctx)

	return t
}

// NewTransportFromConfig is NewTransport with channel, buffer and retry
// interval taken from cfg.
func NewTransportFromConfig(ctx context.Context, pool *pgxpool.Pool, cfg Config, opts ...TransportOption) *Transport {
	base := []TransportOption{
		WithChannel(cfg.NotifyChannel),
		WithReceiveBuffer(cfg.ReceiveBuffer),
		WithRetryInterval(cfg.RetryInterval),
	}
	return NewTransport(ctx, pool, append(base, opts...)...)
}

// Ready is closed once the first LISTEN has succeeded.
func (t *Transport) Ready() <-chan struct{} {
	return t.ready
}

// Publish sends env with pg_notify.
func (t *Transport) Publish(ctx context.Context, env notifycenter.Envelope) error {
	data, err := notifycenter.EncodeEnvelope(env)
	if err != nil {
		return err
	}
	if _, err := t.pool.Exec(ctx, "SELECT pg_notify($1, $2)", t.channel, string(data)); err != nil {
		return errors.Join(ErrPublishFailed, err)
	}
	return nil
}

// Subscribe starts forwarding envelopes named name.
func (t *Transport) Subscribe(_ context.Context, name string) error {
	t.mu.Lock()
	t.names[name] = struct{}{}
	t.mu.Unlock()
	return nil
}

// Unsubscribe stops forwarding envelopes named name.
func (t *Transport) Unsubscribe(_ context.Context, name string) error {
	t.mu.Lock()
	delete(t.names, name)
	t.mu.Unlock()
	return nil
}

// Receive returns inbound envelopes. The channel is closed by Close.
func (t *Transport) Receive() <-chan notifycenter.Envelope {
	return t.out
}

// Close stops the listener and releases its connection.
func (t *Transport) Close() error {
	t.closeOnce.Do(func() {
		t.cancel()
		t.wg.Wait()
	})
	return nil
}

func (t *Transport) subscribed(name string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.names[name]
	return ok
}

func (t *Transport) listen(ctx context.Context) {
	defer t.wg.Done()
	defer close(t.out)

	for {
		err := t.listenOnce(ctx)
		if ctx.Err() != nil {
			return
		}
		t.logger.Warn("listener lost, reconnecting",
			logger.Error(errors.Join(ErrListenFailed, err)),
			logger.Duration(t.retryInterval),
		)

		select {
		case <-ctx.Done():
			return
		case <-time.After(t.retryInterval):
		}
	}
}

func (t *Transport) listenOnce(ctx context.Context) error {
	conn, err := t.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	// A listening connection must not go back to the pool.
	pgConn := conn.Hijack()
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = pgConn.Close(closeCtx)
	}()

	if _, err := pgConn.Exec(ctx, "LISTEN "+pgx.Identifier{t.channel}.Sanitize()); err != nil {
		return err
	}
	t.readyOnce.Do(func() { close(t.ready) })

	for {
		n, err := pgConn.WaitForNotification(ctx)
		if err != nil {
			return err
		}

		env, err := notifycenter.DecodeEnvelope([]byte(n.Payload))
		if err != nil {
			t.logger.Warn("dropping undecodable frame", logger.Error(err))
			continue
		}
		if !t.subscribed(env.Name) {
			continue
		}

		select {
		case t.out <- env:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
