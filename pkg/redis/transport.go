package redis

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/notifycenter"
	"github.com/dmitrymomot/notifycenter/pkg/logger"
)

// Transport carries notifications over Redis pub/sub. Every notification
// name maps to its own channel, so a process only receives the names its hub
// has observers for.
type Transport struct {
	client redis.UniversalClient
	pubsub *redis.PubSub
	prefix string
	out    chan notifycenter.Envelope
	logger *slog.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	closeOnce sync.Once
	closeErr  error
}

var _ notifycenter.Transport = (*Transport)(nil)

// TransportOption configures a Transport.
type TransportOption func(*Transport)

// WithChannelPrefix namespaces channels; the default is "notifycenter:".
func WithChannelPrefix(prefix string) TransportOption {
	return func(t *Transport) { t.prefix = prefix }
}

// WithReceiveBuffer sets the capacity of the Receive channel.
func WithReceiveBuffer(n int) TransportOption {
	return func(t *Transport) {
		if n > 0 {
			t.out = make(chan notifycenter.Envelope, n)
		}
	}
}

// WithTransportLogger sets the logger for dropped frames.
func WithTransportLogger(l *slog.Logger) TransportOption {
	return func(t *Transport) {
		if l != nil {
			t.logger = l
		}
	}
}

// NewTransport starts listening on client. The client stays owned by the
// caller; Close releases only the pub/sub connection.
func NewTransport(ctx context.Context, client redis.UniversalClient, opts ...TransportOption) *Transport {
	t := &Transport{
		client: client,
		prefix: "notifycenter:",
		out:    make(chan notifycenter.Envelope, 100),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.logger = t.logger.With(logger.Component("notifycenter"), logger.Transport("redis"))

	ctx, t.cancel = context.WithCancel(ctx)
	t.pubsub = client.Subscribe(ctx)

	t.wg.Add(1)
	go t.run(ctx)

	return t
}

// NewTransportFromConfig is NewTransport with the channel prefix and buffer
// taken from cfg.
func NewTransportFromConfig(ctx context.Context, client redis.UniversalClient, cfg Config, opts ...TransportOption) *Transport {
	base := []TransportOption{
		WithChannelPrefix(cfg.ChannelPrefix),
		WithReceiveBuffer(cfg.ReceiveBuffer),
	}
	return NewTransport(ctx, client, append(base, opts...)...)
}

// Channel returns the pub/sub channel used for name.
func (t *Transport) Channel(name string) string {
	return t.prefix + name
}

// Publish sends env on the channel for env.Name.
func (t *Transport) Publish(ctx context.Context, env notifycenter.Envelope) error {
	data, err := notifycenter.EncodeEnvelope(env)
	if err != nil {
		return err
	}
	if err := t.client.Publish(ctx, t.Channel(env.Name), data).Err(); err != nil {
		return errors.Join(ErrPublishFailed, err)
	}
	return nil
}

// Subscribe starts receiving notifications named name.
func (t *Transport) Subscribe(ctx context.Context, name string) error {
	if err := t.pubsub.Subscribe(ctx, t.Channel(name)); err != nil {
		return errors.Join(ErrSubscribeFailed, err)
	}
	return nil
}

// Unsubscribe stops receiving notifications named name.
func (t *Transport) Unsubscribe(ctx context.Context, name string) error {
	if err := t.pubsub.Unsubscribe(ctx, t.Channel(name)); err != nil {
		return errors.Join(ErrSubscribeFailed, err)
	}
	return nil
}

// Receive returns inbound envelopes. The channel is closed by Close.
func (t *Transport) Receive() <-chan notifycenter.Envelope {
	return t.out
}

// Close stops the receive loop and closes the pub/sub connection.
func (t *Transport) Close() error {
	t.closeOnce.Do(func() {
		t.cancel()
		t.closeErr = t.pubsub.Close()
		t.wg.Wait()
	})
	return t.closeErr
}

func (t *Transport) run(ctx context.Context) {
	defer t.wg.Done()
	defer close(t.out)

	messages := t.pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			env, err := notifycenter.DecodeEnvelope([]byte(msg.Payload))
			if err != nil {
				t.logger.Warn("dropping undecodable frame",
					logger.Channel(msg.Channel),
					logger.Error(err),
				)
				continue
			}
			select {
			case t.out <- env:
			case <-ctx.Done():
				return
			}
		}
	}
}
