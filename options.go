package notifycenter

import (
	"log/slog"
	"time"
)

// Option configures a Hub.
type Option func(*hubConfig)

type hubConfig struct {
	logger           *slog.Logger
	transport        Transport
	origin           string
	transportTimeout time.Duration
	metricsCallback  func(name string, observers int)
}

// WithLogger sets the logger used for recovered panics and transport
// failures. Nil loggers are ignored.
func WithLogger(l *slog.Logger) Option {
	return func(c *hubConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTransport connects the hub to other processes. The hub takes
// ownership of t and closes it in Close.
func WithTransport(t Transport) Option {
	return func(c *hubConfig) { c.transport = t }
}

// WithOrigin overrides the identifier stamped on outgoing envelopes.
// Empty values are ignored and a random one is generated.
func WithOrigin(origin string) Option {
	return func(c *hubConfig) {
		if origin != "" {
			c.origin = origin
		}
	}
}

// WithTransportTimeout bounds every transport call made on behalf of
// Observe, Remove* and Post.
func WithTransportTimeout(d time.Duration) Option {
	return func(c *hubConfig) {
		if d > 0 {
			c.transportTimeout = d
		}
	}
}

// WithMetricsCallback is called with the new observer count whenever
// registrations for a name change.
func WithMetricsCallback(fn func(name string, observers int)) Option {
	return func(c *hubConfig) { c.metricsCallback = fn }
}
