package httpbridge

import (
	"context"
	"log/slog"
	"time"
)

// Option configures the bridge.
type Option func(*Bridge)

// WithLogger sets the logger used for request failures.
func WithLogger(l *slog.Logger) Option {
	return func(b *Bridge) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithHealthcheck registers a named check reported by GET /health.
func WithHealthcheck(name string, check func(context.Context) error) Option {
	if name == "" || check == nil {
		panic("WithHealthcheck: name and check are required")
	}
	return func(b *Bridge) {
		b.checks = append(b.checks, healthcheck{name: name, fn: check})
	}
}

// WithHealthTimeout bounds each health check. The default is two seconds.
func WithHealthTimeout(d time.Duration) Option {
	return func(b *Bridge) {
		if d > 0 {
			b.healthTimeout = d
		}
	}
}

// WithStreamBuffer sets how many notifications an event stream may lag
// behind before further ones are dropped for that client.
func WithStreamBuffer(n int) Option {
	return func(b *Bridge) {
		if n > 0 {
			b.streamBuffer = n
		}
	}
}
