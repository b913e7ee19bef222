package workqueue

import (
	"log/slog"
	"time"
)

// Option configures a Pool.
type Option func(*options)

type options struct {
	workers        int
	bufferSize     int
	enqueueTimeout time.Duration
	logger         *slog.Logger
}

// WithWorkers sets the number of goroutines executing tasks.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithBufferSize sets how many accepted tasks may wait for a worker.
func WithBufferSize(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.bufferSize = n
		}
	}
}

// WithEnqueueTimeout bounds how long Dispatch waits for buffer space.
// Zero makes Dispatch drop immediately when the buffer is full.
func WithEnqueueTimeout(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.enqueueTimeout = d
		}
	}
}

// WithLogger sets the logger for dropped and panicking tasks.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
