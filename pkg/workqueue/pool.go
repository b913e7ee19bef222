package workqueue

import (
	"fmt"
	"log/slog"
	"runtime"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrymomot/notifycenter"
	"github.com/dmitrymomot/notifycenter/pkg/logger"
)

// Pool runs dispatched functions on a fixed set of worker goroutines.
// It satisfies notifycenter.Queue.
type Pool struct {
	tasks          chan func()
	enqueueTimeout time.Duration
	logger         *slog.Logger

	mu      sync.RWMutex
	closed  bool
	wg      sync.WaitGroup
	dropped atomic.Uint64
}

var _ notifycenter.Queue = (*Pool)(nil)

// New starts a pool. Defaults: one worker per CPU, a buffer of 256 tasks and
// a one second enqueue timeout.
func New(opts ...Option) *Pool {
	o := &options{
		workers:        runtime.NumCPU(),
		bufferSize:     256,
		enqueueTimeout: time.Second,
		logger:         slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(o)
	}

	p := &Pool{
		tasks:          make(chan func(), o.bufferSize),
		enqueueTimeout: o.enqueueTimeout,
		logger:         o.logger.With(logger.Component("workqueue")),
	}

	p.wg.Add(o.workers)
	for range o.workers {
		go p.worker()
	}

	return p
}

// Dispatch queues fn. When the buffer stays full for the enqueue timeout, or
// the pool is closed, fn is dropped and counted.
func (p *Pool) Dispatch(fn func()) {
	if fn == nil {
		return
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		p.drop("pool closed")
		return
	}

	select {
	case p.tasks <- fn:
		return
	default:
	}

	if p.enqueueTimeout <= 0 {
		p.drop("buffer full")
		return
	}

	timer := time.NewTimer(p.enqueueTimeout)
	defer timer.Stop()

	select {
	case p.tasks <- fn:
	case <-timer.C:
		p.drop("enqueue timeout")
	}
}

// Dropped returns the number of tasks Dispatch discarded.
func (p *Pool) Dropped() uint64 {
	return p.dropped.Load()
}

// Close stops accepting tasks, runs the ones already accepted and waits for
// the workers to exit. It is safe to call more than once.
func (p *Pool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.tasks)
	p.mu.Unlock()

	p.wg.Wait()
	return nil
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for fn := range p.tasks {
		p.run(fn)
	}
}

func (p *Pool) run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("task panicked",
				logger.Error(fmt.Errorf("panic: %v", r)),
				slog.String("stack", string(debug.Stack())),
			)
		}
	}()
	fn()
}

func (p *Pool) drop(reason string) {
	n := p.dropped.Add(1)
	p.logger.Warn("task dropped",
		slog.String("reason", reason),
		slog.Uint64("dropped_total", n),
	)
}
