package notifycenter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"runtime/debug"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/notifycenter/pkg/logger"
)

// Hub is the concrete notification registry. All methods are safe for
// concurrent use, and handlers may call back into the hub.
type Hub struct {
	observers map[string][]*observation
	mu        sync.RWMutex
	closed    bool

	// subMu orders transport subscription changes the same way the
	// registry changed.
	subMu sync.Mutex

	origin           string
	logger           *slog.Logger
	transport        Transport
	transportTimeout time.Duration
	metricsCallback  func(name string, observers int)

	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// observation is a single registry entry.
type observation struct {
	name    string
	target  any
	handler Handler
	queue   Queue
	removed atomic.Bool
}

var _ Center = (*Hub)(nil)

// New creates a hub. With a transport configured it starts a goroutine that
// delivers notifications posted by other processes; call Close to stop it.
func New(opts ...Option) *Hub {
	cfg := hubConfig{
		logger:           slog.New(slog.DiscardHandler),
		transportTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.origin == "" {
		cfg.origin = uuid.NewString()
	}

	ctx, cancel := context.WithCancel(context.Background())
	h := &Hub{
		observers:        make(map[string][]*observation),
		origin:           cfg.origin,
		logger:           cfg.logger.With(logger.Component("notifycenter"), logger.Origin(cfg.origin)),
		transport:        cfg.transport,
		transportTimeout: cfg.transportTimeout,
		metricsCallback:  cfg.metricsCallback,
		ctx:              ctx,
		cancel:           cancel,
	}

	if h.transport != nil {
		h.wg.Add(1)
		go h.receiveLoop()
	}

	return h
}

// Origin returns the identifier stamped on envelopes this hub publishes.
func (h *Hub) Origin() string { return h.origin }

// Observe registers handler for name. See Center.
func (h *Hub) Observe(name string, queue Queue, handler Handler) (*Token, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if handler == nil {
		return nil, ErrNilHandler
	}

	token := &Token{id: uuid.NewString(), name: name}
	if err := h.register(&observation{
		name:    name,
		target:  token,
		handler: handler,
		queue:   queue,
	}); err != nil {
		return nil, err
	}
	return token, nil
}

// AddObserver registers target for name with an inline handler. See Center.
func (h *Hub) AddObserver(target any, name string, handler Handler) error {
	if isNil(target) {
		return nil
	}
	if name == "" {
		return ErrEmptyName
	}
	if handler == nil {
		return ErrNilHandler
	}
	if !reflect.ValueOf(target).Comparable() {
		return ErrTargetNotComparable
	}

	return h.register(&observation{
		name:    name,
		target:  target,
		handler: handler,
	})
}

// RemoveObserver removes every registration of target. See Center.
func (h *Hub) RemoveObserver(target any) {
	h.RemoveObserverForName(target, "")
}

// RemoveObserverForName removes the registrations of target for name, or
// for every name when name is empty.
func (h *Hub) RemoveObserverForName(target any, name string) {
	if isNil(target) || !reflect.ValueOf(target).Comparable() {
		return
	}
	h.remove(func(o *observation) bool {
		return o.target == target && (name == "" || o.name == name)
	})
}

// Post notifies the observers of name and forwards the notification to the
// transport, if any. Transport failures are logged.
func (h *Hub) Post(name string) {
	h.PostNotification(Notification{Name: name})
}

// PostNotification posts n. See Center.
func (h *Hub) PostNotification(n Notification) {
	if err := h.post(context.Background(), n); err != nil {
		h.logger.Warn("notification not forwarded to transport",
			logger.Notification(n.Name),
			logger.Error(err),
		)
	}
}

// PostContext is Post that reports transport publish failures instead of
// logging them. Local delivery happens before the transport is involved and
// is not affected by ctx.
func (h *Hub) PostContext(ctx context.Context, name string) error {
	return h.post(ctx, Notification{Name: name})
}

// ObserverCount returns the number of registrations for name.
func (h *Hub) ObserverCount(name string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.observers[name])
}

// Names returns the observed notification names in sorted order.
func (h *Hub) Names() []string {
	h.mu.RLock()
	names := make([]string, 0, len(h.observers))
	for name := range h.observers {
		names = append(names, name)
	}
	h.mu.RUnlock()

	slices.Sort(names)
	return names
}

// Close drops every registration, stops the receive loop and closes the
// transport. Registering on a closed hub fails with ErrClosed; posting is a
// no-op. Close is idempotent.
func (h *Hub) Close() error {
	var err error
	h.closeOnce.Do(func() {
		h.mu.Lock()
		h.closed = true
		for _, list := range h.observers {
			for _, o := range list {
				o.removed.Store(true)
			}
		}
		clear(h.observers)
		h.mu.Unlock()

		h.cancel()
		if h.transport != nil {
			err = h.transport.Close()
		}
		h.wg.Wait()
	})
	return err
}

func (h *Hub) register(o *observation) error {
	h.subMu.Lock()
	defer h.subMu.Unlock()

	count, err := h.insert(o)
	if err != nil {
		return err
	}

	if h.metricsCallback != nil {
		h.metricsCallback(o.name, count)
	}
	if count == 1 && h.transport != nil {
		h.syncTransport(o.name, h.transport.Subscribe)
	}
	return nil
}

func (h *Hub) insert(o *observation) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return 0, ErrClosed
	}
	h.observers[o.name] = append(h.observers[o.name], o)
	return len(h.observers[o.name]), nil
}

func (h *Hub) remove(match func(*observation) bool) {
	h.subMu.Lock()
	defer h.subMu.Unlock()

	for name, count := range h.extract(match) {
		if h.metricsCallback != nil {
			h.metricsCallback(name, count)
		}
		if count == 0 && h.transport != nil {
			h.syncTransport(name, h.transport.Unsubscribe)
		}
	}
}

// extract unregisters every matching observation and returns the new
// observer count of each name it changed.
func (h *Hub) extract(match func(*observation) bool) map[string]int {
	h.mu.Lock()
	defer h.mu.Unlock()

	changed := make(map[string]int)
	for name, list := range h.observers {
		kept := list[:0:0]
		for _, o := range list {
			if match(o) {
				o.removed.Store(true)
				continue
			}
			kept = append(kept, o)
		}
		if len(kept) == len(list) {
			continue
		}
		changed[name] = len(kept)
		if len(kept) == 0 {
			delete(h.observers, name)
		} else {
			// Fresh slice: in-flight posts keep iterating their own snapshot.
			h.observers[name] = kept
		}
	}
	return changed
}

func (h *Hub) syncTransport(name string, fn func(context.Context, string) error) {
	ctx, cancel := context.WithTimeout(h.ctx, h.transportTimeout)
	defer cancel()
	if err := fn(ctx, name); err != nil {
		h.logger.Warn("transport subscription not updated",
			logger.Notification(name),
			logger.Error(err),
		)
	}
}

func (h *Hub) post(ctx context.Context, n Notification) error {
	if n.Name == "" {
		return nil
	}

	h.mu.RLock()
	if h.closed {
		h.mu.RUnlock()
		return nil
	}
	h.mu.RUnlock()

	h.deliver(n)

	if h.transport == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, h.transportTimeout)
	defer cancel()
	if err := h.transport.Publish(ctx, NewEnvelope(h.origin, n.Name)); err != nil {
		return errors.Join(ErrPublishFailed, err)
	}
	return nil
}

// deliver invokes the observers registered for n.Name when the call starts.
func (h *Hub) deliver(n Notification) {
	h.mu.RLock()
	snapshot := h.observers[n.Name]
	h.mu.RUnlock()

	for _, o := range snapshot {
		if o.removed.Load() {
			continue
		}
		if o.queue == nil {
			h.invoke(o, n)
			continue
		}
		o.queue.Dispatch(func() { h.invoke(o, n) })
	}
}

func (h *Hub) invoke(o *observation, n Notification) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("observer panicked",
				logger.Notification(n.Name),
				logger.Error(fmt.Errorf("panic: %v", r)),
				slog.String("stack", string(debug.Stack())),
			)
		}
	}()
	o.handler(n)
}

func (h *Hub) receiveLoop() {
	defer h.wg.Done()

	in := h.transport.Receive()
	for {
		select {
		case <-h.ctx.Done():
			return
		case env, ok := <-in:
			if !ok {
				return
			}
			if env.Origin == h.origin || env.Name == "" {
				continue
			}
			h.deliver(Notification{Name: env.Name})
		}
	}
}

// isNil reports whether v is nil or a typed nil pointer-like value.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
