package httpbridge

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/dmitrymomot/notifycenter"
	"github.com/dmitrymomot/notifycenter/pkg/logger"
	"github.com/dmitrymomot/notifycenter/pkg/requestid"
)

// EventNotification is the SSE event type written for every delivered
// notification.
const EventNotification datastar.EventType = "notification"

type healthcheck struct {
	name string
	fn   func(context.Context) error
}

// Bridge exposes a notification center over HTTP.
type Bridge struct {
	center        notifycenter.Center
	logger        *slog.Logger
	checks        []healthcheck
	healthTimeout time.Duration
	streamBuffer  int
	router        chi.Router
}

// New returns the bridge for center. Routes:
//
//	POST /notifications/{name}          post name, 202
//	GET  /notifications/{name}/events   SSE stream of posts of name
//	GET  /notifications                 observed names, when center is a *Hub
//	GET  /health                        registered health checks
func New(center notifycenter.Center, opts ...Option) *Bridge {
	b := &Bridge{
		center:        center,
		logger:        slog.New(slog.DiscardHandler),
		healthTimeout: 2 * time.Second,
		streamBuffer:  16,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.logger = b.logger.With(logger.Component("httpbridge"))

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(middleware.Recoverer)

	r.Get("/health", b.health)
	r.Route("/notifications", func(r chi.Router) {
		if _, ok := center.(namer); ok {
			r.Get("/", b.names)
		}
		r.Post("/{name}", b.post)
		r.Get("/{name}/events", b.events)
	})

	b.router = r
	return b
}

func (b *Bridge) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.router.ServeHTTP(w, r)
}

type namer interface {
	Names() []string
}

func (b *Bridge) names(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, Response{Data: b.center.(namer).Names()})
}

func (b *Bridge) post(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "empty_name", notifycenter.ErrEmptyName)
		return
	}

	b.center.Post(name)
	writeJSON(w, http.StatusAccepted, Response{Data: PostResult{Name: name}})
}

func (b *Bridge) events(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "empty_name", notifycenter.ErrEmptyName)
		return
	}

	// The observer runs on the posting goroutine and must never block it.
	pending := make(chan notifycenter.Notification, b.streamBuffer)
	token, err := b.center.Observe(name, nil, func(n notifycenter.Notification) {
		select {
		case pending <- n:
		default:
			b.logger.WarnContext(r.Context(), "event stream lagging, notification dropped",
				logger.Notification(n.Name),
			)
		}
	})
	if err != nil {
		status, code := http.StatusInternalServerError, "observe_failed"
		if errors.Is(err, notifycenter.ErrClosed) {
			status, code = http.StatusServiceUnavailable, "closed"
		}
		writeError(w, status, code, err)
		return
	}
	defer b.center.RemoveObserver(token)

	sse := datastar.NewSSE(w, r)
	var seq uint64
	for {
		select {
		case <-r.Context().Done():
			return
		case n := <-pending:
			seq++
			data, err := json.Marshal(StreamEvent{Name: n.Name})
			if err != nil {
				b.logger.ErrorContext(r.Context(), "encode stream event", logger.Error(err))
				continue
			}
			if err := sse.Send(EventNotification, []string{string(data)},
				datastar.WithSSEEventId(strconv.FormatUint(seq, 10)),
			); err != nil {
				b.logger.DebugContext(r.Context(), "event stream closed", logger.Notification(name), logger.Error(err))
				return
			}
		}
	}
}

func (b *Bridge) health(w http.ResponseWriter, r *http.Request) {
	result := HealthResult{Status: "ok"}
	if len(b.checks) > 0 {
		result.Checks = make(map[string]string, len(b.checks))
	}

	status := http.StatusOK
	for _, c := range b.checks {
		ctx, cancel := context.WithTimeout(r.Context(), b.healthTimeout)
		err := c.fn(ctx)
		cancel()

		if err != nil {
			b.logger.ErrorContext(r.Context(), "health check failed",
				slog.String("check", c.name),
				logger.Error(err),
			)
			result.Checks[c.name] = err.Error()
			result.Status = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		result.Checks[c.name] = "ok"
	}

	writeJSON(w, status, Response{Data: result})
}
