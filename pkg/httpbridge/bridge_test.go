package httpbridge_test

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/notifycenter"
	"github.com/dmitrymomot/notifycenter/pkg/httpbridge"
	"github.com/dmitrymomot/notifycenter/pkg/requestid"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestPost(t *testing.T) {
	hub := notifycenter.New()
	defer hub.Close()

	var got []string
	_, err := hub.Observe("com.example.DidSync", nil, func(n notifycenter.Notification) {
		got = append(got, n.Name)
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/notifications/com.example.DidSync", nil)
	httpbridge.New(hub).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, map[string]any{"name": "com.example.DidSync"}, decode(t, rec)["data"])
	assert.Equal(t, []string{"com.example.DidSync"}, got)
	assert.NotEmpty(t, rec.Header().Get(requestid.Header))
}

func TestPost_ThroughPrefixedCenter(t *testing.T) {
	hub := notifycenter.New()
	defer hub.Close()

	var got []string
	_, err := hub.Observe("com.example.Foo", nil, func(n notifycenter.Notification) {
		got = append(got, n.Name)
	})
	require.NoError(t, err)

	bridge := httpbridge.New(notifycenter.NewPrefixed(hub, "com.example"))
	rec := httptest.NewRecorder()
	bridge.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/notifications/Foo", nil))

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, []string{"com.example.Foo"}, got)
}

func TestNames(t *testing.T) {
	t.Run("hub lists observed names", func(t *testing.T) {
		hub := notifycenter.New()
		defer hub.Close()
		for _, name := range []string{"b", "a"} {
			_, err := hub.Observe(name, nil, func(notifycenter.Notification) {})
			require.NoError(t, err)
		}

		rec := httptest.NewRecorder()
		httpbridge.New(hub).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/notifications", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []any{"a", "b"}, decode(t, rec)["data"])
	})

	t.Run("prefixed center has no listing", func(t *testing.T) {
		hub := notifycenter.New()
		defer hub.Close()

		rec := httptest.NewRecorder()
		httpbridge.New(notifycenter.NewPrefixed(hub, "x")).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/notifications", nil))
		assert.NotEqual(t, http.StatusOK, rec.Code)
	})
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name       string
		opts       []httpbridge.Option
		wantStatus int
		wantBody   map[string]any
	}{
		{
			name:       "no checks",
			wantStatus: http.StatusOK,
			wantBody:   map[string]any{"status": "ok"},
		},
		{
			name: "passing check",
			opts: []httpbridge.Option{
				httpbridge.WithHealthcheck("redis", func(context.Context) error { return nil }),
			},
			wantStatus: http.StatusOK,
			wantBody: map[string]any{
				"status": "ok",
				"checks": map[string]any{"redis": "ok"},
			},
		},
		{
			name: "failing check",
			opts: []httpbridge.Option{
				httpbridge.WithHealthcheck("redis", func(context.Context) error { return nil }),
				httpbridge.WithHealthcheck("postgres", func(context.Context) error { return errors.New("down") }),
			},
			wantStatus: http.StatusServiceUnavailable,
			wantBody: map[string]any{
				"status": "unavailable",
				"checks": map[string]any{"redis": "ok", "postgres": "down"},
			},
		},
		{
			name: "check timeout",
			opts: []httpbridge.Option{
				httpbridge.WithHealthTimeout(10 * time.Millisecond),
				httpbridge.WithHealthcheck("slow", func(ctx context.Context) error {
					<-ctx.Done()
					return ctx.Err()
				}),
			},
			wantStatus: http.StatusServiceUnavailable,
			wantBody: map[string]any{
				"status": "unavailable",
				"checks": map[string]any{"slow": context.DeadlineExceeded.Error()},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hub := notifycenter.New()
			defer hub.Close()

			rec := httptest.NewRecorder()
			httpbridge.New(hub, tt.opts...).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantBody, decode(t, rec)["data"])
		})
	}
}

func TestWithHealthcheck_Panics(t *testing.T) {
	assert.Panics(t, func() { httpbridge.WithHealthcheck("", func(context.Context) error { return nil }) })
	assert.Panics(t, func() { httpbridge.WithHealthcheck("x", nil) })
}

func TestEvents(t *testing.T) {
	hub := notifycenter.New()
	defer hub.Close()

	srv := httptest.NewServer(httpbridge.New(hub))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/notifications/com.example.Tick/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/event-stream")
	require.Eventually(t, func() bool { return hub.ObserverCount("com.example.Tick") == 1 }, time.Second, 5*time.Millisecond)

	hub.Post("com.example.Other")
	hub.Post("com.example.Tick")

	events := make(chan string, 4)
	go func() {
		scanner := bufio.NewScanner(resp.Body)
		var event string
		for scanner.Scan() {
			line := scanner.Text()
			switch {
			case strings.HasPrefix(line, "event: "):
				event = strings.TrimPrefix(line, "event: ")
			case strings.HasPrefix(line, "data: "):
				events <- event + " " + strings.TrimPrefix(line, "data: ")
			}
		}
	}()

	select {
	case got := <-events:
		assert.Equal(t, `notification {"name":"com.example.Tick"}`, got)
	case <-time.After(2 * time.Second):
		t.Fatal("no event received")
	}

	cancel()
	assert.Eventually(t, func() bool { return hub.ObserverCount("com.example.Tick") == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestEvents_ClosedHub(t *testing.T) {
	hub := notifycenter.New()
	require.NoError(t, hub.Close())

	rec := httptest.NewRecorder()
	httpbridge.New(hub).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/notifications/x/events", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "closed", decode(t, rec)["error"].(map[string]any)["code"])
}
