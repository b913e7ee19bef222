package notifycenter_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/notifycenter"
)

type mockTransport struct {
	mock.Mock
	in chan notifycenter.Envelope
}

func newMockTransport() *mockTransport {
	return &mockTransport{in: make(chan notifycenter.Envelope, 8)}
}

func (m *mockTransport) Publish(ctx context.Context, env notifycenter.Envelope) error {
	return m.Called(env.Name, env.Origin).Error(0)
}

func (m *mockTransport) Subscribe(ctx context.Context, name string) error {
	return m.Called(name).Error(0)
}

func (m *mockTransport) Unsubscribe(ctx context.Context, name string) error {
	return m.Called(name).Error(0)
}

func (m *mockTransport) Receive() <-chan notifycenter.Envelope { return m.in }

func (m *mockTransport) Close() error {
	m.Called()
	close(m.in)
	return nil
}

func TestEnvelope(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		env := notifycenter.NewEnvelope("node-1", "com.example.Foo")
		assert.NotEmpty(t, env.ID)
		assert.False(t, env.SentAt.IsZero())

		data, err := notifycenter.EncodeEnvelope(env)
		require.NoError(t, err)

		got, err := notifycenter.DecodeEnvelope(data)
		require.NoError(t, err)
		assert.Equal(t, env.ID, got.ID)
		assert.Equal(t, env.Name, got.Name)
		assert.Equal(t, env.Origin, got.Origin)
		assert.True(t, env.SentAt.Equal(got.SentAt))
	})

	t.Run("invalid frames", func(t *testing.T) {
		for _, frame := range []string{`not json`, `{}`, `{"name":""}`} {
			_, err := notifycenter.DecodeEnvelope([]byte(frame))
			assert.ErrorIs(t, err, notifycenter.ErrInvalidEnvelope, frame)
		}

		_, err := notifycenter.EncodeEnvelope(notifycenter.Envelope{})
		assert.ErrorIs(t, err, notifycenter.ErrEmptyName)
	})
}

func TestHub_TransportSubscriptions(t *testing.T) {
	tr := newMockTransport()
	tr.On("Subscribe", "X").Return(nil).Once()
	tr.On("Unsubscribe", "X").Return(nil).Once()
	tr.On("Close").Return().Once()

	hub := notifycenter.New(notifycenter.WithTransport(tr))

	t1, err := hub.Observe("X", nil, func(notifycenter.Notification) {})
	require.NoError(t, err)
	t2, err := hub.Observe("X", nil, func(notifycenter.Notification) {})
	require.NoError(t, err)

	hub.RemoveObserver(t1)
	tr.AssertNotCalled(t, "Unsubscribe", "X")
	hub.RemoveObserver(t2)

	require.NoError(t, hub.Close())
	tr.AssertExpectations(t)
}

func TestHub_TransportSubscribeFailureKeepsLocal(t *testing.T) {
	tr := newMockTransport()
	tr.On("Subscribe", "X").Return(errors.New("offline"))
	tr.On("Publish", "X", mock.Anything).Return(nil)
	tr.On("Close").Return()

	hub := notifycenter.New(notifycenter.WithTransport(tr))
	defer hub.Close()

	var delivered int
	_, err := hub.Observe("X", nil, func(notifycenter.Notification) { delivered++ })
	require.NoError(t, err)

	hub.Post("X")
	assert.Equal(t, 1, delivered)
}

func TestHub_TransportPublish(t *testing.T) {
	tr := newMockTransport()
	tr.On("Subscribe", "X").Return(nil)
	tr.On("Publish", "X", "node-1").Return(nil).Once()
	tr.On("Publish", "Y", "node-1").Return(errors.New("broken pipe")).Once()
	tr.On("Close").Return()

	hub := notifycenter.New(notifycenter.WithTransport(tr), notifycenter.WithOrigin("node-1"))
	defer hub.Close()

	var delivered int
	_, err := hub.Observe("X", nil, func(notifycenter.Notification) { delivered++ })
	require.NoError(t, err)

	require.NoError(t, hub.PostContext(context.Background(), "X"))
	assert.Equal(t, 1, delivered, "local delivery happens before publish")

	err = hub.PostContext(context.Background(), "Y")
	assert.ErrorIs(t, err, notifycenter.ErrPublishFailed)

	// Post logs instead of returning the failure.
	tr.On("Publish", "Y", "node-1").Return(errors.New("broken pipe")).Once()
	assert.NotPanics(t, func() { hub.Post("Y") })

	tr.AssertExpectations(t)
}

func TestHub_TransportReceive(t *testing.T) {
	tr := newMockTransport()
	tr.On("Subscribe", "X").Return(nil)
	tr.On("Close").Return()

	hub := notifycenter.New(notifycenter.WithTransport(tr), notifycenter.WithOrigin("self"))
	defer hub.Close()

	delivered := make(chan string, 4)
	_, err := hub.Observe("X", nil, func(n notifycenter.Notification) { delivered <- n.Name })
	require.NoError(t, err)

	tr.in <- notifycenter.NewEnvelope("self", "X")
	tr.in <- notifycenter.NewEnvelope("peer", "X")

	select {
	case name := <-delivered:
		assert.Equal(t, "X", name)
	case <-time.After(time.Second):
		t.Fatal("foreign envelope not delivered")
	}

	select {
	case <-delivered:
		t.Fatal("own envelope delivered twice")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_CloseClosesTransport(t *testing.T) {
	tr := newMockTransport()
	tr.On("Close").Return().Once()

	hub := notifycenter.New(notifycenter.WithTransport(tr))
	require.NoError(t, hub.Close())
	require.NoError(t, hub.Close())

	tr.AssertExpectations(t)
}
