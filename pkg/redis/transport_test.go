package redis_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/notifycenter"
	"github.com/dmitrymomot/notifycenter/pkg/redis"
)

func connect(t *testing.T) redis.Config {
	t.Helper()
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	return redis.Config{
		ConnectionURL:  url,
		RetryAttempts:  1,
		ConnectTimeout: 5 * time.Second,
		ChannelPrefix:  "notifycenter-test-" + uuid.NewString() + ":",
		ReceiveBuffer:  10,
	}
}

func TestConnect_Errors(t *testing.T) {
	t.Run("empty url", func(t *testing.T) {
		_, err := redis.Connect(context.Background(), redis.Config{})
		assert.ErrorIs(t, err, redis.ErrEmptyConnectionURL)
	})

	t.Run("invalid url", func(t *testing.T) {
		_, err := redis.Connect(context.Background(), redis.Config{ConnectionURL: "http://nope"})
		assert.ErrorIs(t, err, redis.ErrFailedToParseRedisConnString)
	})
}

func TestTransport_CrossProcess(t *testing.T) {
	cfg := connect(t)
	ctx := context.Background()

	client, err := redis.Connect(ctx, cfg)
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, redis.Healthcheck(client)(ctx))

	sender := notifycenter.New(notifycenter.WithTransport(redis.NewTransportFromConfig(ctx, client, cfg)))
	defer sender.Close()
	receiver := notifycenter.New(notifycenter.WithTransport(redis.NewTransportFromConfig(ctx, client, cfg)))
	defer receiver.Close()

	received := make(chan string, 4)
	_, err = receiver.Observe("com.example.Remote", nil, func(n notifycenter.Notification) {
		received <- n.Name
	})
	require.NoError(t, err)

	var local int
	_, err = sender.Observe("com.example.Remote", nil, func(notifycenter.Notification) { local++ })
	require.NoError(t, err)

	// SUBSCRIBE is acknowledged asynchronously.
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, sender.PostContext(ctx, "com.example.Remote"))

	select {
	case name := <-received:
		assert.Equal(t, "com.example.Remote", name)
	case <-time.After(5 * time.Second):
		t.Fatal("notification did not cross the transport")
	}

	// The sender delivers locally once and ignores its own echo.
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 1, local)
}

func TestTransport_Channel(t *testing.T) {
	cfg := connect(t)
	ctx := context.Background()

	client, err := redis.Connect(ctx, cfg)
	require.NoError(t, err)
	defer client.Close()

	tr := redis.NewTransport(ctx, client, redis.WithChannelPrefix("darwin:"))
	defer tr.Close()

	assert.Equal(t, "darwin:com.example.X", tr.Channel("com.example.X"))
}
