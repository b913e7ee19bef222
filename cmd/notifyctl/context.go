package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dmitrymomot/notifycenter"
	"github.com/dmitrymomot/notifycenter/pkg/config"
	"github.com/dmitrymomot/notifycenter/pkg/logger"
	"github.com/dmitrymomot/notifycenter/pkg/pg"
	"github.com/dmitrymomot/notifycenter/pkg/redis"
	"github.com/dmitrymomot/notifycenter/pkg/requestid"
	"github.com/dmitrymomot/notifycenter/pkg/workqueue"
)

var (
	errUnknownTransport = errors.New("unknown NOTIFY_TRANSPORT")
	errListenerNotReady = errors.New("postgres listener not ready")
)

// listenerReadyTimeout bounds the wait for a postgres LISTEN to be active.
const listenerReadyTimeout = 10 * time.Second

type healthcheck struct {
	name string
	fn   func(context.Context) error
}

type commandContext struct {
	prefixFlag  *string
	envFileFlag *string

	configOnce sync.Once
	config     appConfig
	configErr  error
	logger     *slog.Logger

	// hub, when set before a command runs, is used instead of building
	// one from the configuration.
	hub     *notifycenter.Hub
	checks  []healthcheck
	closers []func()
}

func newCommandContext(prefixFlag, envFileFlag *string) *commandContext {
	return &commandContext{
		prefixFlag:  prefixFlag,
		envFileFlag: envFileFlag,
	}
}

func (c *commandContext) ensureConfig() (appConfig, error) {
	c.configOnce.Do(func() {
		if c.envFileFlag != nil && strings.TrimSpace(*c.envFileFlag) != "" {
			if err := config.LoadEnv(*c.envFileFlag); err != nil {
				c.configErr = err
				return
			}
		}
		if err := config.Load(&c.config); err != nil {
			c.configErr = err
			return
		}
		c.logger = logger.NewFromConfig(c.config.Log,
			logger.WithOutput(os.Stderr),
			logger.WithContextExtractors(requestid.LoggerExtractor()),
		)
	})
	return c.config, c.configErr
}

func (c *commandContext) log() *slog.Logger {
	if c.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.logger
}

func (c *commandContext) prefix() string {
	if c.prefixFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.prefixFlag)
}

// openHub returns the hub commands work against, connected to the
// configured transport.
func (c *commandContext) openHub(ctx context.Context) (*notifycenter.Hub, error) {
	if c.hub != nil {
		return c.hub, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}

	opts := []notifycenter.Option{notifycenter.WithLogger(c.log())}
	switch strings.ToLower(strings.TrimSpace(cfg.Transport)) {
	case "", transportNone:
	case transportRedis:
		var rcfg redis.Config
		if err := config.Load(&rcfg); err != nil {
			return nil, err
		}
		client, err := redis.Connect(ctx, rcfg)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, func() { _ = client.Close() })
		c.checks = append(c.checks, healthcheck{name: transportRedis, fn: redis.Healthcheck(client)})
		opts = append(opts, notifycenter.WithTransport(
			redis.NewTransportFromConfig(ctx, client, rcfg, redis.WithTransportLogger(c.log())),
		))
	case transportPostgres:
		var pcfg pg.Config
		if err := config.Load(&pcfg); err != nil {
			return nil, err
		}
		pool, err := pg.Connect(ctx, pcfg)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, pool.Close)
		c.checks = append(c.checks, healthcheck{name: transportPostgres, fn: pg.Healthcheck(pool)})

		transport := pg.NewTransportFromConfig(ctx, pool, pcfg, pg.WithTransportLogger(c.log()))
		if err := waitReady(ctx, transport.Ready(), listenerReadyTimeout); err != nil {
			_ = transport.Close()
			return c.fail(err)
		}
		opts = append(opts, notifycenter.WithTransport(transport))
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownTransport, cfg.Transport)
	}

	c.hub = notifycenter.New(opts...)
	return c.hub, nil
}

// fail releases connections opened by a partially built hub and returns err.
func (c *commandContext) fail(err error) (*notifycenter.Hub, error) {
	c.close()
	return nil, err
}

// waitReady blocks until ready is closed, timeout passes or ctx ends.
func waitReady(ctx context.Context, ready <-chan struct{}, timeout time.Duration) error {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-ready:
		return nil
	case <-timer.C:
		return fmt.Errorf("%w after %s", errListenerNotReady, timeout)
	case <-ctx.Done():
		return ctx.Err()
	}
}

// center wraps hub with the --prefix facade when one is set.
func (c *commandContext) center(hub *notifycenter.Hub) notifycenter.Center {
	if p := c.prefix(); p != "" {
		return notifycenter.NewPrefixed(hub, p)
	}
	return hub
}

// queue returns the delivery queue for observers and a function that
// releases it.
func (c *commandContext) queue() (notifycenter.Queue, func()) {
	if c.config.Workers <= 0 {
		return nil, func() {}
	}
	pool := workqueue.New(workqueue.WithWorkers(c.config.Workers), workqueue.WithLogger(c.log()))
	return pool, func() { _ = pool.Close() }
}

// close shuts the hub and then the connections its transport used.
func (c *commandContext) close() {
	if c.hub != nil {
		if err := c.hub.Close(); err != nil {
			c.log().Warn("hub close", logger.Error(err))
		}
	}
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}
