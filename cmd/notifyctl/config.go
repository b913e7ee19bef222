package main

import (
	"github.com/dmitrymomot/notifycenter/pkg/httpserver"
	"github.com/dmitrymomot/notifycenter/pkg/logger"
)

// Transport kinds accepted by NOTIFY_TRANSPORT.
const (
	transportNone     = "none"
	transportRedis    = "redis"
	transportPostgres = "postgres"
)

type appConfig struct {
	Transport string `env:"NOTIFY_TRANSPORT" envDefault:"none"`
	// Workers > 0 delivers observed notifications on a worker pool instead
	// of the receiving goroutine.
	Workers int `env:"NOTIFY_WORKERS" envDefault:"0"`

	Log  logger.Config
	HTTP httpserver.Config
}
