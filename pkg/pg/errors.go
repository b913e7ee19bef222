package pg

import "errors"

var (
	ErrFailedToOpenDBConnection = errors.New("failed to open db connection")
	ErrEmptyConnectionString    = errors.New("empty postgres connection string, use PG_CONN_URL env var")
	ErrHealthcheckFailed        = errors.New("healthcheck failed, connection is not available")
	ErrFailedToParseDBConfig    = errors.New("failed to parse db config")
	ErrPublishFailed            = errors.New("pg: failed to notify")
	ErrListenFailed             = errors.New("pg: listener failed")
	ErrInvalidChannel           = errors.New("pg: notify channel name is empty")
)
