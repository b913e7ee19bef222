package redis

import "time"

type Config struct {
	ConnectionURL  string        `env:"REDIS_URL,required" envDefault:"redis://localhost:6379/0"` // ConnectionURL is the server URL, e.g. "redis://:password@localhost:6379/0".
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`                      // RetryAttempts is the number of connection attempts.
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`                     // RetryInterval is the pause between connection attempts.
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`                   // ConnectTimeout bounds the whole connection procedure.
	ChannelPrefix  string        `env:"REDIS_CHANNEL_PREFIX" envDefault:"notifycenter:"`          // ChannelPrefix namespaces the pub/sub channels used by Transport.
	ReceiveBuffer  int           `env:"REDIS_RECEIVE_BUFFER" envDefault:"100"`                    // ReceiveBuffer is the size of the inbound envelope buffer.
}
