package redis

import "time"

// Config describes how the report store reaches Redis.
type Config struct {
	ConnectionURL  string        `env:"PV_REDIS_URL" envDefault:"redis://localhost:6379/0"` // redis://:password@host:6379/0
	RetryAttempts  int           `env:"PV_REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"PV_REDIS_RETRY_INTERVAL" envDefault:"2s"`
	ConnectTimeout time.Duration `env:"PV_REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
	KeyPrefix      string        `env:"PV_REDIS_KEY_PREFIX" envDefault:"pv:report:"`
}
