package httpserver

import "time"

// Config holds the listener settings of the validation service.
type Config struct {
	Addr            string        `env:"PV_HTTP_ADDR" envDefault:":8080"`
	ReadTimeout     time.Duration `env:"PV_HTTP_READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout    time.Duration `env:"PV_HTTP_WRITE_TIMEOUT" envDefault:"60s"`
	IdleTimeout     time.Duration `env:"PV_HTTP_IDLE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout time.Duration `env:"PV_HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

const (
	defaultAddr            = ":8080"
	defaultShutdownTimeout = 5 * time.Second
)

// NewFromConfig creates a Server from cfg and then applies opts. An empty
// address and a zero shutdown timeout fall back to :8080 and 5s; other zero
// timeouts leave http.Server without a limit.
func NewFromConfig(cfg Config, opts ...Option) *Server {
	if cfg.Addr == "" {
		cfg.Addr = defaultAddr
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}
	s := &settings{Config: cfg}
	for _, opt := range opts {
		opt(s)
	}
	return newServer(s)
}

// New is NewFromConfig with an empty Config.
func New(opts ...Option) *Server {
	return NewFromConfig(Config{}, opts...)
}
