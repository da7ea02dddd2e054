package httpserver

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Option adjusts a Server after its Config is applied.
type Option func(*settings)

type settings struct {
	Config
	server  *http.Server
	logger  *slog.Logger
	onStart []func(addr string)
	onStop  []func()
}


// WithAddr overrides the listen address. It panics on "".
func WithAddr(addr string) Option {
	if addr == "" {
		panic("httpserver: empty listen address")
	}
	return func(s *settings) { s.Addr = addr }
}

// WithTimeouts overrides the read, write and idle timeouts. Zero keeps the
// current value; negative values panic.
func WithTimeouts(read, write, idle time.Duration) Option {
	for _, d := range []time.Duration{read, write, idle} {
		if d < 0 {
			panic(fmt.Sprintf("httpserver: negative timeout %v", d))
		}
	}
	return func(s *settings) {
		s.ReadTimeout = cmpOr(read, s.ReadTimeout)
		s.WriteTimeout = cmpOr(write, s.WriteTimeout)
		s.IdleTimeout = cmpOr(idle, s.IdleTimeout)
	}
}

// WithShutdownTimeout bounds graceful shutdown. It panics unless d > 0.
func WithShutdownTimeout(d time.Duration) Option {
	if d <= 0 {
		panic(fmt.Sprintf("httpserver: shutdown timeout must be positive, got %v", d))
	}
	return func(s *settings) { s.ShutdownTimeout = d }
}

// WithServer serves through srv. Fields already set on srv win over the
// configured ones; its Handler is replaced by Run.
func WithServer(srv *http.Server) Option {
	if srv == nil {
		panic("httpserver: nil http.Server")
	}
	return func(s *settings) { s.server = srv }
}

// WithLogger sets the logger. Nil keeps the discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// OnStart registers fn to run with the bound address once the listener is up.
func OnStart(fn func(addr string)) Option {
	if fn == nil {
		panic("httpserver: nil start hook")
	}
	return func(s *settings) { s.onStart = append(s.onStart, fn) }
}

// OnStop registers fn to run after shutdown.
func OnStop(fn func()) Option {
	if fn == nil {
		panic("httpserver: nil stop hook")
	}
	return func(s *settings) { s.onStop = append(s.onStop, fn) }
}

func cmpOr(v, fallback time.Duration) time.Duration {
	if v == 0 {
		return fallback
	}
	return v
}
