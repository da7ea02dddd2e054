package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/pvframework/pkg/clientip"
	"github.com/dmitrymomot/pvframework/pkg/environment"
	"github.com/dmitrymomot/pvframework/pkg/httpserver"
	"github.com/dmitrymomot/pvframework/pkg/logger"
	"github.com/dmitrymomot/pvframework/pkg/requestid"
)

// APIPrefix is where the Service routes are mounted.
const APIPrefix = "/api/v1"

// RouterOptions configures the root router. Only Service is required.
type RouterOptions struct {
	Service     *Service
	Logger      *slog.Logger
	Environment environment.Environment
	// Checks gate the readiness probe.
	Checks []httpserver.Check
	// Metrics is mounted at MetricsPath when both are set.
	Metrics     http.Handler
	MetricsPath string
	// ClientIPHeaders are the proxy headers trusted for the client address.
	// Nil means clientip.DefaultHeaders.
	ClientIPHeaders []string
}

// NewRouter builds the root handler of the validation service:
//
//	GET    /health/live
//	GET    /health/ready
//	GET    <MetricsPath>
//	GET    /api/v1/rulesets
//	GET    /api/v1/rulesets/{name}
//	POST   /api/v1/rulesets/{name}/validate
//	POST   /api/v1/rulesets/{name}/validate/batch
//	GET    /api/v1/reports?instance_key=&limit=
//	GET    /api/v1/reports/{id}
//	DELETE /api/v1/reports/{id}
func NewRouter(opts RouterOptions) chi.Router {
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}

	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		clientip.Middleware(opts.ClientIPHeaders...),
		environment.Middleware(opts.Environment),
		middleware.Recoverer,
		accessLog(log),
	)

	r.Get("/health/live", httpserver.HealthCheckHandler(log))
	r.Get("/health/ready", httpserver.HealthCheckHandler(log, opts.Checks...))
	if opts.Metrics != nil && opts.MetricsPath != "" {
		r.Method(http.MethodGet, opts.MetricsPath, opts.Metrics)
	}
	if opts.Service != nil {
		r.Mount(APIPrefix, opts.Service.Handle())
	}
	return r
}

func accessLog(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.DebugContext(r.Context(), "request served",
				logger.RequestID(requestid.FromContext(r.Context())),
				slog.String("client_ip", clientip.FromContext(r.Context())),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				logger.Duration(time.Since(start)),
			)
		})
	}
}
