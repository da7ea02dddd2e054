package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/pvframework/pkg/logger"
	"github.com/dmitrymomot/pvframework/pkg/ratelimiter"
	"github.com/dmitrymomot/pvframework/pkg/report"
	"github.com/dmitrymomot/pvframework/pkg/ruleset"
)

// Service exposes rule sets, validation runs and stored reports over HTTP.
type Service struct {
	registry     *ruleset.Registry
	store        report.Store
	log          *slog.Logger
	errorHandler ErrorHandler
	maxBodyBytes int64
	limiter      *ratelimiter.Bucket
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for request errors and runs.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithServiceErrorHandler replaces the default JSON error handler of every
// Service route.
func WithServiceErrorHandler(h ErrorHandler) Option {
	return func(s *Service) {
		if h != nil {
			s.errorHandler = h
		}
	}
}

// WithMaxBodyBytes caps the size of validation request bodies.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxBodyBytes = n
		}
	}
}

// WithRateLimiter throttles validation requests per client address.
func WithRateLimiter(b *ratelimiter.Bucket) Option {
	return func(s *Service) { s.limiter = b }
}

// NewService creates a Service over registry. Reports of every run are saved
// to store.
func NewService(registry *ruleset.Registry, store report.Store, opts ...Option) *Service {
	s := &Service{
		registry:     registry,
		store:        store,
		log:          logger.Discard(),
		maxBodyBytes: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.errorHandler == nil {
		s.errorHandler = NewErrorHandler(s.log)
	}
	return s
}

// Handle returns the service routes.
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()
	errs := WithErrorHandler(s.errorHandler)
	path := WithBinders(BindPath())
	body := WithBinders(BindPath(), BindJSON(s.maxBodyBytes))

	r.Get("/rulesets", Wrap(s.listRulesets, errs))
	r.Get("/rulesets/{name}", Wrap(s.getRuleset, errs, path))
	r.Group(func(r chi.Router) {
		if s.limiter != nil {
			r.Use(rateLimit(s.limiter, s.log))
		}
		r.Post("/rulesets/{name}/validate", Wrap(s.validate, errs, body))
		r.Post("/rulesets/{name}/validate/batch", Wrap(s.validateBatch, errs, body))
	})

	r.Get("/reports", Wrap(s.listReports, errs, WithBinders(BindQuery())))
	r.Get("/reports/{id}", Wrap(s.getReport, errs, path))
	r.Delete("/reports/{id}", Wrap(s.deleteReport, errs, path))

	return r
}
