// Package httpapi serves rule sets, validation runs and stored reports over
// HTTP with chi.
//
// Handlers are typed: Wrap decodes the request with the configured binders
// (BindPath, BindQuery, BindJSON) into a request struct and renders the
// returned Response. Errors surface through an ErrorHandler that maps domain
// sentinels such as ruleset.ErrRulesetNotFound and report.ErrNotFound to
// status codes and writes a JSON Envelope.
//
//	svc := httpapi.NewService(registry, store, httpapi.WithLogger(log))
//	router := httpapi.NewRouter(httpapi.RouterOptions{
//		Service:     svc,
//		Logger:      log,
//		Environment: env,
//		Checks:      []httpserver.Check{redis.Healthcheck(client)},
//		Metrics:     observer.Handler(),
//		MetricsPath: "/metrics",
//	})
//	err := httpserver.NewFromConfig(cfg.HTTP).Run(ctx, router)
//
// POST /api/v1/rulesets/{name}/validate takes {"instance": ...}, validates it
// with the rule set's manager, saves the report and returns it. Findings do
// not change the status code; the report's "succeeded" field does.
//
// WithRateLimiter throttles the validate routes per client address as
// resolved by clientip. Denied requests get 429 with a Retry-After header.
package httpapi
