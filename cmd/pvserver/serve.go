package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/pvframework"
	"github.com/dmitrymomot/pvframework/pkg/httpapi"
	"github.com/dmitrymomot/pvframework/pkg/httpserver"
	"github.com/dmitrymomot/pvframework/pkg/logger"
	"github.com/dmitrymomot/pvframework/pkg/metrics"
	"github.com/dmitrymomot/pvframework/pkg/ratelimiter"
	"github.com/dmitrymomot/pvframework/pkg/rules"
	"github.com/dmitrymomot/pvframework/pkg/ruleset"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP validation service",
		Long: `Run the HTTP validation service.

Rule sets are loaded from PV_RULESETS_DIR and, with PV_WATCH_RULESETS,
reloaded when the directory changes. Reports go to the store selected by
PV_REPORT_STORE (memory, redis or postgres).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			envFiles, err := cmd.Flags().GetStringSlice("env-file")
			if err != nil {
				return err
			}
			cfg, err := loadConfig(envFiles)
			if err != nil {
				return err
			}
			log, err := newLogger(cfg)
			if err != nil {
				return err
			}
			logger.SetAsDefault(log)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, log)
		},
	}
}

func serve(ctx context.Context, cfg serviceConfig, log *slog.Logger) error {
	managerOpts := []pvframework.Option{
		pvframework.WithConfig(cfg.Manager),
		pvframework.WithLogger(log.With(logger.Component("manager"))),
	}
	var observer *metrics.Observer
	if cfg.Metrics.Enabled {
		observer = metrics.New(cfg.Metrics, prometheus.NewRegistry())
		managerOpts = append(managerOpts, pvframework.WithObserver(observer))
	}

	registry := ruleset.NewRegistry(rules.Default(), managerOpts...)
	if err := registry.LoadDir(cfg.RulesetsDir); err != nil {
		return err
	}
	log.InfoContext(ctx, "rule sets loaded",
		slog.String("dir", cfg.RulesetsDir),
		logger.Count("rulesets", registry.Len()),
	)

	backend, err := openReportStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer backend.close()

	serviceOpts := []httpapi.Option{
		httpapi.WithLogger(log.With(logger.Component("httpapi"))),
		httpapi.WithMaxBodyBytes(cfg.MaxBodyBytes),
	}
	if cfg.RateLimit.Enabled {
		limiter, closeLimiter, err := newRateLimiter(cfg, backend)
		if err != nil {
			return err
		}
		defer closeLimiter()
		serviceOpts = append(serviceOpts, httpapi.WithRateLimiter(limiter))
		log.InfoContext(ctx, "rate limiting enabled",
			logger.Count("capacity", cfg.RateLimit.Capacity),
			slog.Duration("refill_interval", cfg.RateLimit.RefillInterval),
		)
	}

	routerOpts := httpapi.RouterOptions{
		Service:         httpapi.NewService(registry, backend.store, serviceOpts...),
		Logger:          log,
		Environment:     cfg.environment(),
		Checks:          backend.checks,
		ClientIPHeaders: cfg.TrustedIPHeaders,
	}
	if observer != nil {
		routerOpts.Metrics = observer.Handler()
		routerOpts.MetricsPath = cfg.Metrics.Path
	}

	server := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(gctx, httpapi.NewRouter(routerOpts))
	})
	if cfg.WatchRulesets {
		watcher := ruleset.NewWatcher(registry, cfg.RulesetsDir,
			ruleset.WithWatcherLogger(log.With(logger.Component("ruleset_watcher"))),
		)
		g.Go(func() error {
			return watcher.Run(gctx)
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// newRateLimiter keeps buckets in redis when reports already live there, so
// every replica shares one budget per client. Otherwise buckets are local.
func newRateLimiter(cfg serviceConfig, backend reportBackend) (*ratelimiter.Bucket, func(), error) {
	if backend.redis != nil {
		b, err := ratelimiter.NewBucket(ratelimiter.NewRedisStore(backend.redis, cfg.RateLimitPrefix), cfg.RateLimit)
		return b, func() {}, err
	}
	store := ratelimiter.NewMemoryStore()
	b, err := ratelimiter.NewBucket(store, cfg.RateLimit)
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	return b, store.Close, nil
}
