package main

import (
	"context"
	"fmt"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/pvframework/pkg/httpserver"
	"github.com/dmitrymomot/pvframework/pkg/logger"
	"github.com/dmitrymomot/pvframework/pkg/pg"
	"github.com/dmitrymomot/pvframework/pkg/redis"
	"github.com/dmitrymomot/pvframework/pkg/report"
)

// reportBackend is an opened report store with its readiness probes and
// the function releasing its connections.
type reportBackend struct {
	store  report.Store
	checks []httpserver.Check
	close  func()
	// redis is set for the redis store so other components can share it.
	redis *goredis.Client
}

func openReportStore(ctx context.Context, cfg serviceConfig, log *slog.Logger) (reportBackend, error) {
	log = log.With(logger.Component("report_store"), slog.String("store", cfg.ReportStore))

	switch cfg.ReportStore {
	case storeMemory:
		if cfg.ReportCacheSize <= 0 {
			return reportBackend{}, fmt.Errorf("PV_REPORT_CACHE_SIZE must be positive, got %d", cfg.ReportCacheSize)
		}
		log.InfoContext(ctx, "report store ready", logger.Count("capacity", cfg.ReportCacheSize))
		return reportBackend{store: report.NewMemoryStore(cfg.ReportCacheSize), close: func() {}}, nil

	case storeRedis:
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return reportBackend{}, err
		}
		log.InfoContext(ctx, "report store ready")
		return reportBackend{
			store: report.NewRedisStore(client,
				report.WithRedisPrefix(cfg.Redis.KeyPrefix),
				report.WithRedisTTL(cfg.ReportTTL),
			),
			checks: []httpserver.Check{redis.Healthcheck(client)},
			redis:  client,
			close: func() {
				if err := client.Close(); err != nil {
					log.Error("failed to close redis client", logger.Error(err))
				}
			},
		}, nil

	case storePostgres:
		pool, err := pg.Connect(ctx, cfg.PG)
		if err != nil {
			return reportBackend{}, err
		}
		if err := pg.Migrate(ctx, pool, cfg.PG, log); err != nil {
			pool.Close()
			return reportBackend{}, err
		}
		log.InfoContext(ctx, "report store ready")
		return reportBackend{
			store:  report.NewPostgresStore(pool),
			checks: []httpserver.Check{pg.Healthcheck(pool)},
			close:  pool.Close,
		}, nil
	}
	return reportBackend{}, fmt.Errorf("unknown report store %q", cfg.ReportStore)
}
