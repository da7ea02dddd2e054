package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dmitrymomot/pvframework"
	"github.com/dmitrymomot/pvframework/pkg/config"
	"github.com/dmitrymomot/pvframework/pkg/environment"
	"github.com/dmitrymomot/pvframework/pkg/httpserver"
	"github.com/dmitrymomot/pvframework/pkg/logger"
	"github.com/dmitrymomot/pvframework/pkg/metrics"
	"github.com/dmitrymomot/pvframework/pkg/pg"
	"github.com/dmitrymomot/pvframework/pkg/ratelimiter"
	"github.com/dmitrymomot/pvframework/pkg/redis"
	"github.com/dmitrymomot/pvframework/pkg/requestid"
)

// Report store kinds accepted by PV_REPORT_STORE.
const (
	storeMemory   = "memory"
	storeRedis    = "redis"
	storePostgres = "postgres"
)

type serviceConfig struct {
	AppEnv      string `env:"APP_ENV" envDefault:"development"`
	ServiceName string `env:"PV_SERVICE_NAME" envDefault:"pvserver"`
	LogLevel    string `env:"LOG_LEVEL"`
	LogFormat   string `env:"LOG_FORMAT"`

	RulesetsDir   string `env:"PV_RULESETS_DIR" envDefault:"rulesets"`
	WatchRulesets bool   `env:"PV_WATCH_RULESETS" envDefault:"true"`

	ReportStore     string        `env:"PV_REPORT_STORE" envDefault:"memory"`
	ReportCacheSize int           `env:"PV_REPORT_CACHE_SIZE" envDefault:"1000"`
	ReportTTL       time.Duration `env:"PV_REPORT_TTL" envDefault:"0s"`
	MaxBodyBytes    int64         `env:"PV_HTTP_MAX_BODY_BYTES" envDefault:"4194304"`

	// TrustedIPHeaders name the proxy headers used to resolve client addresses.
	TrustedIPHeaders []string `env:"PV_TRUSTED_IP_HEADERS" envDefault:"X-Forwarded-For,X-Real-IP"`
	RateLimitPrefix  string   `env:"PV_RATE_LIMIT_KEY_PREFIX" envDefault:"pv:ratelimit:"`

	Manager   pvframework.Config
	HTTP      httpserver.Config
	Metrics   metrics.Config
	RateLimit ratelimiter.Config
	Redis     redis.Config
	PG        pg.Config
}

func (c serviceConfig) environment() environment.Environment {
	return environment.Parse(c.AppEnv)
}

// loadConfig reads the service configuration from the environment after
// loading envFiles. Variables already set are not overridden.
func loadConfig(envFiles []string) (serviceConfig, error) {
	if len(envFiles) > 0 {
		if err := config.LoadEnv(envFiles...); err != nil {
			return serviceConfig{}, err
		}
	}

	var cfg serviceConfig
	if err := config.Load(&cfg); err != nil {
		return serviceConfig{}, err
	}
	switch cfg.ReportStore {
	case storeMemory, storeRedis, storePostgres:
	default:
		return serviceConfig{}, fmt.Errorf("PV_REPORT_STORE: unknown store %q", cfg.ReportStore)
	}
	return cfg, nil
}

func newLogger(cfg serviceConfig) (*slog.Logger, error) {
	opts := []logger.Option{
		logger.WithEnvironment(cfg.environment(), cfg.ServiceName),
		logger.WithOutput(os.Stdout),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	}
	if cfg.LogLevel != "" {
		level, err := logger.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		opts = append(opts, logger.WithLevel(level))
	}
	switch logger.Format(cfg.LogFormat) {
	case "":
	case logger.FormatJSON, logger.FormatText:
		opts = append(opts, logger.WithFormat(logger.Format(cfg.LogFormat)))
	default:
		return nil, fmt.Errorf("LOG_FORMAT: unknown format %q", cfg.LogFormat)
	}
	return logger.New(opts...), nil
}
