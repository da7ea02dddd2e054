// Package config loads typed configuration from the process environment.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11:
// optional .env files are read into the environment, then any struct with
// `env` tags can be populated with Load. Each configuration type is parsed
// once per process and served from an in-memory cache afterwards.
//
//	var cfg pvframework.Config
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
// Services in this module keep one Config struct per concern
// (pvframework.Config, redis.Config, pg.Config, httpserver.Config,
// metrics.Config) and load each of them through this package.
//
// Errors are sentinel values comparable with errors.Is: ErrParsingConfig,
// ErrLoadingEnvFile, ErrConfigNotLoaded and ErrNilPointer.
//
// ResetCache clears the cache between tests.
package config
