package pg

import "time"

// Config describes the PostgreSQL pool backing the report store.
type Config struct {
	ConnectionString  string        `env:"PV_PG_CONN_URL"`
	MaxOpenConns      int32         `env:"PV_PG_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns      int32         `env:"PV_PG_MAX_IDLE_CONNS" envDefault:"2"`
	HealthCheckPeriod time.Duration `env:"PV_PG_HEALTHCHECK_PERIOD" envDefault:"1m"`
	MaxConnIdleTime   time.Duration `env:"PV_PG_MAX_CONN_IDLE_TIME" envDefault:"10m"`
	MaxConnLifetime   time.Duration `env:"PV_PG_MAX_CONN_LIFETIME" envDefault:"30m"`

	RetryAttempts int           `env:"PV_PG_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval time.Duration `env:"PV_PG_RETRY_INTERVAL" envDefault:"2s"`

	// MigrationsTable stores the goose version of the embedded schema.
	MigrationsTable string `env:"PV_PG_MIGRATIONS_TABLE" envDefault:"pv_schema_migrations"`
}
