package redis

import "errors"

var (
	// ErrEmptyConnectionURL is returned when PV_REDIS_URL is unset.
	ErrEmptyConnectionURL = errors.New("empty redis connection URL, set PV_REDIS_URL")
	// ErrInvalidConnectionURL wraps the go-redis URL parse error.
	ErrInvalidConnectionURL = errors.New("invalid redis connection URL")
	// ErrNotReady is returned when no ping succeeded within the retry budget.
	ErrNotReady = errors.New("redis not ready after retries")
	// ErrHealthcheckFailed wraps a failed readiness ping.
	ErrHealthcheckFailed = errors.New("redis healthcheck failed")
)
