package ratelimiter

import (
	"fmt"
	"time"
)

// Config defines the bucket shape. It is read from PV_RATE_LIMIT_* variables.
type Config struct {
	Enabled bool `env:"PV_RATE_LIMIT_ENABLED" envDefault:"false"`
	// Capacity is the burst size.
	Capacity int `env:"PV_RATE_LIMIT_CAPACITY" envDefault:"60"`
	// RefillRate tokens are added every RefillInterval, up to Capacity.
	RefillRate     int           `env:"PV_RATE_LIMIT_REFILL_RATE" envDefault:"1"`
	RefillInterval time.Duration `env:"PV_RATE_LIMIT_REFILL_INTERVAL" envDefault:"1s"`
}

func (c Config) validate() error {
	if c.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidConfig, c.Capacity)
	}
	if c.RefillRate <= 0 {
		return fmt.Errorf("%w: refill rate must be positive, got %d", ErrInvalidConfig, c.RefillRate)
	}
	if c.RefillInterval <= 0 {
		return fmt.Errorf("%w: refill interval must be positive, got %v", ErrInvalidConfig, c.RefillInterval)
	}
	return nil
}

// fullRefill is the time an empty bucket needs to fill up again.
func (c Config) fullRefill() time.Duration {
	intervals := (c.Capacity + c.RefillRate - 1) / c.RefillRate
	return time.Duration(intervals) * c.RefillInterval
}
