package config

import (
	"errors"
	"strings"
)

// Validate checks every setting and returns all problems joined, or nil.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, msg string) {
		if !ok {
			errs = append(errs, errors.New(msg))
		}
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		errs = append(errs, errors.New("LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic"))
	}
	check(strings.TrimSpace(c.Port) != "", "PORT must not be empty")
	check(c.ReadTimeout > 0 && c.ReadHeaderTimeout > 0 && c.WriteTimeout > 0 && c.IdleTimeout > 0,
		"timeouts must be positive durations")
	check(c.MaxHeaderBytes > 0, "MAX_HEADER_BYTES must be > 0")

	switch c.StoreDriver {
	case StoreMemory:
	case StoreSQLite:
		check(strings.TrimSpace(c.DBPath) != "", "DB_PATH must not be empty")
	case StorePostgres:
		check(c.DatabaseURL != "", "DATABASE_URL is required when STORE_DRIVER=postgres")
	default:
		errs = append(errs, errors.New("STORE_DRIVER must be one of: memory, sqlite, postgres"))
	}
	check(c.DemoUserID != "", "DEMO_USER_ID must not be empty")

	check(c.RateRPS >= 0, "RATE_RPS must be >= 0")
	check(c.RateBurst >= 1, "RATE_BURST must be >= 1")
	check(c.Security.HSTSMaxAge >= 0, "HSTS_MAX_AGE must be >= 0")
	check(c.IdempotencyTTL > 0, "IDEMPOTENCY_TTL must be > 0")
	check(c.OTEL.SampleRatio >= 0 && c.OTEL.SampleRatio <= 1, "OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	if c.OTEL.Enabled {
		check(strings.TrimSpace(c.OTEL.Endpoint) != "", "OTEL_EXPORTER_OTLP_ENDPOINT is required when OTEL_ENABLED")
	}

	return errors.Join(errs...)
}
