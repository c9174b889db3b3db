// Package worker runs the maintenance jobs on a cron schedule and serves
// the worker's health and metrics endpoints.
package worker

import (
	"errors"
	"fmt"
	"time"

	"williampedia/internal/config"
	pkgconfig "williampedia/internal/pkg/config"
)

// Config configures the scheduler and its HTTP server.
type Config struct {
	Schedule   string        // five-field cron expression
	Timezone   string        // IANA name the schedule is evaluated in
	JobTimeout time.Duration // deadline of a single job run
	Addr       string        // listen address of /health and /metrics
}

// DefaultConfig runs every 15 minutes in UTC.
func DefaultConfig() Config {
	return Config{
		Schedule:   "*/15 * * * *",
		Timezone:   "UTC",
		JobTimeout: 2 * time.Minute,
		Addr:       ":9091",
	}
}

// FromAppConfig maps the worker section of the service configuration.
func FromAppConfig(c config.WorkerConfig) Config {
	return Config{
		Schedule:   c.Schedule,
		Timezone:   c.Timezone,
		JobTimeout: c.JobTimeout,
		Addr:       c.MetricsAddr,
	}
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error

	if err := pkgconfig.ValidateCronSchedule(c.Schedule); err != nil {
		errs = append(errs, fmt.Errorf("schedule: %w", err))
	}
	if err := pkgconfig.ValidateTimezone(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	if c.JobTimeout <= 0 {
		errs = append(errs, fmt.Errorf("job timeout: must be positive, got %s", c.JobTimeout))
	}
	if err := pkgconfig.ValidateListenAddr(c.Addr); err != nil {
		errs = append(errs, fmt.Errorf("addr: %w", err))
	}

	return errors.Join(errs...)
}
