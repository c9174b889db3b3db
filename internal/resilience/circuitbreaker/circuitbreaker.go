// Package circuitbreaker guards store calls with github.com/sony/gobreaker.
package circuitbreaker

import (
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// Config tunes a Breaker.
type Config struct {
	Name string

	// Probes is how many calls may pass while half-open.
	Probes uint32

	// Window clears the closed-state counts every period. Zero never clears.
	Window time.Duration

	// Cooldown is how long the breaker stays open before probing.
	Cooldown time.Duration

	// TripRatio is the failure share (0..1] that opens the breaker once
	// MinSamples calls have been counted in the current window.
	TripRatio  float64
	MinSamples uint32

	// IsSuccessful decides whether an error counts against the breaker.
	// nil treats every non-nil error as a failure.
	IsSuccessful func(err error) bool

	// OnStateChange runs after the transition has been logged.
	OnStateChange func(name string, from, to gobreaker.State)
}

// StoreConfig opens after five consecutive-window failures and probes
// again after thirty seconds.
func StoreConfig() Config {
	return Config{
		Name:       "article-store",
		Probes:     3,
		Window:     time.Minute,
		Cooldown:   30 * time.Second,
		TripRatio:  1.0,
		MinSamples: 5,
	}
}

// Breaker is a named gobreaker.CircuitBreaker.
type Breaker struct {
	cb   *gobreaker.CircuitBreaker
	name string
}

func New(cfg Config) *Breaker {
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.Probes,
		Interval:    cfg.Window,
		Timeout:     cfg.Cooldown,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			if c.Requests < cfg.MinSamples {
				return false
			}
			return float64(c.TotalFailures)/float64(c.Requests) >= cfg.TripRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state changed",
				slog.String("circuit", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
			if cfg.OnStateChange != nil {
				cfg.OnStateChange(name, from, to)
			}
		},
		IsSuccessful: cfg.IsSuccessful,
	}
	return &Breaker{cb: gobreaker.NewCircuitBreaker(settings), name: cfg.Name}
}

// Do runs fn through b. While open it returns gobreaker.ErrOpenState
// without calling fn.
func Do[T any](b *Breaker, fn func() (T, error)) (T, error) {
	res, err := b.cb.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		var zero T
		if v, ok := res.(T); ok {
			return v, err
		}
		return zero, err
	}
	out, _ := res.(T)
	return out, nil
}

func (b *Breaker) Name() string { return b.name }

func (b *Breaker) State() gobreaker.State { return b.cb.State() }

func (b *Breaker) IsOpen() bool { return b.cb.State() == gobreaker.StateOpen }

// IsRejection reports whether err came from the breaker itself rather
// than from the guarded call.
func IsRejection(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
