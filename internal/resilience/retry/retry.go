// Package retry re-runs a failing call with capped exponential backoff.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"net"
	"syscall"
	"time"
)

// Policy describes how often and how patiently to retry.
type Policy struct {
	// Label names the call in retry logs.
	Label string

	// Attempts counts the first call.
	Attempts int

	Base   time.Duration
	Cap    time.Duration
	Factor float64

	// Jitter adds up to this fraction of the delay, in [0, 1].
	Jitter float64

	// RetryIf overrides Transient when set.
	RetryIf func(err error) bool
}

// ReadPolicy allows one quick retry for idempotent store reads.
func ReadPolicy() Policy {
	return Policy{
		Label:    "store read",
		Attempts: 2,
		Base:     50 * time.Millisecond,
		Cap:      500 * time.Millisecond,
		Factor:   2,
		Jitter:   0.1,
	}
}

// ConnectPolicy is used while establishing a store connection at startup.
func ConnectPolicy(label string) Policy {
	return Policy{
		Label:    label,
		Attempts: 5,
		Base:     500 * time.Millisecond,
		Cap:      5 * time.Second,
		Factor:   2,
		Jitter:   0.1,
	}
}

// Backoff returns the pause before retry n (1-based), without jitter.
func (p Policy) Backoff(n int) time.Duration {
	if n < 1 {
		n = 1
	}
	factor := p.Factor
	if factor < 1 {
		factor = 1
	}
	d := time.Duration(float64(p.Base) * math.Pow(factor, float64(n-1)))
	if p.Cap > 0 && (d > p.Cap || d < 0) {
		d = p.Cap
	}
	return d
}

func (p Policy) jittered(d time.Duration) time.Duration {
	j := min(max(p.Jitter, 0), 1)
	if j == 0 || d <= 0 {
		return d
	}
	return d + time.Duration(rand.Float64()*j*float64(d)) // #nosec G404 -- jitter only
}

// Do calls fn until it succeeds, returns a non-retryable error, or the
// attempts run out. Context errors end the loop immediately.
func Do(ctx context.Context, p Policy, fn func(ctx context.Context) error) error {
	retryable := p.RetryIf
	if retryable == nil {
		retryable = Transient
	}
	attempts := max(p.Attempts, 1)

	var err error
	for n := 1; n <= attempts; n++ {
		if err = fn(ctx); err == nil {
			if n > 1 {
				slog.InfoContext(ctx, "retry succeeded", slog.String("call", p.Label), slog.Int("attempt", n))
			}
			return nil
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || !retryable(err) {
			return err
		}
		if n == attempts {
			break
		}

		wait := p.jittered(p.Backoff(n))
		slog.WarnContext(ctx, "retrying",
			slog.String("call", p.Label),
			slog.Int("attempt", n),
			slog.Int("attempts", attempts),
			slog.Duration("wait", wait),
			slog.Any("error", err))

		t := time.NewTimer(wait)
		select {
		case <-t.C:
		case <-ctx.Done():
			t.Stop()
			return fmt.Errorf("%s: retry aborted: %w", p.Label, ctx.Err())
		}
	}
	return fmt.Errorf("%s: gave up after %d attempts: %w", p.Label, attempts, err)
}

// Transient reports whether err looks like a passing network fault.
func Transient(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	for _, errno := range []syscall.Errno{syscall.ECONNREFUSED, syscall.ECONNRESET, syscall.ETIMEDOUT, syscall.ENETUNREACH} {
		if errors.Is(err, errno) {
			return true
		}
	}
	return false
}
