package retry

import (
	"context"
	"errors"
	"fmt"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastPolicy(attempts int) Policy {
	return Policy{
		Label:    "test",
		Attempts: attempts,
		Base:     2 * time.Millisecond,
		Cap:      10 * time.Millisecond,
		Factor:   2,
		Jitter:   0.1,
	}
}

// counter returns fn that fails with errs in order, then succeeds.
func counter(errs ...error) (*int, func(context.Context) error) {
	calls := 0
	return &calls, func(context.Context) error {
		calls++
		if calls <= len(errs) {
			return errs[calls-1]
		}
		return nil
	}
}

/* ───────── Do ───────── */

func TestDo(t *testing.T) {
	plain := errors.New("validation")

	tests := []struct {
		name      string
		policy    Policy
		errs      []error
		wantCalls int
		wantErr   error
	}{
		{"first try", fastPolicy(3), nil, 1, nil},
		{"succeeds after transient faults", fastPolicy(3), []error{syscall.ECONNRESET, syscall.ECONNRESET}, 3, nil},
		{"gives up", fastPolicy(2), []error{syscall.ECONNREFUSED, syscall.ECONNREFUSED, syscall.ECONNREFUSED}, 2, syscall.ECONNREFUSED},
		{"non-retryable returns at once", fastPolicy(3), []error{plain}, 1, plain},
		{"deadline never retried", fastPolicy(3), []error{context.DeadlineExceeded}, 1, context.DeadlineExceeded},
		{"zero attempts still calls once", Policy{Label: "z"}, nil, 1, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls, fn := counter(tt.errs...)
			err := Do(context.Background(), tt.policy, fn)
			if tt.wantErr == nil {
				require.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.Equal(t, tt.wantCalls, *calls)
		})
	}
}

func TestDo_RetryIf(t *testing.T) {
	custom := errors.New("store unavailable")
	p := fastPolicy(3)
	p.RetryIf = func(err error) bool { return errors.Is(err, custom) }

	calls, fn := counter(fmt.Errorf("wrap: %w", custom))
	require.NoError(t, Do(context.Background(), p, fn))
	assert.Equal(t, 2, *calls)
}

func TestDo_ContextCancelledWhileWaiting(t *testing.T) {
	p := fastPolicy(5)
	p.Base = time.Second
	p.Cap = time.Second

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	start := time.Now()
	err := Do(ctx, p, func(context.Context) error { return syscall.ECONNRESET })

	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

/* ───────── backoff ───────── */

func TestPolicy_Backoff(t *testing.T) {
	p := Policy{Base: 100 * time.Millisecond, Cap: 350 * time.Millisecond, Factor: 2}

	assert.Equal(t, 100*time.Millisecond, p.Backoff(1))
	assert.Equal(t, 200*time.Millisecond, p.Backoff(2))
	assert.Equal(t, 350*time.Millisecond, p.Backoff(3))
	assert.Equal(t, 350*time.Millisecond, p.Backoff(40))
}

func TestPolicy_Jitter(t *testing.T) {
	p := Policy{Jitter: 0.5}
	for i := 0; i < 50; i++ {
		d := p.jittered(100 * time.Millisecond)
		assert.GreaterOrEqual(t, d, 100*time.Millisecond)
		assert.LessOrEqual(t, d, 150*time.Millisecond)
	}
	assert.Equal(t, time.Second, Policy{}.jittered(time.Second))
}

func TestTransient(t *testing.T) {
	assert.False(t, Transient(nil))
	assert.False(t, Transient(errors.New("x")))
	assert.False(t, Transient(context.Canceled))
	assert.True(t, Transient(fmt.Errorf("dial: %w", syscall.ECONNREFUSED)))
	assert.True(t, Transient(syscall.ENETUNREACH))
}

func TestReadPolicy(t *testing.T) {
	p := ReadPolicy()
	assert.Equal(t, 2, p.Attempts)
	assert.Equal(t, 50*time.Millisecond, p.Backoff(1))
}
