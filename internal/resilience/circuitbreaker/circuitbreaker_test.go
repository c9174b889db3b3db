package circuitbreaker

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errDown = errors.New("store down")

func testConfig() Config {
	return Config{
		Name:       "test-circuit",
		Probes:     2,
		Window:     10 * time.Second,
		Cooldown:   100 * time.Millisecond,
		TripRatio:  0.6,
		MinSamples: 5,
	}
}

func fail(b *Breaker) error {
	_, err := Do(b, func() (int, error) { return 0, errDown })
	return err
}

/* ───────── Do ───────── */

func TestDo_ReturnsTypedValue(t *testing.T) {
	b := New(testConfig())

	got, err := Do(b, func() (string, error) { return "ok", nil })
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, "test-circuit", b.Name())
	assert.Equal(t, gobreaker.StateClosed, b.State())
}

func TestDo_NilPointerResult(t *testing.T) {
	b := New(testConfig())

	// (nil, nil) は not-found の表現なのでそのまま返す
	got, err := Do(b, func() (*int, error) { return nil, nil })
	require.NoError(t, err)
	assert.Nil(t, got)
}

/* ───────── state transitions ───────── */

func TestBreaker_TripsOpen(t *testing.T) {
	var transitions []string
	cfg := testConfig()
	cfg.OnStateChange = func(_ string, from, to gobreaker.State) {
		transitions = append(transitions, from.String()+"->"+to.String())
	}
	b := New(cfg)

	// 4 失敗 + 1 成功 + 1 失敗 = 5/6
	for i := 0; i < 4; i++ {
		assert.ErrorIs(t, fail(b), errDown)
	}
	_, err := Do(b, func() (int, error) { return 1, nil })
	require.NoError(t, err)
	_ = fail(b)

	require.True(t, b.IsOpen())
	assert.Equal(t, []string{"closed->open"}, transitions)

	_, err = Do(b, func() (int, error) {
		t.Error("fn must not run while open")
		return 0, nil
	})
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.True(t, IsRejection(err))
}

func TestBreaker_HalfOpenRecovers(t *testing.T) {
	b := New(testConfig())
	for i := 0; i < 6; i++ {
		_ = fail(b)
	}
	require.True(t, b.IsOpen())

	time.Sleep(150 * time.Millisecond)

	_, err := Do(b, func() (int, error) { return 1, nil })
	require.NoError(t, err)
	assert.False(t, b.IsOpen())
}

func TestBreaker_MinSamples(t *testing.T) {
	b := New(testConfig())
	for i := 0; i < 4; i++ {
		_ = fail(b)
	}
	assert.Equal(t, gobreaker.StateClosed, b.State())
}

func TestBreaker_IsSuccessful(t *testing.T) {
	clientErr := errors.New("bad request")
	cfg := testConfig()
	cfg.IsSuccessful = func(err error) bool { return err == nil || errors.Is(err, clientErr) }
	b := New(cfg)

	for i := 0; i < 10; i++ {
		_, err := Do(b, func() (int, error) { return 0, fmt.Errorf("lookup: %w", clientErr) })
		require.ErrorIs(t, err, clientErr)
	}
	assert.Equal(t, gobreaker.StateClosed, b.State())
}

/* ───────── helpers ───────── */

func TestStoreConfig(t *testing.T) {
	cfg := StoreConfig()
	assert.Equal(t, "article-store", cfg.Name)
	assert.Equal(t, 1.0, cfg.TripRatio)
	assert.Equal(t, uint32(5), cfg.MinSamples)
}

func TestIsRejection(t *testing.T) {
	assert.False(t, IsRejection(errors.New("other")))
	assert.True(t, IsRejection(fmt.Errorf("wrapped: %w", gobreaker.ErrTooManyRequests)))
}
