package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestBreaker(now *time.Time) *Breaker {
	b := NewBreaker(BreakerConfig{Enabled: true, FailureThreshold: 2, OpenTimeout: 5 * time.Second, HalfOpenProbes: 1})
	b.now = func() time.Time { return *now }
	return b
}

func TestBreaker_Transitions(t *testing.T) {
	now := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	b := newTestBreaker(&now)

	require.NoError(t, b.Allow())
	b.Failure()
	require.Equal(t, StateClosed, b.State())

	b.Failure()
	require.Equal(t, StateOpen, b.State())
	require.ErrorIs(t, b.Allow(), ErrCircuitOpen)

	now = now.Add(6 * time.Second)
	require.NoError(t, b.Allow())
	require.Equal(t, StateHalfOpen, b.State())
	require.ErrorIs(t, b.Allow(), ErrCircuitOpen, "only one probe in half-open")

	b.Success()
	require.Equal(t, StateClosed, b.State())
}

func TestBreaker_FailedProbeReopens(t *testing.T) {
	now := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	b := newTestBreaker(&now)
	b.Failure()
	b.Failure()

	now = now.Add(6 * time.Second)
	require.NoError(t, b.Allow())
	b.Failure()
	require.Equal(t, StateOpen, b.State())
}

func TestDo(t *testing.T) {
	now := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	b := newTestBreaker(&now)
	boom := errors.New("boom")

	for i := 0; i < 2; i++ {
		_, err := Do(context.Background(), b, func(context.Context) (int, error) { return 0, boom })
		require.ErrorIs(t, err, boom)
	}

	_, err := Do(context.Background(), b, func(context.Context) (int, error) { return 1, nil })
	require.ErrorIs(t, err, ErrCircuitOpen)
}

func TestNilBreakerAllows(t *testing.T) {
	b := NewBreaker(BreakerConfig{Enabled: false})
	require.Nil(t, b)
	v, err := Do(context.Background(), b, func(context.Context) (string, error) { return "ok", nil })
	require.NoError(t, err)
	require.Equal(t, "ok", v)
	require.Equal(t, StateClosed, b.State())
}
