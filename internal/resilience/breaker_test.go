package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestBreaker(target string) (*Breaker, *clock) {
	c := &clock{t: time.Date(2026, 10, 12, 9, 0, 0, 0, time.UTC)}
	b := NewBreaker(Options{Target: target, MinRequests: 2, FailureRatio: 0.5, Cooldown: time.Second, Logger: zerolog.Nop()})
	b.now = c.now
	return b, c
}

var errStore = errors.New("connection refused")

func fail(context.Context) error { return errStore }
func ok(context.Context) error   { return nil }

func TestBreakerOpensAndRecovers(t *testing.T) {
	ctx := context.Background()
	b, c := newTestBreaker("paper_stocks")

	require.ErrorIs(t, b.Do(ctx, fail), errStore)
	require.ErrorIs(t, b.Do(ctx, fail), errStore)
	require.Equal(t, Open, b.State())

	calls := 0
	err := b.Do(ctx, func(context.Context) error { calls++; return nil })
	require.ErrorIs(t, err, ErrOpen)
	require.Zero(t, calls)

	c.advance(time.Second)
	require.NoError(t, b.Do(ctx, ok))
	require.Equal(t, Closed, b.State())
}

func TestBreakerFailedProbeReopens(t *testing.T) {
	ctx := context.Background()
	b, c := newTestBreaker("probe")
	_ = b.Do(ctx, fail)
	_ = b.Do(ctx, fail)

	c.advance(2 * time.Second)
	require.ErrorIs(t, b.Do(ctx, fail), errStore)
	require.Equal(t, Open, b.State())
	require.ErrorIs(t, b.Do(ctx, ok), ErrOpen)
}

func TestBreakerIgnoresClassifiedErrors(t *testing.T) {
	ctx := context.Background()
	notFound := errors.New("no rows")
	b := NewBreaker(Options{
		MinRequests: 1,
		IsFailure:   func(err error) bool { return !errors.Is(err, notFound) },
	})

	for i := 0; i < 5; i++ {
		require.ErrorIs(t, b.Do(ctx, func(context.Context) error { return notFound }), notFound)
	}
	require.ErrorIs(t, b.Do(ctx, func(context.Context) error { return context.Canceled }), context.Canceled)
	require.Equal(t, Closed, b.State())
}

func TestNilBreakerRunsCall(t *testing.T) {
	var b *Breaker
	require.ErrorIs(t, b.Do(context.Background(), fail), errStore)
}

func TestBreakerMetrics(t *testing.T) {
	MustRegisterMetrics("cetak_test", prometheus.NewRegistry())
	ctx := context.Background()
	b, _ := newTestBreaker("metrics")
	_ = b.Do(ctx, fail)
	_ = b.Do(ctx, fail)

	require.Equal(t, 1.0, testutil.ToFloat64(breakerState.WithLabelValues("metrics")))
	require.Equal(t, 1.0, testutil.ToFloat64(breakerTransitions.WithLabelValues("metrics", "closed", "open")))
}

func TestBackoff(t *testing.T) {
	base := 100 * time.Millisecond
	require.Equal(t, base, Backoff(base, 0, 1, 0))
	require.Equal(t, 4*base, Backoff(base, 0, 3, 0))
	require.Equal(t, time.Second, Backoff(base, time.Second, 8, 0))
	require.Equal(t, time.Second, Backoff(base, time.Second, 200, 0))

	d := Backoff(base, 0, 2, 0.2)
	require.GreaterOrEqual(t, d, 160*time.Millisecond)
	require.LessOrEqual(t, d, 240*time.Millisecond)
}
