package probe

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polkiloo/loandesk/internal/metrics"
)

type checkerStub struct {
	calls    atomic.Int32
	failures int32
	err      error
}

func (c *checkerStub) HealthCheck(context.Context) error {
	n := c.calls.Add(1)
	if n <= c.failures {
		return c.err
	}
	return nil
}

func newTestProber(checker HealthChecker, attempts int, backoff time.Duration) (*Prober, *metrics.Metrics) {
	m := metrics.New(prometheus.NewRegistry())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(checker, attempts, backoff, logger, m), m
}

func TestCheckReachableFirstAttempt(t *testing.T) {
	checker := &checkerStub{}
	prober, m := newTestProber(checker, 3, time.Millisecond)

	status := prober.Check(context.Background())

	assert.True(t, status.Reachable)
	assert.Equal(t, 1, status.Attempts)
	assert.NoError(t, status.LastError)
	assert.False(t, status.CheckedAt.IsZero())
	assert.Equal(t, int32(1), checker.calls.Load())
	assert.Equal(t, 0.0, testutil.ToFloat64(m.ProbeFailuresTotal))
}

func TestCheckRecoversWithinBudget(t *testing.T) {
	checker := &checkerStub{failures: 2, err: errors.New("refused")}
	prober, _ := newTestProber(checker, 3, time.Millisecond)

	status := prober.Check(context.Background())

	assert.True(t, status.Reachable)
	assert.Equal(t, 3, status.Attempts)
	assert.NoError(t, status.LastError)
}

func TestCheckExhaustsAttempts(t *testing.T) {
	boom := errors.New("refused")
	checker := &checkerStub{failures: 100, err: boom}
	prober, m := newTestProber(checker, 3, 5*time.Millisecond)

	start := time.Now()
	status := prober.Check(context.Background())
	elapsed := time.Since(start)

	assert.False(t, status.Reachable)
	assert.Equal(t, 3, status.Attempts)
	assert.ErrorIs(t, status.LastError, boom)
	assert.Equal(t, int32(3), checker.calls.Load())
	assert.GreaterOrEqual(t, elapsed, 10*time.Millisecond, "expected two backoff pauses")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ProbeFailuresTotal))
}

func TestCheckKeepsNoStateBetweenCalls(t *testing.T) {
	checker := &checkerStub{failures: 3, err: errors.New("down")}
	prober, _ := newTestProber(checker, 3, 0)

	first := prober.Check(context.Background())
	require.False(t, first.Reachable)

	second := prober.Check(context.Background())
	assert.True(t, second.Reachable)
	assert.Equal(t, 1, second.Attempts)
}

func TestCheckStopsOnCancellation(t *testing.T) {
	checker := &checkerStub{failures: 100, err: errors.New("down")}
	prober, _ := newTestProber(checker, 5, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	status := prober.Check(ctx)
	assert.False(t, status.Reachable)
	assert.Equal(t, 1, status.Attempts)
	assert.ErrorIs(t, status.LastError, context.Canceled)
}

func TestNewNormalizesArguments(t *testing.T) {
	prober := New(&checkerStub{}, 0, -time.Second, nil, nil)
	assert.Equal(t, 1, prober.attempts)
	assert.Equal(t, time.Duration(0), prober.backoff)

	status := prober.Check(context.Background())
	assert.True(t, status.Reachable)
}
