// Package probe decides per request whether the primary store can serve it.
package probe

import (
	"context"
	"log/slog"
	"time"

	"github.com/polkiloo/loandesk/internal/metrics"
)

// HealthChecker is implemented by the primary store.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Status is the outcome of one reachability check.
type Status struct {
	Reachable bool
	Attempts  int
	LastError error
	CheckedAt time.Time
}

// Prober pings the store a bounded number of times with a fixed backoff.
// It keeps no state between checks.
type Prober struct {
	checker  HealthChecker
	attempts int
	backoff  time.Duration
	logger   *slog.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
}

// New creates a prober. Non-positive attempts are treated as one.
func New(checker HealthChecker, attempts int, backoff time.Duration, logger *slog.Logger, m *metrics.Metrics) *Prober {
	if attempts <= 0 {
		attempts = 1
	}
	if backoff < 0 {
		backoff = 0
	}
	return &Prober{
		checker:  checker,
		attempts: attempts,
		backoff:  backoff,
		logger:   logger,
		metrics:  m,
		now:      time.Now,
	}
}

// Check reports whether the store answered within the attempt budget.
// Cancellation of ctx ends the check early as unreachable.
func (p *Prober) Check(ctx context.Context) Status {
	status := Status{}

	for attempt := 1; attempt <= p.attempts; attempt++ {
		status.Attempts = attempt
		err := p.checker.HealthCheck(ctx)
		if err == nil {
			status.Reachable = true
			status.LastError = nil
			break
		}
		status.LastError = err

		if attempt == p.attempts {
			break
		}
		if !sleep(ctx, p.backoff) {
			status.LastError = ctx.Err()
			break
		}
	}

	status.CheckedAt = p.now()
	p.observe(status)
	return status
}

func (p *Prober) observe(status Status) {
	if p.metrics != nil {
		p.metrics.ProbeAttempts.Observe(float64(status.Attempts))
		if !status.Reachable {
			p.metrics.ProbeFailuresTotal.Inc()
		}
	}
	if !status.Reachable && p.logger != nil {
		attrs := []any{slog.Int("attempts", status.Attempts)}
		if status.LastError != nil {
			attrs = append(attrs, slog.String("error", status.LastError.Error()))
		}
		p.logger.Warn("database unreachable, serving fallback data", attrs...)
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
