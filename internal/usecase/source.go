package usecase

import (
	"context"

	domainErrors "github.com/polkiloo/loandesk/internal/domain/errors"
	"github.com/polkiloo/loandesk/internal/domain/model"
	"github.com/polkiloo/loandesk/internal/metrics"
	"github.com/polkiloo/loandesk/internal/probe"
)

// Sources reported to clients alongside read results.
const (
	SourceDatabase = "database"
	SourceFallback = "fallback"
)

// ReachabilityChecker decides whether the primary store can serve a request.
type ReachabilityChecker interface {
	Check(ctx context.Context) probe.Status
}

// FallbackLoans serves read-only loan records while the store is down.
type FallbackLoans interface {
	List(ctx context.Context) ([]model.Loan, error)
	Get(ctx context.Context, id string) (*model.Loan, error)
}

// dataRouter picks the primary store or the fallback set for each request.
type dataRouter struct {
	probe    ReachabilityChecker
	fallback FallbackLoans
	metrics  *metrics.Metrics
}

func (r dataRouter) primary(ctx context.Context) bool {
	return r.probe.Check(ctx).Reachable
}

// requireStore rejects writes when the store is unreachable.
func (r dataRouter) requireStore(ctx context.Context) error {
	if !r.primary(ctx) {
		return domainErrors.ErrStoreUnavailable
	}
	return nil
}

func (r dataRouter) served(resource string) {
	if r.metrics != nil {
		r.metrics.FallbackServedTotal.WithLabelValues(resource).Inc()
	}
}

func (r dataRouter) fallbackLoans(ctx context.Context, filter model.LoanFilter) ([]model.Loan, error) {
	all, err := r.fallback.List(ctx)
	if err != nil {
		return nil, err
	}
	loans := make([]model.Loan, 0, len(all))
	for _, loan := range all {
		if filter.Match(loan) {
			loans = append(loans, loan)
		}
	}
	return loans, nil
}
