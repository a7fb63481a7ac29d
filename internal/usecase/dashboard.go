package usecase

import (
	"context"
	"errors"

	domainErrors "github.com/polkiloo/loandesk/internal/domain/errors"
	"github.com/polkiloo/loandesk/internal/domain/model"
	"github.com/polkiloo/loandesk/internal/domain/repository"
	"github.com/polkiloo/loandesk/internal/metrics"
	"github.com/polkiloo/loandesk/internal/probe"
)

// DashboardUseCase aggregates the loan book for the overview screen.
type DashboardUseCase struct {
	loans    repository.LoanRepository
	payments repository.PaymentRepository
	dataRouter
}

// NewDashboardUseCase constructs DashboardUseCase.
func NewDashboardUseCase(
	loans repository.LoanRepository,
	payments repository.PaymentRepository,
	checker ReachabilityChecker,
	fallback FallbackLoans,
	m *metrics.Metrics,
) *DashboardUseCase {
	return &DashboardUseCase{
		loans:      loans,
		payments:   payments,
		dataRouter: dataRouter{probe: checker, fallback: fallback, metrics: m},
	}
}

// Summary returns totals over every loan together with the source that served them.
func (u *DashboardUseCase) Summary(ctx context.Context) (*model.DashboardSummary, string, error) {
	if u.primary(ctx) {
		summary, err := u.fromStore(ctx)
		if err == nil {
			return summary, SourceDatabase, nil
		}
		if !errors.Is(err, domainErrors.ErrStoreUnavailable) {
			return nil, "", err
		}
	}

	loans, err := u.fallbackLoans(ctx, model.LoanFilter{})
	if err != nil {
		return nil, "", err
	}
	u.served("dashboard")
	summary := model.Summarize(loans, 0)
	return &summary, SourceFallback, nil
}

func (u *DashboardUseCase) fromStore(ctx context.Context) (*model.DashboardSummary, error) {
	loans, err := u.loans.List(ctx, model.LoanFilter{})
	if err != nil {
		return nil, err
	}
	repaid, err := u.payments.Total(ctx)
	if err != nil {
		return nil, err
	}
	summary := model.Summarize(loans, repaid)
	return &summary, nil
}

// Status runs a reachability check for the status endpoint.
func (u *DashboardUseCase) Status(ctx context.Context) probe.Status {
	return u.probe.Check(ctx)
}
