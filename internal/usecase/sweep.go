package usecase

import (
	"context"
	"errors"
	"time"

	domainErrors "github.com/polkiloo/loandesk/internal/domain/errors"
	"github.com/polkiloo/loandesk/internal/domain/model"
	"github.com/polkiloo/loandesk/internal/domain/repository"
	"github.com/polkiloo/loandesk/internal/metrics"
)

// SweepUseCase moves past-due loans to their settled or overdue state.
type SweepUseCase struct {
	loans    repository.LoanRepository
	payments repository.PaymentRepository
	metrics  *metrics.Metrics
}

// NewSweepUseCase constructs SweepUseCase.
func NewSweepUseCase(loans repository.LoanRepository, payments repository.PaymentRepository, m *metrics.Metrics) *SweepUseCase {
	return &SweepUseCase{loans: loans, payments: payments, metrics: m}
}

// OverdueLoans returns up to limit open loans whose due date is before now.
func (u *SweepUseCase) OverdueLoans(ctx context.Context, now time.Time, limit int) ([]model.Loan, error) {
	return u.loans.SelectOverdue(ctx, now, limit)
}

// Settle marks loan paid when fully repaid and overdue otherwise.
// A loan closed concurrently is left untouched.
func (u *SweepUseCase) Settle(ctx context.Context, loan model.Loan) (model.LoanStatus, error) {
	repaid, err := u.payments.TotalByLoan(ctx, loan.ID)
	if err != nil {
		return "", err
	}

	status := model.LoanStatusOverdue
	if repaid >= loan.Amount {
		status = model.LoanStatusPaid
	}

	if err := u.loans.UpdateStatus(ctx, loan.ID, status); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return "", nil
		}
		return "", err
	}

	if u.metrics != nil {
		u.metrics.SweepUpdatesTotal.WithLabelValues(string(status)).Inc()
	}
	return status, nil
}
