package usecase

import (
	"context"
	"errors"

	domainErrors "github.com/polkiloo/loandesk/internal/domain/errors"
	"github.com/polkiloo/loandesk/internal/domain/model"
	"github.com/polkiloo/loandesk/internal/domain/repository"
	"github.com/polkiloo/loandesk/internal/metrics"
)

// PaymentUseCase records repayments against loans.
type PaymentUseCase struct {
	payments repository.PaymentRepository
	dataRouter
}

// NewPaymentUseCase constructs PaymentUseCase.
func NewPaymentUseCase(payments repository.PaymentRepository, checker ReachabilityChecker, fallback FallbackLoans, m *metrics.Metrics) *PaymentUseCase {
	return &PaymentUseCase{
		payments:   payments,
		dataRouter: dataRouter{probe: checker, fallback: fallback, metrics: m},
	}
}

// List returns payments of loanID. Fallback data carries no payments.
func (u *PaymentUseCase) List(ctx context.Context, loanID string) ([]model.Payment, string, error) {
	if u.primary(ctx) {
		payments, err := u.payments.ListByLoan(ctx, loanID)
		if err == nil {
			return payments, SourceDatabase, nil
		}
		if !errors.Is(err, domainErrors.ErrStoreUnavailable) {
			return nil, "", err
		}
	}

	if _, err := u.fallback.Get(ctx, loanID); err != nil {
		return nil, "", err
	}
	u.served("payments")
	return []model.Payment{}, SourceFallback, nil
}

// Record stores a repayment made by actor against loanID.
func (u *PaymentUseCase) Record(ctx context.Context, actor model.Claims, loanID string, in model.PaymentInput) (*model.Payment, error) {
	in, err := validatePaymentInput(in)
	if err != nil {
		return nil, err
	}
	if err := u.requireStore(ctx); err != nil {
		return nil, err
	}

	payment := model.Payment{
		LoanID:     loanID,
		Amount:     in.Amount,
		Method:     in.Method,
		Note:       in.Note,
		RecordedBy: actor.UserID,
	}
	return u.payments.Record(ctx, payment)
}
