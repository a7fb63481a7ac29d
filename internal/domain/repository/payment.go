package repository

import (
	"context"

	"github.com/polkiloo/loandesk/internal/domain/model"
)

// PaymentRepository records repayments.
type PaymentRepository interface {
	// Record stores the payment and marks the loan paid once fully repaid.
	Record(ctx context.Context, payment model.Payment) (*model.Payment, error)
	ListByLoan(ctx context.Context, loanID string) ([]model.Payment, error)
	TotalByLoan(ctx context.Context, loanID string) (float64, error)
	Total(ctx context.Context) (float64, error)
}
