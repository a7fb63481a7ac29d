package repository

import (
	"context"
	"time"

	"github.com/polkiloo/loandesk/internal/domain/model"
)

// LoanRepository describes persistence operations with loans.
type LoanRepository interface {
	Create(ctx context.Context, loan model.Loan) (*model.Loan, error)
	GetByID(ctx context.Context, id string) (*model.Loan, error)
	List(ctx context.Context, filter model.LoanFilter) ([]model.Loan, error)
	Update(ctx context.Context, loan model.Loan) (*model.Loan, error)
	Delete(ctx context.Context, id string) error
	SelectOverdue(ctx context.Context, now time.Time, limit int) ([]model.Loan, error)
	UpdateStatus(ctx context.Context, id string, status model.LoanStatus) error
}
