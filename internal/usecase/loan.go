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

// LoanUseCase manages the loan book and serves reads from fallback data when needed.
type LoanUseCase struct {
	loans repository.LoanRepository
	dataRouter
	now func() time.Time
}

// NewLoanUseCase constructs LoanUseCase.
func NewLoanUseCase(loans repository.LoanRepository, checker ReachabilityChecker, fallback FallbackLoans, m *metrics.Metrics) *LoanUseCase {
	return &LoanUseCase{
		loans:      loans,
		dataRouter: dataRouter{probe: checker, fallback: fallback, metrics: m},
		now:        time.Now,
	}
}

// List returns loans matching filter together with the source that served them.
func (u *LoanUseCase) List(ctx context.Context, filter model.LoanFilter) ([]model.Loan, string, error) {
	if u.primary(ctx) {
		loans, err := u.loans.List(ctx, filter)
		if err == nil {
			return loans, SourceDatabase, nil
		}
		if !errors.Is(err, domainErrors.ErrStoreUnavailable) {
			return nil, "", err
		}
	}

	loans, err := u.fallbackLoans(ctx, filter)
	if err != nil {
		return nil, "", err
	}
	u.served("loans")
	return loans, SourceFallback, nil
}

// Get returns a single loan together with the source that served it.
func (u *LoanUseCase) Get(ctx context.Context, id string) (*model.Loan, string, error) {
	if u.primary(ctx) {
		loan, err := u.loans.GetByID(ctx, id)
		if err == nil {
			return loan, SourceDatabase, nil
		}
		if !errors.Is(err, domainErrors.ErrStoreUnavailable) {
			return nil, "", err
		}
	}

	loan, err := u.fallback.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	u.served("loan")
	return loan, SourceFallback, nil
}

// Create stores a new loan issued by actor.
func (u *LoanUseCase) Create(ctx context.Context, actor model.Claims, in model.LoanInput) (*model.Loan, error) {
	in, err := validateLoanInput(in)
	if err != nil {
		return nil, err
	}
	if err := u.requireStore(ctx); err != nil {
		return nil, err
	}

	issued := u.now().UTC()
	if in.IssuedAt != nil {
		issued = in.IssuedAt.UTC()
	}
	status := in.Status
	if status == "" {
		status = model.LoanStatusPending
	}

	loan := model.Loan{
		Borrower: model.Borrower{
			FullName: in.BorrowerName,
			Email:    in.BorrowerEmail,
			Phone:    in.BorrowerPhone,
		},
		Amount:     in.Amount,
		Purpose:    in.Purpose,
		TermMonths: in.TermMonths,
		Status:     status,
		IssuedAt:   issued,
		DueAt:      model.DueDate(issued, in.TermMonths),
		CreatedBy:  actor.UserID,
	}
	return u.loans.Create(ctx, loan)
}

// Update replaces the editable fields of loan id.
func (u *LoanUseCase) Update(ctx context.Context, id string, in model.LoanInput) (*model.Loan, error) {
	in, err := validateLoanInput(in)
	if err != nil {
		return nil, err
	}
	if err := u.requireStore(ctx); err != nil {
		return nil, err
	}

	loan, err := u.loans.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	loan.Borrower = model.Borrower{FullName: in.BorrowerName, Email: in.BorrowerEmail, Phone: in.BorrowerPhone}
	loan.Amount = in.Amount
	loan.Purpose = in.Purpose
	loan.TermMonths = in.TermMonths
	if in.Status != "" {
		loan.Status = in.Status
	}
	if in.IssuedAt != nil {
		loan.IssuedAt = in.IssuedAt.UTC()
	}
	loan.DueAt = model.DueDate(loan.IssuedAt, loan.TermMonths)

	return u.loans.Update(ctx, *loan)
}

// Delete removes loan id.
func (u *LoanUseCase) Delete(ctx context.Context, id string) error {
	if err := u.requireStore(ctx); err != nil {
		return err
	}
	return u.loans.Delete(ctx, id)
}
