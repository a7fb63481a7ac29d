package app

import (
	"context"
	"time"

	"github.com/polkiloo/loandesk/internal/domain/model"
	"github.com/polkiloo/loandesk/internal/probe"
	"github.com/polkiloo/loandesk/internal/usecase"
)

// LoanDeskFacade exposes use cases to the HTTP layer and the background sweeper.
type LoanDeskFacade struct {
	auth      *usecase.AuthUseCase
	users     *usecase.UserUseCase
	loans     *usecase.LoanUseCase
	payments  *usecase.PaymentUseCase
	dashboard *usecase.DashboardUseCase
	sweep     *usecase.SweepUseCase
}

func NewLoanDeskFacade(
	auth *usecase.AuthUseCase,
	users *usecase.UserUseCase,
	loans *usecase.LoanUseCase,
	payments *usecase.PaymentUseCase,
	dashboard *usecase.DashboardUseCase,
	sweep *usecase.SweepUseCase,
) *LoanDeskFacade {
	return &LoanDeskFacade{
		auth:      auth,
		users:     users,
		loans:     loans,
		payments:  payments,
		dashboard: dashboard,
		sweep:     sweep,
	}
}

func (f *LoanDeskFacade) Login(ctx context.Context, username, password string) (*model.LoginResult, error) {
	return f.auth.Login(ctx, username, password)
}

func (f *LoanDeskFacade) Logout(ctx context.Context, session model.Claims) error {
	return f.auth.Logout(ctx, session)
}

func (f *LoanDeskFacade) Authenticate(ctx context.Context, token string) (*model.Claims, error) {
	return f.auth.Authenticate(ctx, token)
}

func (f *LoanDeskFacade) Loans(ctx context.Context, filter model.LoanFilter) ([]model.Loan, string, error) {
	return f.loans.List(ctx, filter)
}

func (f *LoanDeskFacade) Loan(ctx context.Context, id string) (*model.Loan, string, error) {
	return f.loans.Get(ctx, id)
}

func (f *LoanDeskFacade) CreateLoan(ctx context.Context, actor model.Claims, in model.LoanInput) (*model.Loan, error) {
	return f.loans.Create(ctx, actor, in)
}

func (f *LoanDeskFacade) UpdateLoan(ctx context.Context, id string, in model.LoanInput) (*model.Loan, error) {
	return f.loans.Update(ctx, id, in)
}

func (f *LoanDeskFacade) DeleteLoan(ctx context.Context, id string) error {
	return f.loans.Delete(ctx, id)
}

func (f *LoanDeskFacade) Payments(ctx context.Context, loanID string) ([]model.Payment, string, error) {
	return f.payments.List(ctx, loanID)
}

func (f *LoanDeskFacade) RecordPayment(ctx context.Context, actor model.Claims, loanID string, in model.PaymentInput) (*model.Payment, error) {
	return f.payments.Record(ctx, actor, loanID, in)
}

func (f *LoanDeskFacade) Dashboard(ctx context.Context) (*model.DashboardSummary, string, error) {
	return f.dashboard.Summary(ctx)
}

func (f *LoanDeskFacade) DatabaseStatus(ctx context.Context) probe.Status {
	return f.dashboard.Status(ctx)
}

func (f *LoanDeskFacade) Users(ctx context.Context) ([]model.User, error) {
	return f.users.List(ctx)
}

func (f *LoanDeskFacade) CreateUser(ctx context.Context, in model.NewUser) (*model.User, error) {
	return f.users.Create(ctx, in)
}

func (f *LoanDeskFacade) ChangePassword(ctx context.Context, actor model.Claims, id int64, password string) error {
	return f.users.ChangePassword(ctx, actor, id, password)
}

func (f *LoanDeskFacade) ChangeRole(ctx context.Context, id int64, role model.Role) error {
	return f.users.ChangeRole(ctx, id, role)
}

func (f *LoanDeskFacade) DeactivateUser(ctx context.Context, actor model.Claims, id int64) error {
	return f.users.Deactivate(ctx, actor, id)
}

func (f *LoanDeskFacade) OverdueLoans(ctx context.Context, now time.Time, limit int) ([]model.Loan, error) {
	return f.sweep.OverdueLoans(ctx, now, limit)
}

func (f *LoanDeskFacade) SettleLoan(ctx context.Context, loan model.Loan) (model.LoanStatus, error) {
	return f.sweep.Settle(ctx, loan)
}

// SeedUsers creates bootstrap accounts listed in the YAML file at path.
func (f *LoanDeskFacade) SeedUsers(ctx context.Context, path string) (int, error) {
	seeds, err := usecase.LoadSeedFile(path)
	if err != nil {
		return 0, err
	}
	return f.users.Seed(ctx, seeds)
}
