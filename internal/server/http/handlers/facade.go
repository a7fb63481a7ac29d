package handlers

import (
	"context"

	"github.com/polkiloo/loandesk/internal/domain/model"
	"github.com/polkiloo/loandesk/internal/probe"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Login(ctx context.Context, username, password string) (*model.LoginResult, error)
	Logout(ctx context.Context, session model.Claims) error
	Authenticate(ctx context.Context, token string) (*model.Claims, error)
}

// LoanFacade encapsulates loan operations exposed via HTTP.
// Reads also report which source served them.
type LoanFacade interface {
	Loans(ctx context.Context, filter model.LoanFilter) ([]model.Loan, string, error)
	Loan(ctx context.Context, id string) (*model.Loan, string, error)
	CreateLoan(ctx context.Context, actor model.Claims, in model.LoanInput) (*model.Loan, error)
	UpdateLoan(ctx context.Context, id string, in model.LoanInput) (*model.Loan, error)
	DeleteLoan(ctx context.Context, id string) error
}

// PaymentFacade provides repayment operations.
type PaymentFacade interface {
	Payments(ctx context.Context, loanID string) ([]model.Payment, string, error)
	RecordPayment(ctx context.Context, actor model.Claims, loanID string, in model.PaymentInput) (*model.Payment, error)
}

// DashboardFacade provides overview and status data.
type DashboardFacade interface {
	Dashboard(ctx context.Context) (*model.DashboardSummary, string, error)
	DatabaseStatus(ctx context.Context) probe.Status
}

// UserFacade administers staff accounts.
type UserFacade interface {
	Users(ctx context.Context) ([]model.User, error)
	CreateUser(ctx context.Context, in model.NewUser) (*model.User, error)
	ChangePassword(ctx context.Context, actor model.Claims, id int64, password string) error
	ChangeRole(ctx context.Context, id int64, role model.Role) error
	DeactivateUser(ctx context.Context, actor model.Claims, id int64) error
}

// LoanDeskFacade aggregates the full set of operations used across handlers.
type LoanDeskFacade interface {
	AuthFacade
	LoanFacade
	PaymentFacade
	DashboardFacade
	UserFacade
}
