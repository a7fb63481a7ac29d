package test

import (
	"context"
	"time"

	"github.com/polkiloo/loandesk/internal/domain/model"
	"github.com/polkiloo/loandesk/internal/probe"
)

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	LoginFn        func(context.Context, string, string) (*model.LoginResult, error)
	LogoutFn       func(context.Context, model.Claims) error
	AuthenticateFn func(context.Context, string) (*model.Claims, error)
}

// Login returns a fixed session for successful login scenarios.
func (s AuthFacadeStub) Login(ctx context.Context, username, password string) (*model.LoginResult, error) {
	if s.LoginFn != nil {
		return s.LoginFn(ctx, username, password)
	}
	user := &model.User{ID: 1, Username: username, Role: model.RoleAdmin, Active: true}
	claims := &model.Claims{UserID: 1, Username: username, Role: model.RoleAdmin, TokenID: "tid", ExpiresAt: time.Now().Add(time.Hour)}
	return &model.LoginResult{Token: "token", User: user, Claims: claims}, nil
}

// Logout accepts every session unless overridden.
func (s AuthFacadeStub) Logout(ctx context.Context, session model.Claims) error {
	if s.LogoutFn != nil {
		return s.LogoutFn(ctx, session)
	}
	return nil
}

// Authenticate returns an admin session unless overridden.
func (s AuthFacadeStub) Authenticate(ctx context.Context, token string) (*model.Claims, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, token)
	}
	return &model.Claims{UserID: 1, Username: "admin", Role: model.RoleAdmin, TokenID: token}, nil
}

// LoanFacadeStub provides controllable behaviour for loan endpoints.
type LoanFacadeStub struct {
	LoansFn  func(context.Context, model.LoanFilter) ([]model.Loan, string, error)
	LoanFn   func(context.Context, string) (*model.Loan, string, error)
	CreateFn func(context.Context, model.Claims, model.LoanInput) (*model.Loan, error)
	UpdateFn func(context.Context, string, model.LoanInput) (*model.Loan, error)
	DeleteFn func(context.Context, string) error
}

// Loans returns configured loans or a single database loan.
func (s LoanFacadeStub) Loans(ctx context.Context, filter model.LoanFilter) ([]model.Loan, string, error) {
	if s.LoansFn != nil {
		return s.LoansFn(ctx, filter)
	}
	return []model.Loan{{ID: "1", Amount: 100, Status: model.LoanStatusActive, Source: model.SourceDatabase}}, "database", nil
}

// Loan returns configured loan or echoes the identifier.
func (s LoanFacadeStub) Loan(ctx context.Context, id string) (*model.Loan, string, error) {
	if s.LoanFn != nil {
		return s.LoanFn(ctx, id)
	}
	return &model.Loan{ID: id, Amount: 100, Status: model.LoanStatusActive}, "database", nil
}

// CreateLoan delegates to CreateFn or echoes the input.
func (s LoanFacadeStub) CreateLoan(ctx context.Context, actor model.Claims, in model.LoanInput) (*model.Loan, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, actor, in)
	}
	return &model.Loan{ID: "1", Borrower: model.Borrower{FullName: in.BorrowerName}, Amount: in.Amount, CreatedBy: actor.UserID}, nil
}

// UpdateLoan delegates to UpdateFn or echoes the input.
func (s LoanFacadeStub) UpdateLoan(ctx context.Context, id string, in model.LoanInput) (*model.Loan, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, id, in)
	}
	return &model.Loan{ID: id, Borrower: model.Borrower{FullName: in.BorrowerName}, Amount: in.Amount}, nil
}

// DeleteLoan delegates to DeleteFn.
func (s LoanFacadeStub) DeleteLoan(ctx context.Context, id string) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	return nil
}

// PaymentFacadeStub simulates repayment operations.
type PaymentFacadeStub struct {
	PaymentsFn func(context.Context, string) ([]model.Payment, string, error)
	RecordFn   func(context.Context, model.Claims, string, model.PaymentInput) (*model.Payment, error)
}

// Payments returns configured history.
func (s PaymentFacadeStub) Payments(ctx context.Context, loanID string) ([]model.Payment, string, error) {
	if s.PaymentsFn != nil {
		return s.PaymentsFn(ctx, loanID)
	}
	return []model.Payment{{ID: 1, LoanID: loanID, Amount: 10, Method: "cash", PaidAt: time.Unix(0, 0)}}, "database", nil
}

// RecordPayment delegates to RecordFn or echoes the input.
func (s PaymentFacadeStub) RecordPayment(ctx context.Context, actor model.Claims, loanID string, in model.PaymentInput) (*model.Payment, error) {
	if s.RecordFn != nil {
		return s.RecordFn(ctx, actor, loanID, in)
	}
	return &model.Payment{ID: 1, LoanID: loanID, Amount: in.Amount, Method: in.Method, RecordedBy: actor.UserID, PaidAt: time.Unix(0, 0)}, nil
}

// DashboardFacadeStub simulates overview data.
type DashboardFacadeStub struct {
	DashboardFn func(context.Context) (*model.DashboardSummary, string, error)
	Status      probe.Status
}

// Dashboard returns configured summary.
func (s DashboardFacadeStub) Dashboard(ctx context.Context) (*model.DashboardSummary, string, error) {
	if s.DashboardFn != nil {
		return s.DashboardFn(ctx)
	}
	summary := model.Summarize([]model.Loan{{Amount: 100, Status: model.LoanStatusActive}}, 40)
	return &summary, "database", nil
}

// DatabaseStatus returns configured probe status.
func (s DashboardFacadeStub) DatabaseStatus(ctx context.Context) probe.Status {
	return s.Status
}

// UserFacadeStub simulates account administration.
type UserFacadeStub struct {
	UsersFn          func(context.Context) ([]model.User, error)
	CreateFn         func(context.Context, model.NewUser) (*model.User, error)
	ChangePasswordFn func(context.Context, model.Claims, int64, string) error
	ChangeRoleFn     func(context.Context, int64, model.Role) error
	DeactivateFn     func(context.Context, model.Claims, int64) error
}

// Users returns configured accounts.
func (s UserFacadeStub) Users(ctx context.Context) ([]model.User, error) {
	if s.UsersFn != nil {
		return s.UsersFn(ctx)
	}
	return []model.User{{ID: 1, Username: "admin", PasswordHash: "secret-hash", Role: model.RoleAdmin, Active: true}}, nil
}

// CreateUser delegates to CreateFn or echoes the input.
func (s UserFacadeStub) CreateUser(ctx context.Context, in model.NewUser) (*model.User, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, in)
	}
	return &model.User{ID: 2, Username: in.Username, PasswordHash: "hash:" + in.Password, Role: in.Role, Active: true}, nil
}

// ChangePassword delegates to ChangePasswordFn.
func (s UserFacadeStub) ChangePassword(ctx context.Context, actor model.Claims, id int64, password string) error {
	if s.ChangePasswordFn != nil {
		return s.ChangePasswordFn(ctx, actor, id, password)
	}
	return nil
}

// ChangeRole delegates to ChangeRoleFn.
func (s UserFacadeStub) ChangeRole(ctx context.Context, id int64, role model.Role) error {
	if s.ChangeRoleFn != nil {
		return s.ChangeRoleFn(ctx, id, role)
	}
	return nil
}

// DeactivateUser delegates to DeactivateFn.
func (s UserFacadeStub) DeactivateUser(ctx context.Context, actor model.Claims, id int64) error {
	if s.DeactivateFn != nil {
		return s.DeactivateFn(ctx, actor, id)
	}
	return nil
}

// LoanDeskFacadeStub aggregates facade dependencies for HTTP layer tests.
type LoanDeskFacadeStub struct {
	AuthFacadeStub
	LoanFacadeStub
	PaymentFacadeStub
	DashboardFacadeStub
	UserFacadeStub
}
