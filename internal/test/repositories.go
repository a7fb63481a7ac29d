package test

import (
	"context"
	"sort"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/loandesk/internal/domain/errors"
	"github.com/polkiloo/loandesk/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users   map[string]*model.User
	ByID    map[int64]*model.User
	Next    int64
	Err     error
	Lookups int
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, user model.User) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[user.Username]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user.ID = s.Next
	user.CreatedAt = time.Unix(0, 0).UTC()
	s.Next++
	stored := user
	s.Users[user.Username] = &stored
	s.ByID[user.ID] = &stored
	return &user, nil
}

// GetByUsername fetches user by username or returns not found.
func (s *UserRepositoryStub) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	s.Lookups++
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[username]; ok {
		found := *user
		return &found, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		found := *user
		return &found, nil
	}
	return nil, domainErrors.ErrNotFound
}

// List returns users ordered by identifier.
func (s *UserRepositoryStub) List(ctx context.Context) ([]model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	users := make([]model.User, 0, len(s.ByID))
	for _, user := range s.ByID {
		users = append(users, *user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// UpdatePassword replaces stored hash.
func (s *UserRepositoryStub) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	return s.mutate(id, func(u *model.User) { u.PasswordHash = passwordHash })
}

// UpdateRole replaces stored role.
func (s *UserRepositoryStub) UpdateRole(ctx context.Context, id int64, role model.Role) error {
	return s.mutate(id, func(u *model.User) { u.Role = role })
}

// SetActive toggles login permission.
func (s *UserRepositoryStub) SetActive(ctx context.Context, id int64, active bool) error {
	return s.mutate(id, func(u *model.User) { u.Active = active })
}

func (s *UserRepositoryStub) mutate(id int64, fn func(*model.User)) error {
	if s.Err != nil {
		return s.Err
	}
	user, ok := s.ByID[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	fn(user)
	return nil
}

// LoanRepositoryStub allows tests to customize behaviour and counts every call.
type LoanRepositoryStub struct {
	CreateFn        func(context.Context, model.Loan) (*model.Loan, error)
	GetByIDFn       func(context.Context, string) (*model.Loan, error)
	ListFn          func(context.Context, model.LoanFilter) ([]model.Loan, error)
	UpdateFn        func(context.Context, model.Loan) (*model.Loan, error)
	DeleteFn        func(context.Context, string) error
	SelectOverdueFn func(context.Context, time.Time, int) ([]model.Loan, error)
	UpdateStatusFn  func(context.Context, string, model.LoanStatus) error

	mu    sync.Mutex
	Calls int
}

func (s *LoanRepositoryStub) called() {
	s.mu.Lock()
	s.Calls++
	s.mu.Unlock()
}

// CallCount returns number of repository invocations.
func (s *LoanRepositoryStub) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Calls
}

// Create delegates to CreateFn or echoes loan with an identifier.
func (s *LoanRepositoryStub) Create(ctx context.Context, loan model.Loan) (*model.Loan, error) {
	s.called()
	if s.CreateFn != nil {
		return s.CreateFn(ctx, loan)
	}
	loan.ID = "1"
	loan.Source = model.SourceDatabase
	return &loan, nil
}

// GetByID delegates to GetByIDFn or returns not found.
func (s *LoanRepositoryStub) GetByID(ctx context.Context, id string) (*model.Loan, error) {
	s.called()
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	return nil, domainErrors.ErrNotFound
}

// List delegates to ListFn or returns empty result.
func (s *LoanRepositoryStub) List(ctx context.Context, filter model.LoanFilter) ([]model.Loan, error) {
	s.called()
	if s.ListFn != nil {
		return s.ListFn(ctx, filter)
	}
	return []model.Loan{}, nil
}

// Update delegates to UpdateFn or echoes loan.
func (s *LoanRepositoryStub) Update(ctx context.Context, loan model.Loan) (*model.Loan, error) {
	s.called()
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, loan)
	}
	return &loan, nil
}

// Delete delegates to DeleteFn.
func (s *LoanRepositoryStub) Delete(ctx context.Context, id string) error {
	s.called()
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	return nil
}

// SelectOverdue delegates to SelectOverdueFn.
func (s *LoanRepositoryStub) SelectOverdue(ctx context.Context, now time.Time, limit int) ([]model.Loan, error) {
	s.called()
	if s.SelectOverdueFn != nil {
		return s.SelectOverdueFn(ctx, now, limit)
	}
	return nil, nil
}

// UpdateStatus delegates to UpdateStatusFn.
func (s *LoanRepositoryStub) UpdateStatus(ctx context.Context, id string, status model.LoanStatus) error {
	s.called()
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, id, status)
	}
	return nil
}

// PaymentRepositoryStub allows tests to customize behaviour and counts every call.
type PaymentRepositoryStub struct {
	RecordFn      func(context.Context, model.Payment) (*model.Payment, error)
	ListByLoanFn  func(context.Context, string) ([]model.Payment, error)
	TotalByLoanFn func(context.Context, string) (float64, error)
	TotalFn       func(context.Context) (float64, error)

	mu    sync.Mutex
	Calls int
}

func (s *PaymentRepositoryStub) called() {
	s.mu.Lock()
	s.Calls++
	s.mu.Unlock()
}

// CallCount returns number of repository invocations.
func (s *PaymentRepositoryStub) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Calls
}

// Record delegates to RecordFn or echoes payment with an identifier.
func (s *PaymentRepositoryStub) Record(ctx context.Context, payment model.Payment) (*model.Payment, error) {
	s.called()
	if s.RecordFn != nil {
		return s.RecordFn(ctx, payment)
	}
	payment.ID = 1
	payment.PaidAt = time.Unix(0, 0).UTC()
	return &payment, nil
}

// ListByLoan delegates to ListByLoanFn or returns empty result.
func (s *PaymentRepositoryStub) ListByLoan(ctx context.Context, loanID string) ([]model.Payment, error) {
	s.called()
	if s.ListByLoanFn != nil {
		return s.ListByLoanFn(ctx, loanID)
	}
	return []model.Payment{}, nil
}

// TotalByLoan delegates to TotalByLoanFn.
func (s *PaymentRepositoryStub) TotalByLoan(ctx context.Context, loanID string) (float64, error) {
	s.called()
	if s.TotalByLoanFn != nil {
		return s.TotalByLoanFn(ctx, loanID)
	}
	return 0, nil
}

// Total delegates to TotalFn.
func (s *PaymentRepositoryStub) Total(ctx context.Context) (float64, error) {
	s.called()
	if s.TotalFn != nil {
		return s.TotalFn(ctx)
	}
	return 0, nil
}
