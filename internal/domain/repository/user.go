package repository

import (
	"context"

	"github.com/polkiloo/loandesk/internal/domain/model"
)

// UserRepository describes persistence operations for staff accounts.
type UserRepository interface {
	Create(ctx context.Context, user model.User) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	UpdateRole(ctx context.Context, id int64, role model.Role) error
	SetActive(ctx context.Context, id int64, active bool) error
}
