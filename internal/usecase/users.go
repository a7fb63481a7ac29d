package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	domainErrors "github.com/polkiloo/loandesk/internal/domain/errors"
	"github.com/polkiloo/loandesk/internal/domain/model"
	"github.com/polkiloo/loandesk/internal/domain/repository"
	pkgAuth "github.com/polkiloo/loandesk/internal/pkg/auth"
)

// UserUseCase administers staff accounts.
type UserUseCase struct {
	users  repository.UserRepository
	hasher pkgAuth.PasswordHasher
	logger *slog.Logger
}

// NewUserUseCase constructs UserUseCase.
func NewUserUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, logger *slog.Logger) *UserUseCase {
	return &UserUseCase{users: users, hasher: hasher, logger: logger}
}

// Create validates and stores a new active account with a hashed password.
func (u *UserUseCase) Create(ctx context.Context, in model.NewUser) (*model.User, error) {
	username, err := validateUsername(in.Username)
	if err != nil {
		return nil, err
	}
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}
	role, err := validateRole(in.Role)
	if err != nil {
		return nil, err
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	return u.users.Create(ctx, model.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		FullName:     strings.TrimSpace(in.FullName),
		Active:       true,
	})
}

// List returns every account.
func (u *UserUseCase) List(ctx context.Context) ([]model.User, error) {
	return u.users.List(ctx)
}

// ChangePassword re-hashes the password of id. Only the owner or an admin may do it.
func (u *UserUseCase) ChangePassword(ctx context.Context, actor model.Claims, id int64, password string) error {
	if actor.UserID != id && actor.Role != model.RoleAdmin {
		return domainErrors.ErrForbidden
	}
	if err := validatePassword(password); err != nil {
		return err
	}
	if _, err := u.users.GetByID(ctx, id); err != nil {
		return err
	}
	hash, err := u.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return u.users.UpdatePassword(ctx, id, hash)
}

// ChangeRole assigns a new role without touching credentials.
func (u *UserUseCase) ChangeRole(ctx context.Context, id int64, role model.Role) error {
	if role == "" {
		return invalid("role", "must not be empty")
	}
	role, err := validateRole(role)
	if err != nil {
		return err
	}
	return u.users.UpdateRole(ctx, id, role)
}

// Deactivate disables login for id. Accounts are never deleted.
func (u *UserUseCase) Deactivate(ctx context.Context, actor model.Claims, id int64) error {
	if actor.UserID == id {
		return invalid("id", "cannot deactivate own account")
	}
	return u.users.SetActive(ctx, id, false)
}

// LoadSeedFile reads bootstrap accounts from a YAML document with a top-level users list.
func LoadSeedFile(path string) ([]model.NewUser, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var doc struct {
		Users []model.NewUser `yaml:"users"`
	}
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return doc.Users, nil
}

// Seed creates each account that does not exist yet and reports how many were created.
func (u *UserUseCase) Seed(ctx context.Context, seeds []model.NewUser) (int, error) {
	created := 0
	for _, seed := range seeds {
		_, err := u.Create(ctx, seed)
		switch {
		case err == nil:
			created++
		case errors.Is(err, domainErrors.ErrAlreadyExists):
		case errors.Is(err, domainErrors.ErrStoreUnavailable):
			return created, err
		default:
			if u.logger != nil {
				u.logger.Warn("skip seed user", slog.String("username", seed.Username), slog.String("error", err.Error()))
			}
		}
	}
	return created, nil
}
