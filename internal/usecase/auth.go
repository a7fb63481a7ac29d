package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	domainErrors "github.com/polkiloo/loandesk/internal/domain/errors"
	"github.com/polkiloo/loandesk/internal/domain/model"
	"github.com/polkiloo/loandesk/internal/domain/repository"
	"github.com/polkiloo/loandesk/internal/metrics"
	pkgAuth "github.com/polkiloo/loandesk/internal/pkg/auth"
)

// Login outcomes recorded in metrics.
const (
	loginSuccess     = "success"
	loginMissing     = "missing"
	loginInvalid     = "invalid"
	loginUnavailable = "unavailable"
	loginError       = "error"
)

// AuthUseCase verifies credentials and manages session tokens.
type AuthUseCase struct {
	users   repository.UserRepository
	hasher  pkgAuth.PasswordHasher
	tokens  pkgAuth.Strategy
	revoker pkgAuth.Revoker
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(
	users repository.UserRepository,
	hasher pkgAuth.PasswordHasher,
	strategy pkgAuth.Strategy,
	revoker pkgAuth.Revoker,
	m *metrics.Metrics,
	logger *slog.Logger,
) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, tokens: strategy, revoker: revoker, metrics: m, logger: logger}
}

// Login validates credentials and issues a session token.
// Unknown, inactive and mismatched accounts are indistinguishable to the caller.
func (u *AuthUseCase) Login(ctx context.Context, username, password string) (*model.LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		u.observe(loginMissing)
		return nil, domainErrors.ErrMissingCredentials
	}

	usr, err := u.users.GetByUsername(ctx, username)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			u.observe(loginInvalid)
			return nil, domainErrors.ErrInvalidCredentials
		case errors.Is(err, domainErrors.ErrStoreUnavailable):
			u.observe(loginUnavailable)
			return nil, domainErrors.ErrStoreUnavailable
		default:
			u.observe(loginError)
			return nil, fmt.Errorf("lookup user: %w", err)
		}
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		u.observe(loginInvalid)
		return nil, domainErrors.ErrInvalidCredentials
	}
	if !usr.Active {
		u.observe(loginInvalid)
		return nil, domainErrors.ErrInvalidCredentials
	}

	claims := model.Claims{UserID: usr.ID, Username: usr.Username, Role: usr.Role}
	token, err := u.tokens.IssueToken(claims)
	if err != nil {
		u.observe(loginError)
		return nil, fmt.Errorf("issue token: %w", err)
	}

	parsed, err := u.tokens.ParseToken(token)
	if err != nil {
		u.observe(loginError)
		return nil, fmt.Errorf("parse issued token: %w", err)
	}

	u.observe(loginSuccess)
	if u.logger != nil {
		u.logger.Info("user logged in", slog.Int64("user_id", usr.ID), slog.String("username", usr.Username))
	}
	return &model.LoginResult{Token: token, User: usr, Claims: parsed}, nil
}

// Authenticate verifies a presented token, rejects revoked ones and
// refreshes the role from the stored account. Tokens of deactivated or
// removed accounts are rejected. While the store is unreachable the
// token claims are used as issued.
func (u *AuthUseCase) Authenticate(ctx context.Context, token string) (*model.Claims, error) {
	if token == "" {
		return nil, pkgAuth.ErrInvalidToken
	}
	claims, err := u.tokens.ParseToken(token)
	if err != nil {
		return nil, err
	}
	revoked, err := u.revoker.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return nil, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return nil, pkgAuth.ErrTokenRevoked
	}

	usr, err := u.users.GetByID(ctx, claims.UserID)
	switch {
	case err == nil:
		if !usr.Active || usr.Username != claims.Username {
			return nil, pkgAuth.ErrAccountInactive
		}
		claims.Role = usr.Role
	case errors.Is(err, domainErrors.ErrNotFound):
		return nil, pkgAuth.ErrAccountInactive
	case errors.Is(err, domainErrors.ErrStoreUnavailable):
		if u.logger != nil {
			u.logger.Debug("session account not verified, store unreachable", slog.Int64("user_id", claims.UserID))
		}
	default:
		return nil, fmt.Errorf("lookup session user: %w", err)
	}
	return claims, nil
}

// Logout revokes the session token until it would have expired anyway.
func (u *AuthUseCase) Logout(ctx context.Context, claims model.Claims) error {
	if claims.TokenID == "" {
		return pkgAuth.ErrInvalidToken
	}
	if err := u.revoker.Revoke(ctx, claims.TokenID, claims.ExpiresAt); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (u *AuthUseCase) observe(outcome string) {
	if u.metrics != nil {
		u.metrics.LoginsTotal.WithLabelValues(outcome).Inc()
	}
}
