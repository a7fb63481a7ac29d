package test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/polkiloo/loandesk/internal/domain/model"
	pkgAuth "github.com/polkiloo/loandesk/internal/pkg/auth"
)

// HasherStub provides deterministic hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

// Hash returns a predictable hash for the supplied password.
func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	return "hash:" + password, nil
}

// Compare validates password against stored hash.
func (h HasherStub) Compare(hash string, password string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, password)
	}
	if hash != "hash:"+password {
		return errors.New("mismatch")
	}
	return nil
}

// StrategyStub issues readable tokens of the form token-<id>-<username>-<role>.
type StrategyStub struct {
	IssueFn func(model.Claims) (string, error)
	ParseFn func(string) (*model.Claims, error)
	NameVal string
}

// IssueToken returns deterministic tokens for tests.
func (s StrategyStub) IssueToken(claims model.Claims) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(claims)
	}
	return fmt.Sprintf("token-%d-%s-%s", claims.UserID, claims.Username, claims.Role), nil
}

// ParseToken parses tokens produced by IssueToken.
func (s StrategyStub) ParseToken(token string) (*model.Claims, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	parts := strings.SplitN(token, "-", 4)
	if len(parts) != 4 || parts[0] != "token" {
		return nil, pkgAuth.ErrTokenMalformed
	}
	var id int64
	if _, err := fmt.Sscanf(parts[1], "%d", &id); err != nil {
		return nil, pkgAuth.ErrTokenMalformed
	}
	return &model.Claims{
		UserID:    id,
		Username:  parts[2],
		Role:      model.Role(parts[3]),
		TokenID:   token,
		IssuedAt:  time.Unix(0, 0).UTC(),
		ExpiresAt: time.Unix(0, 0).UTC().Add(24 * time.Hour),
	}, nil
}

// Name returns the strategy identifier used in tests.
func (s StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

// RevokerStub keeps revoked token ids in a map.
type RevokerStub struct {
	mu      sync.Mutex
	Revoked map[string]time.Time
	Err     error
}

// Revoke marks tokenID as revoked.
func (r *RevokerStub) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Revoked == nil {
		r.Revoked = make(map[string]time.Time)
	}
	r.Revoked[tokenID] = until
	return nil
}

// IsRevoked reports whether tokenID was revoked.
func (r *RevokerStub) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if r.Err != nil {
		return false, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.Revoked[tokenID]
	return ok, nil
}

var _ pkgAuth.PasswordHasher = HasherStub{}
var _ pkgAuth.Strategy = StrategyStub{}
var _ pkgAuth.Revoker = (*RevokerStub)(nil)

// AuthenticatorStub implements middleware token verification contract.
type AuthenticatorStub struct {
	Claims *model.Claims
	Err    error
	Fn     func(context.Context, string) (*model.Claims, error)
}

// Authenticate either delegates to override or returns predefined result.
func (s AuthenticatorStub) Authenticate(ctx context.Context, token string) (*model.Claims, error) {
	if s.Fn != nil {
		return s.Fn(ctx, token)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Claims != nil {
		claims := *s.Claims
		return &claims, nil
	}
	return &model.Claims{UserID: 1, Username: "stub", Role: model.RoleAdmin, TokenID: token}, nil
}
