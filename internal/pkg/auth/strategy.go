package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/polkiloo/loandesk/internal/domain/model"
)

const defaultTTL = 24 * time.Hour

var (
	ErrInvalidToken    = errors.New("invalid auth token")
	ErrTokenMalformed  = fmt.Errorf("%w: malformed", ErrInvalidToken)
	ErrTokenSignature  = fmt.Errorf("%w: signature mismatch", ErrInvalidToken)
	ErrTokenExpired    = fmt.Errorf("%w: expired", ErrInvalidToken)
	ErrTokenRevoked    = fmt.Errorf("%w: revoked", ErrInvalidToken)
	ErrAccountInactive = fmt.Errorf("%w: account inactive", ErrInvalidToken)
)

// Strategy issues and verifies signed session tokens.
type Strategy interface {
	IssueToken(claims model.Claims) (string, error)
	ParseToken(token string) (*model.Claims, error)
	Name() string
}

// Options tune token lifetime. Now defaults to time.Now.
type Options struct {
	TTL time.Duration
	Now func() time.Time
}

func (o Options) withDefaults() Options {
	if o.TTL <= 0 {
		o.TTL = defaultTTL
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// stamp fills the time window and token id of claims issued at now.
// Tokens carry whole seconds, so the expiry is rounded up and never
// falls before now+ttl.
func stamp(claims model.Claims, now time.Time, ttl time.Duration) model.Claims {
	if claims.TokenID == "" {
		claims.TokenID = uuid.NewString()
	}
	expires := now.Add(ttl)
	if rounded := expires.Truncate(time.Second); !rounded.Equal(expires) {
		expires = rounded.Add(time.Second)
	}
	claims.IssuedAt = now.Truncate(time.Second)
	claims.ExpiresAt = expires
	return claims
}
