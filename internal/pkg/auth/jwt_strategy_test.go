package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/polkiloo/loandesk/internal/domain/model"
)

func TestJWTStrategy_IssueAndParse(t *testing.T) {
	strategy := NewJWTStrategy("secret", Options{TTL: time.Hour, Now: fixedClock(issuedAt)})
	token, err := strategy.IssueToken(model.Claims{UserID: 5, Username: "bob", Role: model.RoleManager, TokenID: "tid-1"})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	claims, err := strategy.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != 5 || claims.Username != "bob" || claims.Role != model.RoleManager {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.TokenID != "tid-1" {
		t.Fatalf("unexpected token id: %q", claims.TokenID)
	}
	if !claims.IssuedAt.Equal(issuedAt) || !claims.ExpiresAt.Equal(issuedAt.Add(time.Hour)) {
		t.Fatalf("unexpected window: %v - %v", claims.IssuedAt, claims.ExpiresAt)
	}
}

func TestJWTStrategy_Expiry(t *testing.T) {
	now := issuedAt
	strategy := NewJWTStrategy("secret", Options{TTL: time.Hour, Now: func() time.Time { return now }})
	token, err := strategy.IssueToken(model.Claims{UserID: 1})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	now = issuedAt.Add(59 * time.Minute)
	if _, err := strategy.ParseToken(token); err != nil {
		t.Fatalf("expected valid token, got %v", err)
	}

	now = issuedAt.Add(time.Hour + time.Second)
	if _, err := strategy.ParseToken(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestJWTStrategy_WrongKey(t *testing.T) {
	issuer := NewJWTStrategy("secret", Options{Now: fixedClock(issuedAt)})
	verifier := NewJWTStrategy("another", Options{Now: fixedClock(issuedAt)})

	token, err := issuer.IssueToken(model.Claims{UserID: 1})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if _, err := verifier.ParseToken(token); !errors.Is(err, ErrTokenSignature) {
		t.Fatalf("expected ErrTokenSignature, got %v", err)
	}
}

func TestJWTStrategy_Malformed(t *testing.T) {
	strategy := NewJWTStrategy("secret", Options{})
	if _, err := strategy.ParseToken("definitely.not.jwt"); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestJWTStrategy_RejectsOtherAlgorithms(t *testing.T) {
	strategy := NewJWTStrategy("secret", Options{Now: fixedClock(issuedAt)})
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none token: %v", err)
	}
	if _, err := strategy.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTStrategy_RequiresNumericSubject(t *testing.T) {
	strategy := NewJWTStrategy("secret", Options{Now: fixedClock(issuedAt)})
	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
	})
	token, err := raw.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	if _, err := strategy.ParseToken(token); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestJWTStrategy_Name(t *testing.T) {
	if name := NewJWTStrategy("secret", Options{}).Name(); name != "jwt" {
		t.Fatalf("unexpected name: %s", name)
	}
}
