package dto

import (
	"time"

	"github.com/polkiloo/loandesk/internal/domain/model"
)

// LoginRequest describes username/password payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SessionUser is the public projection of the logged in account.
type SessionUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// LoginResponse is returned on successful login.
type LoginResponse struct {
	Token string      `json:"token"`
	User  SessionUser `json:"user"`
}

// SessionResponse describes the current session.
type SessionResponse struct {
	SessionUser
	ExpiresAt time.Time `json:"expiresAt"`
}

// NewLoginResponse builds the login payload.
func NewLoginResponse(token string, user *model.User) LoginResponse {
	return LoginResponse{
		Token: token,
		User:  SessionUser{ID: user.ID, Username: user.Username, Role: string(user.Role)},
	}
}

// NewSessionResponse projects session claims.
func NewSessionResponse(claims model.Claims) SessionResponse {
	return SessionResponse{
		SessionUser: SessionUser{ID: claims.UserID, Username: claims.Username, Role: string(claims.Role)},
		ExpiresAt:   claims.ExpiresAt.UTC(),
	}
}
