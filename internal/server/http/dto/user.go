package dto

import (
	"time"

	"github.com/polkiloo/loandesk/internal/domain/model"
)

// CreateUserRequest is the body of account creation.
type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
	FullName string `json:"fullName"`
}

// Input converts the request into a domain input.
func (r CreateUserRequest) Input() model.NewUser {
	return model.NewUser{Username: r.Username, Password: r.Password, Role: model.Role(r.Role), FullName: r.FullName}
}

// PasswordRequest changes a password.
type PasswordRequest struct {
	Password string `json:"password"`
}

// RoleRequest changes a role.
type RoleRequest struct {
	Role string `json:"role"`
}

// UserResponse is the public projection of an account. It never carries the hash.
type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	FullName  string    `json:"fullName"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewUserResponse projects a user.
func NewUserResponse(u model.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      string(u.Role),
		FullName:  u.FullName,
		Active:    u.Active,
		CreatedAt: u.CreatedAt.UTC(),
	}
}

// NewUserResponses projects users.
func NewUserResponses(users []model.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}
