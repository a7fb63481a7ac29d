package model

import "time"

// Role is the access level of a staff account.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleUser    Role = "user"
)

// Valid reports whether r belongs to the closed set of roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleUser:
		return true
	default:
		return false
	}
}

// User represents a staff account allowed to operate the loan desk.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         Role
	FullName     string
	Active       bool
	CreatedAt    time.Time
}

// Claims is the identity carried by an issued token.
type Claims struct {
	UserID    int64
	Username  string
	Role      Role
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// NewUser carries the fields accepted when creating a staff account.
type NewUser struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Role     Role   `yaml:"role"`
	FullName string `yaml:"fullName"`
}

// LoginResult is returned after a successful login.
type LoginResult struct {
	Token  string
	User   *User
	Claims *Claims
}
