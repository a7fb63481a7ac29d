package usecase

import (
	"fmt"
	"strings"

	domainErrors "github.com/polkiloo/loandesk/internal/domain/errors"
	"github.com/polkiloo/loandesk/internal/domain/model"
)

// Password length bounds for staff accounts. bcrypt rejects input over 72 bytes.
const (
	MinPasswordLength = 6
	MaxPasswordLength = 72
)

// ValidationError describes a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Is makes every ValidationError match ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == domainErrors.ErrValidation
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func validateUsername(username string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", invalid("username", "must not be empty")
	}
	return username, nil
}

func validatePassword(password string) error {
	if password == "" {
		return invalid("password", "must not be empty")
	}
	if len(password) < MinPasswordLength {
		return invalid("password", fmt.Sprintf("must be at least %d characters", MinPasswordLength))
	}
	if len(password) > MaxPasswordLength {
		return invalid("password", fmt.Sprintf("must be at most %d bytes", MaxPasswordLength))
	}
	return nil
}

func validateRole(role model.Role) (model.Role, error) {
	if role == "" {
		return model.RoleUser, nil
	}
	role = model.Role(strings.ToLower(strings.TrimSpace(string(role))))
	if !role.Valid() {
		return "", invalid("role", "must be one of admin, manager, user")
	}
	return role, nil
}

func validateLoanInput(in model.LoanInput) (model.LoanInput, error) {
	in.BorrowerName = strings.TrimSpace(in.BorrowerName)
	in.BorrowerEmail = strings.TrimSpace(in.BorrowerEmail)
	in.BorrowerPhone = strings.TrimSpace(in.BorrowerPhone)
	in.Purpose = strings.TrimSpace(in.Purpose)

	if in.BorrowerName == "" {
		return in, invalid("borrower.fullName", "must not be empty")
	}
	if in.BorrowerEmail != "" && !strings.Contains(in.BorrowerEmail, "@") {
		return in, invalid("borrower.email", "must be a valid email address")
	}
	if in.Amount <= 0 {
		return in, invalid("amount", "must be positive")
	}
	if in.TermMonths < 0 {
		return in, invalid("termMonths", "must not be negative")
	}
	if in.TermMonths == 0 {
		in.TermMonths = model.DefaultTermMonths
	}
	if in.Purpose == "" {
		in.Purpose = model.DefaultPurpose
	}
	if in.Status != "" {
		in.Status = model.LoanStatus(strings.ToLower(string(in.Status)))
		if !in.Status.Valid() {
			return in, invalid("status", "unknown loan status")
		}
	}
	return in, nil
}

func validatePaymentInput(in model.PaymentInput) (model.PaymentInput, error) {
	if in.Amount <= 0 {
		return in, invalid("amount", "must be positive")
	}
	in.Method = strings.ToLower(strings.TrimSpace(in.Method))
	if in.Method == "" {
		in.Method = model.DefaultPaymentMethod
	}
	in.Note = strings.TrimSpace(in.Note)
	return in, nil
}
