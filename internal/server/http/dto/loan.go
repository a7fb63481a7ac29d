package dto

import (
	"time"

	"github.com/polkiloo/loandesk/internal/domain/model"
)

// BorrowerPayload is the borrower part of loan requests and responses.
type BorrowerPayload struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// LoanRequest is the body of loan create and update calls.
type LoanRequest struct {
	Borrower   BorrowerPayload `json:"borrower"`
	Amount     float64         `json:"amount"`
	Purpose    string          `json:"purpose"`
	TermMonths int             `json:"termMonths"`
	Status     string          `json:"status"`
	IssuedAt   *time.Time      `json:"issuedAt"`
}

// Input converts the request into a domain input.
func (r LoanRequest) Input() model.LoanInput {
	return model.LoanInput{
		BorrowerName:  r.Borrower.FullName,
		BorrowerEmail: r.Borrower.Email,
		BorrowerPhone: r.Borrower.Phone,
		Amount:        r.Amount,
		Purpose:       r.Purpose,
		TermMonths:    r.TermMonths,
		Status:        model.LoanStatus(r.Status),
		IssuedAt:      r.IssuedAt,
	}
}

// LoanResponse is the public projection of a loan.
type LoanResponse struct {
	ID         string          `json:"id"`
	Borrower   BorrowerPayload `json:"borrower"`
	Amount     float64         `json:"amount"`
	Purpose    string          `json:"purpose"`
	TermMonths int             `json:"termMonths"`
	Status     string          `json:"status"`
	IssuedAt   *time.Time      `json:"issuedAt,omitempty"`
	DueAt      *time.Time      `json:"dueAt,omitempty"`
	Source     string          `json:"source"`
	CreatedAt  *time.Time      `json:"createdAt,omitempty"`
	UpdatedAt  *time.Time      `json:"updatedAt,omitempty"`
}

// NewLoanResponse projects a loan. Unknown dates are omitted.
func NewLoanResponse(loan model.Loan) LoanResponse {
	return LoanResponse{
		ID: loan.ID,
		Borrower: BorrowerPayload{
			FullName: loan.Borrower.FullName,
			Email:    loan.Borrower.Email,
			Phone:    loan.Borrower.Phone,
		},
		Amount:     loan.Amount,
		Purpose:    loan.Purpose,
		TermMonths: loan.TermMonths,
		Status:     string(loan.Status),
		IssuedAt:   optionalTime(loan.IssuedAt),
		DueAt:      optionalTime(loan.DueAt),
		Source:     loan.Source,
		CreatedAt:  optionalTime(loan.CreatedAt),
		UpdatedAt:  optionalTime(loan.UpdatedAt),
	}
}

// NewLoanResponses projects a list of loans.
func NewLoanResponses(loans []model.Loan) []LoanResponse {
	out := make([]LoanResponse, 0, len(loans))
	for _, loan := range loans {
		out = append(out, NewLoanResponse(loan))
	}
	return out
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	utc := t.UTC()
	return &utc
}
