package model

import (
	"strings"
	"time"
)

// LoanStatus represents lifecycle state of a loan.
type LoanStatus string

const (
	LoanStatusPending   LoanStatus = "pending"
	LoanStatusActive    LoanStatus = "active"
	LoanStatusPaid      LoanStatus = "paid"
	LoanStatusOverdue   LoanStatus = "overdue"
	LoanStatusDefaulted LoanStatus = "defaulted"
)

// LoanStatuses lists every known status in display order.
var LoanStatuses = []LoanStatus{
	LoanStatusPending,
	LoanStatusActive,
	LoanStatusPaid,
	LoanStatusOverdue,
	LoanStatusDefaulted,
}

// Valid reports whether s is a known status.
func (s LoanStatus) Valid() bool {
	for _, known := range LoanStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Closed reports whether no more payments are accepted.
func (s LoanStatus) Closed() bool {
	return s == LoanStatusPaid || s == LoanStatusDefaulted
}

const (
	DefaultPurpose    = "General"
	DefaultTermMonths = 1
	SourceDatabase    = "database"
)

// Borrower holds contact details of the person a loan was issued to.
type Borrower struct {
	FullName string
	Email    string
	Phone    string
}

// Loan is a single lending record.
type Loan struct {
	ID         string
	Borrower   Borrower
	Amount     float64
	Purpose    string
	TermMonths int
	Status     LoanStatus
	IssuedAt   time.Time
	DueAt      time.Time
	Source     string
	CreatedBy  int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// DueDate returns the repayment deadline for a loan issued at issued.
func DueDate(issued time.Time, termMonths int) time.Time {
	if termMonths <= 0 {
		termMonths = DefaultTermMonths
	}
	return issued.AddDate(0, termMonths, 0)
}

// LoanFilter narrows loan listings.
type LoanFilter struct {
	Status LoanStatus
	Search string
}

// Match reports whether loan satisfies the filter.
func (f LoanFilter) Match(loan Loan) bool {
	if f.Status != "" && loan.Status != f.Status {
		return false
	}
	if f.Search == "" {
		return true
	}
	needle := strings.ToLower(f.Search)
	return strings.Contains(strings.ToLower(loan.Borrower.FullName), needle) ||
		strings.Contains(strings.ToLower(loan.Borrower.Phone), needle)
}

// LoanInput carries the editable fields of a loan.
type LoanInput struct {
	BorrowerName  string
	BorrowerEmail string
	BorrowerPhone string
	Amount        float64
	Purpose       string
	TermMonths    int
	Status        LoanStatus
	IssuedAt      *time.Time
}
