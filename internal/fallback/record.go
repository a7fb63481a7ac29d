// Package fallback serves pre-exported loan records while the database is unreachable
// and converts spreadsheet exports into that format.
package fallback

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/polkiloo/loandesk/internal/domain/model"
)

const (
	IDPrefix      = "fallback-"
	DefaultStatus = model.LoanStatusPending
)

// Borrower mirrors the nested borrower object of a fallback row.
type Borrower struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// Record is one row of the fallback data file. The converter writes it and
// the provider reads it, so both sides share this schema.
type Record struct {
	ID       string   `json:"_id"`
	FullName string   `json:"fullName"`
	Phone    string   `json:"phone"`
	Amount   float64  `json:"amount"`
	Date     string   `json:"date"`
	Status   string   `json:"status"`
	Source   string   `json:"source"`
	Borrower Borrower `json:"borrower"`
	Purpose  string   `json:"purpose"`
	Term     int      `json:"term"`
}

// Loan projects the record onto the domain loan model.
func (r Record) Loan() model.Loan {
	borrower := model.Borrower{
		FullName: firstNonEmpty(r.Borrower.FullName, r.FullName),
		Email:    r.Borrower.Email,
		Phone:    firstNonEmpty(r.Borrower.Phone, r.Phone),
	}

	status := model.LoanStatus(strings.ToLower(r.Status))
	if !status.Valid() {
		status = DefaultStatus
	}

	term := r.Term
	if term <= 0 {
		term = model.DefaultTermMonths
	}

	issued, ok := parseDate(r.Date)
	if !ok {
		issued = time.Time{}
	}

	return model.Loan{
		ID:         r.ID,
		Borrower:   borrower,
		Amount:     r.Amount,
		Purpose:    firstNonEmpty(r.Purpose, model.DefaultPurpose),
		TermMonths: term,
		Status:     status,
		IssuedAt:   issued,
		DueAt:      model.DueDate(issued, term),
		Source:     r.Source,
		CreatedAt:  issued,
		UpdatedAt:  issued,
	}
}

// ReadRecords decodes a fallback data file.
func ReadRecords(r io.Reader) ([]Record, error) {
	var records []Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode fallback records: %w", err)
	}
	return records, nil
}

// WriteRecords encodes records as an indented JSON array.
func WriteRecords(w io.Writer, records []Record) error {
	if records == nil {
		records = []Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode fallback records: %w", err)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
