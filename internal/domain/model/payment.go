package model

import "time"

const DefaultPaymentMethod = "cash"

// Payment is money received against a loan.
type Payment struct {
	ID         int64
	LoanID     string
	Amount     float64
	Method     string
	Note       string
	RecordedBy int64
	PaidAt     time.Time
}

// PaymentInput carries a repayment to record.
type PaymentInput struct {
	Amount float64
	Method string
	Note   string
}
