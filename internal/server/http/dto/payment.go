package dto

import (
	"time"

	"github.com/polkiloo/loandesk/internal/domain/model"
)

// PaymentRequest is the body of a repayment.
type PaymentRequest struct {
	Amount float64 `json:"amount"`
	Method string  `json:"method"`
	Note   string  `json:"note"`
}

// Input converts the request into a domain input.
func (r PaymentRequest) Input() model.PaymentInput {
	return model.PaymentInput{Amount: r.Amount, Method: r.Method, Note: r.Note}
}

// PaymentResponse is the public projection of a payment.
type PaymentResponse struct {
	ID         int64     `json:"id"`
	LoanID     string    `json:"loanId"`
	Amount     float64   `json:"amount"`
	Method     string    `json:"method"`
	Note       string    `json:"note,omitempty"`
	RecordedBy int64     `json:"recordedBy"`
	PaidAt     time.Time `json:"paidAt"`
}

// NewPaymentResponses projects payments.
func NewPaymentResponses(payments []model.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, NewPaymentResponse(p))
	}
	return out
}

// NewPaymentResponse projects a payment.
func NewPaymentResponse(p model.Payment) PaymentResponse {
	return PaymentResponse{
		ID:         p.ID,
		LoanID:     p.LoanID,
		Amount:     p.Amount,
		Method:     p.Method,
		Note:       p.Note,
		RecordedBy: p.RecordedBy,
		PaidAt:     p.PaidAt.UTC(),
	}
}
