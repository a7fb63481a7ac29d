package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/loandesk/internal/domain/model"
	"github.com/polkiloo/loandesk/internal/server/http/dto"
)

// PaymentHandler serves repayment endpoints.
type PaymentHandler struct {
	facade PaymentFacade
}

// NewPaymentHandler creates PaymentHandler instance.
func NewPaymentHandler(facade PaymentFacade) *PaymentHandler {
	return &PaymentHandler{facade: facade}
}

// List handles GET /api/loans/:id/payments.
func (h *PaymentHandler) List(c *gin.Context) {
	payments, source, err := h.facade.Payments(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, source, dto.NewPaymentResponses(payments))
}

// Record handles POST /api/loans/:id/payments.
func (h *PaymentHandler) Record(c *gin.Context) {
	var req dto.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	payment, err := h.facade.RecordPayment(c.Request.Context(), CurrentSession(c), c.Param("id"), req.Input())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, model.SourceDatabase, dto.NewPaymentResponse(*payment))
}
