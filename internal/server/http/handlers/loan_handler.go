package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/loandesk/internal/domain/model"
	"github.com/polkiloo/loandesk/internal/server/http/dto"
)

// LoanHandler serves loan CRUD endpoints.
type LoanHandler struct {
	facade LoanFacade
}

// NewLoanHandler creates LoanHandler instance.
func NewLoanHandler(facade LoanFacade) *LoanHandler {
	return &LoanHandler{facade: facade}
}

// List handles GET /api/loans with optional status and search query parameters.
func (h *LoanHandler) List(c *gin.Context) {
	filter := model.LoanFilter{
		Status: model.LoanStatus(strings.ToLower(strings.TrimSpace(c.Query("status")))),
		Search: strings.TrimSpace(c.Query("search")),
	}
	if filter.Status != "" && !filter.Status.Valid() {
		respondMessage(c, http.StatusBadRequest, "status: unknown loan status")
		return
	}

	loans, source, err := h.facade.Loans(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, source, dto.NewLoanResponses(loans))
}

// Get handles GET /api/loans/:id.
func (h *LoanHandler) Get(c *gin.Context) {
	loan, source, err := h.facade.Loan(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, source, dto.NewLoanResponse(*loan))
}

// Create handles POST /api/loans.
func (h *LoanHandler) Create(c *gin.Context) {
	var req dto.LoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	loan, err := h.facade.CreateLoan(c.Request.Context(), CurrentSession(c), req.Input())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, model.SourceDatabase, dto.NewLoanResponse(*loan))
}

// Update handles PUT /api/loans/:id.
func (h *LoanHandler) Update(c *gin.Context) {
	var req dto.LoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	loan, err := h.facade.UpdateLoan(c.Request.Context(), c.Param("id"), req.Input())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, model.SourceDatabase, dto.NewLoanResponse(*loan))
}

// Delete handles DELETE /api/loans/:id.
func (h *LoanHandler) Delete(c *gin.Context) {
	if err := h.facade.DeleteLoan(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
