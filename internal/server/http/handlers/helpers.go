package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/loandesk/internal/domain/errors"
	"github.com/polkiloo/loandesk/internal/domain/model"
	pkgAuth "github.com/polkiloo/loandesk/internal/pkg/auth"
	"github.com/polkiloo/loandesk/internal/server/http/dto"
	"github.com/polkiloo/loandesk/internal/server/http/middleware"
)

// CurrentSession extracts the authenticated session from context.
func CurrentSession(c *gin.Context) model.Claims {
	session, _ := middleware.CurrentSession(c)
	return session
}

func respondData(c *gin.Context, status int, source string, data any) {
	c.JSON(status, dto.Envelope{Success: true, Source: source, Data: data})
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, dto.Message{Message: message})
}

func badRequest(c *gin.Context) {
	respondMessage(c, http.StatusBadRequest, "invalid request body")
}

// respondError maps domain errors onto HTTP statuses.
// Unexpected errors are attached to the context for logging and hidden from the client.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrValidation):
		respondMessage(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domainErrors.ErrMissingCredentials):
		respondMessage(c, http.StatusBadRequest, "missing credentials")
	case errors.Is(err, domainErrors.ErrInvalidCredentials):
		respondMessage(c, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, pkgAuth.ErrInvalidToken):
		respondMessage(c, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domainErrors.ErrForbidden):
		respondMessage(c, http.StatusForbidden, "forbidden")
	case errors.Is(err, domainErrors.ErrNotFound):
		respondMessage(c, http.StatusNotFound, "not found")
	case errors.Is(err, domainErrors.ErrAlreadyExists):
		respondMessage(c, http.StatusConflict, "already exists")
	case errors.Is(err, domainErrors.ErrLoanClosed):
		respondMessage(c, http.StatusConflict, "loan is closed")
	case errors.Is(err, domainErrors.ErrStoreUnavailable):
		respondMessage(c, http.StatusServiceUnavailable, "service unavailable")
	default:
		_ = c.Error(err)
		respondMessage(c, http.StatusInternalServerError, "internal server error")
	}
}

func userIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondMessage(c, http.StatusNotFound, "not found")
		return 0, false
	}
	return id, true
}
