package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/loandesk/internal/domain/model"
	"github.com/polkiloo/loandesk/internal/server/http/dto"
)

// UserHandler serves staff account administration.
type UserHandler struct {
	facade UserFacade
}

// NewUserHandler creates UserHandler instance.
func NewUserHandler(facade UserFacade) *UserHandler {
	return &UserHandler{facade: facade}
}

// List handles GET /api/users.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.facade.Users(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, model.SourceDatabase, dto.NewUserResponses(users))
}

// Create handles POST /api/users.
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	user, err := h.facade.CreateUser(c.Request.Context(), req.Input())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, model.SourceDatabase, dto.NewUserResponse(*user))
}

// ChangePassword handles PUT /api/users/:id/password.
func (h *UserHandler) ChangePassword(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}
	var req dto.PasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	if err := h.facade.ChangePassword(c.Request.Context(), CurrentSession(c), id, req.Password); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ChangeRole handles PUT /api/users/:id/role.
func (h *UserHandler) ChangeRole(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}
	var req dto.RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	if err := h.facade.ChangeRole(c.Request.Context(), id, model.Role(req.Role)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Deactivate handles DELETE /api/users/:id.
func (h *UserHandler) Deactivate(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}
	if err := h.facade.DeactivateUser(c.Request.Context(), CurrentSession(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
