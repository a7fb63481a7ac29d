package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/loandesk/internal/server/http/dto"
)

const (
	modeDatabase = "database"
	modeFallback = "fallback"
)

// DashboardHandler serves the overview and status endpoints.
type DashboardHandler struct {
	facade DashboardFacade
	now    func() time.Time
}

// NewDashboardHandler creates DashboardHandler instance.
func NewDashboardHandler(facade DashboardFacade) *DashboardHandler {
	return &DashboardHandler{facade: facade, now: time.Now}
}

// Summary handles GET /api/dashboard.
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, source, err := h.facade.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, source, dto.NewDashboardResponse(*summary))
}

// Health handles GET /api/health.
func (h *DashboardHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok", Timestamp: h.now().UTC()})
}

// DBStatus handles GET /api/db-status.
func (h *DashboardHandler) DBStatus(c *gin.Context) {
	status := h.facade.DatabaseStatus(c.Request.Context())
	resp := dto.DBStatusResponse{
		Connected: status.Reachable,
		Mode:      modeDatabase,
		Attempts:  status.Attempts,
		CheckedAt: status.CheckedAt.UTC(),
	}
	if !status.Reachable {
		resp.Mode = modeFallback
		if status.LastError != nil {
			resp.Error = "database unreachable"
		}
	}
	c.JSON(http.StatusOK, resp)
}
