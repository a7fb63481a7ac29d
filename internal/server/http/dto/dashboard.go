package dto

import "github.com/polkiloo/loandesk/internal/domain/model"

// DashboardResponse is the public projection of the summary.
type DashboardResponse struct {
	TotalLoans     int            `json:"totalLoans"`
	ByStatus       map[string]int `json:"byStatus"`
	TotalDisbursed float64        `json:"totalDisbursed"`
	TotalRepaid    float64        `json:"totalRepaid"`
	Outstanding    float64        `json:"outstanding"`
}

// NewDashboardResponse projects a summary.
func NewDashboardResponse(s model.DashboardSummary) DashboardResponse {
	byStatus := make(map[string]int, len(s.ByStatus))
	for status, count := range s.ByStatus {
		byStatus[string(status)] = count
	}
	return DashboardResponse{
		TotalLoans:     s.TotalLoans,
		ByStatus:       byStatus,
		TotalDisbursed: s.TotalDisbursed,
		TotalRepaid:    s.TotalRepaid,
		Outstanding:    s.Outstanding,
	}
}
