package model

// DashboardSummary aggregates the loan book.
type DashboardSummary struct {
	TotalLoans     int
	ByStatus       map[LoanStatus]int
	TotalDisbursed float64
	TotalRepaid    float64
	Outstanding    float64
}

// Summarize builds a summary from loans and the amount repaid on them.
func Summarize(loans []Loan, repaid float64) DashboardSummary {
	summary := DashboardSummary{
		TotalLoans:  len(loans),
		ByStatus:    make(map[LoanStatus]int, len(LoanStatuses)),
		TotalRepaid: repaid,
	}
	for _, status := range LoanStatuses {
		summary.ByStatus[status] = 0
	}
	for _, loan := range loans {
		summary.ByStatus[loan.Status]++
		summary.TotalDisbursed += loan.Amount
	}
	summary.Outstanding = summary.TotalDisbursed - summary.TotalRepaid
	if summary.Outstanding < 0 {
		summary.Outstanding = 0
	}
	return summary
}
