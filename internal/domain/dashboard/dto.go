package dashboard

import "github.com/givenmphiwe/bioclock-backend-go/internal/domain/attendance"

// OverviewResponse is the landing-page payload: headline counts for
// today plus the rolling attendance chart.
type OverviewResponse struct {
	Date            string                        `json:"date"`
	TotalEmployees  int                           `json:"totalEmployees"`
	ActiveEmployees int                           `json:"activeEmployees"`
	Today           attendance.DaySummaryResponse `json:"today"`
	PendingLeave    int                           `json:"pendingLeave"`
	Chart           attendance.Series             `json:"chart"`
}
