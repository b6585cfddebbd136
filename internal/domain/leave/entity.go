package leave

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusDeclined Status = "declined"
)

type Request struct {
	ID            string    `json:"id"`
	CompanyID     string    `json:"companyId"`
	EmployeeID    string    `json:"employeeId"`
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate"`
	Days          int       `json:"days"`
	Reason        string    `json:"reason"`
	Status        Status    `json:"status"`
	DeclineReason *string   `json:"declineReason,omitempty"`
	DecidedBy     *string   `json:"decidedBy,omitempty"`
	DecidedAt     *time.Time `json:"decidedAt,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Balance is an employee's remaining leave allowance for one year.
type Balance struct {
	EmployeeID string    `json:"employeeId"`
	Year       int       `json:"year"`
	Remaining  int       `json:"remaining"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// InclusiveDays counts calendar days from start to end, both ends
// included. Same-day requests count as one day.
func InclusiveDays(start, end time.Time) int {
	s := start.Truncate(24 * time.Hour)
	e := end.Truncate(24 * time.Hour)
	if e.Before(s) {
		return 0
	}
	return int(e.Sub(s)/(24*time.Hour)) + 1
}
