package attendance

import (
	"time"

	"github.com/givenmphiwe/bioclock-backend-go/internal/domain/employee"
)

// Record is one employee-day of clocking data. Records are produced by
// the clock-in devices; this system only reads and summarises them.
type Record struct {
	ID         string
	CompanyID  string
	EmployeeID string
	Date       time.Time // working day, truncated to midnight
	ClockIn    *time.Time
	ClockOut   *time.Time
	Shift      *employee.ShiftType // overrides the employee default
	Location   *string
	Note       *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// DefaultOverviewDays is the rolling window the overview series covers
// when the caller does not pick one.
const DefaultOverviewDays = 30

// Status is the primary classification of an employee-day.
type Status string

const (
	StatusOnTime Status = "on_time"
	StatusLate   Status = "late"
	StatusAbsent Status = "absent"
)

// Mark is the full classification of one employee-day. EarlyOut is kept
// as a flag beside the primary status so a late arrival that also left
// early keeps both signals.
type Mark struct {
	Status     Status
	EarlyOut   bool
	NoClockIn  bool
	NoClockOut bool
}

// DaySummary counts classifications across a roster for one day.
type DaySummary struct {
	Date       time.Time
	OnTime     int
	Late       int
	EarlyOut   int
	Absent     int
	NoClockIn  int
	NoClockOut int
}

// Series is the parallel label/count form the dashboard charts consume.
type Series struct {
	Labels []string `json:"labels"`
	OnTime []int    `json:"onTime"`
	Late   []int    `json:"late"`
	Absent []int    `json:"absent"`
}
