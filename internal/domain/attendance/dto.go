package attendance

import (
	"github.com/givenmphiwe/bioclock-backend-go/internal/pkg/validator"
)

// ClockEventRequest is the ingest payload sent by the clock devices.
type ClockEventRequest struct {
	EmployeeIRN string  `json:"employeeIrn"`
	Timestamp   string  `json:"timestamp"` // RFC3339
	Kind        string  `json:"kind"`      // in | out
	Shift       *string `json:"shift,omitempty"`
	Location    *string `json:"location,omitempty"`
}

func (r *ClockEventRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeIRN) {
		errs = append(errs, validator.ValidationError{
			Field:   "employeeIrn",
			Message: "employee IRN is required",
		})
	}

	if _, ok := validator.IsValidDateTime(r.Timestamp); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "timestamp",
			Message: "timestamp must be an RFC3339 datetime",
		})
	}

	if !validator.IsInSlice(r.Kind, []string{"in", "out"}) {
		errs = append(errs, validator.ValidationError{
			Field:   "kind",
			Message: "kind must be in or out",
		})
	}

	if r.Shift != nil && !validator.IsInSlice(*r.Shift, []string{"day", "night"}) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift",
			Message: "shift must be day or night",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RecordResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employeeId"`
	EmployeeName string  `json:"employeeName"`
	Date         string  `json:"date"`
	ClockIn      *string `json:"clockIn,omitempty"`
	ClockOut     *string `json:"clockOut,omitempty"`
	Shift        string  `json:"shift"`
	Status       string  `json:"status"`
	EarlyOut     bool    `json:"earlyOut"`
	NoClockIn    bool    `json:"noClockIn"`
	NoClockOut   bool    `json:"noClockOut"`
	WorkedHours  float64 `json:"workedHours"`
	Location     *string `json:"location,omitempty"`
	Note         *string `json:"note,omitempty"`
}

type DaySummaryResponse struct {
	Date       string `json:"date"`
	OnTime     int    `json:"onTime"`
	Late       int    `json:"late"`
	EarlyOut   int    `json:"earlyOut"`
	Absent     int    `json:"absent"`
	NoClockIn  int    `json:"noClockIn"`
	NoClockOut int    `json:"noClockOut"`
}

type DayDetailResponse struct {
	Summary DaySummaryResponse `json:"summary"`
	Records []RecordResponse   `json:"records"`
}
