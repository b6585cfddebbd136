package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for attendance records. All
// methods take companyID to keep company data isolated.
type AttendanceRepository interface {
	// GetDay returns the snapshot for one working day keyed by
	// employee ID.
	GetDay(ctx context.Context, companyID string, date time.Time) (map[string]Record, error)

	// GetRange returns snapshots for [from, to] keyed by working day
	// (YYYY-MM-DD) then employee ID.
	GetRange(ctx context.Context, companyID string, from, to time.Time) (map[string]map[string]Record, error)

	GetByEmployeeAndDate(ctx context.Context, companyID string, employeeID string, date time.Time) (*Record, error)

	// UpsertClockIn records a device clock-in event.
	UpsertClockIn(ctx context.Context, rec Record) (Record, error)

	// SetClockOut closes the day's record for the employee.
	SetClockOut(ctx context.Context, companyID string, employeeID string, date time.Time, clockOut time.Time) (Record, error)

	// ListOpen returns records from before the cutoff day that have a
	// clock-in but no clock-out, across all companies.
	ListOpen(ctx context.Context, before time.Time) ([]Record, error)
}
