package cron

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/givenmphiwe/bioclock-backend-go/internal/domain/attendance"
	"github.com/givenmphiwe/bioclock-backend-go/internal/domain/settings"
	"github.com/givenmphiwe/bioclock-backend-go/internal/pkg/metrics"
)

// AttendanceJobs closes stale attendance records. Employees who never
// badged out keep an open record; once the working day has passed, the
// company's auto-resolution policy decides how the day is closed.
type AttendanceJobs struct {
	attendanceRepo attendance.AttendanceRepository
	settingsRepo   settings.SettingsRepository
	metrics        *metrics.Metrics
	now            func() time.Time
}

func NewAttendanceJobs(
	attendanceRepo attendance.AttendanceRepository,
	settingsRepo settings.SettingsRepository,
	m *metrics.Metrics,
) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceRepo: attendanceRepo,
		settingsRepo:   settingsRepo,
		metrics:        m,
		now:            time.Now,
	}
}

// ResolveOpenRecords assigns a clock-out to every open record from past
// working days, using each company's configured auto clock-out time.
func (j *AttendanceJobs) ResolveOpenRecords(ctx context.Context) error {
	today := j.now().Truncate(24 * time.Hour)

	open, err := j.attendanceRepo.ListOpen(ctx, today)
	if err != nil {
		return err
	}
	if len(open) == 0 {
		return nil
	}

	policies := make(map[string]settings.AutoResolution)
	resolved := 0

	for _, rec := range open {
		policy, ok := policies[rec.CompanyID]
		if !ok {
			policy = j.companyPolicy(ctx, rec.CompanyID)
			policies[rec.CompanyID] = policy
		}
		if !policy.Enabled || policy.MissedClockOutAction != "auto_close" {
			continue
		}

		clockOut := closingTime(rec.Date, policy.AutoClockOutTime)
		if _, err := j.attendanceRepo.SetClockOut(ctx, rec.CompanyID, rec.EmployeeID, rec.Date, clockOut); err != nil {
			if errors.Is(err, attendance.ErrClockOutBeforeIn) || errors.Is(err, attendance.ErrNotClockedIn) {
				slog.Warn("Skipping unresolvable open record",
					"company_id", rec.CompanyID,
					"employee_id", rec.EmployeeID,
					"date", rec.Date.Format("2006-01-02"),
					"error", err)
				continue
			}
			return err
		}
		resolved++
		j.metrics.AutoResolvedDays.Inc()
	}

	if resolved > 0 {
		slog.Info("Auto-resolved open attendance records", "count", resolved)
	}
	return nil
}

func (j *AttendanceJobs) companyPolicy(ctx context.Context, companyID string) settings.AutoResolution {
	stored, err := j.settingsRepo.Get(ctx, companyID)
	if err != nil {
		return settings.Defaults(companyID).AutoResolution
	}
	return stored.AutoResolution
}

// closingTime places the "HH:MM" wall-clock closing time on the
// record's working day. An unparseable time falls back to end of day.
func closingTime(date time.Time, clock string) time.Time {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		t, _ = time.Parse("15:04", "23:59")
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location())
}
