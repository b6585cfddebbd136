package attendance

import (
	"context"
	"time"
)

// AttendanceService summarises device-produced records for dashboards.
type AttendanceService interface {
	// IngestClockEvent applies a device clock-in/out event.
	IngestClockEvent(ctx context.Context, companyID string, req ClockEventRequest) (RecordResponse, error)

	// GetDay classifies the full roster for one working day.
	GetDay(ctx context.Context, companyID string, date time.Time) (DayDetailResponse, error)

	// GetOverview builds the rolling chart series for the window of
	// `days` days ending at the anchor date.
	GetOverview(ctx context.Context, companyID string, anchor time.Time, days int) (Series, error)
}
