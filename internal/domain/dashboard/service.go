package dashboard

import (
	"context"
	"time"
)

type DashboardService interface {
	// GetOverview assembles the landing-page counters and the chart
	// series for the window of `days` days ending at the anchor date.
	GetOverview(ctx context.Context, companyID string, anchor time.Time, days int) (OverviewResponse, error)
}
