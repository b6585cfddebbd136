package http

import (
	"net/http"
	"time"

	"github.com/givenmphiwe/bioclock-backend-go/internal/domain/attendance"
	"github.com/givenmphiwe/bioclock-backend-go/internal/domain/dashboard"
	"github.com/givenmphiwe/bioclock-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	GetOverview(w http.ResponseWriter, r *http.Request)
}

type DashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &DashboardHandlerImpl{dashboardService: dashboardService}
}

// GetOverview implements DashboardHandler.
func (h *DashboardHandlerImpl) GetOverview(w http.ResponseWriter, r *http.Request) {
	companyID, _, ok := requestClaims(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	anchor, err := queryDate(r, "date", time.Now())
	if err != nil {
		response.BadRequest(w, "date must be in YYYY-MM-DD format", nil)
		return
	}
	days := queryInt(r, "days", attendance.DefaultOverviewDays)

	overview, err := h.dashboardService.GetOverview(r.Context(), companyID, anchor, days)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, overview)
}
