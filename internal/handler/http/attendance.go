package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/givenmphiwe/bioclock-backend-go/internal/domain/attendance"
	"github.com/givenmphiwe/bioclock-backend-go/internal/handler/http/response"
	"github.com/givenmphiwe/bioclock-backend-go/internal/pkg/metrics"
)

type AttendanceHandler interface {
	ClockEvent(w http.ResponseWriter, r *http.Request)
	GetDay(w http.ResponseWriter, r *http.Request)
	GetOverview(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	metrics           *metrics.Metrics
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, m *metrics.Metrics) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService, metrics: m}
}

// ClockEvent implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ClockEvent(w http.ResponseWriter, r *http.Request) {
	companyID, _, ok := requestClaims(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req attendance.ClockEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Clock event decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	record, err := h.attendanceService.IngestClockEvent(r.Context(), companyID, req)
	if err != nil {
		slog.Error("Clock event service error", "error", err)
		response.HandleError(w, err)
		return
	}

	h.metrics.ClockEvents.WithLabelValues(req.Kind).Inc()
	response.Created(w, "Clock event recorded", record)
}

// GetDay implements AttendanceHandler.
func (h *AttendanceHandlerImpl) GetDay(w http.ResponseWriter, r *http.Request) {
	companyID, _, ok := requestClaims(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	date, err := queryDate(r, "date", time.Now())
	if err != nil {
		response.BadRequest(w, "date must be in YYYY-MM-DD format", nil)
		return
	}

	detail, err := h.attendanceService.GetDay(r.Context(), companyID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, detail)
}

// GetOverview implements AttendanceHandler.
func (h *AttendanceHandlerImpl) GetOverview(w http.ResponseWriter, r *http.Request) {
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

	series, err := h.attendanceService.GetOverview(r.Context(), companyID, anchor, days)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, series)
}
