package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/givenmphiwe/bioclock-backend-go/internal/domain/attendance"
	"github.com/givenmphiwe/bioclock-backend-go/internal/domain/employee"
	"github.com/givenmphiwe/bioclock-backend-go/internal/domain/settings"
	"github.com/givenmphiwe/bioclock-backend-go/internal/pkg/sse"
)

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	settingsRepo   settings.SettingsRepository
	hub            *sse.Hub
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	settingsRepo settings.SettingsRepository,
	hub *sse.Hub,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		settingsRepo:   settingsRepo,
		hub:            hub,
	}
}

func (s *AttendanceServiceImpl) companySettings(ctx context.Context, companyID string) (settings.Settings, error) {
	cfg, err := s.settingsRepo.Get(ctx, companyID)
	if err != nil {
		if err == settings.ErrSettingsNotFound {
			return settings.Defaults(companyID), nil
		}
		return settings.Settings{}, fmt.Errorf("failed to get company settings: %w", err)
	}
	return cfg, nil
}

// IngestClockEvent implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) IngestClockEvent(ctx context.Context, companyID string, req attendance.ClockEventRequest) (attendance.RecordResponse, error) {
	ts, _ := time.Parse(time.RFC3339, req.Timestamp)
	day := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location())

	emp, err := s.employeeRepo.GetByIRN(ctx, companyID, req.EmployeeIRN)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	var stored attendance.Record
	switch req.Kind {
	case "in":
		var shift *employee.ShiftType
		if req.Shift != nil {
			st := employee.ShiftType(*req.Shift)
			shift = &st
		}
		stored, err = s.attendanceRepo.UpsertClockIn(ctx, attendance.Record{
			CompanyID:  companyID,
			EmployeeID: emp.ID,
			Date:       day,
			ClockIn:    &ts,
			Shift:      shift,
			Location:   req.Location,
		})
	case "out":
		stored, err = s.attendanceRepo.SetClockOut(ctx, companyID, emp.ID, day, ts)
	}
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	cfg, err := s.companySettings(ctx, companyID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	resp := s.toRecordResponse(cfg, emp, stored)

	s.hub.Publish(companyID, sse.Event{
		CompanyID: companyID,
		Event:     "attendance.clock_" + req.Kind,
		Data:      resp,
	})
	return resp, nil
}

func (s *AttendanceServiceImpl) toRecordResponse(cfg settings.Settings, emp employee.Employee, rec attendance.Record) attendance.RecordResponse {
	shift := emp.Shift
	if rec.Shift != nil {
		shift = *rec.Shift
	}
	if shift == "" {
		shift = employee.ShiftDay
	}

	mark := attendance.Mark{Status: attendance.StatusAbsent, NoClockIn: true}
	if win, ok := cfg.Windows()[shift]; ok {
		mark = attendance.Classify(&rec, win, time.Duration(cfg.GraceMinutes)*time.Minute)
	}

	resp := attendance.RecordResponse{
		ID:           rec.ID,
		EmployeeID:   emp.ID,
		EmployeeName: emp.FullName(),
		Date:         rec.Date.Format("2006-01-02"),
		Shift:        string(shift),
		Status:       string(mark.Status),
		EarlyOut:     mark.EarlyOut,
		NoClockIn:    mark.NoClockIn,
		NoClockOut:   mark.NoClockOut,
		Location:     rec.Location,
		Note:         rec.Note,
	}
	if rec.ClockIn != nil {
		in := rec.ClockIn.Format(time.RFC3339)
		resp.ClockIn = &in
	}
	if rec.ClockOut != nil {
		out := rec.ClockOut.Format(time.RFC3339)
		resp.ClockOut = &out
		if rec.ClockIn != nil {
			resp.WorkedHours = rec.ClockOut.Sub(*rec.ClockIn).Hours()
		}
	}
	return resp
}

// GetDay implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetDay(ctx context.Context, companyID string, date time.Time) (attendance.DayDetailResponse, error) {
	cfg, err := s.companySettings(ctx, companyID)
	if err != nil {
		return attendance.DayDetailResponse{}, err
	}

	emps, err := s.employeeRepo.List(ctx, companyID)
	if err != nil {
		return attendance.DayDetailResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}
	roster := make(map[string]employee.Employee, len(emps))
	for _, e := range emps {
		roster[e.ID] = e
	}

	snapshot, err := s.attendanceRepo.GetDay(ctx, companyID, date)
	if err != nil {
		return attendance.DayDetailResponse{}, fmt.Errorf("failed to get attendance snapshot: %w", err)
	}

	grace := time.Duration(cfg.GraceMinutes) * time.Minute
	sum := attendance.Aggregate(date, roster, snapshot, cfg.Windows(), grace)

	detail := attendance.DayDetailResponse{
		Summary: attendance.DaySummaryResponse{
			Date:       date.Format("2006-01-02"),
			OnTime:     sum.OnTime,
			Late:       sum.Late,
			EarlyOut:   sum.EarlyOut,
			Absent:     sum.Absent,
			NoClockIn:  sum.NoClockIn,
			NoClockOut: sum.NoClockOut,
		},
	}
	for _, emp := range emps {
		rec, ok := snapshot[emp.ID]
		if !ok {
			rec = attendance.Record{CompanyID: companyID, EmployeeID: emp.ID, Date: date}
		}
		detail.Records = append(detail.Records, s.toRecordResponse(cfg, emp, rec))
	}
	return detail, nil
}

// GetOverview implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetOverview(ctx context.Context, companyID string, anchor time.Time, days int) (attendance.Series, error) {
	if days < 1 {
		days = attendance.DefaultOverviewDays
	}
	cfg, err := s.companySettings(ctx, companyID)
	if err != nil {
		return attendance.Series{}, err
	}

	emps, err := s.employeeRepo.List(ctx, companyID)
	if err != nil {
		return attendance.Series{}, fmt.Errorf("failed to list employees: %w", err)
	}
	roster := make(map[string]employee.Employee, len(emps))
	for _, e := range emps {
		roster[e.ID] = e
	}

	from := anchor.AddDate(0, 0, -(days - 1))
	byDay, err := s.attendanceRepo.GetRange(ctx, companyID, from, anchor)
	if err != nil {
		return attendance.Series{}, fmt.Errorf("failed to get attendance range: %w", err)
	}

	grace := time.Duration(cfg.GraceMinutes) * time.Minute
	windows := cfg.Windows()

	summaries := make([]attendance.DaySummary, 0, days)
	for d := 0; d < days; d++ {
		date := from.AddDate(0, 0, d)
		snapshot := byDay[date.Format("2006-01-02")]
		summaries = append(summaries, attendance.Aggregate(date, roster, snapshot, windows, grace))
	}
	return attendance.BuildSeries(summaries), nil
}
