package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/givenmphiwe/bioclock-backend-go/internal/domain/attendance"
	"github.com/givenmphiwe/bioclock-backend-go/internal/domain/dashboard"
	"github.com/givenmphiwe/bioclock-backend-go/internal/domain/employee"
	"github.com/givenmphiwe/bioclock-backend-go/internal/domain/leave"
)

type DashboardServiceImpl struct {
	attendanceService attendance.AttendanceService
	employeeRepo      employee.EmployeeRepository
	leaveRepo         leave.LeaveRepository
}

func NewDashboardService(
	attendanceService attendance.AttendanceService,
	employeeRepo employee.EmployeeRepository,
	leaveRepo leave.LeaveRepository,
) dashboard.DashboardService {
	return &DashboardServiceImpl{
		attendanceService: attendanceService,
		employeeRepo:      employeeRepo,
		leaveRepo:         leaveRepo,
	}
}

// GetOverview implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetOverview(ctx context.Context, companyID string, anchor time.Time, days int) (dashboard.OverviewResponse, error) {
	emps, err := s.employeeRepo.List(ctx, companyID)
	if err != nil {
		return dashboard.OverviewResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}
	active := 0
	for _, emp := range emps {
		if emp.Status == employee.StatusActive {
			active++
		}
	}

	day, err := s.attendanceService.GetDay(ctx, companyID, anchor)
	if err != nil {
		return dashboard.OverviewResponse{}, err
	}

	chart, err := s.attendanceService.GetOverview(ctx, companyID, anchor, days)
	if err != nil {
		return dashboard.OverviewResponse{}, err
	}

	pending := leave.StatusPending
	pendingRequests, err := s.leaveRepo.List(ctx, companyID, &pending)
	if err != nil {
		return dashboard.OverviewResponse{}, fmt.Errorf("failed to list pending leave: %w", err)
	}

	return dashboard.OverviewResponse{
		Date:            anchor.Format("2006-01-02"),
		TotalEmployees:  len(emps),
		ActiveEmployees: active,
		Today:           day.Summary,
		PendingLeave:    len(pendingRequests),
		Chart:           chart,
	}, nil
}
