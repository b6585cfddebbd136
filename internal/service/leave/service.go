package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/givenmphiwe/bioclock-backend-go/internal/domain/employee"
	"github.com/givenmphiwe/bioclock-backend-go/internal/domain/leave"
	"github.com/givenmphiwe/bioclock-backend-go/internal/domain/settings"
)

type LeaveServiceImpl struct {
	leaveRepo    leave.LeaveRepository
	employeeRepo employee.EmployeeRepository
	settingsRepo settings.SettingsRepository
	now          func() time.Time
}

func NewLeaveService(
	leaveRepo leave.LeaveRepository,
	employeeRepo employee.EmployeeRepository,
	settingsRepo settings.SettingsRepository,
) leave.LeaveService {
	return &LeaveServiceImpl{
		leaveRepo:    leaveRepo,
		employeeRepo: employeeRepo,
		settingsRepo: settingsRepo,
		now:          time.Now,
	}
}

func (s *LeaveServiceImpl) annualDays(ctx context.Context, companyID string) int {
	cfg, err := s.settingsRepo.Get(ctx, companyID)
	if err != nil {
		cfg = settings.Defaults(companyID)
	}
	return cfg.LeavePolicy.AnnualDays
}

// Create implements leave.LeaveService.
func (s *LeaveServiceImpl) Create(ctx context.Context, companyID string, req *leave.CreateRequestRequest) (*leave.RequestResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, companyID)
	if err != nil {
		return nil, err
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)
	days := leave.InclusiveDays(start, end)
	if days == 0 {
		return nil, leave.ErrInvalidDateRange
	}

	year := start.Year()
	if err := s.leaveRepo.EnsureBalance(ctx, emp.ID, year, s.annualDays(ctx, companyID)); err != nil {
		return nil, fmt.Errorf("failed to ensure leave balance: %w", err)
	}

	// Requests over the remaining balance are refused up front; the
	// balance itself is only decremented at approval time.
	balance, err := s.leaveRepo.GetBalance(ctx, emp.ID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to get leave balance: %w", err)
	}
	if balance.Remaining < days {
		return nil, leave.ErrInsufficientBalance
	}

	request := &leave.Request{
		CompanyID:  companyID,
		EmployeeID: emp.ID,
		StartDate:  start,
		EndDate:    end,
		Days:       days,
		Reason:     req.Reason,
		Status:     leave.StatusPending,
	}
	if err := s.leaveRepo.Create(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to create leave request: %w", err)
	}

	resp := leave.ToRequestResponse(request)
	resp.EmployeeName = emp.FullName()
	resp.Remaining = &balance.Remaining
	return resp, nil
}

// List implements leave.LeaveService.
func (s *LeaveServiceImpl) List(ctx context.Context, companyID string, status *leave.Status) ([]leave.RequestResponse, error) {
	requests, err := s.leaveRepo.List(ctx, companyID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	emps, err := s.employeeRepo.List(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	names := make(map[string]string, len(emps))
	for _, e := range emps {
		names[e.ID] = e.FullName()
	}

	responses := make([]leave.RequestResponse, 0, len(requests))
	for i := range requests {
		resp := leave.ToRequestResponse(&requests[i])
		resp.EmployeeName = names[requests[i].EmployeeID]
		responses = append(responses, *resp)
	}
	return responses, nil
}

// Decide implements leave.LeaveService. Approval decrements the
// employee's balance atomically, so two admins approving overlapping
// requests cannot push it negative.
func (s *LeaveServiceImpl) Decide(ctx context.Context, companyID, requestID, decidedBy string, req *leave.DecideRequestRequest) (*leave.RequestResponse, error) {
	request, err := s.leaveRepo.GetByID(ctx, requestID, companyID)
	if err != nil {
		return nil, err
	}
	if request.Status != leave.StatusPending {
		return nil, leave.ErrAlreadyDecided
	}

	now := s.now()
	switch req.Action {
	case "approve":
		year := request.StartDate.Year()
		applied, err := s.leaveRepo.DecrementBalance(ctx, request.EmployeeID, year, request.Days)
		if err != nil {
			return nil, fmt.Errorf("failed to decrement leave balance: %w", err)
		}
		if !applied {
			return nil, leave.ErrInsufficientBalance
		}
		if err := s.leaveRepo.UpdateStatus(ctx, request.ID, leave.StatusApproved, nil, decidedBy, now); err != nil {
			if restoreErr := s.leaveRepo.RestoreBalance(ctx, request.EmployeeID, year, request.Days); restoreErr != nil {
				return nil, fmt.Errorf("failed to restore leave balance: %w", restoreErr)
			}
			return nil, err
		}
		request.Status = leave.StatusApproved
	case "decline":
		reason := req.DeclineReason
		if err := s.leaveRepo.UpdateStatus(ctx, request.ID, leave.StatusDeclined, &reason, decidedBy, now); err != nil {
			return nil, err
		}
		request.Status = leave.StatusDeclined
		request.DeclineReason = &reason
	}

	request.DecidedBy = &decidedBy
	request.DecidedAt = &now
	return leave.ToRequestResponse(request), nil
}

// GetBalance implements leave.LeaveService.
func (s *LeaveServiceImpl) GetBalance(ctx context.Context, companyID, employeeID string) (*leave.Balance, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID, companyID)
	if err != nil {
		return nil, err
	}

	year := s.now().Year()
	if err := s.leaveRepo.EnsureBalance(ctx, emp.ID, year, s.annualDays(ctx, companyID)); err != nil {
		return nil, fmt.Errorf("failed to ensure leave balance: %w", err)
	}
	return s.leaveRepo.GetBalance(ctx, emp.ID, year)
}
