package leave

import (
	"time"

	"github.com/givenmphiwe/bioclock-backend-go/internal/pkg/validator"
)

type CreateRequestRequest struct {
	EmployeeID string `json:"employeeId"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	Reason     string `json:"reason"`
}

func (r *CreateRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employeeId", Message: "employeeId is required"})
	}
	if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "startDate", Message: "startDate must be in YYYY-MM-DD format"})
	}
	if _, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "endDate", Message: "endDate must be in YYYY-MM-DD format"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "reason is required"})
	}

	if len(errs) == 0 {
		start, _ := time.Parse("2006-01-02", r.StartDate)
		end, _ := time.Parse("2006-01-02", r.EndDate)
		if end.Before(start) {
			errs = append(errs, validator.ValidationError{Field: "endDate", Message: "endDate must not be before startDate"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DecideRequestRequest struct {
	Action        string `json:"action"`
	DeclineReason string `json:"declineReason,omitempty"`
}

func (r *DecideRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Action, []string{"approve", "decline"}) {
		errs = append(errs, validator.ValidationError{Field: "action", Message: "action must be approve or decline"})
	}
	if r.Action == "decline" && validator.IsEmpty(r.DeclineReason) {
		errs = append(errs, validator.ValidationError{Field: "declineReason", Message: "declineReason is required when declining"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RequestResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employeeId"`
	EmployeeName  string  `json:"employeeName,omitempty"`
	StartDate     string  `json:"startDate"`
	EndDate       string  `json:"endDate"`
	Days          int     `json:"days"`
	Reason        string  `json:"reason"`
	Status        Status  `json:"status"`
	DeclineReason *string `json:"declineReason,omitempty"`
	Remaining     *int    `json:"remainingBalance,omitempty"`
	CreatedAt     string  `json:"createdAt"`
}

func ToRequestResponse(req *Request) *RequestResponse {
	return &RequestResponse{
		ID:            req.ID,
		EmployeeID:    req.EmployeeID,
		StartDate:     req.StartDate.Format("2006-01-02"),
		EndDate:       req.EndDate.Format("2006-01-02"),
		Days:          req.Days,
		Reason:        req.Reason,
		Status:        req.Status,
		DeclineReason: req.DeclineReason,
		CreatedAt:     req.CreatedAt.Format(time.RFC3339),
	}
}
