package payroll

import (
	"time"

	"github.com/givenmphiwe/bioclock-backend-go/internal/pkg/validator"
)

type GetPayrollRequest struct {
	Date       string `json:"date"`
	Mode       string `json:"mode"`
	Occupation string `json:"occupation,omitempty"`
	Search     string `json:"search,omitempty"`
}

func (r *GetPayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date is required"})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be in YYYY-MM-DD format"})
	}
	if r.Mode == "" {
		r.Mode = string(PeriodDay)
	}
	if !validator.IsInSlice(r.Mode, []string{string(PeriodDay), string(PeriodMonth)}) {
		errs = append(errs, validator.ValidationError{Field: "mode", Message: "mode must be day or month"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *GetPayrollRequest) Anchor() (time.Time, error) {
	return time.Parse("2006-01-02", r.Date)
}

type PayrollResponse struct {
	Date     string    `json:"date"`
	Mode     string    `json:"mode"`
	Currency string    `json:"currency"`
	Summary  Summary   `json:"summary"`
	Lines    []PayLine `json:"lines"`
}
