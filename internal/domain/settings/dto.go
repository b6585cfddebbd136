package settings

import (
	"github.com/givenmphiwe/bioclock-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type UpdateSettingsRequest struct {
	WorkingHours   map[string]ShiftRule `json:"workingHours,omitempty"`
	GraceMinutes   *int                 `json:"graceMinutes,omitempty"`
	PayRates       map[string]PayRate   `json:"payRates,omitempty"`
	LeavePolicy    *LeavePolicy         `json:"leavePolicy,omitempty"`
	AutoResolution *AutoResolution      `json:"autoResolution,omitempty"`
	PayrollRules   *PayrollRules        `json:"payrollRules,omitempty"`
	Currency       *string              `json:"currency,omitempty"`
}

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	for shift, rule := range r.WorkingHours {
		if !validator.IsInSlice(shift, []string{"day", "night"}) {
			errs = append(errs, validator.ValidationError{
				Field:   "workingHours." + shift,
				Message: "shift type must be day or night",
			})
			continue
		}
		if !validator.IsValidClockTime(rule.Start) || !validator.IsValidClockTime(rule.End) {
			errs = append(errs, validator.ValidationError{
				Field:   "workingHours." + shift,
				Message: "start and end must be HH:MM",
			})
		}
		if rule.DailyMinutes < 0 || rule.DailyMinutes > 24*60 {
			errs = append(errs, validator.ValidationError{
				Field:   "workingHours." + shift,
				Message: "daily minutes must be within one day",
			})
		}
	}

	if r.GraceMinutes != nil && (*r.GraceMinutes < 0 || *r.GraceMinutes > 240) {
		errs = append(errs, validator.ValidationError{
			Field:   "graceMinutes",
			Message: "grace minutes must be between 0 and 240",
		})
	}

	for occ, rate := range r.PayRates {
		if rate.Hourly.IsNegative() {
			errs = append(errs, validator.ValidationError{
				Field:   "payRates." + occ,
				Message: "hourly rate must not be negative",
			})
		}
		if rate.OvertimeMultiplier.LessThan(decimal.NewFromInt(1)) && !rate.OvertimeMultiplier.IsZero() {
			errs = append(errs, validator.ValidationError{
				Field:   "payRates." + occ,
				Message: "overtime multiplier must be at least 1",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SettingsResponse struct {
	WorkingHours   map[string]ShiftRule `json:"workingHours"`
	GraceMinutes   int                  `json:"graceMinutes"`
	PayRates       map[string]PayRate   `json:"payRates"`
	LeavePolicy    LeavePolicy          `json:"leavePolicy"`
	AutoResolution AutoResolution       `json:"autoResolution"`
	PayrollRules   PayrollRules         `json:"payrollRules"`
	Currency       string               `json:"currency"`
}
