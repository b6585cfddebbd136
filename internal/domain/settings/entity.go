package settings

import (
	"time"

	"github.com/givenmphiwe/bioclock-backend-go/internal/domain/employee"
	"github.com/shopspring/decimal"
)

// ShiftRule is the working window for one shift type. Start and End are
// "HH:MM" wall-clock strings; grace applies at clock-in only.
type ShiftRule struct {
	Start        string `json:"start"`
	End          string `json:"end"`
	DailyMinutes int    `json:"dailyMinutes"`
}

// PayRate is keyed by occupation.
type PayRate struct {
	Hourly             decimal.Decimal `json:"hourly"`
	OvertimeMultiplier decimal.Decimal `json:"overtimeMultiplier"`
	WeekendMultiplier  decimal.Decimal `json:"weekendMultiplier"`
	DeductAbsent       bool            `json:"deductAbsent"`
}

type LeavePolicy struct {
	AnnualDays      int  `json:"annualDays"`
	AccrualPerMonth int  `json:"accrualPerMonth"`
	MaxCarryOver    int  `json:"maxCarryOver"`
	AllowCarryOver  bool `json:"allowCarryOver"`
}

// AutoResolution covers incomplete attendance handling.
type AutoResolution struct {
	Enabled              bool   `json:"enabled"`
	NoClockInAction      string `json:"noClockInAction"`      // absent | normal_hours | unpaid
	MissedClockOutAction string `json:"missedClockOutAction"` // auto_close
	AutoClockOutTime     string `json:"autoClockOutTime"`     // "HH:MM"
}

type PayrollRules struct {
	RoundMinutesTo int  `json:"roundMinutesTo"`
	DeductAbsence  bool `json:"deductAbsence"`
}

type Settings struct {
	CompanyID      string
	WorkingHours   map[employee.ShiftType]ShiftRule
	GraceMinutes   int
	PayRates       map[string]PayRate // keyed by normalised occupation
	LeavePolicy    LeavePolicy
	AutoResolution AutoResolution
	PayrollRules   PayrollRules
	Currency       string
	UpdatedAt      time.Time
}

// Defaults mirrors the fallbacks the dashboard applied when a company
// had no stored settings.
func Defaults(companyID string) Settings {
	return Settings{
		CompanyID: companyID,
		WorkingHours: map[employee.ShiftType]ShiftRule{
			employee.ShiftDay:   {Start: "08:00", End: "17:00", DailyMinutes: 480},
			employee.ShiftNight: {Start: "18:00", End: "03:00", DailyMinutes: 480},
		},
		GraceMinutes: 0,
		PayRates:     map[string]PayRate{},
		LeavePolicy: LeavePolicy{
			AnnualDays:      21,
			AccrualPerMonth: 1,
			MaxCarryOver:    5,
			AllowCarryOver:  true,
		},
		AutoResolution: AutoResolution{
			Enabled:              true,
			NoClockInAction:      "absent",
			MissedClockOutAction: "auto_close",
			AutoClockOutTime:     "23:59",
		},
		PayrollRules: PayrollRules{RoundMinutesTo: 15, DeductAbsence: true},
		Currency:     "USD",
	}
}
