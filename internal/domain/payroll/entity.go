package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodMode selects the aggregation window for a payroll run.
type PeriodMode string

const (
	PeriodDay   PeriodMode = "day"
	PeriodMonth PeriodMode = "month"
)

// RateInput carries the pay parameters resolved for one employee
// before calculation.
type RateInput struct {
	HourlyRate         decimal.Decimal
	OvertimeMultiplier decimal.Decimal
	DailyMinutes       int
}

// WorkedSpan is one attendance span contributing to a payroll line.
// An open span (no clock-out) on the current day is extended to Now
// by the calculator; older open spans contribute nothing.
type WorkedSpan struct {
	Date     time.Time
	ClockIn  *time.Time
	ClockOut *time.Time
}

// PayLine is the computed payroll row for a single employee over the
// requested period.
type PayLine struct {
	EmployeeID     string          `json:"employeeId"`
	IndustryNumber string          `json:"industryNumber"`
	FullName       string          `json:"fullName"`
	Occupation     string          `json:"occupation"`
	NormalHours    decimal.Decimal `json:"normalHours"`
	OvertimeHours  decimal.Decimal `json:"overtimeHours"`
	HourlyRate     decimal.Decimal `json:"hourlyRate"`
	NormalPay      decimal.Decimal `json:"normalPay"`
	OvertimePay    decimal.Decimal `json:"overtimePay"`
	TotalPay       decimal.Decimal `json:"totalPay"`
}

// Summary totals a set of pay lines.
type Summary struct {
	Employees   int             `json:"employees"`
	NormalHours decimal.Decimal `json:"normalHours"`
	Overtime    decimal.Decimal `json:"overtimeHours"`
	TotalPay    decimal.Decimal `json:"totalPay"`
}

func Summarize(lines []PayLine) Summary {
	s := Summary{
		Employees:   len(lines),
		NormalHours: decimal.Zero,
		Overtime:    decimal.Zero,
		TotalPay:    decimal.Zero,
	}
	for _, l := range lines {
		s.NormalHours = s.NormalHours.Add(l.NormalHours)
		s.Overtime = s.Overtime.Add(l.OvertimeHours)
		s.TotalPay = s.TotalPay.Add(l.TotalPay)
	}
	return s
}
