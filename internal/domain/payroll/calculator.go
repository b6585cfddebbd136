package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

var (
	sixty          = decimal.NewFromInt(60)
	defaultDaily   = 8 * 60
	defaultOTMult  = decimal.NewFromFloat(1.5)
	minutesPerHour = time.Minute
)

// WorkedMinutes sums the minutes covered by the given spans. A span
// with no clock-out dated today is treated as still running and
// extended to now; open spans on earlier days are skipped. Spans where
// the clock-out precedes the clock-in contribute nothing.
func WorkedMinutes(spans []WorkedSpan, now time.Time) int {
	total := 0
	today := now.Truncate(24 * time.Hour)
	for _, sp := range spans {
		if sp.ClockIn == nil {
			continue
		}
		end := sp.ClockOut
		if end == nil {
			if !sp.Date.Truncate(24 * time.Hour).Equal(today) {
				continue
			}
			end = &now
		}
		d := end.Sub(*sp.ClockIn)
		if d <= 0 {
			continue
		}
		total += int(d / minutesPerHour)
	}
	return total
}

// Calculate splits worked minutes into normal and overtime hours and
// prices them. The split threshold is the rate's daily minutes for a
// single day, or days * daily minutes for a longer period; zero daily
// minutes falls back to an eight hour day and a zero overtime
// multiplier falls back to 1.5.
func Calculate(workedMinutes int, days int, rate RateInput) (normal, overtime, normalPay, otPay decimal.Decimal) {
	daily := rate.DailyMinutes
	if daily <= 0 {
		daily = defaultDaily
	}
	if days < 1 {
		days = 1
	}
	threshold := daily * days

	normalMin := workedMinutes
	otMin := 0
	if workedMinutes > threshold {
		normalMin = threshold
		otMin = workedMinutes - threshold
	}

	normal = decimal.NewFromInt(int64(normalMin)).Div(sixty)
	overtime = decimal.NewFromInt(int64(otMin)).Div(sixty)

	mult := rate.OvertimeMultiplier
	if mult.IsZero() {
		mult = defaultOTMult
	}
	normalPay = normal.Mul(rate.HourlyRate)
	otPay = overtime.Mul(rate.HourlyRate).Mul(mult)
	return normal, overtime, normalPay, otPay
}
