package payroll

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestCalculate(t *testing.T) {
	rate := RateInput{
		HourlyRate:         dec("20"),
		OvertimeMultiplier: dec("1.5"),
		DailyMinutes:       480,
	}

	t.Run("splits overtime past the daily threshold", func(t *testing.T) {
		normal, overtime, normalPay, otPay := Calculate(10*60, 1, rate)

		assert.True(t, normal.Equal(dec("8")), "normal hours: %s", normal)
		assert.True(t, overtime.Equal(dec("2")), "overtime hours: %s", overtime)
		assert.True(t, normalPay.Equal(dec("160")), "normal pay: %s", normalPay)
		assert.True(t, otPay.Equal(dec("60")), "overtime pay: %s", otPay)
	})

	t.Run("no overtime under the threshold", func(t *testing.T) {
		normal, overtime, normalPay, otPay := Calculate(6*60, 1, rate)

		assert.True(t, normal.Equal(dec("6")))
		assert.True(t, overtime.IsZero())
		assert.True(t, normalPay.Equal(dec("120")))
		assert.True(t, otPay.IsZero())
	})

	t.Run("zero daily minutes falls back to eight hours", func(t *testing.T) {
		normal, overtime, _, _ := Calculate(9*60, 1, RateInput{HourlyRate: dec("10")})

		assert.True(t, normal.Equal(dec("8")))
		assert.True(t, overtime.Equal(dec("1")))
	})

	t.Run("zero multiplier falls back to 1.5", func(t *testing.T) {
		_, _, _, otPay := Calculate(9*60, 1, RateInput{HourlyRate: dec("10"), DailyMinutes: 480})

		assert.True(t, otPay.Equal(dec("15")), "overtime pay: %s", otPay)
	})

	t.Run("multi-day threshold scales", func(t *testing.T) {
		normal, overtime, _, _ := Calculate(20*60, 2, rate)

		assert.True(t, normal.Equal(dec("16")))
		assert.True(t, overtime.Equal(dec("4")))
	})
}

func TestWorkedMinutes(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	today := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)

	at := func(day time.Time, h int) *time.Time {
		t := day.Add(time.Duration(h) * time.Hour)
		return &t
	}

	t.Run("closed span counts exactly", func(t *testing.T) {
		spans := []WorkedSpan{{Date: yesterday, ClockIn: at(yesterday, 8), ClockOut: at(yesterday, 17)}}
		assert.Equal(t, 9*60, WorkedMinutes(spans, now))
	})

	t.Run("open span today extends to now", func(t *testing.T) {
		spans := []WorkedSpan{{Date: today, ClockIn: at(today, 8)}}
		assert.Equal(t, 4*60, WorkedMinutes(spans, now))
	})

	t.Run("open span on an earlier day is skipped", func(t *testing.T) {
		spans := []WorkedSpan{{Date: yesterday, ClockIn: at(yesterday, 8)}}
		assert.Equal(t, 0, WorkedMinutes(spans, now))
	})

	t.Run("clock out before clock in contributes nothing", func(t *testing.T) {
		spans := []WorkedSpan{{Date: yesterday, ClockIn: at(yesterday, 17), ClockOut: at(yesterday, 8)}}
		assert.Equal(t, 0, WorkedMinutes(spans, now))
	})
}
