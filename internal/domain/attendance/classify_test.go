package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/givenmphiwe/bioclock-backend-go/internal/domain/employee"
)

var dayWindow = ShiftWindow{
	Start:        8 * time.Hour,
	End:          17 * time.Hour,
	DailyMinutes: 480,
}

func recordAt(t *testing.T, in, out string) *Record {
	t.Helper()
	rec := &Record{Date: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)}
	if in != "" {
		ts, err := time.Parse(time.RFC3339, "2026-03-02T"+in+":00Z")
		assert.NoError(t, err)
		rec.ClockIn = &ts
	}
	if out != "" {
		ts, err := time.Parse(time.RFC3339, "2026-03-02T"+out+":00Z")
		assert.NoError(t, err)
		rec.ClockOut = &ts
	}
	return rec
}

func TestClassify(t *testing.T) {
	grace := 10 * time.Minute

	t.Run("nil record is absent", func(t *testing.T) {
		mark := Classify(nil, dayWindow, grace)
		assert.Equal(t, StatusAbsent, mark.Status)
		assert.True(t, mark.NoClockIn)
	})

	t.Run("on time within grace", func(t *testing.T) {
		mark := Classify(recordAt(t, "08:10", "17:00"), dayWindow, grace)
		assert.Equal(t, StatusOnTime, mark.Status)
		assert.False(t, mark.EarlyOut)
	})

	t.Run("late one minute past grace", func(t *testing.T) {
		mark := Classify(recordAt(t, "08:11", "17:00"), dayWindow, grace)
		assert.Equal(t, StatusLate, mark.Status)
	})

	t.Run("early out keeps the primary status", func(t *testing.T) {
		mark := Classify(recordAt(t, "08:30", "15:00"), dayWindow, grace)
		assert.Equal(t, StatusLate, mark.Status)
		assert.True(t, mark.EarlyOut)
	})

	t.Run("on time with early out", func(t *testing.T) {
		mark := Classify(recordAt(t, "07:55", "16:00"), dayWindow, grace)
		assert.Equal(t, StatusOnTime, mark.Status)
		assert.True(t, mark.EarlyOut)
	})

	t.Run("missing clock out flags the record", func(t *testing.T) {
		mark := Classify(recordAt(t, "08:00", ""), dayWindow, grace)
		assert.Equal(t, StatusOnTime, mark.Status)
		assert.True(t, mark.NoClockOut)
		assert.False(t, mark.EarlyOut)
	})

	t.Run("night window rolls past midnight", func(t *testing.T) {
		night := ShiftWindow{Start: 18 * time.Hour, End: 3 * time.Hour, DailyMinutes: 480}
		in := time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)
		out := time.Date(2026, 3, 3, 3, 0, 0, 0, time.UTC)
		mark := Classify(&Record{ClockIn: &in, ClockOut: &out}, night, 0)
		assert.Equal(t, StatusOnTime, mark.Status)
		assert.False(t, mark.EarlyOut)
	})
}

func TestAggregate(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	windows := map[employee.ShiftType]ShiftWindow{employee.ShiftDay: dayWindow}

	roster := map[string]employee.Employee{
		"a": {ID: "a", Shift: employee.ShiftDay},
		"b": {ID: "b", Shift: employee.ShiftDay},
		"c": {ID: "c", Shift: employee.ShiftDay},
		"d": {ID: "d", Shift: employee.ShiftNight}, // no night window configured
	}
	snapshot := map[string]Record{
		"a": *recordAt(t, "08:00", "17:00"),
		"b": *recordAt(t, "09:30", "17:00"),
	}

	sum := Aggregate(date, roster, snapshot, windows, 0)

	assert.Equal(t, 1, sum.OnTime)
	assert.Equal(t, 1, sum.Late)
	assert.Equal(t, 1, sum.Absent, "employee c has no record")
	assert.Equal(t, 1, sum.NoClockIn)
	assert.Equal(t, 0, sum.EarlyOut)
}

func TestBuildSeries(t *testing.T) {
	days := []DaySummary{
		{Date: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), OnTime: 3, Late: 1, Absent: 2},
		{Date: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), OnTime: 4, Late: 0, Absent: 1},
	}

	s := BuildSeries(days)

	assert.Equal(t, []string{"Mar 1", "Mar 2"}, s.Labels)
	assert.Equal(t, []int{3, 4}, s.OnTime)
	assert.Equal(t, []int{1, 0}, s.Late)
	assert.Equal(t, []int{2, 1}, s.Absent)
}
