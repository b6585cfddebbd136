package attendance

import (
	"time"

	"github.com/givenmphiwe/bioclock-backend-go/internal/domain/employee"
)

// ShiftWindow is a daily working window expressed as offsets from local
// midnight. For night shifts the end offset may be smaller than the
// start offset, meaning the window closes on the following day.
type ShiftWindow struct {
	Start        time.Duration
	End          time.Duration
	DailyMinutes int
}

// end returns the absolute shift end for the working day, rolling over
// midnight when the window wraps.
func (w ShiftWindow) end(day time.Time) time.Time {
	end := w.End
	if end <= w.Start {
		end += 24 * time.Hour
	}
	return day.Add(end)
}

func (w ShiftWindow) start(day time.Time) time.Time {
	return day.Add(w.Start)
}

// Classify marks a single employee-day against its shift window.
//
// A missing record or missing clock-in is Absent. Otherwise the
// employee is OnTime when the clock-in is no later than shift start
// plus grace, and Late after that. A clock-out before shift end raises
// the EarlyOut flag without displacing the primary status; a record
// with a clock-in but no clock-out raises NoClockOut.
func Classify(rec *Record, win ShiftWindow, grace time.Duration) Mark {
	if rec == nil || rec.ClockIn == nil {
		return Mark{Status: StatusAbsent, NoClockIn: true}
	}

	day := time.Date(
		rec.ClockIn.Year(), rec.ClockIn.Month(), rec.ClockIn.Day(),
		0, 0, 0, 0, rec.ClockIn.Location(),
	)

	mark := Mark{Status: StatusOnTime}
	threshold := win.start(day).Add(grace)
	if rec.ClockIn.After(threshold) {
		mark.Status = StatusLate
	}

	if rec.ClockOut == nil {
		mark.NoClockOut = true
		return mark
	}
	if rec.ClockOut.Before(win.end(day)) {
		mark.EarlyOut = true
	}
	return mark
}

// Aggregate classifies a whole roster against one day's snapshot.
// Employees whose shift has no configured window are skipped, matching
// the dashboard's behaviour when a shift rule is missing.
func Aggregate(
	date time.Time,
	roster map[string]employee.Employee,
	snapshot map[string]Record,
	windows map[employee.ShiftType]ShiftWindow,
	grace time.Duration,
) DaySummary {
	sum := DaySummary{Date: date}

	for id, emp := range roster {
		var rec *Record
		if r, ok := snapshot[id]; ok {
			r := r
			rec = &r
		}

		shift := emp.Shift
		if rec != nil && rec.Shift != nil {
			shift = *rec.Shift
		}
		if shift == "" {
			shift = employee.ShiftDay
		}
		win, ok := windows[shift]
		if !ok {
			continue
		}

		mark := Classify(rec, win, grace)
		switch mark.Status {
		case StatusOnTime:
			sum.OnTime++
		case StatusLate:
			sum.Late++
		case StatusAbsent:
			sum.Absent++
		}
		if mark.EarlyOut {
			sum.EarlyOut++
		}
		if mark.NoClockIn {
			sum.NoClockIn++
		}
		if mark.NoClockOut {
			sum.NoClockOut++
		}
	}

	return sum
}

// BuildSeries turns per-day summaries into the parallel arrays the
// overview chart plots.
func BuildSeries(days []DaySummary) Series {
	s := Series{
		Labels: make([]string, 0, len(days)),
		OnTime: make([]int, 0, len(days)),
		Late:   make([]int, 0, len(days)),
		Absent: make([]int, 0, len(days)),
	}
	for _, d := range days {
		s.Labels = append(s.Labels, d.Date.Format("Jan 2"))
		s.OnTime = append(s.OnTime, d.OnTime)
		s.Late = append(s.Late, d.Late)
		s.Absent = append(s.Absent, d.Absent)
	}
	return s
}
