package settings

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/givenmphiwe/bioclock-backend-go/internal/domain/attendance"
	"github.com/givenmphiwe/bioclock-backend-go/internal/domain/employee"
)

func parseClock(s string) (time.Duration, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute, nil
}

// Window converts the stored rule into the offset form the classifier
// works with.
func (r ShiftRule) Window() (attendance.ShiftWindow, error) {
	start, err := parseClock(r.Start)
	if err != nil {
		return attendance.ShiftWindow{}, err
	}
	end, err := parseClock(r.End)
	if err != nil {
		return attendance.ShiftWindow{}, err
	}
	return attendance.ShiftWindow{Start: start, End: end, DailyMinutes: r.DailyMinutes}, nil
}

// Windows converts every configured shift rule, skipping rules that do
// not parse.
func (s Settings) Windows() map[employee.ShiftType]attendance.ShiftWindow {
	out := make(map[employee.ShiftType]attendance.ShiftWindow, len(s.WorkingHours))
	for shift, rule := range s.WorkingHours {
		win, err := rule.Window()
		if err != nil {
			continue
		}
		out[shift] = win
	}
	return out
}
