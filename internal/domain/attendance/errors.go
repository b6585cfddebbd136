package attendance

import "errors"

var (
	ErrRecordNotFound    = errors.New("attendance record not found")
	ErrClockOutBeforeIn  = errors.New("clock-out must not precede clock-in")
	ErrAlreadyClockedIn  = errors.New("employee already clocked in for this day")
	ErrNotClockedIn      = errors.New("employee has not clocked in for this day")
	ErrNoShiftRule       = errors.New("no shift rule configured for this shift type")
)
