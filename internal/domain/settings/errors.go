package settings

import "errors"

var (
	ErrSettingsNotFound = errors.New("company settings not found")
	ErrUnknownShiftType = errors.New("unknown shift type")
)
