package payroll

import "errors"

var (
	ErrInvalidPeriod = errors.New("invalid payroll period")
	ErrNoPayRates    = errors.New("no pay rates configured")
)
