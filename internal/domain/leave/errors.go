package leave

import "errors"

var (
	ErrRequestNotFound      = errors.New("leave request not found")
	ErrInsufficientBalance  = errors.New("insufficient leave balance")
	ErrAlreadyDecided       = errors.New("leave request already decided")
	ErrInvalidDateRange     = errors.New("end date must not be before start date")
	ErrDeclineReasonMissing = errors.New("decline reason is required")
)
