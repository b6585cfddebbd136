package response

import (
	"errors"
	"net/http"

	"github.com/givenmphiwe/bioclock-backend-go/internal/domain/attendance"
	"github.com/givenmphiwe/bioclock-backend-go/internal/domain/auth"
	"github.com/givenmphiwe/bioclock-backend-go/internal/domain/employee"
	"github.com/givenmphiwe/bioclock-backend-go/internal/domain/leave"
	"github.com/givenmphiwe/bioclock-backend-go/internal/domain/payroll"
	"github.com/givenmphiwe/bioclock-backend-go/internal/domain/settings"
	"github.com/givenmphiwe/bioclock-backend-go/internal/domain/user"
	"github.com/givenmphiwe/bioclock-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Auth domain errors
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrTooManyAttempts):
		TooManyRequests(w, "Too many failed attempts, try again later")
	case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailAlreadyExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrIRNExists):
		Conflict(w, "Industry number already registered")
	case errors.Is(err, employee.ErrEmptyImport):
		BadRequest(w, "No rows found in the spreadsheet", nil)
	case errors.Is(err, employee.ErrUnreadableImport):
		BadRequest(w, "Spreadsheet could not be parsed", nil)
	case errors.Is(err, employee.ErrUnknownFieldName):
		BadRequest(w, "Unknown employee field", nil)
	case errors.Is(err, employee.ErrImmutableField):
		BadRequest(w, "Field cannot be edited", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrClockOutBeforeIn):
		BadRequest(w, "Clock-out must not precede clock-in", nil)
	case errors.Is(err, attendance.ErrNotClockedIn):
		BadRequest(w, "Employee has not clocked in for this day", nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, "Insufficient leave balance", nil)
	case errors.Is(err, leave.ErrAlreadyDecided):
		Conflict(w, "Leave request already decided")
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, "End date must not be before start date", nil)
	case errors.Is(err, leave.ErrDeclineReasonMissing):
		BadRequest(w, "Decline reason is required", nil)

	// Payroll domain errors
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid payroll period", nil)
	case errors.Is(err, payroll.ErrNoPayRates):
		BadRequest(w, "No pay rates configured", nil)

	// Settings domain errors
	case errors.Is(err, settings.ErrSettingsNotFound):
		NotFound(w, "Company settings not found")
	case errors.Is(err, settings.ErrUnknownShiftType):
		BadRequest(w, "Unknown shift type", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
