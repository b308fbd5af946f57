package response

import (
	"errors"
	"net/http"

	"github.com/paycore-hr/payroll-backend-go/internal/domain/attendance"
	"github.com/paycore-hr/payroll-backend-go/internal/domain/employee"
	"github.com/paycore-hr/payroll-backend-go/internal/domain/payroll"
	"github.com/paycore-hr/payroll-backend-go/internal/pkg/timeclock"
	"github.com/paycore-hr/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrInvalidSalaryConfig):
		UnprocessableEntity(w, "Employee salary configuration is invalid")
	case errors.Is(err, employee.ErrInvalidShiftConfig):
		UnprocessableEntity(w, "Employee shift configuration is invalid")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrInvalidRecord):
		UnprocessableEntity(w, "Attendance record is invalid")
	case errors.Is(err, attendance.ErrEmptyBatch):
		BadRequest(w, "Import batch contains no data rows", nil)
	case errors.Is(err, timeclock.ErrInvalidTime):
		BadRequest(w, "Invalid time of day", nil)

	// Payroll domain errors
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid payroll period or reference date", nil)
	case errors.Is(err, payroll.ErrBreakdownOutOfPeriod):
		UnprocessableEntity(w, "Daily breakdown falls outside the pay period")
	case errors.Is(err, payroll.ErrInvalidScoreWeights):
		UnprocessableEntity(w, "Performance score weights are invalid")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
