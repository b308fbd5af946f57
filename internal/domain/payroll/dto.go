package payroll

import (
	"github.com/paycore-hr/payroll-backend-go/internal/pkg/validator"
)

// ========================================
// PAYROLL DTOs
// ========================================

// SummaryRequest asks for one employee's payroll over the pay period that
// contains the reference date. An empty reference date means today. ToDate
// clamps an open period at the reference date.
type SummaryRequest struct {
	EmployeeID        string `json:"employee_id"`
	ReferenceDate     string `json:"reference_date,omitempty"` // YYYY-MM-DD
	ToDate            bool   `json:"to_date,omitempty"`
	IncludeBreakdowns bool   `json:"include_breakdowns,omitempty"`
}

func (r *SummaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if r.ReferenceDate != "" {
		if _, valid := validator.IsValidDate(r.ReferenceDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "reference_date",
				Message: "reference_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type PayPeriodResponse struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Days      int    `json:"days"`
}

// DailyEarningResponse is the canonical wire form of a daily breakdown.
// Every reporting view consumes these field names; the formula is never
// re-derived per screen.
type DailyEarningResponse struct {
	Date            string `json:"date"`
	Status          string `json:"status"`
	HoursWorked     string `json:"hours_worked"`
	BasePay         string `json:"base_pay"`
	OtAmount        string `json:"ot_amount"`
	Deduction       string `json:"deduction"`
	FinalDayEarning string `json:"final_day_earning"`
}

type SummaryResponse struct {
	EmployeeID       string                 `json:"employee_id"`
	EmployeeName     string                 `json:"employee_name,omitempty"`
	Period           PayPeriodResponse      `json:"period"`
	BaseSalary       string                 `json:"base_salary"`
	TotalOtAmount    string                 `json:"total_ot_amount"`
	TotalDeduction   string                 `json:"total_deduction"`
	NetSalary        string                 `json:"net_salary"`
	TotalWorkingDays int                    `json:"total_working_days"`
	PresentDays      int                    `json:"present_days"`
	LateDays         int                    `json:"late_days"`
	AbsentDays       int                    `json:"absent_days"`
	LeaveDays        int                    `json:"leave_days"`
	Breakdowns       []DailyEarningResponse `json:"breakdowns,omitempty"`
}

type PerformanceResponse struct {
	EmployeeID       string            `json:"employee_id"`
	Period           PayPeriodResponse `json:"period"`
	PerformanceScore string            `json:"performance_score"`
	Rating           string            `json:"rating"`
}

type LeaveEligibilityRequest struct {
	EmployeeID    string `json:"employee_id"`
	ReferenceDate string `json:"reference_date,omitempty"` // YYYY-MM-DD
}

func (r *LeaveEligibilityRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if r.ReferenceDate != "" {
		if _, valid := validator.IsValidDate(r.ReferenceDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "reference_date",
				Message: "reference_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LeaveEligibilityResponse struct {
	EmployeeID        string `json:"employee_id"`
	Eligible          bool   `json:"eligible"`
	DaysUntilEligible int    `json:"days_until_eligible"`
}

// PeriodReportRequest asks for the payroll report across all active
// employees for the period containing the reference date.
type PeriodReportRequest struct {
	ReferenceDate string `json:"reference_date,omitempty"` // YYYY-MM-DD
	ToDate        bool   `json:"to_date,omitempty"`
}

func (r *PeriodReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ReferenceDate != "" {
		if _, valid := validator.IsValidDate(r.ReferenceDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "reference_date",
				Message: "reference_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type PeriodReportResponse struct {
	Period         PayPeriodResponse `json:"period"`
	GeneratedAt    string            `json:"generated_at"`
	TotalEmployees int               `json:"total_employees"`
	TotalNetPayout string            `json:"total_net_payout"`
	Rows           []SummaryResponse `json:"rows"`
}
