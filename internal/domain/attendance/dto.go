package attendance

import (
	"strings"

	"github.com/paycore-hr/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// BULK IMPORT DTOs
// ========================================

// ImportRequest carries the raw delimited rows of a bulk attendance
// import: empid|firstname|lastname|date(dd/mm/yyyy)|time(HH:mm)|status
// (0=in, 1=out). Pipe and comma delimiters are both accepted.
type ImportRequest struct {
	Rows []string `json:"rows"`
}

func (r *ImportRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Rows) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "rows",
			Message: "at least one row is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ImportLogLevel string

const (
	ImportLogInfo    ImportLogLevel = "INFO"
	ImportLogWarn    ImportLogLevel = "WARN"
	ImportLogError   ImportLogLevel = "ERROR"
	ImportLogSuccess ImportLogLevel = "SUCCESS"
	ImportLogSummary ImportLogLevel = "SUMMARY"
)

// ImportLogEntry is one typed line of the processing log returned to the
// import caller. Row numbers are 1-based; zero means the entry is not tied
// to a specific row.
type ImportLogEntry struct {
	Level   ImportLogLevel `json:"level"`
	Row     int            `json:"row,omitempty"`
	Message string         `json:"message"`
}

type ImportCounts struct {
	Total          int `json:"total"`
	Success        int `json:"success"`
	Failed         int `json:"failed"`
	Skipped        int `json:"skipped"`
	RecordsCreated int `json:"records_created"`
	RecordsUpdated int `json:"records_updated"`
}

// ImportResult reports the outcome of a bulk import: the batch commits the
// valid subset and reports the rejects, it never aborts on row errors.
type ImportResult struct {
	Counts ImportCounts     `json:"counts"`
	Log    []ImportLogEntry `json:"log"`
}

// ========================================
// RECORD DTOs
// ========================================

type DailyRecordResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name,omitempty"`
	EmployeeCode string  `json:"employee_code,omitempty"`
	Date         string  `json:"date"`
	Status       string  `json:"status"`
	InTime       *string `json:"in_time,omitempty"`
	OutTime      *string `json:"out_time,omitempty"`
	OtHours      string  `json:"ot_hours"`
	OtMultiplier string  `json:"ot_multiplier"`
	Deduction    string  `json:"deduction"`
	CreatedAt    string  `json:"created_at,omitempty"`
	UpdatedAt    string  `json:"updated_at,omitempty"`
}

type RecordFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Status     *string `json:"status,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *RecordFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1 // Default page
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20 // Default limit
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.Status != nil {
		validStatuses := []string{"present", "late", "on_leave", "absent"}
		if !validator.IsInSlice(strings.ToLower(*f.Status), validStatuses) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: present, late, on_leave, absent",
			})
		}
	}

	if f.StartDate != nil && *f.StartDate != "" {
		if _, valid := validator.IsValidDate(*f.StartDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil && *f.EndDate != "" {
		if _, valid := validator.IsValidDate(*f.EndDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListRecordResponse struct {
	TotalCount int64                 `json:"total_count"`
	Page       int                   `json:"page"`
	Limit      int                   `json:"limit"`
	TotalPages int                   `json:"total_pages"`
	Records    []DailyRecordResponse `json:"records"`
}

// CorrectionRequest overwrites fields of a daily record for a given date.
// Corrections are upstream data edits; the engine re-derives earnings from
// the corrected record on the next read.
type CorrectionRequest struct {
	ID           string           `json:"-"`
	Status       *string          `json:"status,omitempty"`
	InTime       *string          `json:"in_time,omitempty"`  // tolerant time format
	OutTime      *string          `json:"out_time,omitempty"` // tolerant time format
	OtHours      *decimal.Decimal `json:"ot_hours,omitempty"`
	OtMultiplier *decimal.Decimal `json:"ot_multiplier,omitempty"`
	Deduction    *decimal.Decimal `json:"deduction,omitempty"`
}

func (r *CorrectionRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Status != nil {
		validStatuses := []string{"present", "late", "on_leave", "absent"}
		if !validator.IsInSlice(strings.ToLower(*r.Status), validStatuses) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: present, late, on_leave, absent",
			})
		}
	}

	if r.OtHours != nil && r.OtHours.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "ot_hours",
			Message: "ot_hours must not be negative",
		})
	}

	if r.Deduction != nil && r.Deduction.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "deduction",
			Message: "deduction must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
