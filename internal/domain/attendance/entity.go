package attendance

import (
	"time"

	"github.com/paycore-hr/payroll-backend-go/internal/pkg/timeclock"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusLate    Status = "late"
	StatusLeave   Status = "on_leave"
	StatusAbsent  Status = "absent"
)

type EventKind string

const (
	EventCheckIn  EventKind = "check_in"
	EventCheckOut EventKind = "check_out"
)

// Event is one raw punch from a bulk import. Events are ephemeral: they
// exist only during import and are never the system of record once merged.
type Event struct {
	EmployeeCode string
	Date         time.Time
	Time         timeclock.TimeOfDay
	Kind         EventKind
}

// DailyRecord is the canonical attendance record per (employee, date).
// InTime/OutTime are present only for worked days; Leave and Absent carry
// no clock times. Records are never deleted, only overwritten by
// correction requests.
type DailyRecord struct {
	ID           string
	EmployeeID   string
	Date         time.Time
	Status       Status
	InTime       *timeclock.TimeOfDay
	OutTime      *timeclock.TimeOfDay
	OtHours      decimal.Decimal
	OtMultiplier decimal.Decimal
	Deduction    decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}

var validOtMultipliers = []decimal.Decimal{
	decimal.NewFromInt(1),
	decimal.NewFromFloat(1.5),
	decimal.NewFromInt(2),
}

// Validate enforces the record invariants: Leave/Absent carry no clock
// times, OT hours and deduction are non-negative, and the OT multiplier is
// one of 1, 1.5, 2.
func (r DailyRecord) Validate() error {
	switch r.Status {
	case StatusPresent, StatusLate:
		// Incomplete time pairs are allowed; they yield zero pay until
		// corrected.
	case StatusLeave, StatusAbsent:
		if r.InTime != nil || r.OutTime != nil {
			return ErrInvalidRecord
		}
	default:
		return ErrInvalidRecord
	}

	if r.OtHours.IsNegative() || r.Deduction.IsNegative() {
		return ErrInvalidRecord
	}

	multiplierOK := false
	for _, m := range validOtMultipliers {
		if r.OtMultiplier.Equal(m) {
			multiplierOK = true
			break
		}
	}
	if !multiplierOK {
		return ErrInvalidRecord
	}

	return nil
}

// IsComplete reports whether both clock times are present.
func (r DailyRecord) IsComplete() bool {
	return r.InTime != nil && r.OutTime != nil
}
