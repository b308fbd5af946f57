package employee

import (
	"time"

	"github.com/paycore-hr/payroll-backend-go/internal/pkg/timeclock"
	"github.com/shopspring/decimal"
)

// StandardWorkingDays is the number of working days a monthly salary is
// pro-rated over when deriving the effective hourly rate.
const StandardWorkingDays = 22

// Employee is the configuration snapshot the calculation engine consumes:
// identity, shift, salary and joining date. Everything else about an
// employee lives in the HR surface, outside this core.
type Employee struct {
	ID               string
	EmployeeCode     string
	FullName         string
	JoiningDate      time.Time
	Shift            ShiftConfig
	Salary           SalaryConfig
	EmploymentStatus EmploymentStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type EmploymentStatus string

const (
	EmploymentStatusActive   EmploymentStatus = "active"
	EmploymentStatusResigned EmploymentStatus = "resigned"
)

// ShiftConfig is the scheduled working window. End numerically at or before
// Start denotes an overnight shift; duration wraps past midnight.
type ShiftConfig struct {
	Start timeclock.TimeOfDay
	End   timeclock.TimeOfDay
}

func (s ShiftConfig) Validate() error {
	if s.Start == s.End {
		return ErrInvalidShiftConfig
	}
	return nil
}

// IsOvernight reports whether the shift crosses midnight.
func (s ShiftConfig) IsOvernight() bool {
	return s.End.Minutes() < s.Start.Minutes()
}

// Hours is the scheduled shift duration, overnight-aware.
func (s ShiftConfig) Hours() decimal.Decimal {
	return timeclock.DurationHours(s.Start, s.End, s.IsOvernight())
}

type SalaryType string

const (
	SalaryTypeHourly  SalaryType = "hourly"
	SalaryTypeMonthly SalaryType = "monthly"
)

// SalaryConfig is a tagged union: exactly one variant is active per
// employee. Loose payloads from the transport layer are mapped into this
// once at the boundary; calculation code never branches on string tags.
type SalaryConfig struct {
	Type          SalaryType
	HourlyRate    decimal.Decimal
	MonthlyAmount decimal.Decimal
}

// Validate rejects misconfigured salaries before any calculation is
// attempted. A monthly employee with no amount, or an hourly employee with
// a non-positive rate, is a configuration error, never a silent zero.
func (c SalaryConfig) Validate() error {
	switch c.Type {
	case SalaryTypeHourly:
		if !c.HourlyRate.IsPositive() {
			return ErrInvalidSalaryConfig
		}
	case SalaryTypeMonthly:
		if !c.MonthlyAmount.IsPositive() {
			return ErrInvalidSalaryConfig
		}
	default:
		return ErrInvalidSalaryConfig
	}
	return nil
}

// EffectiveHourlyRate derives the rate used for pro-ration math. For
// monthly employees it is amount / (shift hours per day x standard working
// days); it is recomputed from current config on every call and never
// persisted as the rate of record.
func (c SalaryConfig) EffectiveHourlyRate(shiftHoursPerDay decimal.Decimal) (decimal.Decimal, error) {
	if err := c.Validate(); err != nil {
		return decimal.Zero, err
	}
	if c.Type == SalaryTypeHourly {
		return c.HourlyRate, nil
	}
	divisor := shiftHoursPerDay.Mul(decimal.NewFromInt(StandardWorkingDays))
	if !divisor.IsPositive() {
		return decimal.Zero, ErrInvalidShiftConfig
	}
	return c.MonthlyAmount.Div(divisor), nil
}
