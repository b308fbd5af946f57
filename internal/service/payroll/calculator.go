package payroll

import (
	"fmt"

	"github.com/paycore-hr/payroll-backend-go/internal/domain/attendance"
	"github.com/paycore-hr/payroll-backend-go/internal/domain/employee"
	"github.com/paycore-hr/payroll-backend-go/internal/domain/payroll"
	"github.com/paycore-hr/payroll-backend-go/internal/pkg/timeclock"
	"github.com/shopspring/decimal"
)

// ComputeDailyEarning derives the earning breakdown of one day from the
// canonical record and the employee config snapshot. It is a pure
// function: the effective hourly rate is recomputed from the snapshot on
// every call and never cached, so salary or shift edits affect only future
// evaluations.
//
// Base pay follows the actual clocked duration, not the scheduled shift.
// A day whose clock time pair is incomplete earns nothing until corrected.
// FinalDayEarning is floored at zero; any negative value past that floor
// is an invariant violation and propagates as a hard failure.
func ComputeDailyEarning(record attendance.DailyRecord, emp employee.Employee) (payroll.DailyEarningBreakdown, error) {
	if err := record.Validate(); err != nil {
		return payroll.DailyEarningBreakdown{}, err
	}
	if err := emp.Shift.Validate(); err != nil {
		return payroll.DailyEarningBreakdown{}, fmt.Errorf("employee %s: %w", emp.ID, err)
	}

	rate, err := emp.Salary.EffectiveHourlyRate(emp.Shift.Hours())
	if err != nil {
		return payroll.DailyEarningBreakdown{}, fmt.Errorf("employee %s: %w", emp.ID, err)
	}

	breakdown := payroll.DailyEarningBreakdown{
		Date:            record.Date,
		Status:          record.Status,
		HoursWorked:     decimal.Zero,
		BasePay:         decimal.Zero,
		OtAmount:        decimal.Zero,
		Deduction:       decimal.Zero,
		FinalDayEarning: decimal.Zero,
	}

	switch record.Status {
	case attendance.StatusAbsent:
		return breakdown, nil

	case attendance.StatusLeave:
		// Leave is paid as a full scheduled shift. A deduction on the
		// record still applies (unpaid-leave partial charge).
		breakdown.HoursWorked = emp.Shift.Hours()
		breakdown.BasePay = breakdown.HoursWorked.Mul(rate)
		breakdown.Deduction = record.Deduction

	case attendance.StatusPresent, attendance.StatusLate:
		if !record.IsComplete() {
			// Incomplete days never estimate pay from partial data.
			return breakdown, nil
		}
		breakdown.HoursWorked = timeclock.DurationHours(*record.InTime, *record.OutTime, emp.Shift.IsOvernight())
		breakdown.BasePay = breakdown.HoursWorked.Mul(rate)
		breakdown.OtAmount = record.OtHours.Mul(rate).Mul(record.OtMultiplier)
		breakdown.Deduction = record.Deduction
	}

	total := breakdown.BasePay.Add(breakdown.OtAmount).Sub(breakdown.Deduction)
	if total.IsNegative() {
		total = decimal.Zero
	}
	breakdown.FinalDayEarning = total

	if breakdown.FinalDayEarning.IsNegative() {
		return payroll.DailyEarningBreakdown{}, fmt.Errorf("%w: negative day earning on %s", payroll.ErrInvariantViolation, record.Date.Format("2006-01-02"))
	}

	return breakdown, nil
}
