package payroll

import (
	"fmt"

	"github.com/paycore-hr/payroll-backend-go/internal/domain/attendance"
	"github.com/paycore-hr/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// Aggregate folds an employee's daily breakdowns over a pay period into a
// PayrollSummary. Every calendar day of the period is accounted for: a day
// with no breakdown is synthesized as an unpaid Absent day, so the four
// status counts always partition the period length. A breakdown dated
// outside the period, or two breakdowns for the same date, is rejected.
//
// NetSalary is derived from the three totals, never summed from the
// per-day FinalDayEarning values: the zero floor applies to a single day's
// earning only, so the full deduction of a floored day still counts
// against the period.
func Aggregate(employeeID string, period payroll.PayPeriod, breakdowns []payroll.DailyEarningBreakdown) (payroll.PayrollSummary, error) {
	if period.EndDate.Before(period.StartDate) {
		return payroll.PayrollSummary{}, payroll.ErrInvalidPeriod
	}

	byDate := make(map[string]payroll.DailyEarningBreakdown, len(breakdowns))
	for _, b := range breakdowns {
		if !period.Contains(b.Date) {
			return payroll.PayrollSummary{}, fmt.Errorf("%w: %s", payroll.ErrBreakdownOutOfPeriod, b.Date.Format("2006-01-02"))
		}
		key := b.Date.Format("2006-01-02")
		if _, dup := byDate[key]; dup {
			return payroll.PayrollSummary{}, fmt.Errorf("%w: duplicate breakdown for %s", payroll.ErrInvariantViolation, key)
		}
		byDate[key] = b
	}

	summary := payroll.PayrollSummary{
		EmployeeID:     employeeID,
		Period:         period,
		BaseSalary:     decimal.Zero,
		TotalOtAmount:  decimal.Zero,
		TotalDeduction: decimal.Zero,
		NetSalary:      decimal.Zero,
	}

	for d := period.StartDate; !d.After(period.EndDate); d = d.AddDate(0, 0, 1) {
		summary.TotalWorkingDays++

		b, ok := byDate[d.Format("2006-01-02")]
		if !ok {
			summary.AbsentDays++
			continue
		}

		switch b.Status {
		case attendance.StatusPresent:
			summary.PresentDays++
		case attendance.StatusLate:
			summary.LateDays++
		case attendance.StatusLeave:
			summary.LeaveDays++
		case attendance.StatusAbsent:
			summary.AbsentDays++
		}

		summary.BaseSalary = summary.BaseSalary.Add(b.BasePay)
		summary.TotalOtAmount = summary.TotalOtAmount.Add(b.OtAmount)
		summary.TotalDeduction = summary.TotalDeduction.Add(b.Deduction)
	}

	summary.NetSalary = summary.BaseSalary.Add(summary.TotalOtAmount).Sub(summary.TotalDeduction)

	counted := summary.PresentDays + summary.LateDays + summary.AbsentDays + summary.LeaveDays
	if counted != summary.TotalWorkingDays {
		return payroll.PayrollSummary{}, fmt.Errorf("%w: day counts %d do not partition period of %d days", payroll.ErrInvariantViolation, counted, summary.TotalWorkingDays)
	}

	return summary, nil
}
