package payroll

import (
	"time"

	"github.com/paycore-hr/payroll-backend-go/internal/domain/payroll"
)

// PeriodStartDay is the company payroll cutover: each period runs from the
// 18th of one month through the 17th of the next.
const PeriodStartDay = 18

// LeaveQualifyingDays is the minimum tenure before paid leave applies.
const LeaveQualifyingDays = 90

// CurrentPeriod resolves the pay period containing the reference date.
// Days on or after the 18th belong to the period starting that month; days
// before it belong to the period that started the previous month. The
// returned window is always the full period, even when the reference date
// falls mid-period.
func CurrentPeriod(reference time.Time) payroll.PayPeriod {
	year, month, day := reference.Date()

	var start time.Time
	if day >= PeriodStartDay {
		start = time.Date(year, month, PeriodStartDay, 0, 0, 0, 0, time.UTC)
	} else {
		start = time.Date(year, month-1, PeriodStartDay, 0, 0, 0, 0, time.UTC)
	}

	// time.Date normalizes month overflow, so December rolls into January.
	end := time.Date(start.Year(), start.Month()+1, PeriodStartDay-1, 0, 0, 0, 0, time.UTC)

	return payroll.PayPeriod{StartDate: start, EndDate: end}
}

// PreviousPeriod resolves the pay period immediately before the one
// containing the reference date.
func PreviousPeriod(reference time.Time) payroll.PayPeriod {
	current := CurrentPeriod(reference)
	return CurrentPeriod(current.StartDate.AddDate(0, 0, -1))
}

// LeaveEligibility reports whether an employee who joined on joiningDate
// has served the qualifying period as of the reference date, and if not,
// how many more days remain. Eligibility starts on day 90 exactly.
func LeaveEligibility(joiningDate, reference time.Time) (bool, int) {
	joined := time.Date(joiningDate.Year(), joiningDate.Month(), joiningDate.Day(), 0, 0, 0, 0, time.UTC)
	ref := time.Date(reference.Year(), reference.Month(), reference.Day(), 0, 0, 0, 0, time.UTC)

	served := int(ref.Sub(joined).Hours() / 24)
	if served >= LeaveQualifyingDays {
		return true, 0
	}
	return false, LeaveQualifyingDays - served
}
