package payroll

import (
	"time"

	"github.com/paycore-hr/payroll-backend-go/internal/domain/attendance"
	"github.com/shopspring/decimal"
)

// DailyEarningBreakdown is the derived earning of one day. It is computed
// from a DailyRecord plus the employee config snapshot and never stored
// independently. FinalDayEarning = max(0, BasePay + OtAmount - Deduction).
type DailyEarningBreakdown struct {
	Date            time.Time
	Status          attendance.Status
	HoursWorked     decimal.Decimal
	BasePay         decimal.Decimal
	OtAmount        decimal.Decimal
	Deduction       decimal.Decimal
	FinalDayEarning decimal.Decimal
}

// PayPeriod is a company month: the 18th of one month through the 17th of
// the next. Immutable once computed for a reference date.
type PayPeriod struct {
	StartDate time.Time
	EndDate   time.Time
}

// Days is the number of calendar days in the period, inclusive.
func (p PayPeriod) Days() int {
	return int(p.EndDate.Sub(p.StartDate).Hours()/24) + 1
}

// Contains reports whether d falls inside the period.
func (p PayPeriod) Contains(d time.Time) bool {
	return !d.Before(p.StartDate) && !d.After(p.EndDate)
}

// ClampTo caps the period end at the reference date. Used for to-date
// queries on an open period, which never reports days that have not
// happened yet.
func (p PayPeriod) ClampTo(reference time.Time) PayPeriod {
	ref := time.Date(reference.Year(), reference.Month(), reference.Day(), 0, 0, 0, 0, time.UTC)
	if ref.Before(p.EndDate) {
		return PayPeriod{StartDate: p.StartDate, EndDate: ref}
	}
	return p
}

// PayrollSummary is the aggregate of one employee over one pay period.
// Invariants: NetSalary = BaseSalary + TotalOtAmount - TotalDeduction, and
// the four day counts partition TotalWorkingDays.
type PayrollSummary struct {
	EmployeeID       string
	Period           PayPeriod
	BaseSalary       decimal.Decimal
	TotalOtAmount    decimal.Decimal
	TotalDeduction   decimal.Decimal
	NetSalary        decimal.Decimal
	TotalWorkingDays int
	PresentDays      int
	LateDays         int
	AbsentDays       int
	LeaveDays        int
}

type Rating string

const (
	RatingExcellent Rating = "excellent"
	RatingGood      Rating = "good"
	RatingAverage   Rating = "average"
	RatingPoor      Rating = "poor"
)

// PerformanceScore is a qualitative rating derived from aggregated
// attendance counts.
type PerformanceScore struct {
	Score  decimal.Decimal
	Rating Rating
}

// ScoreWeights parameterizes the performance score. The weighting is a
// business policy, so it is carried as configuration rather than constants
// inside the scorer.
type ScoreWeights struct {
	LatePenalty    decimal.Decimal
	AbsencePenalty decimal.Decimal
	ExcellentMin   decimal.Decimal
	GoodMin        decimal.Decimal
	AverageMin     decimal.Decimal
}

// DefaultScoreWeights returns the company-default policy: half weight on
// lateness, full weight on absence, bands at 90/75/60.
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{
		LatePenalty:    decimal.NewFromFloat(0.5),
		AbsencePenalty: decimal.NewFromInt(1),
		ExcellentMin:   decimal.NewFromInt(90),
		GoodMin:        decimal.NewFromInt(75),
		AverageMin:     decimal.NewFromInt(60),
	}
}

func (w ScoreWeights) Validate() error {
	if w.LatePenalty.IsNegative() || w.AbsencePenalty.IsNegative() {
		return ErrInvalidScoreWeights
	}
	if w.ExcellentMin.LessThan(w.GoodMin) || w.GoodMin.LessThan(w.AverageMin) {
		return ErrInvalidScoreWeights
	}
	return nil
}
