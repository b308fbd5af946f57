package payroll

import (
	"context"
)

// PayrollService defines the period, summary and performance operations.
// All configuration arrives as explicit arguments or injected snapshots;
// the engine never reads ambient process-wide state.
type PayrollService interface {
	// GetCurrentPeriod resolves the pay period containing the reference
	// date
	GetCurrentPeriod(ctx context.Context, referenceDate string) (PayPeriodResponse, error)

	// GetSummary folds one employee's daily breakdowns over the period
	// into a PayrollSummary
	GetSummary(ctx context.Context, req SummaryRequest) (SummaryResponse, error)

	// GetPerformance derives the qualitative rating from the period
	// summary
	GetPerformance(ctx context.Context, req SummaryRequest) (PerformanceResponse, error)

	// GetLeaveEligibility reports whether the employee has served the
	// qualifying period
	GetLeaveEligibility(ctx context.Context, req LeaveEligibilityRequest) (LeaveEligibilityResponse, error)

	// GeneratePeriodReport builds the per-period report across all active
	// employees
	GeneratePeriodReport(ctx context.Context, req PeriodReportRequest) (PeriodReportResponse, error)
}
