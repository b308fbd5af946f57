package payroll

import (
	"context"
	"errors"
	"time"

	"github.com/paycore-hr/payroll-backend-go/internal/domain/attendance"
	"github.com/paycore-hr/payroll-backend-go/internal/domain/employee"
	"github.com/paycore-hr/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

type PayrollServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	weights        payroll.ScoreWeights
	now            func() time.Time
}

func NewPayrollService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	weights payroll.ScoreWeights,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		weights:        weights,
		now:            time.Now,
	}
}

// resolveReference parses an optional YYYY-MM-DD reference date, defaulting
// to today.
func (s *PayrollServiceImpl) resolveReference(referenceDate string) (time.Time, error) {
	if referenceDate == "" {
		n := s.now().UTC()
		return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	ref, err := time.Parse("2006-01-02", referenceDate)
	if err != nil {
		return time.Time{}, payroll.ErrInvalidPeriod
	}
	return ref, nil
}

func (s *PayrollServiceImpl) GetCurrentPeriod(ctx context.Context, referenceDate string) (payroll.PayPeriodResponse, error) {
	ref, err := s.resolveReference(referenceDate)
	if err != nil {
		return payroll.PayPeriodResponse{}, err
	}

	period := CurrentPeriod(ref)
	return mapPeriodToResponse(period), nil
}

// summarize runs the full pipeline for one employee: load records over the
// period window, compute per-day breakdowns, aggregate. The aggregator
// fills calendar gaps as Absent days, so only stored records are loaded.
func (s *PayrollServiceImpl) summarize(ctx context.Context, emp employee.Employee, period payroll.PayPeriod) (payroll.PayrollSummary, []payroll.DailyEarningBreakdown, error) {
	records, err := s.attendanceRepo.ListByEmployeeAndRange(ctx, emp.ID, period.StartDate, period.EndDate)
	if err != nil {
		return payroll.PayrollSummary{}, nil, err
	}

	breakdowns := make([]payroll.DailyEarningBreakdown, 0, len(records))
	for _, rec := range records {
		b, err := ComputeDailyEarning(rec, emp)
		if err != nil {
			return payroll.PayrollSummary{}, nil, err
		}
		breakdowns = append(breakdowns, b)
	}

	summary, err := Aggregate(emp.ID, period, breakdowns)
	if err != nil {
		return payroll.PayrollSummary{}, nil, err
	}

	return summary, breakdowns, nil
}

func (s *PayrollServiceImpl) periodFor(req payroll.SummaryRequest) (payroll.PayPeriod, error) {
	ref, err := s.resolveReference(req.ReferenceDate)
	if err != nil {
		return payroll.PayPeriod{}, err
	}

	period := CurrentPeriod(ref)
	if req.ToDate {
		period = period.ClampTo(ref)
	}
	return period, nil
}

func (s *PayrollServiceImpl) GetSummary(ctx context.Context, req payroll.SummaryRequest) (payroll.SummaryResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.SummaryResponse{}, err
	}

	period, err := s.periodFor(req)
	if err != nil {
		return payroll.SummaryResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return payroll.SummaryResponse{}, err
	}

	summary, breakdowns, err := s.summarize(ctx, emp, period)
	if err != nil {
		return payroll.SummaryResponse{}, err
	}

	resp := mapSummaryToResponse(summary, emp.FullName)
	if req.IncludeBreakdowns {
		resp.Breakdowns = make([]payroll.DailyEarningResponse, 0, len(breakdowns))
		for _, b := range breakdowns {
			resp.Breakdowns = append(resp.Breakdowns, payroll.DailyEarningResponse{
				Date:            b.Date.Format("2006-01-02"),
				Status:          string(b.Status),
				HoursWorked:     b.HoursWorked.String(),
				BasePay:         b.BasePay.String(),
				OtAmount:        b.OtAmount.String(),
				Deduction:       b.Deduction.String(),
				FinalDayEarning: b.FinalDayEarning.String(),
			})
		}
	}

	return resp, nil
}

func (s *PayrollServiceImpl) GetPerformance(ctx context.Context, req payroll.SummaryRequest) (payroll.PerformanceResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PerformanceResponse{}, err
	}

	period, err := s.periodFor(req)
	if err != nil {
		return payroll.PerformanceResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return payroll.PerformanceResponse{}, err
	}

	summary, _, err := s.summarize(ctx, emp, period)
	if err != nil {
		return payroll.PerformanceResponse{}, err
	}

	score, err := Score(summary, s.weights)
	if err != nil {
		return payroll.PerformanceResponse{}, err
	}

	return payroll.PerformanceResponse{
		EmployeeID:       emp.ID,
		Period:           mapPeriodToResponse(period),
		PerformanceScore: score.Score.StringFixed(2),
		Rating:           string(score.Rating),
	}, nil
}

func (s *PayrollServiceImpl) GetLeaveEligibility(ctx context.Context, req payroll.LeaveEligibilityRequest) (payroll.LeaveEligibilityResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.LeaveEligibilityResponse{}, err
	}

	ref, err := s.resolveReference(req.ReferenceDate)
	if err != nil {
		return payroll.LeaveEligibilityResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return payroll.LeaveEligibilityResponse{}, err
	}

	eligible, remaining := LeaveEligibility(emp.JoiningDate, ref)
	return payroll.LeaveEligibilityResponse{
		EmployeeID:        emp.ID,
		Eligible:          eligible,
		DaysUntilEligible: remaining,
	}, nil
}

func (s *PayrollServiceImpl) GeneratePeriodReport(ctx context.Context, req payroll.PeriodReportRequest) (payroll.PeriodReportResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PeriodReportResponse{}, err
	}

	ref, err := s.resolveReference(req.ReferenceDate)
	if err != nil {
		return payroll.PeriodReportResponse{}, err
	}

	period := CurrentPeriod(ref)
	if req.ToDate {
		period = period.ClampTo(ref)
	}

	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return payroll.PeriodReportResponse{}, err
	}

	resp := payroll.PeriodReportResponse{
		Period:      mapPeriodToResponse(period),
		GeneratedAt: s.now().UTC().Format(time.RFC3339),
		Rows:        make([]payroll.SummaryResponse, 0, len(employees)),
	}

	totalPayout := decimal.Zero
	for _, emp := range employees {
		summary, _, err := s.summarize(ctx, emp, period)
		if err != nil {
			// A misconfigured employee must not block the whole report;
			// the row is skipped and surfaced by its absence.
			if errors.Is(err, employee.ErrInvalidSalaryConfig) || errors.Is(err, employee.ErrInvalidShiftConfig) {
				continue
			}
			return payroll.PeriodReportResponse{}, err
		}

		resp.Rows = append(resp.Rows, mapSummaryToResponse(summary, emp.FullName))
		totalPayout = totalPayout.Add(summary.NetSalary)
	}

	resp.TotalEmployees = len(resp.Rows)
	resp.TotalNetPayout = totalPayout.String()

	return resp, nil
}

func mapPeriodToResponse(p payroll.PayPeriod) payroll.PayPeriodResponse {
	return payroll.PayPeriodResponse{
		StartDate: p.StartDate.Format("2006-01-02"),
		EndDate:   p.EndDate.Format("2006-01-02"),
		Days:      p.Days(),
	}
}

func mapSummaryToResponse(s payroll.PayrollSummary, fullName string) payroll.SummaryResponse {
	return payroll.SummaryResponse{
		EmployeeID:       s.EmployeeID,
		EmployeeName:     fullName,
		Period:           mapPeriodToResponse(s.Period),
		BaseSalary:       s.BaseSalary.String(),
		TotalOtAmount:    s.TotalOtAmount.String(),
		TotalDeduction:   s.TotalDeduction.String(),
		NetSalary:        s.NetSalary.String(),
		TotalWorkingDays: s.TotalWorkingDays,
		PresentDays:      s.PresentDays,
		LateDays:         s.LateDays,
		AbsentDays:       s.AbsentDays,
		LeaveDays:        s.LeaveDays,
	}
}
