package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/paycore-hr/payroll-backend-go/internal/domain/payroll"
	"github.com/paycore-hr/payroll-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	GetPeriod(w http.ResponseWriter, r *http.Request)
	GetSummary(w http.ResponseWriter, r *http.Request)
	GetPerformance(w http.ResponseWriter, r *http.Request)
	GetLeaveEligibility(w http.ResponseWriter, r *http.Request)
	GetReport(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{
		payrollService: payrollService,
	}
}

// GetPeriod handles GET /payroll/period
func (h *payrollHandlerImpl) GetPeriod(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result, err := h.payrollService.GetCurrentPeriod(ctx, r.URL.Query().Get("date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetSummary handles GET /payroll/summary/{employeeID}
func (h *payrollHandlerImpl) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	req := payroll.SummaryRequest{
		EmployeeID:        chi.URLParam(r, "employeeID"),
		ReferenceDate:     query.Get("date"),
		ToDate:            query.Get("to_date") == "true",
		IncludeBreakdowns: query.Get("include_breakdowns") == "true",
	}

	result, err := h.payrollService.GetSummary(ctx, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetPerformance handles GET /payroll/performance/{employeeID}
func (h *payrollHandlerImpl) GetPerformance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req := payroll.SummaryRequest{
		EmployeeID:    chi.URLParam(r, "employeeID"),
		ReferenceDate: r.URL.Query().Get("date"),
	}

	result, err := h.payrollService.GetPerformance(ctx, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetLeaveEligibility handles GET /payroll/leave-eligibility/{employeeID}
func (h *payrollHandlerImpl) GetLeaveEligibility(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req := payroll.LeaveEligibilityRequest{
		EmployeeID:    chi.URLParam(r, "employeeID"),
		ReferenceDate: r.URL.Query().Get("date"),
	}

	result, err := h.payrollService.GetLeaveEligibility(ctx, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetReport handles GET /payroll/report
func (h *payrollHandlerImpl) GetReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	req := payroll.PeriodReportRequest{
		ReferenceDate: query.Get("date"),
		ToDate:        query.Get("to_date") == "true",
	}

	result, err := h.payrollService.GeneratePeriodReport(ctx, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
