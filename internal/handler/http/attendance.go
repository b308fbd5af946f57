package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/paycore-hr/payroll-backend-go/internal/domain/attendance"
	"github.com/paycore-hr/payroll-backend-go/internal/handler/http/response"
)

// maxWorkbookSize caps uploaded XLSX bodies at 10 MiB.
const maxWorkbookSize = 10 << 20

type AttendanceHandler interface {
	Import(w http.ResponseWriter, r *http.Request)
	ImportWorkbook(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Correct(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// Import handles POST /attendance/import
func (h *attendanceHandlerImpl) Import(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req attendance.ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", nil)
		return
	}

	result, err := h.attendanceService.ImportEvents(ctx, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ImportWorkbook handles POST /attendance/import/workbook
func (h *attendanceHandlerImpl) ImportWorkbook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseMultipartForm(maxWorkbookSize); err != nil {
		response.BadRequest(w, "invalid multipart body", nil)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "file field is required", nil)
		return
	}
	defer file.Close()

	result, err := h.attendanceService.ImportWorkbook(ctx, file)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List handles GET /attendance
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	filter := attendance.RecordFilter{}
	if v := query.Get("employee_id"); v != "" {
		filter.EmployeeID = &v
	}
	if v := query.Get("status"); v != "" {
		filter.Status = &v
	}
	if v := query.Get("start_date"); v != "" {
		filter.StartDate = &v
	}
	if v := query.Get("end_date"); v != "" {
		filter.EndDate = &v
	}
	if v := query.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(w, "invalid page parameter", nil)
			return
		}
		filter.Page = page
	}
	if v := query.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(w, "invalid limit parameter", nil)
			return
		}
		filter.Limit = limit
	}

	result, err := h.attendanceService.ListRecords(ctx, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Records, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// Get handles GET /attendance/{id}
func (h *attendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	result, err := h.attendanceService.GetRecord(ctx, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Correct handles PUT /attendance/{id}
func (h *attendanceHandlerImpl) Correct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req attendance.CorrectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.attendanceService.CorrectRecord(ctx, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance record corrected", result)
}
