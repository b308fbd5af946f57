package attendance

import (
	"context"
	"strings"
	"time"

	"github.com/paycore-hr/payroll-backend-go/internal/domain/attendance"
	"github.com/paycore-hr/payroll-backend-go/internal/domain/employee"
	"github.com/paycore-hr/payroll-backend-go/internal/pkg/timeclock"
)

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
	}
}

func (s *AttendanceServiceImpl) ListRecords(ctx context.Context, filter attendance.RecordFilter) (attendance.ListRecordResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListRecordResponse{}, err
	}

	records, total, err := s.attendanceRepo.List(ctx, filter)
	if err != nil {
		return attendance.ListRecordResponse{}, err
	}

	resp := attendance.ListRecordResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int((total + int64(filter.Limit) - 1) / int64(filter.Limit)),
		Records:    make([]attendance.DailyRecordResponse, 0, len(records)),
	}
	for _, rec := range records {
		resp.Records = append(resp.Records, mapRecordToResponse(rec))
	}

	return resp, nil
}

func (s *AttendanceServiceImpl) GetRecord(ctx context.Context, id string) (attendance.DailyRecordResponse, error) {
	rec, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return attendance.DailyRecordResponse{}, err
	}
	return mapRecordToResponse(rec), nil
}

// CorrectRecord overwrites fields of an existing daily record. A status
// change to on_leave or absent clears the clock times; a corrected check-in
// on a worked day re-runs the Late reclassification against the employee's
// shift unless the status itself was corrected in the same request.
func (s *AttendanceServiceImpl) CorrectRecord(ctx context.Context, req attendance.CorrectionRequest) (attendance.DailyRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.DailyRecordResponse{}, err
	}

	rec, err := s.attendanceRepo.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.DailyRecordResponse{}, err
	}

	if req.Status != nil {
		rec.Status = attendance.Status(strings.ToLower(*req.Status))
	}

	if req.InTime != nil {
		if *req.InTime == "" {
			rec.InTime = nil
		} else {
			t, err := timeclock.Parse(*req.InTime)
			if err != nil {
				return attendance.DailyRecordResponse{}, err
			}
			rec.InTime = &t
		}
	}
	if req.OutTime != nil {
		if *req.OutTime == "" {
			rec.OutTime = nil
		} else {
			t, err := timeclock.Parse(*req.OutTime)
			if err != nil {
				return attendance.DailyRecordResponse{}, err
			}
			rec.OutTime = &t
		}
	}

	if req.OtHours != nil {
		rec.OtHours = *req.OtHours
	}
	if req.OtMultiplier != nil {
		rec.OtMultiplier = *req.OtMultiplier
	}
	if req.Deduction != nil {
		rec.Deduction = *req.Deduction
	}

	switch rec.Status {
	case attendance.StatusLeave, attendance.StatusAbsent:
		rec.InTime = nil
		rec.OutTime = nil
	case attendance.StatusPresent, attendance.StatusLate:
		if req.Status == nil && req.InTime != nil && rec.InTime != nil {
			emp, err := s.employeeRepo.GetByID(ctx, rec.EmployeeID)
			if err != nil {
				return attendance.DailyRecordResponse{}, err
			}
			if timeclock.IsLate(*rec.InTime, emp.Shift.Start) {
				rec.Status = attendance.StatusLate
			} else {
				rec.Status = attendance.StatusPresent
			}
		}
	}

	if err := rec.Validate(); err != nil {
		return attendance.DailyRecordResponse{}, err
	}

	rec.UpdatedAt = time.Now().UTC()
	if err := s.attendanceRepo.Update(ctx, rec); err != nil {
		return attendance.DailyRecordResponse{}, err
	}

	return mapRecordToResponse(rec), nil
}

func mapRecordToResponse(rec attendance.DailyRecord) attendance.DailyRecordResponse {
	resp := attendance.DailyRecordResponse{
		ID:           rec.ID,
		EmployeeID:   rec.EmployeeID,
		Date:         rec.Date.Format("2006-01-02"),
		Status:       string(rec.Status),
		OtHours:      rec.OtHours.String(),
		OtMultiplier: rec.OtMultiplier.String(),
		Deduction:    rec.Deduction.String(),
	}

	if rec.EmployeeName != nil {
		resp.EmployeeName = *rec.EmployeeName
	}
	if rec.EmployeeCode != nil {
		resp.EmployeeCode = *rec.EmployeeCode
	}
	if rec.InTime != nil {
		v := rec.InTime.String()
		resp.InTime = &v
	}
	if rec.OutTime != nil {
		v := rec.OutTime.String()
		resp.OutTime = &v
	}
	if !rec.CreatedAt.IsZero() {
		resp.CreatedAt = rec.CreatedAt.Format(time.RFC3339)
	}
	if !rec.UpdatedAt.IsZero() {
		resp.UpdatedAt = rec.UpdatedAt.Format(time.RFC3339)
	}

	return resp
}
