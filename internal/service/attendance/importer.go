package attendance

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/paycore-hr/payroll-backend-go/internal/domain/attendance"
	"github.com/paycore-hr/payroll-backend-go/internal/domain/employee"
	"github.com/paycore-hr/payroll-backend-go/internal/pkg/timeclock"
	"github.com/paycore-hr/payroll-backend-go/internal/pkg/validator"
	"github.com/xuri/excelize/v2"
)

// importRowFields is the fixed layout of one punch row:
// empid | firstname | lastname | date | time | status (0=in, 1=out).
const importRowFields = 6

// splitImportRow splits a raw delimited line into trimmed fields. Pipe
// wins when present, comma otherwise; device exports use either.
func splitImportRow(raw string) []string {
	sep := ","
	if strings.Contains(raw, "|") {
		sep = "|"
	}
	fields := strings.Split(raw, sep)
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}

// parseEventRow maps one row's fields to a punch event. Every reject
// carries the reason; the caller attaches the row number.
func parseEventRow(fields []string) (attendance.Event, error) {
	if len(fields) != importRowFields {
		return attendance.Event{}, fmt.Errorf("expected %d fields, got %d", importRowFields, len(fields))
	}

	code := fields[0]
	if !validator.IsValidEmployeeCode(code) {
		return attendance.Event{}, fmt.Errorf("invalid employee id %q", code)
	}

	date, ok := validator.IsValidImportDate(fields[3])
	if !ok {
		return attendance.Event{}, fmt.Errorf("invalid date %q, expected dd/mm/yyyy", fields[3])
	}

	clock, err := timeclock.Parse(fields[4])
	if err != nil {
		return attendance.Event{}, fmt.Errorf("invalid time %q: %w", fields[4], err)
	}

	var kind attendance.EventKind
	switch fields[5] {
	case "0":
		kind = attendance.EventCheckIn
	case "1":
		kind = attendance.EventCheckOut
	default:
		return attendance.Event{}, fmt.Errorf("invalid status %q, expected 0 or 1", fields[5])
	}

	return attendance.Event{
		EmployeeCode: code,
		Date:         date,
		Time:         clock,
		Kind:         kind,
	}, nil
}

// runImport is the shared import core: parse rows, match employees, merge
// punches into daily records and upsert them. Row failures are logged and
// counted, never fatal. Storage of the merged records runs in one
// transaction: a mid-batch database failure rolls the whole import back
// instead of leaving half of it committed.
func (s *AttendanceServiceImpl) runImport(ctx context.Context, rows [][]string, firstRow int) (attendance.ImportResult, error) {
	result := attendance.ImportResult{Log: []attendance.ImportLogEntry{
		{Level: attendance.ImportLogInfo, Message: fmt.Sprintf("processing %d rows", len(rows))},
	}}

	active, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return result, err
	}
	byCode := make(map[string]employee.Employee, len(active))
	for _, emp := range active {
		byCode[emp.EmployeeCode] = emp
	}

	var events []attendance.Event
	for i, fields := range rows {
		rowNum := firstRow + i
		result.Counts.Total++

		if len(fields) == 0 || (len(fields) == 1 && fields[0] == "") {
			result.Counts.Skipped++
			continue
		}

		ev, err := parseEventRow(fields)
		if err != nil {
			result.Counts.Failed++
			result.Log = append(result.Log, attendance.ImportLogEntry{
				Level:   attendance.ImportLogError,
				Row:     rowNum,
				Message: err.Error(),
			})
			continue
		}

		if _, known := byCode[ev.EmployeeCode]; !known {
			result.Counts.Failed++
			result.Log = append(result.Log, attendance.ImportLogEntry{
				Level:   attendance.ImportLogWarn,
				Row:     rowNum,
				Message: fmt.Sprintf("no active employee with id %q", ev.EmployeeCode),
			})
			continue
		}

		result.Counts.Success++
		events = append(events, ev)
	}

	var (
		created, updated int
		storeLog         []attendance.ImportLogEntry
	)
	txErr := s.attendanceRepo.WithinTransaction(ctx, func(txCtx context.Context) error {
		created, updated = 0, 0
		storeLog = storeLog[:0]
		for _, rec := range MergeEvents(events, byCode) {
			stored, inserted, err := s.attendanceRepo.Upsert(txCtx, rec)
			if err != nil {
				return fmt.Errorf("failed to store record for %s on %s: %w",
					*rec.EmployeeCode, rec.Date.Format("2006-01-02"), err)
			}
			if inserted {
				created++
			} else {
				updated++
			}
			storeLog = append(storeLog, attendance.ImportLogEntry{
				Level: attendance.ImportLogSuccess,
				Message: fmt.Sprintf("%s %s: %s", *rec.EmployeeCode,
					stored.Date.Format("2006-01-02"), string(stored.Status)),
			})
		}
		return nil
	})
	if txErr != nil {
		return result, txErr
	}

	result.Counts.RecordsCreated = created
	result.Counts.RecordsUpdated = updated
	result.Log = append(result.Log, storeLog...)

	result.Log = append(result.Log, attendance.ImportLogEntry{
		Level: attendance.ImportLogSummary,
		Message: fmt.Sprintf("%d rows: %d ok, %d failed, %d skipped; %d records created, %d updated",
			result.Counts.Total, result.Counts.Success, result.Counts.Failed, result.Counts.Skipped,
			result.Counts.RecordsCreated, result.Counts.RecordsUpdated),
	})

	return result, nil
}

func (s *AttendanceServiceImpl) ImportEvents(ctx context.Context, req attendance.ImportRequest) (attendance.ImportResult, error) {
	if err := req.Validate(); err != nil {
		return attendance.ImportResult{}, err
	}

	rows := make([][]string, 0, len(req.Rows))
	for _, raw := range req.Rows {
		if strings.TrimSpace(raw) == "" {
			rows = append(rows, []string{""})
			continue
		}
		rows = append(rows, splitImportRow(raw))
	}

	return s.runImport(ctx, rows, 1)
}

func (s *AttendanceServiceImpl) ImportWorkbook(ctx context.Context, r io.Reader) (attendance.ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return attendance.ImportResult{}, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return attendance.ImportResult{}, attendance.ErrEmptyBatch
	}

	cellRows, err := f.GetRows(sheet)
	if err != nil {
		return attendance.ImportResult{}, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(cellRows) <= 1 {
		return attendance.ImportResult{}, attendance.ErrEmptyBatch
	}

	// Row 1 is the header.
	rows := make([][]string, 0, len(cellRows)-1)
	for _, cells := range cellRows[1:] {
		trimmed := make([]string, len(cells))
		for i, c := range cells {
			trimmed[i] = strings.TrimSpace(c)
		}
		rows = append(rows, trimmed)
	}

	return s.runImport(ctx, rows, 2)
}
