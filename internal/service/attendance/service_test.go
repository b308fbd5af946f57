package attendance

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/paycore-hr/payroll-backend-go/internal/domain/attendance"
	"github.com/paycore-hr/payroll-backend-go/internal/domain/employee"
	"github.com/paycore-hr/payroll-backend-go/internal/pkg/timeclock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== IN-MEMORY FAKES =====

type fakeEmployeeRepo struct {
	employees []employee.Employee
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	for _, emp := range r.employees {
		if emp.ID == id {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) GetByCode(_ context.Context, code string) (employee.Employee, error) {
	for _, emp := range r.employees {
		if emp.EmployeeCode == code {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) ListActive(_ context.Context) ([]employee.Employee, error) {
	var active []employee.Employee
	for _, emp := range r.employees {
		if emp.EmploymentStatus == employee.EmploymentStatusActive {
			active = append(active, emp)
		}
	}
	return active, nil
}

type fakeAttendanceRepo struct {
	records map[string]attendance.DailyRecord // keyed by employeeID + date

	// upsertErrOnDate makes Upsert fail for records on that date (YYYY-MM-DD).
	upsertErrOnDate string
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]attendance.DailyRecord)}
}

func recordKey(employeeID string, date time.Time) string {
	return fmt.Sprintf("%s/%s", employeeID, date.Format("2006-01-02"))
}

func (r *fakeAttendanceRepo) GetByID(_ context.Context, id string) (attendance.DailyRecord, error) {
	for _, rec := range r.records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return attendance.DailyRecord{}, attendance.ErrRecordNotFound
}

func (r *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (*attendance.DailyRecord, error) {
	if rec, ok := r.records[recordKey(employeeID, date)]; ok {
		return &rec, nil
	}
	return nil, nil
}

func (r *fakeAttendanceRepo) Upsert(_ context.Context, record attendance.DailyRecord) (attendance.DailyRecord, bool, error) {
	if r.upsertErrOnDate != "" && record.Date.Format("2006-01-02") == r.upsertErrOnDate {
		return attendance.DailyRecord{}, false, fmt.Errorf("connection reset")
	}
	key := recordKey(record.EmployeeID, record.Date)
	if existing, ok := r.records[key]; ok {
		// Re-imports refresh status and clock times but keep corrected
		// overtime and deduction fields, same as the SQL upsert.
		existing.Status = record.Status
		existing.InTime = record.InTime
		existing.OutTime = record.OutTime
		r.records[key] = existing
		return existing, false, nil
	}
	record.ID = uuid.NewString()
	r.records[key] = record
	return record, true, nil
}

// WithinTransaction snapshots the store and restores it when fn fails,
// mirroring the rollback of the SQL implementation.
func (r *fakeAttendanceRepo) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	snapshot := make(map[string]attendance.DailyRecord, len(r.records))
	for k, v := range r.records {
		snapshot[k] = v
	}
	if err := fn(ctx); err != nil {
		r.records = snapshot
		return err
	}
	return nil
}

func (r *fakeAttendanceRepo) Update(_ context.Context, record attendance.DailyRecord) error {
	for key, rec := range r.records {
		if rec.ID == record.ID {
			r.records[key] = record
			return nil
		}
	}
	return attendance.ErrRecordNotFound
}

func (r *fakeAttendanceRepo) ListByEmployeeAndRange(_ context.Context, employeeID string, start, end time.Time) ([]attendance.DailyRecord, error) {
	var out []attendance.DailyRecord
	for _, rec := range r.records {
		if rec.EmployeeID == employeeID && !rec.Date.Before(start) && !rec.Date.After(end) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakeAttendanceRepo) List(_ context.Context, filter attendance.RecordFilter) ([]attendance.DailyRecord, int64, error) {
	var out []attendance.DailyRecord
	for _, rec := range r.records {
		if filter.EmployeeID != nil && rec.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && string(rec.Status) != strings.ToLower(*filter.Status) {
			continue
		}
		out = append(out, rec)
	}
	return out, int64(len(out)), nil
}

func fixtureEmployees() *fakeEmployeeRepo {
	shift := employee.ShiftConfig{
		Start: timeclock.MustParse("09:00"),
		End:   timeclock.MustParse("17:00"),
	}
	return &fakeEmployeeRepo{employees: []employee.Employee{
		{
			ID:               "emp-1",
			EmployeeCode:     "EMP001",
			FullName:         "First Employee",
			Shift:            shift,
			EmploymentStatus: employee.EmploymentStatusActive,
		},
		{
			ID:               "emp-2",
			EmployeeCode:     "EMP002",
			FullName:         "Second Employee",
			Shift:            shift,
			EmploymentStatus: employee.EmploymentStatusActive,
		},
		{
			ID:               "emp-9",
			EmployeeCode:     "EMP999",
			FullName:         "Former Employee",
			Shift:            shift,
			EmploymentStatus: employee.EmploymentStatusResigned,
		},
	}}
}

func newTestService() (attendance.AttendanceService, *fakeAttendanceRepo) {
	repo := newFakeAttendanceRepo()
	return NewAttendanceService(repo, fixtureEmployees()), repo
}

// ===== IMPORT TESTS =====

func TestImportEvents_MergesPunchesIntoRecords(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, repo := newTestService()

	result, err := svc.ImportEvents(ctx, attendance.ImportRequest{Rows: []string{
		"EMP001|First|Employee|02/02/2026|08:55|0",
		"EMP001|First|Employee|02/02/2026|17:02|1",
		"EMP002|Second|Employee|02/02/2026|09:30|0",
		"EMP002|Second|Employee|02/02/2026|18:00|1",
	}})
	require.NoError(t, err)

	assert.Equal(t, 4, result.Counts.Total)
	assert.Equal(t, 4, result.Counts.Success)
	assert.Equal(t, 0, result.Counts.Failed)
	assert.Equal(t, 2, result.Counts.RecordsCreated)
	assert.Equal(t, 0, result.Counts.RecordsUpdated)

	rec, err := repo.GetByEmployeeAndDate(ctx, "emp-2", time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, attendance.StatusLate, rec.Status)
	assert.Equal(t, "09:30", rec.InTime.String())
	assert.Equal(t, "18:00", rec.OutTime.String())
}

func TestImportEvents_CommaDelimitedRows(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestService()

	result, err := svc.ImportEvents(ctx, attendance.ImportRequest{Rows: []string{
		"EMP001,First,Employee,02/02/2026,0855,0",
	}})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Counts.Success)
	assert.Equal(t, 1, result.Counts.RecordsCreated)
}

func TestImportEvents_BadRowsAreRejectedNotFatal(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestService()

	result, err := svc.ImportEvents(ctx, attendance.ImportRequest{Rows: []string{
		"EMP001|First|Employee|02/02/2026|08:55|0",
		"EMP001|First|Employee|31/02/2026|09:00|0", // impossible date
		"EMP001|First|Employee|02/02/2026|25:00|0", // impossible time
		"EMP001|First|Employee|02/02/2026|09:00|2", // bad status flag
		"EMP001|First|Employee|02/02/2026",         // short row
		"EMP999|Former|Employee|02/02/2026|09:00|0", // resigned
	}})
	require.NoError(t, err)

	assert.Equal(t, 6, result.Counts.Total)
	assert.Equal(t, 1, result.Counts.Success)
	assert.Equal(t, 5, result.Counts.Failed)
	assert.Equal(t, 1, result.Counts.RecordsCreated)

	var errorRows []int
	for _, entry := range result.Log {
		if entry.Level == attendance.ImportLogError || entry.Level == attendance.ImportLogWarn {
			errorRows = append(errorRows, entry.Row)
		}
	}
	assert.Equal(t, []int{2, 3, 4, 5, 6}, errorRows)
}

func TestImportEvents_BlankRowsAreSkipped(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestService()

	result, err := svc.ImportEvents(ctx, attendance.ImportRequest{Rows: []string{
		"EMP001|First|Employee|02/02/2026|08:55|0",
		"   ",
		"",
	}})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Counts.Total)
	assert.Equal(t, 1, result.Counts.Success)
	assert.Equal(t, 2, result.Counts.Skipped)
	assert.Equal(t, 0, result.Counts.Failed)
}

func TestImportEvents_ReimportUpdatesWithoutStompingCorrections(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, repo := newTestService()

	_, err := svc.ImportEvents(ctx, attendance.ImportRequest{Rows: []string{
		"EMP001|First|Employee|02/02/2026|09:20|0",
		"EMP001|First|Employee|02/02/2026|17:00|1",
	}})
	require.NoError(t, err)

	day := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)
	stored, err := repo.GetByEmployeeAndDate(ctx, "emp-1", day)
	require.NoError(t, err)
	require.NotNil(t, stored)

	// Correct the overtime, then re-import the same punches.
	_, err = svc.CorrectRecord(ctx, attendance.CorrectionRequest{
		ID:      stored.ID,
		OtHours: decimalPtr("2"),
	})
	require.NoError(t, err)

	result, err := svc.ImportEvents(ctx, attendance.ImportRequest{Rows: []string{
		"EMP001|First|Employee|02/02/2026|08:50|0",
		"EMP001|First|Employee|02/02/2026|17:00|1",
	}})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Counts.RecordsUpdated)
	assert.Equal(t, 0, result.Counts.RecordsCreated)

	after, err := repo.GetByEmployeeAndDate(ctx, "emp-1", day)
	require.NoError(t, err)
	require.NotNil(t, after)
	assert.Equal(t, "08:50", after.InTime.String())
	assert.Equal(t, attendance.StatusPresent, after.Status)
	assert.True(t, after.OtHours.Equal(decimal.NewFromInt(2)), "ot preserved, got %s", after.OtHours)
}

func TestImportEvents_StorageFailureRollsBackWholeBatch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, repo := newTestService()
	repo.upsertErrOnDate = "2026-02-03"

	_, err := svc.ImportEvents(ctx, attendance.ImportRequest{Rows: []string{
		"EMP001|First|Employee|02/02/2026|09:00|0",
		"EMP001|First|Employee|03/02/2026|09:00|0",
	}})
	require.Error(t, err)

	// The record stored before the failure must be rolled back too.
	rec, getErr := repo.GetByEmployeeAndDate(ctx, "emp-1", time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, getErr)
	assert.Nil(t, rec)
}

func TestImportEvents_LogStartsWithBatchInfo(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestService()

	result, err := svc.ImportEvents(ctx, attendance.ImportRequest{Rows: []string{
		"EMP001|First|Employee|02/02/2026|09:00|0",
	}})
	require.NoError(t, err)

	require.NotEmpty(t, result.Log)
	assert.Equal(t, attendance.ImportLogInfo, result.Log[0].Level)
	assert.Equal(t, "processing 1 rows", result.Log[0].Message)
}

func TestImportEvents_EmptyBatchRejected(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestService()

	_, err := svc.ImportEvents(ctx, attendance.ImportRequest{})
	assert.Error(t, err)
}

// ===== CORRECTION TESTS =====

func decimalPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func strPtr(s string) *string {
	return &s
}

func importedRecord(t *testing.T, svc attendance.AttendanceService, repo *fakeAttendanceRepo) attendance.DailyRecord {
	t.Helper()
	ctx := context.Background()

	_, err := svc.ImportEvents(ctx, attendance.ImportRequest{Rows: []string{
		"EMP001|First|Employee|02/02/2026|09:20|0",
		"EMP001|First|Employee|02/02/2026|17:00|1",
	}})
	require.NoError(t, err)

	rec, err := repo.GetByEmployeeAndDate(ctx, "emp-1", time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotNil(t, rec)
	return *rec
}

func TestCorrectRecord_FixedInTimeReclassifiesStatus(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, repo := newTestService()

	rec := importedRecord(t, svc, repo)
	require.Equal(t, attendance.StatusLate, rec.Status)

	resp, err := svc.CorrectRecord(ctx, attendance.CorrectionRequest{
		ID:     rec.ID,
		InTime: strPtr("08:58"),
	})
	require.NoError(t, err)

	assert.Equal(t, "present", resp.Status)
	require.NotNil(t, resp.InTime)
	assert.Equal(t, "08:58", *resp.InTime)
}

func TestCorrectRecord_LeaveClearsClockTimes(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, repo := newTestService()

	rec := importedRecord(t, svc, repo)

	resp, err := svc.CorrectRecord(ctx, attendance.CorrectionRequest{
		ID:     rec.ID,
		Status: strPtr("on_leave"),
	})
	require.NoError(t, err)

	assert.Equal(t, "on_leave", resp.Status)
	assert.Nil(t, resp.InTime)
	assert.Nil(t, resp.OutTime)
}

func TestCorrectRecord_TolerantTimeFormats(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, repo := newTestService()

	rec := importedRecord(t, svc, repo)

	resp, err := svc.CorrectRecord(ctx, attendance.CorrectionRequest{
		ID:      rec.ID,
		OutTime: strPtr("5:30 pm"),
	})
	require.NoError(t, err)

	require.NotNil(t, resp.OutTime)
	assert.Equal(t, "17:30", *resp.OutTime)
}

func TestCorrectRecord_RejectsInvalidValues(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, repo := newTestService()

	rec := importedRecord(t, svc, repo)

	_, err := svc.CorrectRecord(ctx, attendance.CorrectionRequest{
		ID:      rec.ID,
		OtHours: decimalPtr("-1"),
	})
	assert.Error(t, err)

	_, err = svc.CorrectRecord(ctx, attendance.CorrectionRequest{
		ID:           rec.ID,
		OtMultiplier: decimalPtr("3"),
	})
	assert.ErrorIs(t, err, attendance.ErrInvalidRecord)
}

func TestCorrectRecord_UnknownIDFails(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestService()

	_, err := svc.CorrectRecord(ctx, attendance.CorrectionRequest{
		ID:     uuid.NewString(),
		Status: strPtr("present"),
	})
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)
}

func TestListRecords_FiltersByStatus(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestService()

	_, err := svc.ImportEvents(ctx, attendance.ImportRequest{Rows: []string{
		"EMP001|First|Employee|02/02/2026|09:20|0",
		"EMP002|Second|Employee|02/02/2026|08:50|0",
	}})
	require.NoError(t, err)

	late := "late"
	resp, err := svc.ListRecords(ctx, attendance.RecordFilter{Status: &late})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.TotalCount)
	require.Len(t, resp.Records, 1)
	assert.Equal(t, "late", resp.Records[0].Status)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 20, resp.Limit)
}
