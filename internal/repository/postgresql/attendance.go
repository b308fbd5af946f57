package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/paycore-hr/payroll-backend-go/internal/domain/attendance"
	"github.com/paycore-hr/payroll-backend-go/internal/pkg/database"
	"github.com/paycore-hr/payroll-backend-go/internal/pkg/timeclock"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const recordColumns = `
	r.id, r.employee_id, r.date, r.status, r.in_time, r.out_time,
	r.ot_hours, r.ot_multiplier, r.deduction, r.created_at, r.updated_at,
	e.full_name, e.employee_code
`

func scanDailyRecord(row pgx.Row) (attendance.DailyRecord, error) {
	var rec attendance.DailyRecord
	var inTime, outTime *string

	if err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.Date, &rec.Status, &inTime, &outTime,
		&rec.OtHours, &rec.OtMultiplier, &rec.Deduction, &rec.CreatedAt, &rec.UpdatedAt,
		&rec.EmployeeName, &rec.EmployeeCode,
	); err != nil {
		return attendance.DailyRecord{}, err
	}

	if inTime != nil {
		t, err := timeclock.Parse(*inTime)
		if err != nil {
			return attendance.DailyRecord{}, fmt.Errorf("record %s: bad in_time %q: %w", rec.ID, *inTime, err)
		}
		rec.InTime = &t
	}
	if outTime != nil {
		t, err := timeclock.Parse(*outTime)
		if err != nil {
			return attendance.DailyRecord{}, fmt.Errorf("record %s: bad out_time %q: %w", rec.ID, *outTime, err)
		}
		rec.OutTime = &t
	}

	return rec, nil
}

func clockString(t *timeclock.TimeOfDay) *string {
	if t == nil {
		return nil
	}
	s := t.String()
	return &s
}

func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.DailyRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + recordColumns + `
		FROM attendance_records r
		JOIN employees e ON e.id = r.employee_id
		WHERE r.id = $1
	`

	rec, err := scanDailyRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.DailyRecord{}, attendance.ErrRecordNotFound
		}
		return attendance.DailyRecord{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	return rec, nil
}

func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.DailyRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + recordColumns + `
		FROM attendance_records r
		JOIN employees e ON e.id = r.employee_id
		WHERE r.employee_id = $1 AND r.date = $2
	`

	rec, err := scanDailyRecord(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance record: %w", err)
	}

	return &rec, nil
}

// Upsert stores the merged record keyed by (employee_id, date). A re-import
// refreshes status and clock times but keeps the overtime and deduction
// fields of the stored row, so corrections survive replays of the same
// punch file.
func (r *attendanceRepository) Upsert(ctx context.Context, record attendance.DailyRecord) (attendance.DailyRecord, bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (
			id, employee_id, date, status, in_time, out_time,
			ot_hours, ot_multiplier, deduction
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			status = EXCLUDED.status,
			in_time = EXCLUDED.in_time,
			out_time = EXCLUDED.out_time,
			updated_at = NOW()
		RETURNING id, ot_hours, ot_multiplier, deduction, created_at, updated_at,
			(xmax = 0) AS inserted
	`

	var inserted bool
	err := q.QueryRow(ctx, query,
		uuid.NewString(),
		record.EmployeeID,
		record.Date,
		record.Status,
		clockString(record.InTime),
		clockString(record.OutTime),
		record.OtHours,
		record.OtMultiplier,
		record.Deduction,
	).Scan(
		&record.ID, &record.OtHours, &record.OtMultiplier, &record.Deduction,
		&record.CreatedAt, &record.UpdatedAt, &inserted,
	)
	if err != nil {
		return attendance.DailyRecord{}, false, fmt.Errorf("failed to upsert attendance record: %w", err)
	}

	return record, inserted, nil
}

func (r *attendanceRepository) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return WithTransaction(ctx, r.db, fn)
}

func (r *attendanceRepository) Update(ctx context.Context, record attendance.DailyRecord) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records SET
			status = $2,
			in_time = $3,
			out_time = $4,
			ot_hours = $5,
			ot_multiplier = $6,
			deduction = $7,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		record.ID,
		record.Status,
		clockString(record.InTime),
		clockString(record.OutTime),
		record.OtHours,
		record.OtMultiplier,
		record.Deduction,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}

	return nil
}

func (r *attendanceRepository) ListByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.DailyRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + recordColumns + `
		FROM attendance_records r
		JOIN employees e ON e.id = r.employee_id
		WHERE r.employee_id = $1 AND r.date BETWEEN $2 AND $3
		ORDER BY r.date
	`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	return collectRecords(rows)
}

func (r *attendanceRepository) List(ctx context.Context, filter attendance.RecordFilter) ([]attendance.DailyRecord, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("r.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("r.status = $%d", argIdx))
		args = append(args, strings.ToLower(*filter.Status))
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		conditions = append(conditions, fmt.Sprintf("r.date >= $%d", argIdx))
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		conditions = append(conditions, fmt.Sprintf("r.date <= $%d", argIdx))
		args = append(args, *filter.EndDate)
		argIdx++
	}

	where := strings.Join(conditions, " AND ")

	countQuery := `
		SELECT COUNT(*)
		FROM attendance_records r
		WHERE ` + where

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT `+recordColumns+`
		FROM attendance_records r
		JOIN employees e ON e.id = r.employee_id
		WHERE `+where+`
		ORDER BY r.date DESC, e.employee_code
		LIMIT $%d OFFSET $%d
	`, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	records, err := collectRecords(rows)
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func collectRecords(rows pgx.Rows) ([]attendance.DailyRecord, error) {
	var records []attendance.DailyRecord
	for rows.Next() {
		rec, err := scanDailyRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance records: %w", err)
	}
	return records, nil
}
