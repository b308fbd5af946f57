package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for canonical daily records.
type AttendanceRepository interface {
	// GetByID retrieves a daily record by ID
	GetByID(ctx context.Context, id string) (DailyRecord, error)

	// GetByEmployeeAndDate retrieves the record for one employee on one
	// date; returns nil when no record exists
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*DailyRecord, error)

	// Upsert creates or overwrites the record keyed by (employee, date);
	// reports whether a new row was created
	Upsert(ctx context.Context, record DailyRecord) (DailyRecord, bool, error)

	// Update overwrites an existing record (correction path)
	Update(ctx context.Context, record DailyRecord) error

	// ListByEmployeeAndRange retrieves records for one employee between two
	// dates inclusive, ordered by date
	ListByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time) ([]DailyRecord, error)

	// List retrieves records with filters and pagination
	List(ctx context.Context, filter RecordFilter) ([]DailyRecord, int64, error)

	// WithinTransaction runs fn atomically; repository calls made with the
	// context passed to fn join the same transaction
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
