package attendance

import (
	"context"
	"io"
)

// AttendanceService defines the import and record operations.
type AttendanceService interface {
	// ImportEvents merges raw punch rows into canonical daily records and
	// commits the valid subset; per-row failures are reported in the
	// result log, never fatal to the batch
	ImportEvents(ctx context.Context, req ImportRequest) (ImportResult, error)

	// ImportWorkbook runs the same import over the first sheet of an XLSX
	// workbook
	ImportWorkbook(ctx context.Context, r io.Reader) (ImportResult, error)

	// ListRecords retrieves daily records with filters
	ListRecords(ctx context.Context, filter RecordFilter) (ListRecordResponse, error)

	// GetRecord retrieves a single daily record by ID
	GetRecord(ctx context.Context, id string) (DailyRecordResponse, error)

	// CorrectRecord overwrites fields of a daily record (correction
	// request path)
	CorrectRecord(ctx context.Context, req CorrectionRequest) (DailyRecordResponse, error)
}
