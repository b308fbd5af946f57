package attendance

import "errors"

// Attendance domain errors
var (
	ErrRecordNotFound = errors.New("attendance record not found")
	ErrInvalidRecord  = errors.New("attendance record violates invariants")
	ErrEmptyBatch     = errors.New("import batch contains no rows")
)
