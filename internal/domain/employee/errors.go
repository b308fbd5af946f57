package employee

import "errors"

var (
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrInvalidSalaryConfig = errors.New("invalid salary configuration")
	ErrInvalidShiftConfig  = errors.New("invalid shift configuration")
)
