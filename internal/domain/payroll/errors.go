package payroll

import "errors"

var (
	ErrInvalidPeriod        = errors.New("invalid payroll period")
	ErrInvalidScoreWeights  = errors.New("invalid performance score weights")
	ErrInvariantViolation   = errors.New("payroll invariant violation")
	ErrBreakdownOutOfPeriod = errors.New("daily breakdown falls outside the pay period")
)
