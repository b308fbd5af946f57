package attendance

import (
	"testing"
	"time"

	"github.com/paycore-hr/payroll-backend-go/internal/domain/attendance"
	"github.com/paycore-hr/payroll-backend-go/internal/domain/employee"
	"github.com/paycore-hr/payroll-backend-go/internal/pkg/timeclock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var mergeDay = time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)

func testEmployees() map[string]employee.Employee {
	return map[string]employee.Employee{
		"EMP001": {
			ID:           "emp-1",
			EmployeeCode: "EMP001",
			Shift: employee.ShiftConfig{
				Start: timeclock.MustParse("09:00"),
				End:   timeclock.MustParse("17:00"),
			},
		},
		"EMP002": {
			ID:           "emp-2",
			EmployeeCode: "EMP002",
			Shift: employee.ShiftConfig{
				Start: timeclock.MustParse("09:00"),
				End:   timeclock.MustParse("17:00"),
			},
		},
	}
}

func punch(code string, day time.Time, clock string, kind attendance.EventKind) attendance.Event {
	return attendance.Event{
		EmployeeCode: code,
		Date:         day,
		Time:         timeclock.MustParse(clock),
		Kind:         kind,
	}
}

func TestMergeEvents_EarliestInLatestOutWin(t *testing.T) {
	t.Parallel()

	events := []attendance.Event{
		punch("EMP001", mergeDay, "09:10", attendance.EventCheckIn),
		punch("EMP001", mergeDay, "08:55", attendance.EventCheckIn),
		punch("EMP001", mergeDay, "17:02", attendance.EventCheckOut),
		punch("EMP001", mergeDay, "12:30", attendance.EventCheckOut),
	}

	records := MergeEvents(events, testEmployees())
	require.Len(t, records, 1)

	rec := records[0]
	require.NotNil(t, rec.InTime)
	require.NotNil(t, rec.OutTime)
	assert.Equal(t, "08:55", rec.InTime.String())
	assert.Equal(t, "17:02", rec.OutTime.String())
	assert.Equal(t, attendance.StatusPresent, rec.Status)
	assert.Equal(t, "emp-1", rec.EmployeeID)
}

func TestMergeEvents_OrderIndependent(t *testing.T) {
	t.Parallel()

	forward := []attendance.Event{
		punch("EMP001", mergeDay, "08:55", attendance.EventCheckIn),
		punch("EMP001", mergeDay, "17:02", attendance.EventCheckOut),
		punch("EMP002", mergeDay, "09:30", attendance.EventCheckIn),
	}
	reversed := []attendance.Event{forward[2], forward[1], forward[0]}

	a := MergeEvents(forward, testEmployees())
	b := MergeEvents(reversed, testEmployees())

	assert.Equal(t, a, b)
}

func TestMergeEvents_Idempotent(t *testing.T) {
	t.Parallel()

	events := []attendance.Event{
		punch("EMP001", mergeDay, "08:55", attendance.EventCheckIn),
		punch("EMP001", mergeDay, "17:02", attendance.EventCheckOut),
	}

	once := MergeEvents(events, testEmployees())
	twice := MergeEvents(append(events, events...), testEmployees())

	assert.Equal(t, once, twice)
}

func TestMergeEvents_LateReclassification(t *testing.T) {
	t.Parallel()

	events := []attendance.Event{
		punch("EMP001", mergeDay, "09:01", attendance.EventCheckIn),
		punch("EMP001", mergeDay, "17:00", attendance.EventCheckOut),
		punch("EMP002", mergeDay, "09:00", attendance.EventCheckIn),
		punch("EMP002", mergeDay, "17:00", attendance.EventCheckOut),
	}

	records := MergeEvents(events, testEmployees())
	require.Len(t, records, 2)

	// Sorted by employee code.
	assert.Equal(t, attendance.StatusLate, records[0].Status)
	assert.Equal(t, attendance.StatusPresent, records[1].Status)
}

func TestMergeEvents_IncompletePairIsPreserved(t *testing.T) {
	t.Parallel()

	events := []attendance.Event{
		punch("EMP001", mergeDay, "08:55", attendance.EventCheckIn),
	}

	records := MergeEvents(events, testEmployees())
	require.Len(t, records, 1)

	assert.NotNil(t, records[0].InTime)
	assert.Nil(t, records[0].OutTime)
	assert.False(t, records[0].IsComplete())
}

func TestMergeEvents_SeparateDaysStaySeparate(t *testing.T) {
	t.Parallel()

	nextDay := mergeDay.AddDate(0, 0, 1)
	events := []attendance.Event{
		punch("EMP001", mergeDay, "08:55", attendance.EventCheckIn),
		punch("EMP001", mergeDay, "17:00", attendance.EventCheckOut),
		punch("EMP001", nextDay, "08:50", attendance.EventCheckIn),
	}

	records := MergeEvents(events, testEmployees())
	require.Len(t, records, 2)
	assert.Equal(t, mergeDay, records[0].Date)
	assert.Equal(t, nextDay, records[1].Date)
}

func TestMergeEvents_DefaultsOvertimeAndDeduction(t *testing.T) {
	t.Parallel()

	events := []attendance.Event{
		punch("EMP001", mergeDay, "08:55", attendance.EventCheckIn),
	}

	records := MergeEvents(events, testEmployees())
	require.Len(t, records, 1)

	assert.True(t, records[0].OtHours.IsZero())
	assert.True(t, records[0].OtMultiplier.Equal(decimal.NewFromInt(1)))
	assert.True(t, records[0].Deduction.IsZero())
	assert.NoError(t, records[0].Validate())
}
