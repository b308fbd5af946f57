package attendance

import (
	"sort"
	"time"

	"github.com/paycore-hr/payroll-backend-go/internal/domain/attendance"
	"github.com/paycore-hr/payroll-backend-go/internal/domain/employee"
	"github.com/paycore-hr/payroll-backend-go/internal/pkg/timeclock"
	"github.com/shopspring/decimal"
)

type mergeKey struct {
	employeeCode string
	date         string // YYYY-MM-DD
}

type mergeGroup struct {
	employeeCode string
	date         time.Time
	inTime       *timeclock.TimeOfDay
	outTime      *timeclock.TimeOfDay
}

// MergeEvents reduces an unordered batch of raw punch events to one
// DailyRecord per (employee, date). Within a group the earliest check-in
// wins as InTime and the latest check-out as OutTime, so duplicate punches
// collapse instead of appending. A group with only one side of the pair is
// preserved with the other side empty; such days carry zero pay until
// corrected. The reduction is order-independent: merging the same events
// twice, in any order, yields the same records.
//
// Events must already be matched to a known employee; employees maps
// employee code to the config snapshot used for Late reclassification.
func MergeEvents(events []attendance.Event, employees map[string]employee.Employee) []attendance.DailyRecord {
	groups := make(map[mergeKey]*mergeGroup)

	for _, ev := range events {
		key := mergeKey{employeeCode: ev.EmployeeCode, date: ev.Date.Format("2006-01-02")}
		g, ok := groups[key]
		if !ok {
			g = &mergeGroup{employeeCode: ev.EmployeeCode, date: ev.Date}
			groups[key] = g
		}

		t := ev.Time
		switch ev.Kind {
		case attendance.EventCheckIn:
			if g.inTime == nil || t.Minutes() < g.inTime.Minutes() {
				g.inTime = &t
			}
		case attendance.EventCheckOut:
			if g.outTime == nil || t.Minutes() > g.outTime.Minutes() {
				g.outTime = &t
			}
		}
	}

	records := make([]attendance.DailyRecord, 0, len(groups))
	for _, g := range groups {
		emp, ok := employees[g.employeeCode]

		status := attendance.StatusPresent
		if ok && g.inTime != nil && timeclock.IsLate(*g.inTime, emp.Shift.Start) {
			status = attendance.StatusLate
		}

		code := g.employeeCode
		records = append(records, attendance.DailyRecord{
			EmployeeID:   emp.ID,
			EmployeeCode: &code,
			Date:         g.date,
			Status:       status,
			InTime:       g.inTime,
			OutTime:      g.outTime,
			OtHours:      decimal.Zero,
			OtMultiplier: decimal.NewFromInt(1),
			Deduction:    decimal.Zero,
		})
	}

	sort.Slice(records, func(i, j int) bool {
		if *records[i].EmployeeCode != *records[j].EmployeeCode {
			return *records[i].EmployeeCode < *records[j].EmployeeCode
		}
		return records[i].Date.Before(records[j].Date)
	})

	return records
}
