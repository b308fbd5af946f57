package timeclock

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidTime is returned when an input cannot be parsed as a time of day.
var ErrInvalidTime = errors.New("invalid time of day")

const minutesPerDay = 24 * 60

var sixty = decimal.NewFromInt(60)

// TimeOfDay is a clock time as minutes since midnight. The canonical string
// form is zero-padded 24h "HH:MM".
type TimeOfDay int

// New builds a TimeOfDay from an hour and minute.
func New(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %02d:%02d", ErrInvalidTime, hour, minute)
	}
	return TimeOfDay(hour*60 + minute), nil
}

// MustParse is a test/fixture helper; it panics on invalid input.
func MustParse(s string) TimeOfDay {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Parse accepts the loose time formats seen in attendance exports:
// "H:mm", "HH:mm", "Hmm", "HHmm", each with an optional am/pm suffix.
// Hours above 23 or minutes above 59 are rejected.
func Parse(input string) (TimeOfDay, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" {
		return 0, fmt.Errorf("%w: empty input", ErrInvalidTime)
	}

	meridiem := ""
	for _, suffix := range []string{"am", "pm"} {
		if strings.HasSuffix(s, suffix) {
			meridiem = suffix
			s = strings.TrimSpace(strings.TrimSuffix(s, suffix))
			break
		}
	}

	var hourPart, minutePart string
	if before, after, found := strings.Cut(s, ":"); found {
		hourPart, minutePart = before, after
	} else {
		// Compact "Hmm" / "HHmm": the last two digits are minutes.
		if len(s) < 3 || len(s) > 4 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTime, input)
		}
		hourPart, minutePart = s[:len(s)-2], s[len(s)-2:]
	}

	hour, err := strconv.Atoi(hourPart)
	if err != nil || len(minutePart) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, input)
	}
	minute, err := strconv.Atoi(minutePart)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, input)
	}

	if meridiem != "" {
		if hour < 1 || hour > 12 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTime, input)
		}
		if hour == 12 {
			hour = 0
		}
		if meridiem == "pm" {
			hour += 12
		}
	}

	return New(hour, minute)
}

// Hour returns the 24h hour component.
func (t TimeOfDay) Hour() int { return int(t) / 60 }

// Minute returns the minute component.
func (t TimeOfDay) Minute() int { return int(t) % 60 }

// Minutes returns minutes since midnight.
func (t TimeOfDay) Minutes() int { return int(t) }

// String renders the canonical zero-padded 24h form.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// DurationHours returns the elapsed hours between start and end as a decimal.
// When end is numerically earlier than start, or overnight is set, the span
// wraps past midnight (mod 24h). The result is never negative.
func DurationHours(start, end TimeOfDay, overnight bool) decimal.Decimal {
	minutes := end.Minutes() - start.Minutes()
	if minutes < 0 || (overnight && minutes <= 0) {
		minutes = (minutes + minutesPerDay) % minutesPerDay
	}
	return decimal.NewFromInt(int64(minutes)).Div(sixty)
}

// IsLate reports whether a check-in is strictly after the shift start.
func IsLate(inTime, shiftStart TimeOfDay) bool {
	return inTime.Minutes() > shiftStart.Minutes()
}
