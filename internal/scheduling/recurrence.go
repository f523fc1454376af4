package scheduling

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidWeekday is returned when a weekday name cannot be parsed.
var ErrInvalidWeekday = errors.New("scheduling: invalid weekday")

// WeekdaySet is the set of weekdays a recurring booking repeats on.
type WeekdaySet map[time.Weekday]struct{}

// NewWeekdaySet builds a set from the given weekdays.
func NewWeekdaySet(days ...time.Weekday) WeekdaySet {
	set := make(WeekdaySet, len(days))
	for _, d := range days {
		set[d] = struct{}{}
	}
	return set
}

// Contains reports whether d is in the set.
func (s WeekdaySet) Contains(d time.Weekday) bool {
	_, ok := s[d]
	return ok
}

// ParseWeekday parses an English weekday name ("monday", "Tue", ...).
func ParseWeekday(s string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sunday", "sun":
		return time.Sunday, nil
	case "monday", "mon":
		return time.Monday, nil
	case "tuesday", "tue":
		return time.Tuesday, nil
	case "wednesday", "wed":
		return time.Wednesday, nil
	case "thursday", "thu":
		return time.Thursday, nil
	case "friday", "fri":
		return time.Friday, nil
	case "saturday", "sat":
		return time.Saturday, nil
	default:
		return time.Sunday, fmt.Errorf("%w: %q", ErrInvalidWeekday, s)
	}
}

// ExpandRecurrence walks every calendar day from start to end inclusive
// and returns, in ascending order, the days whose weekday is in weekdays.
//
// An empty weekday set or end before start yields an empty list — both are
// valid "no bookings" outcomes, not errors. The function does not consult
// existing reservations; conflict checking is a separate pass over its
// output.
func ExpandRecurrence(start time.Time, weekdays WeekdaySet, end time.Time) []time.Time {
	dates := make([]time.Time, 0)
	if len(weekdays) == 0 {
		return dates
	}

	day := truncateToDay(start)
	last := truncateToDay(end)

	for !day.After(last) {
		if weekdays.Contains(day.Weekday()) {
			dates = append(dates, day)
		}
		day = day.AddDate(0, 0, 1)
	}

	return dates
}
