package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MinutesPerDay is the number of minutes in a calendar day.
const MinutesPerDay = 24 * 60

const timeFormat = "15:04"

var (
	// ErrInvalidFormat is returned when a time string is not a valid HH:MM value
	ErrInvalidFormat = errors.New("types: invalid time string format")

	// ErrOutOfRange is returned when a minutes value falls outside [0, 1439]
	ErrOutOfRange = errors.New("types: minutes value out of day range")
)

// TimeString is a wall-clock time of day in canonical zero-padded "HH:MM" form.
// The canonical form makes lexicographic comparison equivalent to chronological
// comparison, which IsBefore/IsAfter rely on.
type TimeString string

// NewTimeString creates a TimeString from the time-of-day part of t.
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeFormat))
}

// NewTimeStringFromString parses s as "HH:MM" and returns the canonical
// zero-padded form. Returns ErrInvalidFormat if s is not two colon-separated
// integers with hour in [0, 23] and minute in [0, 59].
func NewTimeStringFromString(s string) (TimeString, error) {
	h, m, err := splitHoursMinutes(s)
	if err != nil {
		return "", err
	}
	return TimeString(fmt.Sprintf("%02d:%02d", h, m)), nil
}

// NewTimeStringFromMinutes converts minutes since midnight to a TimeString.
// Returns ErrOutOfRange if total is outside [0, 1439].
func NewTimeStringFromMinutes(total int) (TimeString, error) {
	if total < 0 || total >= MinutesPerDay {
		return "", fmt.Errorf("%w: %d", ErrOutOfRange, total)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// Validate checks that the value is a well-formed HH:MM time.
func (t TimeString) Validate() error {
	_, _, err := splitHoursMinutes(string(t))
	return err
}

// IsZero returns true for the empty value.
func (t TimeString) IsZero() bool {
	return t == ""
}

// Minutes returns the value as minutes since midnight.
// Returns ErrInvalidFormat for a malformed value.
func (t TimeString) Minutes() (int, error) {
	h, m, err := splitHoursMinutes(string(t))
	if err != nil {
		return 0, err
	}
	return h*60 + m, nil
}

// AddMinutes returns the time shifted forward (or backward for negative
// minutes). Returns ErrOutOfRange if the result leaves the day, and
// ErrInvalidFormat if the receiver is malformed.
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	current, err := t.Minutes()
	if err != nil {
		return "", err
	}
	return NewTimeStringFromMinutes(current + minutes)
}

// IsBefore reports whether t is strictly earlier than other.
// Both values must be in canonical form.
func (t TimeString) IsBefore(other TimeString) bool {
	return t < other
}

// IsAfter reports whether t is strictly later than other.
func (t TimeString) IsAfter(other TimeString) bool {
	return t > other
}

// String returns the "HH:MM" representation.
func (t TimeString) String() string {
	return string(t)
}

func splitHoursMinutes(s string) (int, int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}

	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}

	if h < 0 || h > 23 {
		return 0, 0, fmt.Errorf("%w: hour %d out of range", ErrInvalidFormat, h)
	}
	if m < 0 || m > 59 {
		return 0, 0, fmt.Errorf("%w: minute %d out of range", ErrInvalidFormat, m)
	}

	return h, m, nil
}
