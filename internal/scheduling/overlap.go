package scheduling

import (
	"errors"
	"fmt"

	"github.com/zeusvenues/Zeus-SchedulingService/pkg/types"
)

var (
	// ErrInvalidRange is returned when a range's start is not strictly
	// before its end, or a bound is malformed.
	ErrInvalidRange = errors.New("scheduling: range start must be before end")

	// ErrOutsideOperatingHours is returned by ShiftTime when the shifted
	// value leaves the operating window.
	ErrOutsideOperatingHours = errors.New("scheduling: shifted time is outside operating hours")
)

// RangesOverlap reports whether two time ranges intersect.
// Half-open interval semantics: a range that ends exactly where the other
// starts does not overlap it, so back-to-back reservations never conflict.
func RangesOverlap(aStart, aEnd, bStart, bEnd types.TimeString) bool {
	return aStart.IsBefore(bEnd) && bStart.IsBefore(aEnd)
}

// ShiftTime moves t by the given number of hours (negative shifts move
// earlier) and validates the result against the operating window.
// Used to vet a bulk time-shift preview before anything is committed.
func ShiftTime(t types.TimeString, hours int, operatingHours OperatingHours) (types.TimeString, error) {
	shifted, err := t.AddMinutes(hours * 60)
	if err != nil {
		// Out of the day entirely is also outside the window.
		return "", fmt.Errorf("%w: %v", ErrOutsideOperatingHours, err)
	}

	if shifted.IsBefore(operatingHours.OpenTime) || shifted.IsAfter(operatingHours.CloseTime) {
		return "", fmt.Errorf("%w: %s", ErrOutsideOperatingHours, shifted)
	}

	return shifted, nil
}

// validateRange checks that both bounds parse and start precedes end.
// Malformed bounds propagate types.ErrInvalidFormat.
func validateRange(start, end types.TimeString) error {
	if err := start.Validate(); err != nil {
		return err
	}
	if err := end.Validate(); err != nil {
		return err
	}
	if !start.IsBefore(end) {
		return fmt.Errorf("%w: %s >= %s", ErrInvalidRange, start, end)
	}
	return nil
}
