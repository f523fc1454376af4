package scheduling

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/zeusvenues/Zeus-SchedulingService/internal/domain"
	"github.com/zeusvenues/Zeus-SchedulingService/pkg/types"
)

// ErrInvalidDuration is returned when the requested duration is not positive.
var ErrInvalidDuration = errors.New("scheduling: duration must be positive")

// FindAlternatives searches the operating-hours grid for replacement time
// ranges of the given duration and ranks them by how many of the candidate
// dates they clear. Intended to be called after FindConflicts reported at
// least one conflict.
//
// Start times are enumerated from the open time in stepMinutes increments
// (the grid resolution is deliberately a parameter; hosts with half-hour
// grids just pass 30). The candidate's own range is never suggested back,
// slots ending after the close time are discarded, and slots clearing zero
// dates are dropped. Results are ordered by AvailableDateCount descending,
// then start time ascending, so the ranking is deterministic.
//
// Degenerate operating hours (open >= close) yield an empty list, not an
// error: there is no grid to search.
func FindAlternatives(
	candidate CandidateRequest,
	durationMinutes int,
	existing []*domain.Reservation,
	operatingHours OperatingHours,
	stepMinutes int,
) ([]AlternativeSlot, error) {
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDuration, durationMinutes)
	}
	if stepMinutes <= 0 {
		stepMinutes = domain.DefaultGridStepMinutes
	}

	if err := operatingHours.OpenTime.Validate(); err != nil {
		return nil, err
	}
	if err := operatingHours.CloseTime.Validate(); err != nil {
		return nil, err
	}

	slots := make([]AlternativeSlot, 0)
	if operatingHours.IsDegenerate() {
		return slots, nil
	}

	for start := operatingHours.OpenTime; start.IsBefore(operatingHours.CloseTime); {
		end, err := start.AddMinutes(durationMinutes)
		if err != nil {
			// Past midnight: every later start is too.
			break
		}
		if end.IsAfter(operatingHours.CloseTime) {
			break
		}

		if start != candidate.StartTime || end != candidate.EndTime {
			slot := scoreSlot(candidate, start, end, existing)
			if slot.AvailableDateCount > 0 {
				slots = append(slots, slot)
			}
		}

		next, err := start.AddMinutes(stepMinutes)
		if err != nil {
			break
		}
		start = next
	}

	sort.SliceStable(slots, func(i, j int) bool {
		if slots[i].AvailableDateCount != slots[j].AvailableDateCount {
			return slots[i].AvailableDateCount > slots[j].AvailableDateCount
		}
		return slots[i].StartTime.IsBefore(slots[j].StartTime)
	})

	return slots, nil
}

// scoreSlot runs the per-date conflict check for one grid position.
func scoreSlot(
	candidate CandidateRequest,
	start, end types.TimeString,
	existing []*domain.Reservation,
) AlternativeSlot {
	slot := AlternativeSlot{
		StartTime:     start,
		EndTime:       end,
		ConflictDates: make([]time.Time, 0),
	}

	for _, date := range candidate.Dates {
		if len(conflictsOnDate(candidate.SpaceID, date, start, end, existing)) == 0 {
			slot.AvailableDateCount++
		} else {
			slot.ConflictDates = append(slot.ConflictDates, date)
		}
	}

	return slot
}
