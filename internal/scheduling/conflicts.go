package scheduling

import (
	"time"

	"github.com/zeusvenues/Zeus-SchedulingService/internal/domain"
	"github.com/zeusvenues/Zeus-SchedulingService/pkg/types"
)

// FindConflicts checks the candidate against a snapshot of existing
// reservations and returns one report per candidate date that has at
// least one overlapping reservation on the same space. Cancelled
// reservations are skipped: they no longer hold the space.
//
// The scan is linear in len(existing) * len(candidate.Dates) and has no
// side effects, so it is safe to run on every form change.
func FindConflicts(candidate CandidateRequest, existing []*domain.Reservation) ([]ConflictReport, error) {
	if err := validateRange(candidate.StartTime, candidate.EndTime); err != nil {
		return nil, err
	}

	reports := make([]ConflictReport, 0)
	for _, date := range candidate.Dates {
		entries := conflictsOnDate(candidate.SpaceID, date, candidate.StartTime, candidate.EndTime, existing)
		if len(entries) > 0 {
			reports = append(reports, ConflictReport{Date: date, Conflicts: entries})
		}
	}

	return reports, nil
}

// conflictsOnDate collects the reservations overlapping [start, end) on
// one space and date. Only reservations that still hold the space count.
func conflictsOnDate(
	spaceID int64,
	date time.Time,
	start, end types.TimeString,
	existing []*domain.Reservation,
) []ConflictEntry {
	var entries []ConflictEntry

	for _, res := range existing {
		if res.SpaceID != spaceID {
			continue
		}
		if !isSameDay(res.Date, date) {
			continue
		}
		if !res.HoldsSpace() {
			continue
		}

		if RangesOverlap(start, end, res.StartTime, res.EndTime) {
			entries = append(entries, ConflictEntry{
				ReservationID: res.ID,
				UserID:        res.UserID,
				CustomerName:  res.CustomerName,
				StartTime:     res.StartTime,
				EndTime:       res.EndTime,
				Status:        res.Status,
			})
		}
	}

	return entries
}
