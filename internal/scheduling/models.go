// Package scheduling implements the time-slot conflict detection and
// alternative-slot recommendation engine. Every function is a pure
// computation over the reservation snapshot passed in; the package keeps
// no state between calls and performs no I/O, so callers may safely
// recompute on every input change.
package scheduling

import (
	"time"

	"github.com/zeusvenues/Zeus-SchedulingService/internal/domain"
	"github.com/zeusvenues/Zeus-SchedulingService/pkg/types"
)

// CandidateRequest is the slot (or set of slots for a block booking) a
// user is trying to reserve, before conflict checking.
type CandidateRequest struct {
	SpaceID   int64
	Dates     []time.Time // one date, or an expanded recurring set
	StartTime types.TimeString
	EndTime   types.TimeString
}

// ConflictEntry describes one existing reservation overlapping the candidate.
type ConflictEntry struct {
	ReservationID int64
	UserID        int64
	CustomerName  string
	StartTime     types.TimeString
	EndTime       types.TimeString
	Status        domain.ReservationStatus
}

// ConflictReport lists the overlapping reservations for one candidate date.
// Dates without conflicts get no report.
type ConflictReport struct {
	Date      time.Time
	Conflicts []ConflictEntry
}

// AlternativeSlot is a candidate replacement time range, ranked by how
// many of the requested dates it clears.
type AlternativeSlot struct {
	StartTime          types.TimeString
	EndTime            types.TimeString
	AvailableDateCount int
	ConflictDates      []time.Time
}

// OperatingHours are the configured earliest/latest bookable bounds for a space.
type OperatingHours struct {
	OpenTime  types.TimeString
	CloseTime types.TimeString
}

// IsDegenerate returns true when the window contains no bookable time.
func (h OperatingHours) IsDegenerate() bool {
	return !h.OpenTime.IsBefore(h.CloseTime)
}
