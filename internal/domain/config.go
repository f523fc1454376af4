package domain

import (
	"time"

	"github.com/zeusvenues/Zeus-SchedulingService/pkg/types"
)

// VenueScheduleConfig represents the scheduling configuration for a venue.
// Supports hierarchical configuration:
// 1. Space-specific (venue_id, space_id)
// 2. Venue-wide (venue_id, NULL)
type VenueScheduleConfig struct {
	ID      int64
	VenueID int64
	SpaceID *int64 // NULL = config for all spaces of the venue

	OpenTime  types.TimeString // earliest bookable time of day
	CloseTime types.TimeString // latest bookable time of day

	MinDurationMinutes int // minimum reservation length
	GridStepMinutes    int // start-time grid resolution for alternative slots
	SuggestionLimit    int // how many alternatives are surfaced to the caller
	AdvanceBookingDays int // 0 = unlimited

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsVenueWide returns true if this configuration applies to every space of the venue
func (c *VenueScheduleConfig) IsVenueWide() bool {
	return c.SpaceID == nil
}

// IsSpaceSpecific returns true if this configuration is for a single space
func (c *VenueScheduleConfig) IsSpaceSpecific() bool {
	return c.SpaceID != nil
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance reservations can be made
func (c *VenueScheduleConfig) HasAdvanceBookingLimit() bool {
	return c.AdvanceBookingDays > 0
}

// DefaultScheduleConfig returns the configuration used when a venue has none stored
func DefaultScheduleConfig() *VenueScheduleConfig {
	return &VenueScheduleConfig{
		OpenTime:           types.TimeString(DefaultOpenTime),
		CloseTime:          types.TimeString(DefaultCloseTime),
		MinDurationMinutes: DefaultMinDurationMinutes,
		GridStepMinutes:    DefaultGridStepMinutes,
		SuggestionLimit:    DefaultSuggestionLimit,
		AdvanceBookingDays: DefaultAdvanceBookingDays,
	}
}
