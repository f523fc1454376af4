package update_venue_config

import "github.com/zeusvenues/Zeus-SchedulingService/internal/service/config/models"

// UpdateConfigRequest HTTP request model
// Все поля настроек опциональны - обновляются только переданные значения
type UpdateConfigRequest struct {
	SpaceID            *int64  `json:"spaceId,omitempty"` // NULL = конфигурация всей площадки
	OpenTime           *string `json:"openTime,omitempty"`
	CloseTime          *string `json:"closeTime,omitempty"`
	MinDurationMinutes *int    `json:"minDurationMinutes,omitempty"`
	GridStepMinutes    *int    `json:"gridStepMinutes,omitempty"`
	SuggestionLimit    *int    `json:"suggestionLimit,omitempty"`
	AdvanceBookingDays *int    `json:"advanceBookingDays,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateConfigRequest) ToServiceRequest(venueID, userID int64) *models.UpsertConfigRequest {
	return &models.UpsertConfigRequest{
		UserID:             userID,
		VenueID:            venueID,
		SpaceID:            r.SpaceID,
		OpenTime:           r.OpenTime,
		CloseTime:          r.CloseTime,
		MinDurationMinutes: r.MinDurationMinutes,
		GridStepMinutes:    r.GridStepMinutes,
		SuggestionLimit:    r.SuggestionLimit,
		AdvanceBookingDays: r.AdvanceBookingDays,
	}
}
