package preview_shift

import (
	"time"

	"github.com/zeusvenues/Zeus-SchedulingService/internal/domain"
	"github.com/zeusvenues/Zeus-SchedulingService/internal/service/reservations/models"
)

// PreviewShiftRequest HTTP request model
type PreviewShiftRequest struct {
	Date       string `json:"date"`       // "2025-01-06"
	ShiftHours int    `json:"shiftHours"` // Положительное - позже, отрицательное - раньше
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *PreviewShiftRequest) ToServiceRequest(venueID, spaceID, userID int64) (*models.PreviewShiftRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &models.PreviewShiftRequest{
		UserID:     userID,
		VenueID:    venueID,
		SpaceID:    spaceID,
		Date:       date,
		ShiftHours: r.ShiftHours,
	}, nil
}
