package get_venue_reservations

import (
	"strconv"
	"time"

	"github.com/zeusvenues/Zeus-SchedulingService/internal/domain"
	"github.com/zeusvenues/Zeus-SchedulingService/internal/service/reservations/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(
	venueID int64,
	userID int64,
	spaceIDStr string,
	statusStr string,
	startDateStr string,
	endDateStr string,
	includeCancelledStr string,
) (*models.GetVenueReservationsRequest, error) {
	req := &models.GetVenueReservationsRequest{
		UserID:           userID,
		VenueID:          venueID,
		IncludeCancelled: false, // По умолчанию только активные
	}

	// Парсим spaceId если указан
	if spaceIDStr != "" {
		spaceID, err := strconv.ParseInt(spaceIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.SpaceID = &spaceID
	}

	// Парсим status если указан
	if statusStr != "" {
		req.Status = &statusStr
	}

	// Парсим период если указан; одна дата = расписание на день
	if startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
		req.EndDate = &startDate
	}
	if endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	// Парсим includeCancelled если указан
	if includeCancelledStr != "" {
		includeCancelled, err := strconv.ParseBool(includeCancelledStr)
		if err != nil {
			return nil, err
		}
		req.IncludeCancelled = includeCancelled
	}

	return req, nil
}
