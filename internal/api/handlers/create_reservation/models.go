package create_reservation

import (
	"time"

	"github.com/zeusvenues/Zeus-SchedulingService/internal/domain"
	"github.com/zeusvenues/Zeus-SchedulingService/internal/scheduling"
	createReservation "github.com/zeusvenues/Zeus-SchedulingService/internal/usecase/create_reservation"
	"github.com/zeusvenues/Zeus-SchedulingService/pkg/types"
)

// RecurrenceRequest параметры блочного бронирования в HTTP запросе
type RecurrenceRequest struct {
	StartDate string   `json:"startDate"` // "2025-01-06"
	Weekdays  []string `json:"weekdays"`  // ["monday", "wednesday"]
	EndDate   string   `json:"endDate"`   // "2025-01-19"
}

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	VenueID    int64              `json:"venueId"`
	SpaceID    int64              `json:"spaceId"`
	Dates      []string           `json:"dates,omitempty"` // ["2025-01-06"]
	Recurrence *RecurrenceRequest `json:"recurrence,omitempty"`
	StartTime  string             `json:"startTime"` // "18:00"
	EndTime    string             `json:"endTime"`   // "19:00"
	Notes      *string            `json:"notes,omitempty"`
}

// CreatedReservationResponse одно созданное бронирование
type CreatedReservationResponse struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Status    string `json:"status"`
}

// CreateReservationResponse HTTP response model
type CreateReservationResponse struct {
	UserID       int64                        `json:"userId"`
	VenueID      int64                        `json:"venueId"`
	SpaceID      int64                        `json:"spaceId"`
	BlockID      *string                      `json:"blockId,omitempty"`
	CustomerName string                       `json:"customerName,omitempty"`
	Notes        *string                      `json:"notes,omitempty"`
	Reservations []CreatedReservationResponse `json:"reservations"`
	CreatedAt    string                       `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(userID int64) (*createReservation.Request, error) {
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}
	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	req := &createReservation.Request{
		UserID:    userID,
		VenueID:   r.VenueID,
		SpaceID:   r.SpaceID,
		StartTime: startTime,
		EndTime:   endTime,
		Notes:     r.Notes,
	}

	for _, dateStr := range r.Dates {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, err
		}
		req.Dates = append(req.Dates, date)
	}

	if r.Recurrence != nil {
		startDate, err := time.Parse(domain.DateFormat, r.Recurrence.StartDate)
		if err != nil {
			return nil, err
		}
		endDate, err := time.Parse(domain.DateFormat, r.Recurrence.EndDate)
		if err != nil {
			return nil, err
		}

		weekdays := scheduling.WeekdaySet{}
		for _, name := range r.Recurrence.Weekdays {
			day, err := scheduling.ParseWeekday(name)
			if err != nil {
				return nil, err
			}
			weekdays[day] = struct{}{}
		}

		req.Recurrence = &createReservation.Recurrence{
			StartDate: startDate,
			Weekdays:  weekdays,
			EndDate:   endDate,
		}
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *CreateReservationResponse {
	out := &CreateReservationResponse{
		UserID:       resp.UserID,
		VenueID:      resp.VenueID,
		SpaceID:      resp.SpaceID,
		BlockID:      resp.BlockID,
		CustomerName: resp.CustomerName,
		Notes:        resp.Notes,
		Reservations: make([]CreatedReservationResponse, 0, len(resp.Reservations)),
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
	}

	for _, res := range resp.Reservations {
		out.Reservations = append(out.Reservations, CreatedReservationResponse{
			ID:        res.ID,
			Date:      res.Date.Format(domain.DateFormat),
			StartTime: res.StartTime.String(),
			EndTime:   res.EndTime.String(),
			Status:    res.Status,
		})
	}

	return out
}
