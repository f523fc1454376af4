package models

import (
	"errors"
	"time"

	"github.com/zeusvenues/Zeus-SchedulingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Request модели

// CancelReservationRequest запрос на отмену бронирования
type CancelReservationRequest struct {
	UserID             int64  `json:"userId"`
	CancellationReason string `json:"cancellationReason"`
	CancelBlock        bool   `json:"cancelBlock,omitempty"` // Отменить все бронирования блока
}

// UpdateStatusRequest запрос на обновление статуса бронирования
type UpdateStatusRequest struct {
	UserID int64  `json:"userId"`
	Status string `json:"status"`
}

// GetUserReservationsRequest запрос на получение бронирований пользователя
type GetUserReservationsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// GetVenueReservationsRequest запрос на получение бронирований площадки
type GetVenueReservationsRequest struct {
	UserID           int64      `json:"userId"`
	VenueID          int64      `json:"venueId"`
	SpaceID          *int64     `json:"spaceId,omitempty"`          // Фильтр по пространству (опционально)
	StartDate        *time.Time `json:"startDate,omitempty"`        // Начало периода (опционально)
	EndDate          *time.Time `json:"endDate,omitempty"`          // Конец периода (опционально)
	Status           *string    `json:"status,omitempty"`           // Фильтр по статусу (опционально)
	IncludeCancelled bool       `json:"includeCancelled,omitempty"` // Включить отменённые бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetVenueReservationsRequest) ToDomainFilter() (domain.VenueReservationsFilter, error) {
	filter := domain.VenueReservationsFilter{
		VenueID:          r.VenueID,
		SpaceID:          r.SpaceID,
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		IncludeCancelled: r.IncludeCancelled,
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := ToDomainReservationStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// PreviewShiftRequest запрос на предпросмотр сдвига расписания пространства
// на N часов. Сдвигаются все активные бронирования пространства на дату.
type PreviewShiftRequest struct {
	UserID     int64     `json:"userId"`
	VenueID    int64     `json:"venueId"`
	SpaceID    int64     `json:"spaceId"`
	Date       time.Time `json:"date"`
	ShiftHours int       `json:"shiftHours"` // Положительное - позже, отрицательное - раньше
}

// Response модели

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID      int64 `json:"id"`
	UserID  int64 `json:"userId"`
	VenueID int64 `json:"venueId"`
	SpaceID int64 `json:"spaceId"`

	Date      string `json:"date"`      // "2025-10-15"
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "12:00"
	Status    string `json:"status"`

	BlockID *string `json:"blockId,omitempty"`

	// Денормализованные данные
	CustomerName string  `json:"customerName"`
	Notes        *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// ShiftedSlot один сдвинутый слот в предпросмотре
type ShiftedSlot struct {
	ReservationID int64  `json:"reservationId"`
	Date          string `json:"date"`
	OldStartTime  string `json:"oldStartTime"`
	OldEndTime    string `json:"oldEndTime"`
	NewStartTime  string `json:"newStartTime"`
	NewEndTime    string `json:"newEndTime"`
}

// PreviewShiftResponse ответ с предпросмотром сдвига
type PreviewShiftResponse struct {
	ShiftHours int           `json:"shiftHours"`
	Slots      []ShiftedSlot `json:"slots"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:                 r.ID,
		UserID:             r.UserID,
		VenueID:            r.VenueID,
		SpaceID:            r.SpaceID,
		Date:               r.Date.Format(domain.DateFormat),
		StartTime:          r.StartTime.String(),
		EndTime:            r.EndTime.String(),
		Status:             string(r.Status),
		BlockID:            r.BlockID,
		CustomerName:       r.CustomerName,
		Notes:              r.Notes,
		CancellationReason: r.CancellationReason,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if r.CancelledAt != nil {
		cancelledStr := r.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	if reservations == nil {
		return &ReservationListResponse{
			Reservations: []ReservationResponse{},
		}
	}

	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, len(reservations)),
	}

	for i, reservation := range reservations {
		if converted := FromDomainReservation(reservation); converted != nil {
			resp.Reservations[i] = *converted
		}
	}

	return resp
}

// ToDomainReservationStatus конвертирует строку в domain.ReservationStatus с валидацией
func ToDomainReservationStatus(status string) (domain.ReservationStatus, error) {
	s := domain.ReservationStatus(status)

	// Валидируем статус
	validStatuses := []domain.ReservationStatus{
		domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusCancelled,
		domain.StatusCompleted,
		domain.StatusPendingPayment,
		domain.StatusPaid,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
