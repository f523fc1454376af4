package cancel_reservation

import "github.com/zeusvenues/Zeus-SchedulingService/internal/service/reservations/models"

// CancelReservationRequest HTTP request model
type CancelReservationRequest struct {
	CancellationReason string `json:"cancellationReason"`
	CancelBlock        bool   `json:"cancelBlock,omitempty"` // Отменить все бронирования блока
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CancelReservationRequest) ToServiceRequest(userID int64) *models.CancelReservationRequest {
	return &models.CancelReservationRequest{
		UserID:             userID,
		CancellationReason: r.CancellationReason,
		CancelBlock:        r.CancelBlock,
	}
}
