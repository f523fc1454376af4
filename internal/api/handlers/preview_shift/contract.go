package preview_shift

import (
	"context"

	"github.com/zeusvenues/Zeus-SchedulingService/internal/service/reservations/models"
)

type ReservationService interface {
	PreviewShift(ctx context.Context, req *models.PreviewShiftRequest) (*models.PreviewShiftResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
