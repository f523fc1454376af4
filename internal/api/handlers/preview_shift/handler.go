package preview_shift

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/zeusvenues/Zeus-SchedulingService/internal/api/handlers"
	"github.com/zeusvenues/Zeus-SchedulingService/internal/api/middleware"
	"github.com/zeusvenues/Zeus-SchedulingService/internal/service/reservations"
)

const (
	msgInvalidVenueID     = "некорректный ID площадки"
	msgInvalidSpaceID     = "некорректный ID пространства"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidParams      = "некорректные параметры запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgVenueNotFound      = "площадка не найдена"
	msgForbidden          = "доступ запрещен"
	msgShiftOutsideHours  = "сдвиг выводит бронирования за часы работы"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/venues/{venueId}/spaces/{spaceId}/shift-preview
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем venueId и spaceId из URL
	vars := mux.Vars(r)

	venueID, err := strconv.ParseInt(vars["venueId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /shift-preview - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	spaceID, err := strconv.ParseInt(vars["spaceId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /shift-preview - Invalid space ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpaceID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /shift-preview - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req PreviewShiftRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /shift-preview - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(venueID, spaceID, userID)
	if err != nil {
		h.logger.Warn("POST /shift-preview - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Вычисляем предпросмотр (сервис сам проверит права менеджера)
	result, err := h.service.PreviewShift(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrVenueNotFound):
			h.logger.Warn("POST /shift-preview - Venue not found: venue_id=%d", venueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("POST /shift-preview - Access denied: venue_id=%d, user_id=%d", venueID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reservations.ErrShiftOutsideHours):
			h.logger.Warn("POST /shift-preview - Shift outside operating hours: venue_id=%d, space_id=%d, shift=%d",
				venueID, spaceID, req.ShiftHours)
			handlers.RespondError(w, http.StatusConflict, msgShiftOutsideHours)

		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("POST /shift-preview - Invalid parameters: venue_id=%d, error=%v", venueID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("POST /shift-preview - Failed to preview shift: venue_id=%d, space_id=%d, error=%v",
				venueID, spaceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /shift-preview - Shift previewed successfully: venue_id=%d, space_id=%d, slots=%d",
		venueID, spaceID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, result)
}
