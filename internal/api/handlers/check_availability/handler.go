package check_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/zeusvenues/Zeus-SchedulingService/internal/api/handlers"
	checkAvailability "github.com/zeusvenues/Zeus-SchedulingService/internal/usecase/check_availability"
)

const (
	msgInvalidVenueID     = "некорректный ID площадки"
	msgInvalidSpaceID     = "некорректный ID пространства"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidParams      = "некорректные параметры запроса: дата YYYY-MM-DD, время HH:MM"
	msgVenueNotFound      = "площадка не найдена"
	msgSpaceNotFound      = "пространство не найдено"
	msgInvalidDate        = "некорректная дата бронирования"
	msgDateTooFar         = "дата бронирования слишком далеко в будущем"
	msgRecurrenceTooLong  = "период повторения слишком длинный"
	msgDurationTooShort   = "длительность меньше минимально допустимой"
	msgOutsideHours       = "запрошенное время выходит за часы работы"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/venues/{venueId}/spaces/{spaceId}/availability-check
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем venueId и spaceId из URL
	vars := mux.Vars(r)

	venueID, err := strconv.ParseInt(vars["venueId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /availability-check - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	spaceID, err := strconv.ParseInt(vars["spaceId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /availability-check - Invalid space ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpaceID)
		return
	}

	var req CheckAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /availability-check - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом дат и времени)
	useCaseReq, err := req.ToUseCaseRequest(venueID, spaceID)
	if err != nil {
		h.logger.Warn("POST /availability-check - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrVenueNotFound):
			h.logger.Warn("POST /availability-check - Venue not found: venue_id=%d", venueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, checkAvailability.ErrSpaceNotFound):
			h.logger.Warn("POST /availability-check - Space not found: venue_id=%d, space_id=%d", venueID, spaceID)
			handlers.RespondNotFound(w, msgSpaceNotFound)

		case errors.Is(err, checkAvailability.ErrInvalidDate):
			h.logger.Warn("POST /availability-check - Invalid date: venue_id=%d, space_id=%d", venueID, spaceID)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, checkAvailability.ErrDateTooFarInFuture):
			h.logger.Warn("POST /availability-check - Date too far in future: venue_id=%d, space_id=%d", venueID, spaceID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, checkAvailability.ErrRecurrenceTooLong):
			h.logger.Warn("POST /availability-check - Recurrence too long: venue_id=%d, space_id=%d", venueID, spaceID)
			handlers.RespondBadRequest(w, msgRecurrenceTooLong)

		case errors.Is(err, checkAvailability.ErrDurationTooShort):
			h.logger.Warn("POST /availability-check - Duration too short: venue_id=%d, space_id=%d", venueID, spaceID)
			handlers.RespondBadRequest(w, msgDurationTooShort)

		case errors.Is(err, checkAvailability.ErrOutsideOperatingHours):
			h.logger.Warn("POST /availability-check - Outside operating hours: venue_id=%d, space_id=%d", venueID, spaceID)
			handlers.RespondBadRequest(w, msgOutsideHours)

		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("POST /availability-check - Invalid input: venue_id=%d, space_id=%d, error=%v", venueID, spaceID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("POST /availability-check - Failed to check availability: venue_id=%d, space_id=%d, error=%v",
				venueID, spaceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /availability-check - Availability checked: venue_id=%d, space_id=%d, available=%v, conflicts=%d",
		venueID, spaceID, response.Available, len(response.Conflicts))
	handlers.RespondJSON(w, http.StatusOK, response)
}
