package update_venue_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/zeusvenues/Zeus-SchedulingService/internal/api/handlers"
	"github.com/zeusvenues/Zeus-SchedulingService/internal/api/middleware"
	configService "github.com/zeusvenues/Zeus-SchedulingService/internal/service/config"
)

const (
	msgInvalidVenueID     = "некорректный ID площадки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidParams      = "некорректные параметры конфигурации"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgVenueNotFound      = "площадка не найдена"
	msgSpaceNotFound      = "пространство не найдено"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/venues/{venueId}/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем venueId из URL
	vars := mux.Vars(r)

	venueID, err := strconv.ParseInt(vars["venueId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /venues/{id}/config - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /venues/{id}/config - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /venues/{id}/config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Создаем или обновляем конфигурацию (сервис сам проверит права менеджера)
	result, err := h.service.Upsert(r.Context(), req.ToServiceRequest(venueID, userID))
	if err != nil {
		switch {
		case errors.Is(err, configService.ErrVenueNotFound):
			h.logger.Warn("PUT /venues/{id}/config - Venue not found: venue_id=%d", venueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, configService.ErrSpaceNotFound):
			h.logger.Warn("PUT /venues/{id}/config - Space not found: venue_id=%d", venueID)
			handlers.RespondNotFound(w, msgSpaceNotFound)

		case errors.Is(err, configService.ErrAccessDenied):
			h.logger.Warn("PUT /venues/{id}/config - Access denied: venue_id=%d, user_id=%d", venueID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, configService.ErrInvalidInput):
			h.logger.Warn("PUT /venues/{id}/config - Invalid parameters: venue_id=%d, error=%v", venueID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("PUT /venues/{id}/config - Failed to update config: venue_id=%d, error=%v", venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /venues/{id}/config - Config updated successfully: venue_id=%d, config_id=%d",
		venueID, result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
