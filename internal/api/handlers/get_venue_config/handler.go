package get_venue_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/zeusvenues/Zeus-SchedulingService/internal/api/handlers"
	configService "github.com/zeusvenues/Zeus-SchedulingService/internal/service/config"
	"github.com/zeusvenues/Zeus-SchedulingService/internal/service/config/models"
)

const (
	msgInvalidVenueID = "некорректный ID площадки"
	msgInvalidSpaceID = "некорректный ID пространства"
	msgNotFound       = "конфигурация не найдена"
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

// Handle GET /api/v1/venues/{venueId}/config
// Query params: spaceId (опционально - конфигурация конкретного пространства)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем venueId из URL
	vars := mux.Vars(r)

	venueID, err := strconv.ParseInt(vars["venueId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /venues/{id}/config - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	req := &models.GetConfigRequest{VenueID: venueID}

	// Парсим spaceId если указан
	if spaceIDStr := r.URL.Query().Get("spaceId"); spaceIDStr != "" {
		spaceID, err := strconv.ParseInt(spaceIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /venues/{id}/config - Invalid space ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSpaceID)
			return
		}
		req.SpaceID = &spaceID
	}

	result, err := h.service.GetWithHierarchy(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, configService.ErrConfigNotFound):
			h.logger.Warn("GET /venues/{id}/config - Config not found: venue_id=%d", venueID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /venues/{id}/config - Failed to get config: venue_id=%d, error=%v", venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /venues/{id}/config - Config retrieved successfully: venue_id=%d", venueID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
