package models

import (
	"fmt"
	"time"

	"github.com/zeusvenues/Zeus-SchedulingService/internal/domain"
	"github.com/zeusvenues/Zeus-SchedulingService/pkg/types"
)

// Request модели

// GetConfigRequest запрос на получение конфигурации (для иерархического поиска)
type GetConfigRequest struct {
	VenueID int64  `json:"venueId"`
	SpaceID *int64 `json:"spaceId,omitempty"` // nil означает конфигурацию всей площадки
}

// UpsertConfigRequest запрос на создание или обновление конфигурации расписания
// Все поля настроек опциональны - обновляются только переданные значения,
// отсутствующие при создании заполняются значениями по умолчанию
type UpsertConfigRequest struct {
	UserID             int64   `json:"userId"`
	VenueID            int64   `json:"venueId"`
	SpaceID            *int64  `json:"spaceId,omitempty"` // NULL = для всех пространств
	OpenTime           *string `json:"openTime,omitempty"`
	CloseTime          *string `json:"closeTime,omitempty"`
	MinDurationMinutes *int    `json:"minDurationMinutes,omitempty"`
	GridStepMinutes    *int    `json:"gridStepMinutes,omitempty"`
	SuggestionLimit    *int    `json:"suggestionLimit,omitempty"`
	AdvanceBookingDays *int    `json:"advanceBookingDays,omitempty"`
}

// ApplyToConfig применяет обновления к существующей конфигурации
// Обновляются только непустые (not nil) поля из request.
// Времена приводятся к канонической форме "HH:MM" с ведущими нулями -
// все сравнения времени лексикографические и требуют одинаковой формы
func (r *UpsertConfigRequest) ApplyToConfig(cfg *domain.VenueScheduleConfig) error {
	if r.OpenTime != nil {
		openTime, err := types.NewTimeStringFromString(*r.OpenTime)
		if err != nil {
			return fmt.Errorf("invalid openTime: %w", err)
		}
		cfg.OpenTime = openTime
	}
	if r.CloseTime != nil {
		closeTime, err := types.NewTimeStringFromString(*r.CloseTime)
		if err != nil {
			return fmt.Errorf("invalid closeTime: %w", err)
		}
		cfg.CloseTime = closeTime
	}
	if r.MinDurationMinutes != nil {
		cfg.MinDurationMinutes = *r.MinDurationMinutes
	}
	if r.GridStepMinutes != nil {
		cfg.GridStepMinutes = *r.GridStepMinutes
	}
	if r.SuggestionLimit != nil {
		cfg.SuggestionLimit = *r.SuggestionLimit
	}
	if r.AdvanceBookingDays != nil {
		cfg.AdvanceBookingDays = *r.AdvanceBookingDays
	}
	return nil
}

// Response модели

// ConfigResponse ответ с данными конфигурации расписания
type ConfigResponse struct {
	ID                 int64     `json:"id"`
	VenueID            int64     `json:"venueId"`
	SpaceID            *int64    `json:"spaceId,omitempty"`
	OpenTime           string    `json:"openTime"`  // "08:00"
	CloseTime          string    `json:"closeTime"` // "23:00"
	MinDurationMinutes int       `json:"minDurationMinutes"`
	GridStepMinutes    int       `json:"gridStepMinutes"`
	SuggestionLimit    int       `json:"suggestionLimit"`
	AdvanceBookingDays int       `json:"advanceBookingDays"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// ConfigListResponse ответ со списком конфигураций
type ConfigListResponse struct {
	Configs []ConfigResponse `json:"configs"`
}

// Методы конвертации

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.VenueScheduleConfig) *ConfigResponse {
	if c == nil {
		return nil
	}

	return &ConfigResponse{
		ID:                 c.ID,
		VenueID:            c.VenueID,
		SpaceID:            c.SpaceID,
		OpenTime:           c.OpenTime.String(),
		CloseTime:          c.CloseTime.String(),
		MinDurationMinutes: c.MinDurationMinutes,
		GridStepMinutes:    c.GridStepMinutes,
		SuggestionLimit:    c.SuggestionLimit,
		AdvanceBookingDays: c.AdvanceBookingDays,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}

// FromDomainConfigList конвертирует список domain моделей в DTO
func FromDomainConfigList(configs []*domain.VenueScheduleConfig) *ConfigListResponse {
	if configs == nil {
		return &ConfigListResponse{
			Configs: []ConfigResponse{},
		}
	}

	resp := &ConfigListResponse{
		Configs: make([]ConfigResponse, len(configs)),
	}

	for i, cfg := range configs {
		if converted := FromDomainConfig(cfg); converted != nil {
			resp.Configs[i] = *converted
		}
	}

	return resp
}
